// Package config loads, merges and validates the daybook configuration.
//
// Sources, in order of precedence (a value set by an earlier source is kept):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (-c / --config or CONFIG)
//  4. Built-in defaults
//
// The entry point is [GetStructuredConfig].
package config
