// Package server hosts the local status API for `daybook serve`.
//
// RunServer blocks until the context is cancelled or a stop signal
// arrives, then drains in-flight requests for up to ten seconds.
package server
