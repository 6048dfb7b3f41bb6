// Package utils provides general-purpose helpers shared across the
// application: UUIDv7 ids, HMAC hashing, bearer token inspection, JSON
// response writing and the HTTP client wrapper.
package utils
