// Package http serves the local sync-status API.
//
// The API reports the state of the offline sync queue, lets a UI trigger a
// drain, retry or clear failed operations, report the network state and
// scrape Prometheus metrics. Every request gets a trace id and an access log
// entry; JSON responses are gzip-compressed on request and signed with the
// HashSHA256 header when a hash key is configured.
package http
