package server

import "context"

// Server is a transport server managed by this package.
type Server interface {
	// RunServer serves until ctx is cancelled or a stop signal arrives,
	// then shuts down gracefully. A listener failure is returned.
	RunServer(ctx context.Context) error

	// Shutdown stops the server, waiting for in-flight requests until ctx
	// expires.
	Shutdown(ctx context.Context) error
}
