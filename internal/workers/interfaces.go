// Package workers runs the background jobs of the client: the connectivity
// monitor that feeds the sync queue its network state and the periodic
// drain of the queue.
package workers

import (
	"context"

	"github.com/MKhiriev/daybook/models"
)

// Worker is a background job. Start launches it and returns immediately;
// Stop cancels it and blocks until it has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Pinger reports whether the remote endpoint is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NetworkSink receives the observed network state.
type NetworkSink interface {
	SetOnline(online bool)
}

// Drainer pushes pending operations to the remote endpoint.
type Drainer interface {
	ProcessSyncQueue(ctx context.Context) (models.DrainResult, error)
}
