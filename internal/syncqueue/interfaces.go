package syncqueue

import (
	"context"

	"github.com/MKhiriev/daybook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncqueue_mock.go -package=mock

// KV is the durable key/value storage the queue persists itself into.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Remote replays one operation against the remote store. Any error makes
// the operation a retry candidate; the queue does not inspect it.
type Remote interface {
	Push(ctx context.Context, op models.SyncOperation) error
}

// Listener receives a status snapshot after every queue change.
type Listener func(status models.SyncStatus)
