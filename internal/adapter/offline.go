package adapter

import (
	"context"
	"sync"

	"github.com/MKhiriev/daybook/models"
)

type offlineRemoteAdapter struct {
	mu    sync.RWMutex
	token string
}

// NewOfflineRemoteAdapter returns a [RemoteAdapter] for devices without a
// configured sync endpoint. Push and Ping always fail with
// ErrNoRemoteEndpoint, so queued operations stay pending.
func NewOfflineRemoteAdapter() RemoteAdapter {
	return &offlineRemoteAdapter{}
}

func (o *offlineRemoteAdapter) SetToken(token string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.token = token
}

func (o *offlineRemoteAdapter) Token() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.token
}

func (o *offlineRemoteAdapter) Push(context.Context, models.SyncOperation) error {
	return ErrNoRemoteEndpoint
}

func (o *offlineRemoteAdapter) Ping(context.Context) error {
	return ErrNoRemoteEndpoint
}
