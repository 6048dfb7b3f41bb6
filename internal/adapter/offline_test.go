package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/daybook/models"
)

func TestOfflineRemoteAdapter(t *testing.T) {
	a := NewOfflineRemoteAdapter()

	assert.ErrorIs(t, a.Ping(context.Background()), ErrNoRemoteEndpoint)
	assert.ErrorIs(t, a.Push(context.Background(), models.SyncOperation{ID: "op-1"}), ErrNoRemoteEndpoint)

	a.SetToken("t")
	assert.Equal(t, "t", a.Token())
}
