package syncqueue

import "errors"

var (
	ErrPersistingQueue = errors.New("failed to persist sync queue")
	ErrLoadingQueue    = errors.New("failed to load sync queue")
	ErrQueueClosed     = errors.New("sync queue is closed")
	ErrMarshalingData  = errors.New("failed to marshal operation data")
)
