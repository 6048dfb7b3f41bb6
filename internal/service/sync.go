package service

import (
	"context"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

type syncService struct {
	queue  SyncQueue
	logger *logger.Logger
}

func NewSyncService(queue SyncQueue, log *logger.Logger) SyncService {
	return &syncService{queue: queue, logger: log}
}

func (s *syncService) Status(_ context.Context) models.SyncStatus {
	return s.queue.Status()
}

func (s *syncService) Operations(_ context.Context) []models.SyncOperation {
	return s.queue.Operations()
}

// Drain runs one drain in the caller's goroutine. A drain already running
// or an offline queue yields a skipped result, not an error.
func (s *syncService) Drain(ctx context.Context) (models.DrainResult, error) {
	res, err := s.queue.ProcessSyncQueue(ctx)
	if err != nil {
		return res, fail(s.logger, CodeSyncDrain, "*syncService.Drain", err)
	}
	return res, nil
}

func (s *syncService) RetryFailed(ctx context.Context) (int, error) {
	n, err := s.queue.RetryFailedOperations(ctx)
	if err != nil {
		return 0, fail(s.logger, CodeSyncRetry, "*syncService.RetryFailed", err)
	}
	return n, nil
}

func (s *syncService) ClearFailed(ctx context.Context) (int, error) {
	n, err := s.queue.ClearFailedOperations(ctx)
	if err != nil {
		return 0, fail(s.logger, CodeSyncClearFailed, "*syncService.ClearFailed", err)
	}
	return n, nil
}

func (s *syncService) SetOnline(ctx context.Context, online bool) {
	logger.FromContext(ctx).Debug().Str("func", "*syncService.SetOnline").Bool("online", online).Msg("network state reported")
	s.queue.SetOnline(online)
}
