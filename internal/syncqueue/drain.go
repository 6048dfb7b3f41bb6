package syncqueue

import (
	"context"
	"slices"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

// ProcessSyncQueue pushes every operation that is pending when it starts,
// oldest first. Operations queued meanwhile wait for the next drain.
//
// Only one drain runs at a time; a concurrent call returns a skipped result
// at once. A failed push increments the retry count and leaves the
// operation pending, or failed once the count reaches the retry ceiling.
// Pushed operations are removed from the queue.
func (q *Queue) ProcessSyncQueue(ctx context.Context) (models.DrainResult, error) {
	log := logger.FromContext(ctx)

	if !q.online.Load() {
		drainsTotal.WithLabelValues(outcomeOffline).Inc()
		return models.DrainResult{Skipped: true, Offline: true}, nil
	}
	if !q.draining.CompareAndSwap(false, true) {
		drainsTotal.WithLabelValues(outcomeBusy).Inc()
		return models.DrainResult{Skipped: true}, nil
	}
	defer func() {
		q.draining.Store(false)
		q.notify()
	}()

	q.mu.Lock()
	if err := q.ensureLoaded(ctx); err != nil {
		q.mu.Unlock()
		drainsTotal.WithLabelValues(outcomeError).Inc()
		return models.DrainResult{}, err
	}
	batch := make([]string, 0, len(q.ops))
	for _, op := range q.ops {
		if op.Status == models.StatusPending {
			batch = append(batch, op.ID)
		}
	}
	q.mu.Unlock()

	q.notify()

	var result models.DrainResult
	for _, id := range batch {
		if ctx.Err() != nil {
			break
		}

		op, ok := q.markSyncing(id)
		if !ok {
			continue
		}

		err := q.remote.Push(ctx, op)
		switch {
		case err != nil && ctx.Err() != nil:
			// interrupted, not failed
			q.finish(id, func(op *models.SyncOperation) {
				op.Status = models.StatusPending
			})
			continue

		case err == nil:
			result.Attempted++
			q.finish(id, func(op *models.SyncOperation) {
				op.Status = models.StatusCompleted
				op.Error = ""
			})
			pushedTotal.WithLabelValues(string(op.Entity)).Inc()
			result.Succeeded++

		default:
			result.Attempted++
			pushFailuresTotal.WithLabelValues(string(op.Entity)).Inc()
			var terminal bool
			q.finish(id, func(op *models.SyncOperation) {
				op.RetryCount++
				op.Error = err.Error()
				if op.RetryCount >= q.maxRetries {
					op.Status = models.StatusFailed
					terminal = true
				} else {
					op.Status = models.StatusPending
				}
			})
			if terminal {
				result.Failed++
				log.Warn().
					Str("func", "Queue.ProcessSyncQueue").
					Str("op_id", id).
					Str("entity", string(op.Entity)).
					Err(err).
					Msg("operation reached the retry ceiling")
			} else {
				result.Requeued++
			}
		}
	}

	q.mu.Lock()
	q.ops = slices.DeleteFunc(q.ops, func(op models.SyncOperation) bool {
		return op.Status == models.StatusCompleted
	})
	now := q.clock().UTC()
	q.lastSync = &now
	q.draining.Store(false)
	err := q.persist(ctx)
	q.mu.Unlock()

	if err != nil {
		drainsTotal.WithLabelValues(outcomeError).Inc()
		return result, err
	}

	drainsTotal.WithLabelValues(outcomeDrained).Inc()
	log.Debug().
		Str("func", "Queue.ProcessSyncQueue").
		Int("attempted", result.Attempted).
		Int("succeeded", result.Succeeded).
		Int("requeued", result.Requeued).
		Int("failed", result.Failed).
		Msg("drain finished")
	return result, nil
}

// markSyncing flips a still pending operation to syncing and returns a copy
// of it.
func (q *Queue) markSyncing(id string) (models.SyncOperation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := slices.IndexFunc(q.ops, func(op models.SyncOperation) bool { return op.ID == id })
	if i < 0 || q.ops[i].Status != models.StatusPending {
		return models.SyncOperation{}, false
	}
	q.ops[i].Status = models.StatusSyncing
	return q.ops[i], true
}

func (q *Queue) finish(id string, update func(op *models.SyncOperation)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := slices.IndexFunc(q.ops, func(op models.SyncOperation) bool { return op.ID == id }); i >= 0 {
		update(&q.ops[i])
	}
}

// drainAsync starts a background drain when online, idle and open.
func (q *Queue) drainAsync() {
	if !q.online.Load() || q.draining.Load() {
		return
	}

	q.lifeMu.Lock()
	defer q.lifeMu.Unlock()
	if q.closed {
		return
	}

	q.drains.Add(1)
	go func() {
		defer q.drains.Done()
		if _, err := q.ProcessSyncQueue(q.ctx); err != nil {
			q.logger.Err(err).Str("func", "Queue.drainAsync").Msg("background drain failed")
		}
	}()
}
