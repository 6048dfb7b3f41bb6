package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/internal/logger"
)

// DefaultSyncInterval is used when the configured interval is not positive.
const DefaultSyncInterval = 5 * time.Minute

// SyncJob drains the sync queue on a ticker. Drains that find the queue
// offline or busy are skipped by the queue itself.
type SyncJob struct {
	loop

	drainer Drainer
	logger  *logger.Logger
}

// NewSyncJob returns an idle job.
func NewSyncJob(drainer Drainer, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j := &SyncJob{
		drainer: drainer,
		logger:  log.WithComponent("sync_job"),
	}
	j.loop = loop{interval: interval, tick: j.drain}
	return j
}

func (j *SyncJob) drain(ctx context.Context) {
	res, err := j.drainer.ProcessSyncQueue(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "*SyncJob.drain").Msg("periodic drain failed")
		return
	}
	if res.Skipped {
		return
	}

	j.logger.Debug().
		Str("func", "*SyncJob.drain").
		Int("attempted", res.Attempted).
		Int("succeeded", res.Succeeded).
		Int("requeued", res.Requeued).
		Int("failed", res.Failed).
		Msg("periodic drain finished")
}
