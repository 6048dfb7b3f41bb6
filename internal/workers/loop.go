package workers

import (
	"context"
	"sync"
	"time"
)

// loop runs tick in a goroutine every interval until stopped. When
// immediate is set the first tick runs right after start.
type loop struct {
	interval  time.Duration
	immediate bool
	tick      func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start stops any previous run, then launches the ticker goroutine. The
// goroutine exits when ctx is cancelled or Stop is called.
func (l *loop) Start(ctx context.Context) {
	l.Stop()

	l.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()

		if l.immediate {
			l.tick(jobCtx)
		}

		t := time.NewTicker(l.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				l.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the goroutine and waits for it. Safe to call when the loop
// is not running.
func (l *loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}
