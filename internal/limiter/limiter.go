// Package limiter throttles passphrase attempts per identifier.
//
// State is in memory only; a restart forgets every counter.
package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
)

const (
	defaultMaxAttempts   = 5
	defaultWindow        = 15 * time.Minute
	defaultLockout       = 30 * time.Minute
	defaultSweepInterval = time.Hour
)

type entry struct {
	failures    int
	lastAttempt time.Time
	lockedUntil time.Time
}

// Limiter counts failed attempts per identifier. MaxAttempts failures
// without a pause longer than Window lock the identifier for Lockout.
type Limiter struct {
	maxAttempts   int
	window        time.Duration
	lockout       time.Duration
	sweepInterval time.Duration
	clock         func() time.Time
	logger        *logger.Logger

	mu      sync.Mutex
	entries map[string]*entry

	jobMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) {
		l.clock = clock
	}
}

// New returns a Limiter configured by cfg. Zero values fall back to 5
// attempts, a 15 minute window, a 30 minute lockout and an hourly sweep.
func New(cfg config.Security, log *logger.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		maxAttempts:   cfg.MaxAttempts,
		window:        cfg.Window,
		lockout:       cfg.Lockout,
		sweepInterval: cfg.SweepInterval,
		clock:         time.Now,
		logger:        log,
		entries:       make(map[string]*entry),
	}
	if l.maxAttempts <= 0 {
		l.maxAttempts = defaultMaxAttempts
	}
	if l.window <= 0 {
		l.window = defaultWindow
	}
	if l.lockout <= 0 {
		l.lockout = defaultLockout
	}
	if l.sweepInterval <= 0 {
		l.sweepInterval = defaultSweepInterval
	}
	if l.logger == nil {
		l.logger = logger.Nop()
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check reports whether id may attempt now. When it may not, retryAfter is
// the time left on the lock.
func (l *Limiter) Check(id string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.current(id, l.clock())
	if e == nil || e.lockedUntil.IsZero() {
		return true, 0
	}
	return false, e.lockedUntil.Sub(l.clock())
}

// RecordFailure counts a failed attempt and returns the attempts left
// before the lock. Zero means id is now locked.
func (l *Limiter) RecordFailure(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	e := l.current(id, now)
	if e == nil {
		e = &entry{}
		l.entries[id] = e
	}
	if !e.lockedUntil.IsZero() {
		return 0
	}

	e.failures++
	e.lastAttempt = now
	if e.failures >= l.maxAttempts {
		e.lockedUntil = now.Add(l.lockout)
		l.logger.Warn().
			Str("func", "Limiter.RecordFailure").
			Str("identifier", id).
			Time("locked_until", e.lockedUntil).
			Msg("identifier locked after repeated failures")
		return 0
	}
	return l.maxAttempts - e.failures
}

// RecordSuccess forgets every failure of id.
func (l *Limiter) RecordSuccess(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, id)
}

// Remaining returns the attempts id has left before the lock.
func (l *Limiter) Remaining(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.current(id, l.clock())
	if e == nil {
		return l.maxAttempts
	}
	if !e.lockedUntil.IsZero() {
		return 0
	}
	return l.maxAttempts - e.failures
}

// Len returns the number of tracked identifiers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Sweep evicts expired entries.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	for id, e := range l.entries {
		if l.expired(e, now) {
			delete(l.entries, id)
		}
	}
}

// Start launches the sweep goroutine. A running sweep is stopped first.
// The goroutine exits when ctx is cancelled or Stop is called.
func (l *Limiter) Start(ctx context.Context) {
	l.Stop()

	l.jobMu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.jobMu.Unlock()

	go func() {
		defer l.wg.Done()
		t := time.NewTicker(l.sweepInterval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				l.Sweep()
			}
		}
	}()
}

// Stop cancels the sweep goroutine and waits for it to exit. Safe to call
// when not started.
func (l *Limiter) Stop() {
	l.jobMu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.jobMu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}

// current returns the live entry of id, dropping it first if it expired.
// Callers hold l.mu.
func (l *Limiter) current(id string, now time.Time) *entry {
	e, ok := l.entries[id]
	if !ok {
		return nil
	}
	if l.expired(e, now) {
		delete(l.entries, id)
		return nil
	}
	return e
}

func (l *Limiter) expired(e *entry, now time.Time) bool {
	if !e.lockedUntil.IsZero() {
		return !now.Before(e.lockedUntil)
	}
	return now.Sub(e.lastAttempt) >= l.window
}
