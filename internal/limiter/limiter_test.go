package limiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	return New(config.Security{}, logger.Nop(), WithClock(clock.Now)), clock
}

// ── Check / RecordFailure ─────────────────────────────────────────────────────

func TestLimiter_FiveFailuresBlockTheSixthCheck(t *testing.T) {
	l, _ := newLimiter(t)

	for i := 1; i <= 5; i++ {
		allowed, _ := l.Check("user")
		require.True(t, allowed, "check %d", i)
		assert.Equal(t, 5-i, l.RecordFailure("user"))
	}

	allowed, retryAfter := l.Check("user")
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Minute, retryAfter)
	assert.Equal(t, 0, l.Remaining("user"))
}

func TestLimiter_LockExpires(t *testing.T) {
	l, clock := newLimiter(t)
	for range 5 {
		l.RecordFailure("user")
	}

	clock.Advance(29 * time.Minute)
	allowed, retryAfter := l.Check("user")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)
	assert.Equal(t, 0, l.RecordFailure("user"), "failures while locked do not extend the lock")

	clock.Advance(time.Minute)
	allowed, _ = l.Check("user")
	assert.True(t, allowed)
	assert.Equal(t, 5, l.Remaining("user"))
}

func TestLimiter_SuccessResets(t *testing.T) {
	l, _ := newLimiter(t)

	l.RecordFailure("user")
	l.RecordFailure("user")
	l.RecordFailure("user")
	require.Equal(t, 2, l.Remaining("user"))

	l.RecordSuccess("user")

	assert.Equal(t, 5, l.Remaining("user"))
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_WindowExpiryResets(t *testing.T) {
	l, clock := newLimiter(t)

	for range 4 {
		l.RecordFailure("user")
	}
	require.Equal(t, 1, l.Remaining("user"))

	clock.Advance(15 * time.Minute)

	assert.Equal(t, 5, l.Remaining("user"))
	assert.Equal(t, 4, l.RecordFailure("user"))
}

func TestLimiter_ActivityKeepsWindowOpen(t *testing.T) {
	l, clock := newLimiter(t)

	for range 4 {
		l.RecordFailure("user")
		clock.Advance(10 * time.Minute)
	}
	assert.Equal(t, 0, l.RecordFailure("user"))

	allowed, _ := l.Check("user")
	assert.False(t, allowed)
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newLimiter(t)
	for range 5 {
		l.RecordFailure("a")
	}

	allowed, _ := l.Check("b")
	assert.True(t, allowed)
	assert.Equal(t, 5, l.Remaining("b"))
}

func TestLimiter_ConfigOverrides(t *testing.T) {
	l := New(config.Security{MaxAttempts: 2, Lockout: time.Minute}, logger.Nop())

	assert.Equal(t, 1, l.RecordFailure("x"))
	assert.Equal(t, 0, l.RecordFailure("x"))

	allowed, retryAfter := l.Check("x")
	assert.False(t, allowed)
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

// ── Sweep ─────────────────────────────────────────────────────────────────────

func TestLimiter_Sweep(t *testing.T) {
	l, clock := newLimiter(t)

	l.RecordFailure("stale")
	for range 5 {
		l.RecordFailure("locked")
	}
	clock.Advance(16 * time.Minute)
	l.RecordFailure("fresh")

	l.Sweep()

	assert.Equal(t, 2, l.Len())

	clock.Advance(30 * time.Minute)
	l.Sweep()
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_StartStop(t *testing.T) {
	l := New(config.Security{SweepInterval: 5 * time.Millisecond, Window: time.Millisecond}, logger.Nop())
	l.RecordFailure("x")

	l.Start(context.Background())
	defer l.Stop()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)

	l.Stop()
	l.Stop()
}

func TestLimiter_StopsWithContext(t *testing.T) {
	l, _ := newLimiter(t)
	ctx, cancel := context.WithCancel(context.Background())

	l.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
