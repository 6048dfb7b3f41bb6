package auth

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/crypto"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/limiter"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type recordingQueue struct {
	mu  sync.Mutex
	ops []string
	err error
}

func (q *recordingQueue) AddOperation(_ context.Context, opType models.OperationType, entity models.EntityKind, _ string, data any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	if _, err := json.Marshal(data); err != nil {
		return err
	}
	q.ops = append(q.ops, string(entity)+"/"+string(opType))
	return nil
}

func (q *recordingQueue) all() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ops...)
}

// device is one install: the store file survives "restarts", everything
// else is rebuilt by boot.
type device struct {
	t      *testing.T
	dsn    string
	queue  *recordingQueue
	delays atomic.Int32

	store *store.LocalStore
	gate  *Gate
	repos *repository.Repositories
}

func newDevice(t *testing.T) *device {
	t.Helper()
	d := &device{
		t:     t,
		dsn:   filepath.Join(t.TempDir(), "daybook.db"),
		queue: &recordingQueue{},
	}
	d.boot()
	return d
}

func (d *device) boot() {
	d.t.Helper()
	if d.gate != nil {
		d.gate.Close()
		_ = d.store.Close()
	}

	s := store.NewLocalStore(config.DB{DSN: d.dsn}, logger.Nop())
	require.NoError(d.t, s.Init(context.Background()))
	d.t.Cleanup(func() { _ = s.Close() })

	cipher := crypto.NewEncryptionService(crypto.WithIterations(1000))
	gate := NewGate(Dependencies{
		Store:   s,
		Cipher:  cipher,
		Prober:  repository.NewProber(s),
		Limiter: limiter.New(config.Security{}, logger.Nop()),
		Queue:   d.queue,
		Logger:  logger.Nop(),
	}, WithDelay(func(context.Context) { d.delays.Add(1) }))
	require.NoError(d.t, gate.Init(context.Background()))
	d.t.Cleanup(gate.Close)

	d.store = s
	d.gate = gate
	d.repos = repository.New(repository.Dependencies{
		Store: s,
		Codec: codec.New(cipher, logger.Nop()),
		Guard: gate,
		Queue: d.queue,
	})
}

var birthDate = time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

// ── Init / CreateAccount ──────────────────────────────────────────────────────

func TestGate_NewDeviceHasNoUser(t *testing.T) {
	d := newDevice(t)

	assert.Equal(t, StateNoUser, d.gate.State())
	assert.False(t, d.gate.IsAuthenticated())
	assert.ErrorIs(t, d.gate.RequireAuth(), errs.ErrAuth)

	_, ok := d.gate.CurrentUser()
	assert.False(t, ok)

	err := d.gate.Authenticate(context.Background(), "anything")
	assert.ErrorIs(t, err, errs.ErrAuth)
}

func TestGate_CreateAccount(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	user, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, d.gate.State())
	assert.NotEmpty(t, user.Salt)
	id, err := d.gate.AuthenticatedUserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	stored, err := d.store.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Salt, stored.Salt)

	period, err := d.repos.Periods.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPeriodName, period.Name)

	assert.Equal(t, []string{"user/create", "period/create"}, d.queue.all())
}

func TestGate_CreateAccountOncePerDevice(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)

	_, err = d.gate.CreateAccount(ctx, birthDate, "Other1Pass!")
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestGate_CreateAccountValidationLeavesNoTrace(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = d.gate.CreateAccount(ctx, time.Now().AddDate(1, 0, 0), "Secur3Pass!")
	assert.ErrorIs(t, err, errs.ErrValidation)

	users, err := d.store.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, StateNoUser, d.gate.State())
	assert.Empty(t, d.queue.all())
}

func TestGate_CreateAccountEnqueueFailureKeepsAccount(t *testing.T) {
	d := newDevice(t)
	d.queue.err = errors.New("queue file locked")

	_, err := d.gate.CreateAccount(context.Background(), birthDate, "Secur3Pass!")

	assert.ErrorIs(t, err, repository.ErrEnqueueFailed)
	assert.True(t, d.gate.IsAuthenticated())
}

// ── end to end ────────────────────────────────────────────────────────────────

func TestGate_EndToEnd(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)

	entry, err := d.repos.Journal.Create(ctx, models.JournalEntry{Date: time.Now(), Content: "Day one"})
	require.NoError(t, err)

	d.gate.Logout()
	assert.Equal(t, StateLocked, d.gate.State())
	_, err = d.repos.Journal.Get(ctx, entry.ID)
	require.ErrorIs(t, err, errs.ErrAuth)

	d.boot()
	require.Equal(t, StateLocked, d.gate.State())

	require.NoError(t, d.gate.Login(ctx, "Secur3Pass!"))
	assert.True(t, d.gate.IsAuthenticated())

	got, err := d.repos.Journal.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day one", got.Content)
}

func TestGate_WrongPassphrase(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)
	entry, err := d.repos.Journal.Create(ctx, models.JournalEntry{Date: time.Now(), Content: "Day one"})
	require.NoError(t, err)
	d.gate.Logout()

	err = d.gate.Login(ctx, "WrongPass!")

	var invalid *errs.InvalidPassphraseError
	require.ErrorAs(t, err, &invalid)
	assert.ErrorIs(t, err, errs.ErrInvalidPassphrase)
	assert.Equal(t, 4, invalid.RemainingAttempts)
	assert.False(t, d.gate.IsAuthenticated())
	assert.Equal(t, StateLocked, d.gate.State())

	_, err = d.repos.Journal.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, errs.ErrAuth)
}

func TestGate_DelayOnBothPaths(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)
	_, err = d.repos.Journal.Create(ctx, models.JournalEntry{Date: time.Now(), Content: "x"})
	require.NoError(t, err)
	d.gate.Logout()

	require.Error(t, d.gate.Login(ctx, "WrongPass!"))
	require.NoError(t, d.gate.Login(ctx, "Secur3Pass!"))

	assert.Equal(t, int32(2), d.delays.Load())
}

func TestGate_RateLimited(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)
	_, err = d.repos.Goals.Create(ctx, models.Goal{Title: "locked out"})
	require.NoError(t, err)
	d.gate.Logout()

	for i := 1; i <= 5; i++ {
		err = d.gate.Login(ctx, "WrongPass!")
		var invalid *errs.InvalidPassphraseError
		require.ErrorAs(t, err, &invalid, "attempt %d", i)
		assert.Equal(t, 5-i, invalid.RemainingAttempts)
		assert.Equal(t, 5-i <= 2, invalid.ShowRemaining())
	}
	delays := d.delays.Load()

	err = d.gate.Login(ctx, "Secur3Pass!")

	var limited *errs.RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Greater(t, limited.RetryAfter, 29*time.Minute)
	assert.False(t, d.gate.IsAuthenticated())
	assert.Equal(t, delays, d.delays.Load(), "no key derivation while locked")
}

func TestGate_SuccessResetsLimiter(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	user, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)
	_, err = d.repos.Habits.Create(ctx, models.Habit{Name: "locked out", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	d.gate.Logout()

	for range 3 {
		require.Error(t, d.gate.Login(ctx, "WrongPass!"))
	}
	require.NoError(t, d.gate.Login(ctx, "Secur3Pass!"))

	assert.Equal(t, 5, d.gate.limiter.Remaining(user.ID))
}

func TestGate_UserWithoutRecordsIsTriviallyVerified(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)
	d.gate.Logout()

	require.NoError(t, d.gate.Login(ctx, "any passphrase"))
	assert.True(t, d.gate.IsAuthenticated())
}

// ── Forget ────────────────────────────────────────────────────────────────────

func TestGate_ForgetAfterAccountDeletion(t *testing.T) {
	d := newDevice(t)
	ctx := context.Background()

	_, err := d.gate.CreateAccount(ctx, birthDate, "Secur3Pass!")
	require.NoError(t, err)

	require.NoError(t, d.repos.Users.DeleteAccount(ctx))
	d.gate.Forget()

	assert.Equal(t, StateNoUser, d.gate.State())
	assert.False(t, d.gate.IsAuthenticated())

	_, err = d.gate.CreateAccount(ctx, birthDate, "N3wPass!")
	require.NoError(t, err)
}
