// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth holds the session gate: the device user, the unlock state
// and the rate limited passphrase check every repository call depends on.
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/MKhiriev/daybook/internal/crypto"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/limiter"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

// State is the session state of the device.
type State int

const (
	// StateNoUser means no account exists on this device.
	StateNoUser State = iota
	// StateLocked means an account exists but the key is not derived.
	StateLocked
	// StateAuthenticated means the key is derived and verified.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateNoUser:
		return "no_user"
	case StateLocked:
		return "locked"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prober returns one encrypted record of a user to verify a key against.
type Prober interface {
	Probe(ctx context.Context, userID string) (models.EncryptedEntity, bool, error)
}

// Dependencies holds the collaborators of a Gate.
type Dependencies struct {
	Store   *store.LocalStore
	Cipher  crypto.EncryptionService
	Prober  Prober
	Limiter *limiter.Limiter
	Queue   repository.Enqueuer
	IDs     repository.IDGenerator
	Clock   func() time.Time
	Logger  *logger.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithDelay replaces the random 100-300ms pause applied to every
// passphrase check.
func WithDelay(delay func(ctx context.Context)) Option {
	return func(g *Gate) {
		g.delay = delay
	}
}

// Gate implements repository.Guard.
type Gate struct {
	store   *store.LocalStore
	cipher  crypto.EncryptionService
	prober  Prober
	limiter *limiter.Limiter
	queue   repository.Enqueuer
	ids     repository.IDGenerator
	clock   func() time.Time
	delay   func(ctx context.Context)
	logger  *logger.Logger

	// opMu serialises account operations; mu guards the fields below.
	opMu  sync.Mutex
	mu    sync.RWMutex
	state State
	user  *models.User
}

// NewGate returns a Gate in StateNoUser. Call Init to load the device user.
func NewGate(deps Dependencies, opts ...Option) *Gate {
	g := &Gate{
		store:   deps.Store,
		cipher:  deps.Cipher,
		prober:  deps.Prober,
		limiter: deps.Limiter,
		queue:   deps.Queue,
		ids:     deps.IDs,
		clock:   deps.Clock,
		logger:  deps.Logger,
		delay:   randomDelay,
	}
	if g.ids == nil {
		g.ids = utils.NewUUIDGenerator()
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.logger == nil {
		g.logger = logger.Nop()
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Init loads the device user and starts the limiter sweep. The gate ends
// in StateLocked when a user exists and in StateNoUser otherwise.
func (g *Gate) Init(ctx context.Context) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	users, err := g.store.Users.GetAll(ctx)
	if err != nil {
		g.logger.Err(err).Str("func", "Gate.Init").Msg("failed to load device user")
		return fmt.Errorf("failed to load device user: %w", err)
	}

	g.limiter.Start(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(users) == 0 {
		g.state = StateNoUser
		g.user = nil
		return nil
	}
	if len(users) > 1 {
		g.logger.Warn().Str("func", "Gate.Init").Int("users", len(users)).Msg("more than one user on device, using the first")
	}
	u := users[0]
	g.user = &u
	g.state = StateLocked
	return nil
}

// CreateAccount creates the device user with a fresh salt and its default
// active period, and unlocks the session. Any failure before the sync
// operations are queued leaves the device as it was.
func (g *Gate) CreateAccount(ctx context.Context, birthDate time.Time, passphrase string) (models.User, error) {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	log := logger.FromContext(ctx)

	existing, err := g.store.Users.GetAll(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check device user: %w", err)
	}
	if len(existing) > 0 {
		return models.User{}, fmt.Errorf("account on this device: %w", errs.ErrAlreadyExists)
	}

	now := g.clock().UTC().Truncate(time.Millisecond)
	if birthDate.IsZero() {
		return models.User{}, errs.NewValidationError("birthDate", "is required")
	}
	birth := dateOnly(birthDate)
	if birth.After(now) {
		return models.User{}, errs.NewValidationError("birthDate", "must not be in the future")
	}

	salt, err := g.cipher.Initialize(passphrase, "")
	if err != nil {
		return models.User{}, fmt.Errorf("failed to initialise encryption: %w", err)
	}

	user := models.User{
		ID:        g.ids.Generate(),
		BirthDate: birth,
		Salt:      salt,
		Theme:     models.ThemeSystem,
		CreatedAt: now,
		UpdatedAt: now,
	}
	period := models.Period{
		ID:        g.ids.Generate(),
		UserID:    user.ID,
		Name:      models.DefaultPeriodName,
		StartDate: dateOnly(now),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = g.persistAccount(ctx, user, period); err != nil {
		log.Err(err).Str("func", "Gate.CreateAccount").Msg("account creation rolled back")
		g.cipher.Clear()
		if clearErr := g.store.Clear(ctx); clearErr != nil {
			log.Err(clearErr).Str("func", "Gate.CreateAccount").Msg("failed to roll back account")
			err = errors.Join(err, clearErr)
		}
		return models.User{}, err
	}

	g.mu.Lock()
	g.user = &user
	g.state = StateAuthenticated
	g.mu.Unlock()

	log.Info().Str("func", "Gate.CreateAccount").Str("user_id", user.ID).Msg("account created")

	if err = g.queue.AddOperation(ctx, models.OperationCreate, models.EntityUser, user.ID, user); err != nil {
		return user, fmt.Errorf("%w: %w", repository.ErrEnqueueFailed, err)
	}
	if err = g.queue.AddOperation(ctx, models.OperationCreate, models.EntityPeriod, period.ID, period); err != nil {
		return user, fmt.Errorf("%w: %w", repository.ErrEnqueueFailed, err)
	}
	return user, nil
}

func (g *Gate) persistAccount(ctx context.Context, user models.User, period models.Period) error {
	if err := g.store.Users.Put(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if err := g.store.Periods.Put(ctx, period); err != nil {
		return fmt.Errorf("failed to create default period: %w", err)
	}
	return nil
}

// Authenticate derives the key from passphrase and the stored salt and
// verifies it against one encrypted record. A user without records is
// always verified.
//
// A locked identifier fails with *errs.RateLimitedError before any key
// derivation. A wrong passphrase fails with *errs.InvalidPassphraseError
// and leaves the session locked.
func (g *Gate) Authenticate(ctx context.Context, passphrase string) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	log := logger.FromContext(ctx)

	g.mu.RLock()
	user := g.user
	g.mu.RUnlock()
	if user == nil {
		return fmt.Errorf("no account on this device: %w", errs.ErrAuth)
	}

	if allowed, retryAfter := g.limiter.Check(user.ID); !allowed {
		log.Warn().Str("func", "Gate.Authenticate").Dur("retry_after", retryAfter).Msg("passphrase check rate limited")
		return &errs.RateLimitedError{RetryAfter: retryAfter}
	}

	ok, err := g.verify(ctx, user, passphrase)
	g.delay(ctx)
	if err != nil {
		g.cipher.Clear()
		return err
	}

	if !ok {
		g.cipher.Clear()
		g.lock()
		remaining := g.limiter.RecordFailure(user.ID)
		log.Info().Str("func", "Gate.Authenticate").Int("remaining", remaining).Msg("invalid passphrase")
		return &errs.InvalidPassphraseError{RemainingAttempts: remaining}
	}

	g.limiter.RecordSuccess(user.ID)

	g.mu.Lock()
	g.state = StateAuthenticated
	g.mu.Unlock()

	log.Info().Str("func", "Gate.Authenticate").Str("user_id", user.ID).Msg("session unlocked")
	return nil
}

// Login is Authenticate.
func (g *Gate) Login(ctx context.Context, passphrase string) error {
	return g.Authenticate(ctx, passphrase)
}

// verify reports whether passphrase unlocks the user's data. Errors are
// reserved for failures that say nothing about the passphrase.
func (g *Gate) verify(ctx context.Context, user *models.User, passphrase string) (bool, error) {
	if _, err := g.cipher.Initialize(passphrase, user.Salt); err != nil {
		return false, fmt.Errorf("failed to derive key: %w", err)
	}

	entity, found, err := g.prober.Probe(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load verification record: %w", err)
	}
	if !found {
		return true, nil
	}

	if _, err = g.cipher.Decrypt(entity.Ciphertext()); err != nil {
		if errors.Is(err, errs.ErrDecryption) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RequireAuth implements repository.Guard.
func (g *Gate) RequireAuth() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.state != StateAuthenticated || g.user == nil || !g.cipher.IsInitialized() {
		return errs.ErrAuth
	}
	return nil
}

// AuthenticatedUserID implements repository.Guard.
func (g *Gate) AuthenticatedUserID() (string, error) {
	if err := g.RequireAuth(); err != nil {
		return "", err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user.ID, nil
}

func (g *Gate) IsAuthenticated() bool {
	return g.RequireAuth() == nil
}

// CurrentUser returns the device user as loaded by Init, CreateAccount or
// RefreshUser.
func (g *Gate) CurrentUser() (models.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.user == nil {
		return models.User{}, false
	}
	return *g.user, true
}

// RefreshUser replaces the cached device user with u.
func (g *Gate) RefreshUser(u models.User) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.user != nil && g.user.ID == u.ID {
		g.user = &u
	}
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Logout drops the key and locks the session. The user stays on the device.
func (g *Gate) Logout() {
	g.cipher.Clear()
	g.lock()
}

// Forget drops the key and the cached user, for use after the account was
// deleted.
func (g *Gate) Forget() {
	g.cipher.Clear()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = nil
	g.state = StateNoUser
}

// Close stops the limiter sweep and drops the key.
func (g *Gate) Close() {
	g.limiter.Stop()
	g.cipher.Clear()
}

func (g *Gate) lock() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.user == nil {
		g.state = StateNoUser
		return
	}
	g.state = StateLocked
}

func randomDelay(ctx context.Context) {
	d := 100*time.Millisecond + rand.N(200*time.Millisecond)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
