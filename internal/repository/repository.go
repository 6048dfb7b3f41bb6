// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package repository implements the domain repositories on top of the local
// store. Every call is scoped to the authenticated user; every mutation is
// mirrored into the sync queue with the encrypted record as its payload.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

// ErrEnqueueFailed is returned when a local write succeeded but the sync
// operation describing it could not be queued.
var ErrEnqueueFailed = errors.New("failed to enqueue sync operation")

// Dependencies holds what every repository needs.
type Dependencies struct {
	Store  *store.LocalStore
	Codec  *codec.Codec
	Guard  Guard
	Queue  Enqueuer
	IDs    IDGenerator
	Clock  func() time.Time
	Logger *logger.Logger
}

// Repositories groups the domain repositories.
type Repositories struct {
	Users   UserRepository
	Journal JournalRepository
	Goals   GoalRepository
	Habits  HabitRepository
	Periods PeriodRepository
}

// New builds every repository over deps. A nil IDs or Clock falls back to
// UUIDv7 ids and time.Now.
func New(deps Dependencies) *Repositories {
	b := newBase(deps)
	return &Repositories{
		Users:   &userRepository{base: b},
		Journal: &journalRepository{base: b},
		Goals:   &goalRepository{base: b},
		Habits:  &habitRepository{base: b},
		Periods: &periodRepository{base: b},
	}
}

type base struct {
	store  *store.LocalStore
	codec  *codec.Codec
	guard  Guard
	queue  Enqueuer
	ids    IDGenerator
	clock  func() time.Time
	logger *logger.Logger
}

func newBase(deps Dependencies) *base {
	b := &base{
		store:  deps.Store,
		codec:  deps.Codec,
		guard:  deps.Guard,
		queue:  deps.Queue,
		ids:    deps.IDs,
		clock:  deps.Clock,
		logger: deps.Logger,
	}
	if b.ids == nil {
		b.ids = utils.NewUUIDGenerator()
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.logger == nil {
		b.logger = logger.Nop()
	}
	return b
}

// userID checks the session and returns the authenticated user id.
func (b *base) userID() (string, error) {
	if err := b.guard.RequireAuth(); err != nil {
		return "", err
	}
	return b.guard.AuthenticatedUserID()
}

func (b *base) now() time.Time {
	return b.clock().UTC().Truncate(time.Millisecond)
}

func (b *base) enqueue(ctx context.Context, op models.OperationType, kind models.EntityKind, id string, data any) error {
	if err := b.queue.AddOperation(ctx, op, kind, id, data); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "repository.enqueue").
			Str("entity", string(kind)).
			Str("entity_id", id).
			Str("type", string(op)).
			Msg("local write kept but sync operation was not queued")
		return fmt.Errorf("%w: %w", ErrEnqueueFailed, err)
	}
	return nil
}

// deletedRecord is the sync payload of a delete operation.
type deletedRecord struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

// getOwned loads id from s and hides rows owned by another user behind a
// *errs.NotFoundError.
func getOwned[T any](ctx context.Context, s *store.ObjectStore[T], id, userID string, owner func(T) string) (T, error) {
	var zero T

	item, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if owner(item) != userID {
		return zero, errs.NewNotFoundError(s.Name(), id)
	}
	return item, nil
}

func normalizePeriod(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
