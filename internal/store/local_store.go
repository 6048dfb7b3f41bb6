// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

// LocalStore is the on-device SQLite store. The connection is opened and
// migrated lazily by the first accessor; a failed attempt is retried by the
// next one.
type LocalStore struct {
	cfg    config.DB
	logger *logger.Logger

	mu     sync.Mutex
	db     *DB
	closed bool

	Users   *ObjectStore[models.User]
	Periods *ObjectStore[models.Period]
	Entries *ObjectStore[models.JournalRecord]
	Goals   *ObjectStore[models.GoalRecord]
	Habits  *ObjectStore[models.HabitRecord]
}

// NewLocalStore returns a store for the database file named by cfg.DSN.
// Nothing is opened until [LocalStore.Init] or the first accessor call.
func NewLocalStore(cfg config.DB, log *logger.Logger) *LocalStore {
	s := &LocalStore{
		cfg:    cfg,
		logger: log,
	}
	s.Users = newObjectStore(userTable(), s.conn)
	s.Periods = newObjectStore(periodTable(), s.conn)
	s.Entries = newObjectStore(journalTable(), s.conn)
	s.Goals = newObjectStore(goalTable(), s.conn)
	s.Habits = newObjectStore(habitTable(), s.conn)
	return s
}

// newLocalStoreWithDB returns a store over an already opened connection.
// Migrations are not run.
func newLocalStoreWithDB(db *DB) *LocalStore {
	s := NewLocalStore(config.DB{}, db.logger)
	s.db = db
	return s
}

// Init opens and migrates the database. Calling it again after success is a
// no-op.
func (s *LocalStore) Init(ctx context.Context) error {
	_, err := s.conn(ctx)
	return err
}

func (s *LocalStore) conn(ctx context.Context) (*DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	db, err := NewConnectSQLite(ctx, s.cfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("local store connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		s.logger.Err(err).Str("func", "LocalStore.Init").Msg("migration failed")
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	s.db = db
	s.logger.Info().Str("func", "LocalStore.Init").Str("dsn", s.cfg.DSN).Msg("local store is ready")
	return s.db, nil
}

// Close closes the connection. Accessors fail with ErrStoreClosed afterwards.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

// Clear deletes every row of every table in one transaction.
func (s *LocalStore) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	tables := []string{s.Habits.Name(), s.Goals.Name(), s.Entries.Name(), s.Periods.Name(), s.Users.Name()}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range tables {
			query, args, err := sq.Delete(table).ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return db.writeError(err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "LocalStore.Clear").Msg("failed to clear local store")
		return fmt.Errorf("failed to clear local store: %w", err)
	}

	return nil
}

// ActivatePeriod makes periodID the only active period of userID and
// returns the ids of the periods it deactivated. A period that does not
// exist or belongs to another user is a *errs.NotFoundError and leaves the
// current active period untouched.
func (s *LocalStore) ActivatePeriod(ctx context.Context, userID, periodID string) ([]string, error) {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var deactivated []string
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		deactivated, err = s.activatePeriod(ctx, db, tx, userID, periodID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.ActivatePeriod").
			Str("user_id", userID).
			Str("period_id", periodID).
			Msg("failed to activate period")
		return nil, err
	}

	return deactivated, nil
}

// CreateActivePeriod inserts period and makes it the only active period of
// its user in one transaction. It returns the ids of the periods it
// deactivated.
func (s *LocalStore) CreateActivePeriod(ctx context.Context, period models.Period) ([]string, error) {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var deactivated []string
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err = s.Periods.put(ctx, db, tx, period); err != nil {
			return err
		}
		deactivated, err = s.activatePeriod(ctx, db, tx, period.UserID, period.ID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.CreateActivePeriod").
			Str("user_id", period.UserID).
			Str("period_id", period.ID).
			Msg("failed to create active period")
		return nil, err
	}

	return deactivated, nil
}

func (s *LocalStore) activatePeriod(ctx context.Context, db *DB, tx *sql.Tx, userID, periodID string) ([]string, error) {
	table := s.Periods.Name()
	now := time.Now().UTC()
	others := sq.And{
		sq.Eq{"user_id": userID, "is_active": true},
		sq.NotEq{"id": periodID},
	}

	query, args, err := sq.Select("id").From(table).Where(others).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var deactivated []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		deactivated = append(deactivated, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	rows.Close()

	query, args, err = sq.Update(table).
		Set("is_active", false).
		Set("updated_at", now).
		Where(others).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return nil, db.writeError(err)
	}

	query, args, err = sq.Update(table).
		Set("is_active", true).
		Set("updated_at", now).
		Where(sq.Eq{"id": periodID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, db.writeError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errs.NewNotFoundError(table, periodID)
	}

	return deactivated, nil
}
