package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
)

// Index names a secondary lookup accepted by [ObjectStore.GetAllByIndex].
type Index string

const (
	IndexUserID    Index = "userId"
	IndexPeriodID  Index = "periodId"
	IndexDate      Index = "date"
	IndexStatus    Index = "status"
	IndexIsActive  Index = "isActive"
	IndexFrequency Index = "frequency"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// tableSpec describes how values of T map onto one table.
type tableSpec[T any] struct {
	name    string
	columns []string
	indexes map[Index]string

	key      func(T) string
	values   func(T) []any
	scan     func(rowScanner) (T, error)
	validate func(T) error
}

// ObjectStore is a typed view of one local table keyed by id.
type ObjectStore[T any] struct {
	spec tableSpec[T]
	conn func(ctx context.Context) (*DB, error)
}

func newObjectStore[T any](spec tableSpec[T], conn func(ctx context.Context) (*DB, error)) *ObjectStore[T] {
	return &ObjectStore[T]{spec: spec, conn: conn}
}

// Name returns the table name.
func (s *ObjectStore[T]) Name() string {
	return s.spec.name
}

// Get returns the row with the given id or a *errs.NotFoundError.
func (s *ObjectStore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return zero, err
	}

	query, args, err := s.selectBuilder().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := s.spec.scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, errs.NewNotFoundError(s.spec.name, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "ObjectStore.Get").
			Str("table", s.spec.name).
			Str("id", id).
			Msg("failed to scan row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// GetAll returns every row of the table.
func (s *ObjectStore[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.Find(ctx, nil)
}

// GetAllByIndex returns the rows whose indexed column equals value.
// An unknown index is a *errs.ValidationError.
func (s *ObjectStore[T]) GetAllByIndex(ctx context.Context, index Index, value any) ([]T, error) {
	column, ok := s.spec.indexes[index]
	if !ok {
		return nil, errs.NewValidationError("index", fmt.Sprintf("unknown index %q on %s", index, s.spec.name))
	}

	return s.Find(ctx, sq.Eq{column: value})
}

// Find returns the rows matching cond (nil matches all) ordered by orderBy.
func (s *ObjectStore[T]) Find(ctx context.Context, cond sq.Sqlizer, orderBy ...string) ([]T, error) {
	builder := s.selectBuilder().OrderBy(orderBy...)
	if cond != nil {
		builder = builder.Where(cond)
	}
	return s.query(ctx, builder)
}

// FindPage is Find limited to one window of rows.
func (s *ObjectStore[T]) FindPage(ctx context.Context, cond sq.Sqlizer, limit, offset uint64, orderBy ...string) ([]T, error) {
	builder := s.selectBuilder().OrderBy(orderBy...).Limit(limit).Offset(offset)
	if cond != nil {
		builder = builder.Where(cond)
	}
	return s.query(ctx, builder)
}

// Count returns the number of rows matching cond (nil counts all).
func (s *ObjectStore[T]) Count(ctx context.Context, cond sq.Sqlizer) (int, error) {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	builder := sq.Select("COUNT(*)").From(s.spec.name)
	if cond != nil {
		builder = builder.Where(cond)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "ObjectStore.Count").
			Str("table", s.spec.name).
			Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Put inserts item or replaces the row with the same id. Items with an
// empty id or a missing required column are rejected before any SQL runs.
func (s *ObjectStore[T]) Put(ctx context.Context, item T) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return s.put(ctx, db, db.DB, item)
}

func (s *ObjectStore[T]) put(ctx context.Context, db *DB, q querier, item T) error {
	log := logger.FromContext(ctx)

	id := s.spec.key(item)
	if id == "" {
		return errs.NewValidationError("id", "is required")
	}
	if s.spec.validate != nil {
		if err := s.spec.validate(item); err != nil {
			return err
		}
	}

	query, args, err := sq.Replace(s.spec.name).
		Columns(s.spec.columns...).
		Values(s.spec.values(item)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "ObjectStore.Put").
			Str("table", s.spec.name).
			Str("id", id).
			Msg("failed to upsert row")
		return db.writeError(err)
	}

	return nil
}

// Delete removes the row with the given id. Deleting a missing row is not
// an error.
func (s *ObjectStore[T]) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	query, args, err := sq.Delete(s.spec.name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "ObjectStore.Delete").
			Str("table", s.spec.name).
			Str("id", id).
			Msg("failed to delete row")
		return db.writeError(err)
	}

	return nil
}

func (s *ObjectStore[T]) selectBuilder() sq.SelectBuilder {
	return sq.Select(s.spec.columns...).From(s.spec.name)
}

func (s *ObjectStore[T]) query(ctx context.Context, builder sq.SelectBuilder) ([]T, error) {
	log := logger.FromContext(ctx)

	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "ObjectStore.query").
			Str("table", s.spec.name).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]T, 0, 16)
	for rows.Next() {
		item, scanErr := s.spec.scan(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "ObjectStore.query").
				Str("table", s.spec.name).
				Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return results, nil
}
