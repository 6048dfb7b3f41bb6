// Package migrations holds the local SQLite schema as embedded goose
// migrations. Migrations are additive only: a new version may add tables or
// indexes but never rewrites existing data in place.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Dialect is the goose dialect of the local store.
const Dialect = "sqlite3"

var errNilDB = errors.New("db is nil")

// Migrate applies every pending migration. It is safe to call repeatedly.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(Dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(Dialect); err != nil {
		return 0, fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("migration error reading version: %w", err)
	}
	return v, nil
}
