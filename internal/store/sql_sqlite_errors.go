package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells whether a failed database operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations and quota errors.
	NonRetryable ErrorClassification = iota

	// Retryable marks errors that may succeed on a later attempt
	// (busy or locked database).
	Retryable
)

// ErrorClassificator classifies driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsQuotaExceeded(err error) bool
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
//
// Retryable codes: SQLITE_BUSY, SQLITE_LOCKED.
// Everything else is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}

	return NonRetryable
}

// IsQuotaExceeded reports whether err means the database could not grow:
// SQLITE_FULL, or SQLITE_IOERR raised while writing.
func (c *SQLiteErrorClassifier) IsQuotaExceeded(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code {
	case sqlite3.ErrFull:
		return true
	case sqlite3.ErrIoErr:
		return sqliteErr.ExtendedCode == sqlite3.ErrIoErrWrite ||
			sqliteErr.ExtendedCode == sqlite3.ErrIoErrFsync
	}
	return false
}
