package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/daybook/internal/app"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
)

// Code is a stable machine-readable failure code.
type Code string

const (
	CodeCreateJournalEntry  Code = "CREATE_JOURNAL_ENTRY_ERROR"
	CodeGetJournalEntries   Code = "GET_JOURNAL_ENTRIES_ERROR"
	CodeUpdateJournalEntry  Code = "UPDATE_JOURNAL_ENTRY_ERROR"
	CodeDeleteJournalEntry  Code = "DELETE_JOURNAL_ENTRY_ERROR"
	CodeCreateGoal          Code = "CREATE_GOAL_ERROR"
	CodeGetGoals            Code = "GET_GOALS_ERROR"
	CodeUpdateGoal          Code = "UPDATE_GOAL_ERROR"
	CodeDeleteGoal          Code = "DELETE_GOAL_ERROR"
	CodeCreateHabit         Code = "CREATE_HABIT_ERROR"
	CodeGetHabits           Code = "GET_HABITS_ERROR"
	CodeUpdateHabit         Code = "UPDATE_HABIT_ERROR"
	CodeDeleteHabit         Code = "DELETE_HABIT_ERROR"
	CodeCreatePeriod        Code = "CREATE_PERIOD_ERROR"
	CodeGetPeriods          Code = "GET_PERIODS_ERROR"
	CodeUpdatePeriod        Code = "UPDATE_PERIOD_ERROR"
	CodeDeletePeriod        Code = "DELETE_PERIOD_ERROR"
	CodeCreateAccount       Code = "CREATE_ACCOUNT_ERROR"
	CodeLogin               Code = "LOGIN_ERROR"
	CodeGetAccount          Code = "GET_ACCOUNT_ERROR"
	CodeUpdateAccount       Code = "UPDATE_ACCOUNT_ERROR"
	CodeDeleteAccount       Code = "DELETE_ACCOUNT_ERROR"
	CodeSyncDrain           Code = "SYNC_DRAIN_ERROR"
	CodeSyncRetry           Code = "SYNC_RETRY_ERROR"
	CodeSyncClearFailed     Code = "SYNC_CLEAR_FAILED_ERROR"
	CodeVersionNotSpecified Code = "VERSION_NOT_SPECIFIED_ERROR"
)

// ErrVersionIsNotSpecified is returned by NewAppInfoService for an empty
// version.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")

// Error is the failure every service method returns. Err keeps the cause
// for errors.Is/As; Code and Message are safe to show.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the user-facing description of the failure.
func (e *Error) Message() string {
	return UserMessage(e.Err)
}

// UserMessage maps an error chain to the text shown to the user. Causes
// that carry no user-facing meaning collapse to a generic message.
func UserMessage(err error) string {
	var (
		validationErr *errs.ValidationError
		passphraseErr *errs.InvalidPassphraseError
		rateErr       *errs.RateLimitedError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return fmt.Sprintf("%s: %s %s", app.MsgInvalidDataProvided, validationErr.Field, validationErr.Reason)
	case errors.Is(err, errs.ErrValidation):
		return app.MsgInvalidDataProvided
	case errors.As(err, &passphraseErr):
		if passphraseErr.ShowRemaining() {
			return fmt.Sprintf("%s, %d attempts remaining", app.MsgInvalidPassphrase, passphraseErr.RemainingAttempts)
		}
		return app.MsgInvalidPassphrase
	case errors.As(err, &rateErr):
		return rateErr.Error()
	case errors.Is(err, errs.ErrNotFound):
		return app.MsgNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		return app.MsgAccountExists
	case errors.Is(err, errs.ErrAuth):
		return app.MsgSessionLocked
	case errors.Is(err, errs.ErrDecryption):
		return app.MsgCorruptedData
	case errors.Is(err, errs.ErrQuotaExceeded):
		return app.MsgStorageFull
	case errors.Is(err, repository.ErrEnqueueFailed):
		return app.MsgSyncPending
	}
	return app.MsgInternalError
}

// fail logs err and wraps it into an *Error.
func fail(log *logger.Logger, code Code, op string, err error) error {
	event := log.Error()
	if isExpected(err) {
		event = log.Debug()
	}
	event.Err(err).Str("func", op).Str("code", string(code)).Msg("service call failed")

	return &Error{Code: code, Op: op, Err: err}
}

// isExpected reports user errors that do not deserve an error-level entry.
func isExpected(err error) bool {
	return errors.Is(err, errs.ErrValidation) ||
		errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrAuth) ||
		errors.Is(err, errs.ErrInvalidPassphrase) ||
		errors.Is(err, errs.ErrRateLimited)
}
