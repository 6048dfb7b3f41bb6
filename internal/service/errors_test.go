package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/internal/app"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation field", err: errs.NewValidationError("content", "is required"), want: "invalid data provided: content is required"},
		{name: "validation sentinel", err: fmt.Errorf("x: %w", errs.ErrValidation), want: app.MsgInvalidDataProvided},
		{name: "passphrase many left", err: &errs.InvalidPassphraseError{RemainingAttempts: 4}, want: app.MsgInvalidPassphrase},
		{name: "passphrase two left", err: &errs.InvalidPassphraseError{RemainingAttempts: 2}, want: "invalid passphrase, 2 attempts remaining"},
		{name: "rate limited", err: &errs.RateLimitedError{RetryAfter: 30 * time.Minute}, want: "too many failed attempts: locked for 30 minutes"},
		{name: "not found", err: errs.NewNotFoundError("entries", "e1"), want: app.MsgNotFound},
		{name: "exists", err: fmt.Errorf("account: %w", errs.ErrAlreadyExists), want: app.MsgAccountExists},
		{name: "locked", err: errs.ErrAuth, want: app.MsgSessionLocked},
		{name: "decryption", err: errs.NewDecryptionError("authentication failed", nil), want: app.MsgCorruptedData},
		{name: "quota", err: fmt.Errorf("write: %w", errs.ErrQuotaExceeded), want: app.MsgStorageFull},
		{name: "enqueue", err: fmt.Errorf("%w: disk", repository.ErrEnqueueFailed), want: app.MsgSyncPending},
		{name: "other", err: errors.New("sqlite: busy"), want: app.MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestError_WrapsCause(t *testing.T) {
	cause := errs.NewNotFoundError("goals", "g1")

	err := fail(logger.Nop(), CodeGetGoals, "*goalService.Get", cause)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeGetGoals, svcErr.Code)
	assert.Equal(t, "*goalService.Get", svcErr.Op)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, app.MsgNotFound, svcErr.Message())
	assert.Contains(t, err.Error(), "GET_GOALS_ERROR")
}
