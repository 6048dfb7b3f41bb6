package errs

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_UnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", NewNotFoundError("goal", "g1"), ErrNotFound},
		{"validation", NewValidationError("title", "is required"), ErrValidation},
		{"decryption", NewDecryptionError("bad iv", nil), ErrDecryption},
		{"invalid passphrase", &InvalidPassphraseError{RemainingAttempts: 3}, ErrInvalidPassphrase},
		{"rate limited", &RateLimitedError{RetryAfter: time.Minute}, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
		})
	}
}

func TestDecryptionError_MatchesCause(t *testing.T) {
	cause := errors.New("cipher: message authentication failed")
	err := NewDecryptionError("open", cause)

	assert.ErrorIs(t, err, ErrDecryption)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to decrypt")
}

func TestInvalidPassphraseError_RemainingShownOnlyWhenLow(t *testing.T) {
	assert.Equal(t, "invalid passphrase", (&InvalidPassphraseError{RemainingAttempts: 4}).Error())
	assert.False(t, (&InvalidPassphraseError{RemainingAttempts: 3}).ShowRemaining())

	low := &InvalidPassphraseError{RemainingAttempts: 2}
	assert.True(t, low.ShowRemaining())
	assert.Equal(t, "invalid passphrase: 2 attempts remaining", low.Error())
}

func TestRateLimitedError_MessageInMinutes(t *testing.T) {
	assert.Contains(t, (&RateLimitedError{RetryAfter: 30 * time.Minute}).Error(), "30 minutes")
	assert.Contains(t, (&RateLimitedError{RetryAfter: 10 * time.Second}).Error(), "1 minutes")
}

func TestErrorsAs_ExtractsDetails(t *testing.T) {
	err := fmt.Errorf("repo: %w", NewNotFoundError("habit", "h1"))

	var nf *NotFoundError
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, "habit", nf.Entity)
		assert.Equal(t, "h1", nf.ID)
	}
}
