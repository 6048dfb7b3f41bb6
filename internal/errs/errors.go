// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package errs contains the error taxonomy shared by every layer of the
// data core. Sentinels are matched with [errors.Is]; the typed errors carry
// details for the UI and unwrap to their sentinel.
package errs

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input or a malformed decrypted payload.
	ErrValidation = errors.New("validation failed")

	// ErrDecryption indicates a wrong key, tampered ciphertext or IV, or an
	// uninitialised encryption context.
	ErrDecryption = errors.New("failed to decrypt")

	// ErrAuth indicates an operation attempted without an authenticated session.
	ErrAuth = errors.New("not authenticated")

	// ErrInvalidPassphrase indicates the passphrase did not unlock the data.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrRateLimited indicates the identifier is temporarily locked out.
	ErrRateLimited = errors.New("too many failed attempts")

	// ErrQuotaExceeded indicates the local storage is out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrAlreadyExists indicates a second account on the same device.
	ErrAlreadyExists = errors.New("already exists")
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError returns a *NotFoundError for entity with id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DecryptionError wraps the cause of a failed decryption. The cause is kept
// for logs only; Error never includes plaintext.
type DecryptionError struct {
	Reason string
	Err    error
}

// NewDecryptionError returns a *DecryptionError with reason and cause.
func NewDecryptionError(reason string, cause error) *DecryptionError {
	return &DecryptionError{Reason: reason, Err: cause}
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decrypt: %s: %v", e.Reason, e.Err)
	}
	return "failed to decrypt: " + e.Reason
}

// Unwrap returns both the sentinel and the cause so either can be matched.
func (e *DecryptionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecryption}
	}
	return []error{ErrDecryption, e.Err}
}

// ShowRemainingBelow is the remaining-attempts threshold at and below which
// the count is included in the error message.
const ShowRemainingBelow = 2

// InvalidPassphraseError reports a failed unlock attempt.
type InvalidPassphraseError struct {
	RemainingAttempts int
}

func (e *InvalidPassphraseError) Error() string {
	if e.RemainingAttempts <= ShowRemainingBelow {
		return fmt.Sprintf("invalid passphrase: %d attempts remaining", e.RemainingAttempts)
	}
	return "invalid passphrase"
}

func (e *InvalidPassphraseError) Unwrap() error { return ErrInvalidPassphrase }

// ShowRemaining reports whether the UI should display the attempt count.
func (e *InvalidPassphraseError) ShowRemaining() bool {
	return e.RemainingAttempts <= ShowRemainingBelow
}

// RateLimitedError reports a locked identifier.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	minutes := int(e.RetryAfter.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("too many failed attempts: locked for %d minutes", minutes)
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }
