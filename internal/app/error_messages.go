// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// domain services, the status API and the CLI.
//
// All Msg* constants are human-readable strings shown to the user or
// written into HTTP response bodies. Keeping them in one place keeps the
// wording consistent between the CLI and the API.
package app

const (
	// MsgInvalidDataProvided is shown when input fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgNotFound is shown when a record does not exist or belongs to
	// another user.
	MsgNotFound = "record not found"

	// MsgSessionLocked is shown when an operation needs an unlocked session.
	MsgSessionLocked = "session is locked, log in first"

	// MsgNoAccount is shown when logging in on a device without an account.
	MsgNoAccount = "no account on this device"

	// MsgAccountExists is shown when creating a second account on a device.
	MsgAccountExists = "an account already exists on this device"

	// MsgInvalidPassphrase is shown after a wrong passphrase.
	MsgInvalidPassphrase = "invalid passphrase"

	// MsgTooManyAttempts is shown while the passphrase limiter is locked.
	MsgTooManyAttempts = "too many failed attempts, try again later"

	// MsgCorruptedData is shown when stored data cannot be decrypted.
	MsgCorruptedData = "stored data could not be decrypted"

	// MsgStorageFull is shown when the local database cannot grow.
	MsgStorageFull = "local storage is full"

	// MsgSyncPending is appended when a change was saved locally but could
	// not be queued for upload.
	MsgSyncPending = "saved locally, but the change could not be queued for sync"

	// MsgInternalError is shown for every failure without a better message.
	MsgInternalError = "internal error"
)
