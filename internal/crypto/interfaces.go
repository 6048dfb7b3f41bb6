// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto derives the data key from the user's passphrase and
// performs authenticated encryption of record payloads.
//
// Scheme:
//
//	salt = 32 random bytes (persisted on the user record, base64)
//	key  = PBKDF2-HMAC-SHA256(passphrase, salt, 100000 iterations, 32 bytes)
//	ct   = AES-256-GCM(key, iv = 12 random bytes per call)
//
// The key lives only in memory for the duration of an authenticated session.
package crypto

import "github.com/MKhiriev/daybook/models"

// EncryptionService holds the in-memory encryption context of the session.
// Implementations are safe for concurrent use.
type EncryptionService interface {
	// Initialize derives a key from passphrase and existingSalt and replaces
	// the current context with it. An empty existingSalt generates a fresh
	// 32-byte salt. Returns the salt as standard base64 so callers can persist
	// it. A salt that is not valid base64 fails with ErrSaltMigrationRequired.
	Initialize(passphrase, existingSalt string) (string, error)

	// Encrypt encrypts plaintext under a fresh random IV.
	Encrypt(plaintext string) (models.Ciphertext, error)

	// Decrypt reverses Encrypt. Every failure is an *errs.DecryptionError;
	// corrupted output is never returned.
	Decrypt(ciphertext models.Ciphertext) (string, error)

	// Clear discards the key and salt. Idempotent.
	Clear()

	// IsInitialized reports whether a key is loaded.
	IsInitialized() bool

	// Salt returns the base64 salt of the current context, or "".
	Salt() string
}
