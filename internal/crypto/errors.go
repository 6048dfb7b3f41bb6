// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/daybook/internal/errs"
)

var (
	// ErrSaltMigrationRequired is returned by Initialize when the stored salt
	// is not standard base64. Such a record was written by an older client and
	// has to be migrated before it can be unlocked.
	ErrSaltMigrationRequired = fmt.Errorf("salt is not valid base64, migration required: %w", errs.ErrValidation)

	// ErrNotInitialized is returned (wrapped in *errs.DecryptionError for
	// Decrypt) when no key is loaded.
	ErrNotInitialized = fmt.Errorf("encryption context is not initialized: %w", errs.ErrAuth)
)
