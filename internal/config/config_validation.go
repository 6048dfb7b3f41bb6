// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/daybook/internal/logger"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Queue.Path == "" || cfg.Storage.Queue.Path == cfg.Storage.DB.DSN {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ProbeInterval <= 0 || cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Security.MaxAttempts < 1 || cfg.Security.Window <= 0 ||
		cfg.Security.Lockout <= 0 || cfg.Security.SweepInterval <= 0 {
		return ErrInvalidSecurityConfigs
	}

	if cfg.App.KDFIterations < 0 {
		return ErrInvalidAppConfigs
	}

	if err := logger.ValidLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}
