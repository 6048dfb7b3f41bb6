// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_HASH_KEY":          "hmac_secret",
		"APP_VERSION":           "1.2.3",
		"APP_KDF_ITERATIONS":    "1000",
		"APP_ALLOW_LEGACY_SALT": "true",

		"STORAGE_DB_DSN":             "/tmp/daybook.db",
		"STORAGE_QUEUE_PATH":         "/tmp/queue.db",
		"STORAGE_QUEUE_OPEN_TIMEOUT": "2s",

		"SERVER_ADDRESS":         "127.0.0.1:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"ADAPTER_ADDRESS":         "https://sync.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "10s",
		"ADAPTER_TOKEN":           "tok",

		"WORKERS_PROBE_INTERVAL": "1m",
		"WORKERS_SYNC_INTERVAL":  "10m",

		"SECURITY_MAX_ATTEMPTS":   "7",
		"SECURITY_WINDOW":         "20m",
		"SECURITY_LOCKOUT":        "1h",
		"SECURITY_SWEEP_INTERVAL": "2h",

		"LOG_LEVEL": "warn",
		"LOG_FILE":  "/tmp/daybook.log",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "hmac_secret", cfg.App.HashKey)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, 1000, cfg.App.KDFIterations)
	assert.True(t, cfg.App.AllowLegacySalt)

	assert.Equal(t, "/tmp/daybook.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/queue.db", cfg.Storage.Queue.Path)
	assert.Equal(t, 2*time.Second, cfg.Storage.Queue.OpenTimeout)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "https://sync.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "tok", cfg.Adapter.Token)

	assert.Equal(t, time.Minute, cfg.Workers.ProbeInterval)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)

	assert.Equal(t, 7, cfg.Security.MaxAttempts)
	assert.Equal(t, 20*time.Minute, cfg.Security.Window)
	assert.Equal(t, time.Hour, cfg.Security.Lockout)
	assert.Equal(t, 2*time.Hour, cfg.Security.SweepInterval)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/daybook.log", cfg.Log.File)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DSN": "journal.db",
		"LOG_LEVEL":      "debug",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "journal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Storage.Queue.Path)
	assert.Zero(t, cfg.Security.MaxAttempts)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SECURITY_WINDOW": "not-a-duration"})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{"SECURITY_MAX_ATTEMPTS": "five"})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "seconds", value: "45s", expected: 45 * time.Second},
		{name: "minutes", value: "15m", expected: 15 * time.Minute},
		{name: "hours", value: "1h", expected: time.Hour},
		{name: "combined", value: "1h30m", expected: 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{"SECURITY_LOCKOUT": tt.value})

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.expected, cfg.Security.Lockout)
		})
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_HASH_KEY",
		"APP_VERSION",
		"APP_KDF_ITERATIONS",
		"APP_ALLOW_LEGACY_SALT",

		"STORAGE_DB_DSN",
		"STORAGE_QUEUE_PATH",
		"STORAGE_QUEUE_OPEN_TIMEOUT",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",

		"ADAPTER_ADDRESS",
		"ADAPTER_REQUEST_TIMEOUT",
		"ADAPTER_TOKEN",

		"WORKERS_PROBE_INTERVAL",
		"WORKERS_SYNC_INTERVAL",

		"SECURITY_MAX_ATTEMPTS",
		"SECURITY_WINDOW",
		"SECURITY_LOCKOUT",
		"SECURITY_SWEEP_INTERVAL",

		"LOG_LEVEL",
		"LOG_FILE",
	}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v)
			require.NoError(t, os.Unsetenv(k))
		}
	}
}
