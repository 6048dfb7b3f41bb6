// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// StructuredConfig is the top-level configuration container.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds cryptographic and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite database and the sync queue file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local sync status API settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote sync endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Security holds the passphrase rate limiter settings.
	Security Security `envPrefix:"SECURITY_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flag: -c / --config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// HashKey is the HMAC key for the HashSHA256 header on outbound sync
	// requests. Empty disables the header.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is reported by the status API.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// KDFIterations overrides the PBKDF2 iteration count. Zero keeps 100000.
	// Env: APP_KDF_ITERATIONS
	KDFIterations int `env:"KDF_ITERATIONS"`

	// AllowLegacySalt accepts stored salts that are not valid base64.
	// Env: APP_ALLOW_LEGACY_SALT
	AllowLegacySalt bool `env:"ALLOW_LEGACY_SALT"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB is the SQLite database holding users and encrypted records.
	DB DB `envPrefix:"DB_"`

	// Queue is the bbolt file holding the persisted sync queue.
	Queue Queue `envPrefix:"QUEUE_"`
}

// DB holds the SQLite settings.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Queue holds the sync queue file settings.
type Queue struct {
	// Path is the bbolt file path.
	// Env: STORAGE_QUEUE_PATH
	Path string `env:"PATH"`

	// OpenTimeout bounds the wait for the file lock held by another process.
	// Env: STORAGE_QUEUE_OPEN_TIMEOUT
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT"`
}

// Server holds the local status API settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the per-request handler timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the remote sync endpoint settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote sync endpoint. Empty keeps
	// the queue offline.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token presented to the remote endpoint.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds background job intervals.
type Workers struct {
	// ProbeInterval is how often connectivity to the remote is checked.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// SyncInterval is how often a drain is attempted while online.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Security holds the passphrase rate limiter settings.
type Security struct {
	// MaxAttempts is the number of failures that lock an identifier.
	// Env: SECURITY_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// Window is the inactivity period after which failures are forgotten.
	// Env: SECURITY_WINDOW
	Window time.Duration `env:"WINDOW"`

	// Lockout is how long an identifier stays locked.
	// Env: SECURITY_LOCKOUT
	Lockout time.Duration `env:"LOCKOUT"`

	// SweepInterval is how often stale limiter entries are evicted.
	// Env: SECURITY_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is where the CLI writes logs. Empty means next to the binary.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, defaults and validates the
// configuration. flags is the flag set produced by [BindFlags] after the
// command line has been parsed; nil skips the flag source.
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withJSON().
		withDefaults().
		build()
}
