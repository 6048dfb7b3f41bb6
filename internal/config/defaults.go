package config

import "time"

const (
	defaultDSN            = "daybook.db"
	defaultQueuePath      = "daybook-queue.db"
	defaultServerAddress  = "127.0.0.1:8787"
	defaultLogLevel       = "info"
	defaultMaxAttempts    = 5
	defaultQueueOpen      = time.Second
	defaultServerTimeout  = 10 * time.Second
	defaultAdapterTimeout = 15 * time.Second
	defaultProbeInterval  = 30 * time.Second
	defaultSyncInterval   = 5 * time.Minute
	defaultWindow         = 15 * time.Minute
	defaultLockout        = 30 * time.Minute
	defaultSweepInterval  = time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB:    DB{DSN: defaultDSN},
			Queue: Queue{Path: defaultQueuePath, OpenTimeout: defaultQueueOpen},
		},
		Server: Server{
			HTTPAddress:    defaultServerAddress,
			RequestTimeout: defaultServerTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: defaultAdapterTimeout,
		},
		Workers: Workers{
			ProbeInterval: defaultProbeInterval,
			SyncInterval:  defaultSyncInterval,
		},
		Security: Security{
			MaxAttempts:   defaultMaxAttempts,
			Window:        defaultWindow,
			Lockout:       defaultLockout,
			SweepInterval: defaultSweepInterval,
		},
		Log: Log{
			Level: defaultLogLevel,
		},
	}
}
