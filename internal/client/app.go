package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/daybook/internal/adapter"
	"github.com/MKhiriev/daybook/internal/auth"
	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/crypto"
	"github.com/MKhiriev/daybook/internal/limiter"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/internal/service"
	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/internal/syncqueue"
	"github.com/MKhiriev/daybook/internal/workers"
	"github.com/MKhiriev/daybook/models"
)

// App owns every long-lived component. Build it with [New] and release it
// with [App.Close].
type App struct {
	Services *service.Services

	cfg     *config.StructuredConfig
	store   *store.LocalStore
	kv      *store.BoltKV
	queue   *syncqueue.Queue
	gate    *auth.Gate
	remote  adapter.RemoteAdapter
	workers *workers.Workers
	logger  *logger.Logger

	// remoteConfigured is false when no sync endpoint is set; the queue
	// then stays offline and no workers run.
	remoteConfigured bool
}

// Option configures New.
type Option func(*options)

type options struct {
	probe bool
}

// WithInitialProbe pings the sync endpoint once while building the App and
// starts the queue in the observed network state, so a drain can run right
// away without waiting for the connectivity monitor.
func WithInitialProbe() Option {
	return func(o *options) {
		o.probe = true
	}
}

// New opens the local store and the queue file, loads the device user and
// builds the services. On failure everything opened so far is closed.
func New(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger, opts ...Option) (_ *App, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.App.Version == "" {
		cfg.App.Version = build.Version
	}

	app := &App{cfg: cfg, logger: log}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	app.store = store.NewLocalStore(cfg.Storage.DB, log.WithComponent("store"))
	if err = app.store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init local store: %w", err)
	}

	app.kv, err = store.NewBoltKV(cfg.Storage.Queue)
	if err != nil {
		return nil, fmt.Errorf("open sync queue file: %w", err)
	}

	app.remote, err = adapter.NewHTTPRemoteAdapter(cfg.Adapter, cfg.App, log.WithComponent("adapter"))
	switch {
	case errors.Is(err, adapter.ErrNoRemoteEndpoint):
		log.Info().Str("func", "client.New").Msg("no remote sync endpoint configured, staying offline")
		app.remote = adapter.NewOfflineRemoteAdapter()
	case err != nil:
		return nil, fmt.Errorf("create remote adapter: %w", err)
	default:
		app.remoteConfigured = true
	}

	var queueOpts []syncqueue.Option
	if app.remoteConfigured && o.probe {
		queueOpts = append(queueOpts, syncqueue.WithOnline(app.probe(ctx)))
	}

	app.queue = syncqueue.New(app.kv, app.remote, log.WithComponent("sync_queue"), queueOpts...)
	if err = app.queue.Init(ctx); err != nil {
		return nil, fmt.Errorf("init sync queue: %w", err)
	}

	cipherOpts := []crypto.Option{crypto.WithIterations(cfg.App.KDFIterations)}
	if cfg.App.AllowLegacySalt {
		cipherOpts = append(cipherOpts, crypto.WithLegacySaltFallback())
	}
	cipher := crypto.NewEncryptionService(cipherOpts...)

	app.gate = auth.NewGate(auth.Dependencies{
		Store:   app.store,
		Cipher:  cipher,
		Prober:  repository.NewProber(app.store),
		Limiter: limiter.New(cfg.Security, log.WithComponent("limiter")),
		Queue:   app.queue,
		Logger:  log.WithComponent("auth"),
	})
	if err = app.gate.Init(ctx); err != nil {
		return nil, fmt.Errorf("init session gate: %w", err)
	}

	repos := repository.New(repository.Dependencies{
		Store:  app.store,
		Codec:  codec.New(cipher, log.WithComponent("codec")),
		Guard:  app.gate,
		Queue:  app.queue,
		Logger: log.WithComponent("repository"),
	})

	app.Services, err = service.NewServices(repos, app.gate, app.queue, cfg.App, build, log.WithComponent("service"))
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	if app.remoteConfigured {
		app.workers = workers.NewWorkers(
			workers.NewConnectivityMonitor(app.remote, app.queue, cfg.Workers.ProbeInterval, cfg.Adapter.RequestTimeout, log),
			workers.NewSyncJob(app.queue, cfg.Workers.SyncInterval, log),
		)
	}

	log.Info().Str("func", "client.New").Bool("remote", app.remoteConfigured).Msg("daybook core is ready")
	return app, nil
}

func (a *App) probe(ctx context.Context) bool {
	if a.cfg.Adapter.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Adapter.RequestTimeout)
		defer cancel()
	}

	if err := a.remote.Ping(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "*App.probe").Msg("remote endpoint is unreachable")
		return false
	}
	return true
}

// RemoteConfigured reports whether a sync endpoint is set.
func (a *App) RemoteConfigured() bool {
	return a.remoteConfigured
}

// StartWorkers starts the connectivity monitor and the periodic drain. It
// does nothing without a sync endpoint.
func (a *App) StartWorkers(ctx context.Context) {
	if a.workers != nil {
		a.workers.Start(ctx)
	}
}

// Close stops the workers, drops the session key, waits for in-flight
// drains and closes both files. It is safe on a partially built App.
func (a *App) Close() error {
	if a.workers != nil {
		a.workers.Stop()
	}
	if a.gate != nil {
		a.gate.Close()
	}
	if a.queue != nil {
		a.queue.Close()
	}

	var errList []error
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close sync queue file: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close local store: %w", err))
		}
	}
	return errors.Join(errList...)
}
