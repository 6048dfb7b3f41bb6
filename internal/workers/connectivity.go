// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MKhiriev/daybook/internal/logger"
)

// DefaultProbeInterval is used when the configured interval is not positive.
const DefaultProbeInterval = 30 * time.Second

var (
	remoteReachable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "daybook_remote_reachable",
		Help: "1 when the last connectivity probe succeeded",
	})

	probeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "daybook_connectivity_probe_seconds",
		Help:    "Duration of connectivity probes",
		Buckets: prometheus.DefBuckets,
	})
)

// ConnectivityMonitor pings the remote endpoint and reports every change of
// reachability to the sink. The first probe runs as soon as it starts and
// is always reported.
type ConnectivityMonitor struct {
	loop

	pinger  Pinger
	sink    NetworkSink
	timeout time.Duration
	logger  *logger.Logger

	known  bool
	online bool
}

// NewConnectivityMonitor returns an idle monitor. timeout bounds a single
// probe; zero means the probe is bounded by the interval.
func NewConnectivityMonitor(pinger Pinger, sink NetworkSink, interval, timeout time.Duration, log *logger.Logger) *ConnectivityMonitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}

	m := &ConnectivityMonitor{
		pinger:  pinger,
		sink:    sink,
		timeout: timeout,
		logger:  log.WithComponent("connectivity"),
	}
	m.loop = loop{interval: interval, immediate: true, tick: m.probe}
	return m
}

func (m *ConnectivityMonitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	started := time.Now()
	err := m.pinger.Ping(probeCtx)
	probeDuration.Observe(time.Since(started).Seconds())

	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if online {
		remoteReachable.Set(1)
	} else {
		remoteReachable.Set(0)
	}

	if m.known && m.online == online {
		return
	}
	m.known, m.online = true, online

	if err != nil {
		m.logger.Warn().Err(err).Str("func", "*ConnectivityMonitor.probe").Msg("remote endpoint is unreachable")
	} else {
		m.logger.Info().Str("func", "*ConnectivityMonitor.probe").Msg("remote endpoint is reachable")
	}
	m.sink.SetOnline(online)
}
