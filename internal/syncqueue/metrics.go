package syncqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pendingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "daybook_sync_queue_pending",
		Help: "Operations waiting to be pushed",
	})

	failedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "daybook_sync_queue_failed",
		Help: "Operations that reached the retry ceiling",
	})

	drainsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_sync_drains_total",
		Help: "Drain attempts by outcome",
	}, []string{"outcome"})

	pushedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_sync_pushed_total",
		Help: "Operations pushed to the remote store",
	}, []string{"entity"})

	pushFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_sync_push_failures_total",
		Help: "Failed push attempts",
	}, []string{"entity"})
)

const (
	outcomeDrained = "drained"
	outcomeBusy    = "busy"
	outcomeOffline = "offline"
	outcomeError   = "error"
)
