package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	eventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "evhist",
			Subsystem: "recorder",
			Name:      "recorded_total",
			Help:      "Number of events captured into history, per kind.",
		}, []string{"kind"},
	)
	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "evhist",
			Subsystem: "recorder",
			Name:      "dropped_total",
			Help:      "Number of events dropped because recording was inactive.",
		},
	)
	historySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "evhist",
			Subsystem: "recorder",
			Name:      "history_size",
			Help:      "Current number of records held in history.",
		},
	)
	listeners = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "evhist",
			Subsystem: "recorder",
			Name:      "listeners",
			Help:      "Currently registered history listeners.",
		},
	)
	notifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "evhist",
			Subsystem: "recorder",
			Name:      "notify_duration_seconds",
			Help:      "Time spent delivering one record to all listeners.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{eventsRecorded, eventsDropped, historySize, listeners, notifyDuration}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
// The caller is responsible for starting an HTTP server and wiring the route.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by internal packages to record metrics.
// They no-op if Register hasn't been called.

func IncRecorded(kind string) {
	if regOK.Load() {
		eventsRecorded.WithLabelValues(kind).Inc()
	}
}

func IncDropped() {
	if regOK.Load() {
		eventsDropped.Inc()
	}
}

func SetHistorySize(n int) {
	if regOK.Load() {
		historySize.Set(float64(n))
	}
}

func SetListeners(n int) {
	if regOK.Load() {
		listeners.Set(float64(n))
	}
}

func ObserveNotifyDuration(seconds float64) {
	if regOK.Load() {
		notifyDuration.Observe(seconds)
	}
}
