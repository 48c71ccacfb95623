// Package evhist keeps an in-memory history of typed application events.
// Recording is tied to listener presence: while at least one listener is
// registered (or recording is forced on), each observed event is captured
// in arrival order and delivered to every listener; otherwise events are
// dropped with no overhead. Queries filter the history by event kind,
// where a filter on a parent kind matches all of its descendants.
package evhist

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/evhist/evhist/internal/config"
	"github.com/evhist/evhist/internal/event"
	"github.com/evhist/evhist/internal/logger"
	"github.com/evhist/evhist/internal/metrics"
	"github.com/evhist/evhist/internal/recorder"
	iapi "github.com/evhist/evhist/internal/server"
	"github.com/evhist/evhist/internal/sink"
	"github.com/evhist/evhist/internal/sink/factory"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Kind = event.Kind

type KindSet = event.KindSet

type Event = event.Event

type RawEvent = event.Raw

type Record = recorder.Record

type Listener = recorder.Listener

type ListenerFunc = recorder.ListenerFunc

type Sink = sink.Sink

type Options = recorder.Options

type Config = cfg.FileConfig

type LogConfig = logger.Config

// Recorder is a thin facade over internal/recorder.Recorder.
// It provides a stable public API for embedding.

type Recorder struct{ inner *recorder.Recorder }

func New() *Recorder { return &Recorder{inner: recorder.New()} }

func NewWithOptions(o Options) *Recorder {
	return &Recorder{inner: recorder.NewWithOptions(o)}
}

func (r *Recorder) SetActive(active bool) { r.inner.SetActive(active) }
func (r *Recorder) IsActive() bool        { return r.inner.IsActive() }
func (r *Recorder) Clear()                { r.inner.Clear() }
func (r *Recorder) Size() int             { return r.inner.Size() }
func (r *Recorder) Observe(ev Event)      { r.inner.Observe(ev) }
func (r *Recorder) AddListener(l Listener) {
	r.inner.AddListener(l)
}
func (r *Recorder) RemoveListener(l Listener) {
	r.inner.RemoveListener(l)
}
func (r *Recorder) Events() []Record { return r.inner.Events() }
func (r *Recorder) EventsFiltered(includes, excludes KindSet) []Record {
	return r.inner.EventsFiltered(includes, excludes)
}

// ToText renders the history as one text blob in arrival order, skipping
// kinds covered by filteredOut and emphasizing kinds covered by highlighted.
func (r *Recorder) ToText(filteredOut, highlighted KindSet) string {
	return r.inner.RenderText(filteredOut, highlighted)
}

// AddSink registers a persistence sink as a history listener. Registering
// a sink activates recording, like any other listener; the returned
// Listener handle removes it again.
func (r *Recorder) AddSink(s Sink, log *slog.Logger) Listener {
	l := sink.NewListener(s, log)
	r.inner.AddListener(l)
	return l
}

// NewRegistry returns an empty event-kind registry.
func NewRegistry() *event.Registry { return event.NewRegistry() }

// NewSinkFromDSN builds a history sink from a DSN
// (sqlite://, postgres://, clickhouse://, opensearch:// or a bare file path).
func NewSinkFromDSN(dsn string) (Sink, error) { return factory.NewSinkFromDSN(dsn) }

// NewLogger builds a slog.Logger from a LogConfig (nil for colored stderr).
func NewLogger(c *LogConfig) *slog.Logger { return logger.New(c) }

// LoadConfig parses and validates a TOML config file.
func LoadConfig(path string) (*Config, error) { return cfg.Load(path) }

// NewHTTPServer starts an HTTP server exposing the admin/query API for the
// given recorder and kind registry.
func NewHTTPServer(addr, basePath string, r *Recorder, reg *event.Registry) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, r.inner, reg)
}

// NewHTTPHandler returns the admin/query API as a mountable http.Handler.
func NewHTTPHandler(basePath string, r *Recorder, reg *event.Registry) http.Handler {
	return iapi.NewRouter(r.inner, reg, basePath).Handler()
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the default registry.
// It returns any immediate listen error; otherwise it runs the server in the caller goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
