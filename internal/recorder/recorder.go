// Package recorder implements an in-memory history of typed application
// events. While at least one listener is registered (or recording is forced
// on) incoming events are captured in arrival order and delivered to every
// listener; while dormant, events are dropped with no further work.
package recorder

import (
	"log/slog"
	"sync"
	"time"

	"github.com/evhist/evhist/internal/event"
	"github.com/evhist/evhist/internal/metrics"
)

// Listener receives each newly recorded event while registered. Delivery
// is synchronous and in registration order. A listener must not call back
// into AddListener/RemoveListener from EventRecorded; the registry lock is
// held for the whole delivery and the call would deadlock.
type Listener interface {
	EventRecorded(Record)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(Record)

func (f ListenerFunc) EventRecorded(rec Record) { f(rec) }

// Options configures a Recorder.
type Options struct {
	// MaxRecords caps the history length; the oldest record is evicted on
	// append once the cap is reached. 0 keeps the log unbounded, matching
	// the historical behavior.
	MaxRecords int
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Recorder owns the history log, the listener set and the active flag.
// All methods are safe for concurrent use.
type Recorder struct {
	log historyLog

	// mu guards listeners and active together so "is someone listening"
	// and "deliver to listeners" never race with registration changes.
	mu        sync.Mutex
	listeners []Listener
	active    bool

	logger *slog.Logger
}

func New() *Recorder { return NewWithOptions(Options{}) }

func NewWithOptions(o Options) *Recorder {
	lg := o.Logger
	if lg == nil {
		lg = slog.Default()
	}
	r := &Recorder{logger: lg}
	r.log.max = o.MaxRecords
	return r
}

// SetActive forces recording on or off. Last writer wins: a later listener
// add/remove transition overwrites this just as this overwrites it.
func (r *Recorder) SetActive(active bool) {
	r.mu.Lock()
	r.active = active
	r.mu.Unlock()
}

// IsActive reports whether incoming events are currently being recorded.
func (r *Recorder) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// AddListener registers l and starts recording. A listener already present
// (by interface identity) is not added twice, but recording is activated
// either way.
func (r *Recorder) AddListener(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, cur := range r.listeners {
		if cur == l {
			found = true
			break
		}
	}
	if !found {
		r.listeners = append(r.listeners, l)
	}
	// someone is listening; start recording
	r.active = true
	metrics.SetListeners(len(r.listeners))
}

// RemoveListener unregisters l. Once it returns, l receives no further
// notifications. Removing the last listener stops recording; removing a
// listener that is not registered is a no-op.
func (r *Recorder) RemoveListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.listeners {
		if cur == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			break
		}
	}
	if len(r.listeners) == 0 {
		// no one is listening; stop recording
		r.active = false
	}
	metrics.SetListeners(len(r.listeners))
}

// Observe is the recording path, called by the upstream event dispatch for
// every delivered event. Inactive recorders drop the event immediately.
// Otherwise the event is appended to history and then delivered to each
// listener, in registration order, before Observe returns.
func (r *Recorder) Observe(ev event.Event) {
	if ev == nil || ev.Kind() == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		metrics.IncDropped()
		return
	}
	rec := r.log.append(ev.Kind(), ev.Render())
	metrics.IncRecorded(rec.KindName)
	metrics.SetHistorySize(r.log.size())
	start := time.Now()
	for _, l := range r.listeners {
		l.EventRecorded(rec)
	}
	metrics.ObserveNotifyDuration(time.Since(start).Seconds())
}

// Clear empties the history. Concurrent queries see either the full
// pre-clear state or the empty post-clear state. Idempotent.
func (r *Recorder) Clear() {
	r.log.clear()
	metrics.SetHistorySize(0)
	r.logger.Debug("event history cleared")
}

// Size returns the current number of records in history.
func (r *Recorder) Size() int { return r.log.size() }
