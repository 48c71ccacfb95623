package sink

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/evhist/evhist/internal/event"
	"github.com/evhist/evhist/internal/recorder"
)

type stubSink struct {
	mu   sync.Mutex
	recs []recorder.Record
	err  error
}

func (s *stubSink) Send(_ context.Context, rec recorder.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *stubSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func TestListenerForwardsRecords(t *testing.T) {
	reg := event.NewRegistry()
	app := reg.MustDefine("app", nil)

	s := &stubSink{}
	r := recorder.New()
	r.AddListener(NewListener(s, slog.Default()))

	r.Observe(event.Raw{EventKind: app, Rendered: "one"})
	r.Observe(event.Raw{EventKind: app, Rendered: "two"})

	if got := s.count(); got != 2 {
		t.Fatalf("sink received %d records, want 2", got)
	}
	if s.recs[0].Rendered != "one" || s.recs[1].Rendered != "two" {
		t.Fatalf("sink received out of order: %+v", s.recs)
	}
}

func TestListenerSwallowsSinkErrors(t *testing.T) {
	reg := event.NewRegistry()
	app := reg.MustDefine("app", nil)

	s := &stubSink{err: errors.New("sink down")}
	r := recorder.New()
	r.AddListener(NewListener(s, slog.Default()))

	// a failing sink must not break the recording path
	r.Observe(event.Raw{EventKind: app, Rendered: "x"})
	if got := len(r.Events()); got != 1 {
		t.Fatalf("history has %d records, want 1", got)
	}
}
