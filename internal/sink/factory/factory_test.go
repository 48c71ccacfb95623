package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/evhist/evhist/internal/recorder"
	"github.com/evhist/evhist/internal/sink/opensearch"
	"github.com/evhist/evhist/internal/sink/sqlite"
)

func TestNewSinkFromDSNErrors(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unsupported scheme", "kafka://localhost:9092/topic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSinkFromDSN(tc.dsn); err == nil {
				t.Errorf("expected error for DSN %q", tc.dsn)
			}
		})
	}
}

func TestNewSinkFromDSNSQLite(t *testing.T) {
	s, err := NewSinkFromDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("sqlite DSN: %v", err)
	}
	if _, ok := s.(*sqlite.Sink); !ok {
		t.Fatalf("expected *sqlite.Sink, got %T", s)
	}
	rec := recorder.Record{KindName: "app", Rendered: "x", Seq: 1, At: time.Now().UTC()}
	if err := s.Send(context.Background(), rec); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestNewSinkFromDSNBarePathDefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSinkFromDSN(path)
	if err != nil {
		t.Fatalf("bare path DSN: %v", err)
	}
	if _, ok := s.(*sqlite.Sink); !ok {
		t.Fatalf("expected *sqlite.Sink, got %T", s)
	}
}

func TestNewSinkFromDSNOpenSearch(t *testing.T) {
	s, err := NewSinkFromDSN("opensearch://localhost:9200/audit")
	if err != nil {
		t.Fatalf("opensearch DSN: %v", err)
	}
	if _, ok := s.(*opensearch.Sink); !ok {
		t.Fatalf("expected *opensearch.Sink, got %T", s)
	}
	// index defaults when the path is empty
	if _, err := NewSinkFromDSN("elasticsearch://localhost:9200"); err != nil {
		t.Fatalf("elasticsearch DSN: %v", err)
	}
}
