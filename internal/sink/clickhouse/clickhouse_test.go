package clickhouse

import (
	"testing"
	"time"

	"github.com/evhist/evhist/internal/recorder"
)

func TestInsertArgsStoreTimestampInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, loc)
	rec := recorder.Record{Seq: 7, KindName: "app.save", Rendered: "Save", At: at}

	args := insertArgs(rec)
	if len(args) != 4 {
		t.Fatalf("got %d args, want 4", len(args))
	}
	if args[0] != uint64(7) || args[1] != "app.save" || args[2] != "Save" {
		t.Fatalf("unexpected args %v", args[:3])
	}
	got, ok := args[3].(time.Time)
	if !ok {
		t.Fatalf("recorded_at arg is %T, want time.Time", args[3])
	}
	if got.Location() != time.UTC {
		t.Errorf("recorded_at location %v, want UTC", got.Location())
	}
	if !got.Equal(at) {
		t.Errorf("recorded_at %v is a different instant than %v", got, at)
	}
}
