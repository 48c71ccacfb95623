package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/evhist/evhist/internal/recorder"
)

// Sink writes recorded events to a SQLite database.
type Sink struct {
	db *sql.DB
}

// New creates a new SQLite history sink.
// DSN format:
//   - "sqlite:///path/to/file.db"
//   - "sqlite://:memory:"
//   - "/path/to/file.db" (without prefix)
//   - ":memory:" (in-memory database)
func New(dsn string) (*Sink, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty SQLite DSN")
	}

	// Handle sqlite:// prefix
	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	sink := &Sink{db: db}
	if err := sink.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sink, nil
}

func (s *Sink) ensureSchema(ctx context.Context) error {
	// Simple audit table, no primary key. Ordering is carried by seq.
	stmt := `CREATE TABLE IF NOT EXISTS event_history(
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		rendered TEXT NOT NULL,
		recorded_at TIMESTAMP NOT NULL DEFAULT (CURRENT_TIMESTAMP)
	);`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *Sink) Send(ctx context.Context, rec recorder.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_history(seq, kind, rendered, recorded_at)
		VALUES(?, ?, ?, ?);`,
		rec.Seq, rec.KindName, rec.Rendered, rec.At.UTC())
	return err
}

func (s *Sink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
