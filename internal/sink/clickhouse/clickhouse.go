package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/evhist/evhist/internal/recorder"
)

// Sink sends recorded events to ClickHouse using the official Go client.
type Sink struct {
	conn  driver.Conn
	table string
}

// New connects to addr (host:port, native protocol) and ensures table exists.
func New(addr, table string) (*Sink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: "default",
			Username: "default",
			Password: "",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	s := &Sink{conn: conn, table: table}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sink) ensureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq UInt64,
		kind String,
		rendered String,
		recorded_at DateTime64(3, 'UTC')
	) ENGINE = MergeTree() ORDER BY seq`, s.table)
	if err := s.conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create ClickHouse table: %w", err)
	}
	return nil
}

func (s *Sink) Send(ctx context.Context, rec recorder.Record) error {
	query := fmt.Sprintf(`INSERT INTO %s (seq, kind, rendered, recorded_at) VALUES (?, ?, ?, ?)`, s.table)

	if err := s.conn.Exec(ctx, query, insertArgs(rec)...); err != nil {
		return fmt.Errorf("failed to insert event into ClickHouse: %w", err)
	}
	return nil
}

// insertArgs builds the VALUES tuple for one record. Timestamps are
// stored in UTC like the other SQL sinks.
func insertArgs(rec recorder.Record) []any {
	return []any{rec.Seq, rec.KindName, rec.Rendered, rec.At.UTC()}
}

func (s *Sink) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
