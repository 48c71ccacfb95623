package sink

import (
	"context"

	"github.com/evhist/evhist/internal/recorder"
)

// Sink is a destination for recorded events (analytics/statistics systems).
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, rec recorder.Record) error
}
