package sink

import (
	"context"
	"log/slog"
	"time"

	"github.com/evhist/evhist/internal/recorder"
)

const defaultSendTimeout = 5 * time.Second

// Listener adapts a Sink to the recorder's listener interface, so exports
// ride the normal notification path and registering the sink activates
// recording. Send failures are logged, never propagated: the recording
// path is total and must not fail because a sink is down.
//
// Delivery is synchronous inside the notification critical section; a slow
// sink delays recording. Keep sink latencies bounded or front them with a
// queue.
type Listener struct {
	sink    Sink
	logger  *slog.Logger
	timeout time.Duration
}

func NewListener(s Sink, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{sink: s, logger: logger, timeout: defaultSendTimeout}
}

func (l *Listener) EventRecorded(rec recorder.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	if err := l.sink.Send(ctx, rec); err != nil {
		l.logger.Error("history sink send failed",
			"kind", rec.KindName, "seq", rec.Seq, "error", err)
	}
}
