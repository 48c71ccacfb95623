package recorder

import (
	"sync"
	"time"

	"github.com/evhist/evhist/internal/event"
)

// historyLog is the append-only, insertion-ordered record sequence. Only
// the recording path appends; readers always get a copy so concurrent
// appends and clears can never tear a snapshot.
type historyLog struct {
	mu   sync.RWMutex
	max  int // 0 means unbounded
	recs []Record
	seq  uint64
}

// append wraps the event data into a Record, assigns the next arrival
// ordinal and stores it. When a cap is configured the oldest record is
// evicted first. Returns the stored record.
func (l *historyLog) append(kind *event.Kind, rendered string) Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	rec := Record{
		Kind:     kind,
		KindName: kind.Name(),
		Rendered: rendered,
		Seq:      l.seq,
		At:       time.Now().UTC(),
	}
	if l.max > 0 && len(l.recs) >= l.max {
		n := copy(l.recs, l.recs[1:])
		l.recs = l.recs[:n]
	}
	l.recs = append(l.recs, rec)
	return rec
}

// clear empties the log atomically with respect to snapshot: a concurrent
// reader sees either the full pre-clear contents or nothing, never a mix.
// The arrival ordinal keeps counting across clears.
func (l *historyLog) clear() {
	l.mu.Lock()
	l.recs = nil
	l.mu.Unlock()
}

// snapshot returns a copy of the current contents in arrival order.
func (l *historyLog) snapshot() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.recs))
	copy(out, l.recs)
	return out
}

func (l *historyLog) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.recs)
}
