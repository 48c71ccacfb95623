package recorder

import (
	"html"
	"time"

	"github.com/evhist/evhist/internal/event"
)

// Record captures one observed event. Immutable once appended to history;
// the log hands out copies, never aliases.
type Record struct {
	// Kind is used for in-process filtering and is not serialized; KindName
	// carries the same information across process boundaries.
	Kind     *event.Kind `json:"-"`
	KindName string      `json:"kind"`
	Rendered string      `json:"rendered"`
	// Seq is the record's position in arrival order among recorded events.
	Seq uint64 `json:"seq"`
	// At is the wall-clock capture time, carried for export and display
	// only; ordering is defined by Seq.
	At time.Time `json:"at"`
}

// HTML encodes the record's rendered form as an HTML fragment, wrapped in
// a bold marker when emphasized. This is the per-entry encoder used by the
// render-to-text path.
func (r Record) HTML(emphasize bool) string {
	s := html.EscapeString(r.Rendered)
	if emphasize {
		s = "<b>" + s + "</b>"
	}
	return s + "<br>\n"
}
