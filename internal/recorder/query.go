package recorder

import (
	"strings"

	"github.com/evhist/evhist/internal/event"
)

// Events returns the full history in arrival order.
func (r *Recorder) Events() []Record {
	return r.EventsFiltered(nil, nil)
}

// EventsFiltered returns, in arrival order, the records whose kind is
// covered by includes and not covered by excludes. A nil includes set
// means "include every kind"; a nil (or empty) excludes set excludes
// nothing. Runs against a snapshot, so it is safe concurrently with
// recording; a record appended mid-call may or may not appear.
func (r *Recorder) EventsFiltered(includes, excludes event.KindSet) []Record {
	recs := r.log.snapshot()
	matches := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if includes != nil && !includes.Covers(rec.Kind) {
			continue // not included
		}
		if excludes.Covers(rec.Kind) {
			continue // excluded
		}
		matches = append(matches, rec)
	}
	return matches
}

// RenderText renders the history as one concatenated text blob in arrival
// order. Records whose kind is covered by filteredOut produce no output at
// all; records covered by highlighted get their rendered form emphasized.
// Both sets follow hierarchy coverage, and nil means "no filter" /
// "no highlight".
func (r *Recorder) RenderText(filteredOut, highlighted event.KindSet) string {
	var sb strings.Builder
	for _, rec := range r.log.snapshot() {
		if filteredOut.Covers(rec.Kind) {
			// skip filtered event kind
			continue
		}
		sb.WriteString(rec.HTML(highlighted.Covers(rec.Kind)))
	}
	return sb.String()
}
