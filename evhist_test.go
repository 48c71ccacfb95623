package evhist

import (
	"strings"
	"testing"
)

func TestFacadeEndToEnd(t *testing.T) {
	reg := NewRegistry()
	app := reg.MustDefine("app", nil)
	open := reg.MustDefine("app.open", app)
	cls := reg.MustDefine("app.close", app)
	save := reg.MustDefine("app.save", app)

	r := New()

	// dormant recorder drops everything
	r.Observe(RawEvent{EventKind: open, Rendered: "dropped"})
	if len(r.Events()) != 0 {
		t.Fatal("dormant recorder captured an event")
	}

	var seen []Record
	l := ListenerFunc(func(rec Record) { seen = append(seen, rec) })
	r.AddListener(l)
	if !r.IsActive() {
		t.Fatal("listener registration must activate recording")
	}

	r.Observe(RawEvent{EventKind: open, Rendered: "Open"})
	r.Observe(RawEvent{EventKind: cls, Rendered: "Close"})
	r.Observe(RawEvent{EventKind: save, Rendered: "Save"})

	if len(seen) != 3 {
		t.Fatalf("listener saw %d events, want 3", len(seen))
	}
	if got := r.EventsFiltered(KindSet{app}, KindSet{cls}); len(got) != 2 {
		t.Fatalf("filtered query returned %d records", len(got))
	}

	out := r.ToText(KindSet{cls}, KindSet{save})
	if strings.Contains(out, "Close") || !strings.Contains(out, "<b>Save</b>") {
		t.Fatalf("unexpected render output %q", out)
	}

	r.RemoveListener(l)
	if r.IsActive() {
		t.Fatal("removing last listener must deactivate recording")
	}

	r.Clear()
	if r.Size() != 0 {
		t.Fatal("clear left records behind")
	}
}

func TestFacadeSinkFromDSN(t *testing.T) {
	reg := NewRegistry()
	app := reg.MustDefine("app", nil)

	s, err := NewSinkFromDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("sink: %v", err)
	}

	r := NewWithOptions(Options{MaxRecords: 10})
	handle := r.AddSink(s, NewLogger(nil))
	if !r.IsActive() {
		t.Fatal("sink registration must activate recording")
	}
	r.Observe(RawEvent{EventKind: app, Rendered: "persisted"})
	if r.Size() != 1 {
		t.Fatalf("history size %d, want 1", r.Size())
	}
	r.RemoveListener(handle)
	if r.IsActive() {
		t.Fatal("sink removal must deactivate recording")
	}
}
