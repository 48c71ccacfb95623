package event

// Event is the contract for anything delivered by the upstream dispatch
// mechanism: a concrete kind plus a rendered text form derived from the
// original payload. The recorder never holds on to the Event itself, only
// to what these two methods return.
type Event interface {
	Kind() *Kind
	Render() string
}

// Raw is a minimal Event for producers that already carry a rendered form.
type Raw struct {
	EventKind *Kind
	Rendered  string
}

func (r Raw) Kind() *Kind    { return r.EventKind }
func (r Raw) Render() string { return r.Rendered }
