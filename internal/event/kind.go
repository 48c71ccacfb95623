package event

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies a concrete event type as a node in a named hierarchy.
// A filter naming a Kind matches that Kind and every descendant, which
// mirrors supertype assignability in class-based event systems. Kinds are
// compared by identity; obtain them from a Registry so producers and
// consumers share the same nodes.
type Kind struct {
	name   string
	parent *Kind
}

func (k *Kind) Name() string { return k.name }

// Parent returns the direct ancestor, or nil for a root kind.
func (k *Kind) Parent() *Kind { return k.parent }

func (k *Kind) String() string { return k.name }

// Is reports whether ancestor is k itself or one of k's ancestors.
func (k *Kind) Is(ancestor *Kind) bool {
	if k == nil || ancestor == nil {
		return false
	}
	for c := k; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

// KindSet is a transient filter set of kinds. Duplicates are harmless;
// membership is by identity.
type KindSet []*Kind

// Covers reports whether some member of the set is ancestor-or-self of k.
// An empty set covers nothing; callers that want "absent filter means match
// everything" must check for that before calling.
func (s KindSet) Covers(k *Kind) bool {
	for _, f := range s {
		if k.Is(f) {
			return true
		}
	}
	return false
}

// Registry issues Kinds and keeps the name to Kind mapping. New kinds may
// be defined at any time, so event producers stay pluggable.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Define registers name as a child of parent (nil parent makes a root
// kind). Defining an already-registered name is an error; parent must be a
// Kind previously issued by this registry.
func (r *Registry) Define(name string, parent *Kind) (*Kind, error) {
	if name == "" {
		return nil, fmt.Errorf("event kind name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[name]; ok {
		return nil, fmt.Errorf("event kind %q already defined", name)
	}
	if parent != nil {
		if got, ok := r.kinds[parent.name]; !ok || got != parent {
			return nil, fmt.Errorf("parent kind %q not defined in this registry", parent.name)
		}
	}
	k := &Kind{name: name, parent: parent}
	r.kinds[name] = k
	return k, nil
}

// MustDefine is Define for wiring code with static kind names; it panics
// on error.
func (r *Registry) MustDefine(name string, parent *Kind) *Kind {
	k, err := r.Define(name, parent)
	if err != nil {
		panic(err)
	}
	return k
}

// Lookup resolves a kind by name.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Resolve maps a list of kind names to a KindSet. The first unknown name
// fails the whole resolution.
func (r *Registry) Resolve(names []string) (KindSet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(KindSet, 0, len(names))
	for _, n := range names {
		k, ok := r.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q", n)
		}
		set = append(set, k)
	}
	return set, nil
}

// Names returns all registered kind names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
