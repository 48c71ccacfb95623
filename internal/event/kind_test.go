package event

import "testing"

func TestRegistryDefineAndLookup(t *testing.T) {
	reg := NewRegistry()
	root, err := reg.Define("app", nil)
	if err != nil {
		t.Fatalf("define root: %v", err)
	}
	child, err := reg.Define("app.file", root)
	if err != nil {
		t.Fatalf("define child: %v", err)
	}
	if child.Parent() != root {
		t.Fatalf("expected parent app, got %v", child.Parent())
	}
	got, ok := reg.Lookup("app.file")
	if !ok || got != child {
		t.Fatalf("lookup returned %v, %v", got, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("lookup of unknown kind should fail")
	}
}

func TestRegistryDefineErrors(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Define("", nil); err == nil {
		t.Error("empty name should error")
	}
	a, _ := reg.Define("a", nil)
	if _, err := reg.Define("a", nil); err == nil {
		t.Error("duplicate name should error")
	}
	other := NewRegistry()
	foreign, _ := other.Define("x", nil)
	if _, err := reg.Define("b", foreign); err == nil {
		t.Error("foreign parent should error")
	}
	if _, err := reg.Define("b", a); err != nil {
		t.Errorf("valid define failed: %v", err)
	}
}

func TestKindIs(t *testing.T) {
	reg := NewRegistry()
	app := reg.MustDefine("app", nil)
	file := reg.MustDefine("app.file", app)
	save := reg.MustDefine("app.file.save", file)
	net := reg.MustDefine("net", nil)

	cases := []struct {
		name     string
		k, anc   *Kind
		expected bool
	}{
		{"self", save, save, true},
		{"direct parent", save, file, true},
		{"grandparent", save, app, true},
		{"unrelated root", save, net, false},
		{"inverted", app, save, false},
		{"nil ancestor", save, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.k.Is(tc.anc); got != tc.expected {
				t.Errorf("Is() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestKindSetCovers(t *testing.T) {
	reg := NewRegistry()
	app := reg.MustDefine("app", nil)
	file := reg.MustDefine("app.file", app)
	save := reg.MustDefine("app.file.save", file)
	net := reg.MustDefine("net", nil)

	set := KindSet{file}
	if !set.Covers(save) {
		t.Error("filter on supertype must cover subtype")
	}
	if !set.Covers(file) {
		t.Error("filter must cover itself")
	}
	if set.Covers(app) {
		t.Error("filter must not cover its own ancestor")
	}
	if set.Covers(net) {
		t.Error("filter must not cover unrelated kind")
	}
	if (KindSet{}).Covers(save) {
		t.Error("empty set covers nothing")
	}
	var nilSet KindSet
	if nilSet.Covers(save) {
		t.Error("nil set covers nothing")
	}
	// duplicates are harmless
	dup := KindSet{file, file, nil}
	if !dup.Covers(save) {
		t.Error("duplicate members must not change coverage")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	app := reg.MustDefine("app", nil)
	reg.MustDefine("net", nil)

	set, err := reg.Resolve([]string{"app"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(set) != 1 || set[0] != app {
		t.Fatalf("unexpected set %v", set)
	}
	if _, err := reg.Resolve([]string{"app", "nope"}); err == nil {
		t.Error("unknown name should fail resolve")
	}
	if set, err := reg.Resolve(nil); err != nil || set != nil {
		t.Errorf("nil names should resolve to nil set, got %v, %v", set, err)
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "app" || names[1] != "net" {
		t.Errorf("unexpected names %v", names)
	}
}
