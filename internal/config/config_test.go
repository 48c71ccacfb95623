package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evhist.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
file = "/tmp/evhist.log"
max_size_mb = 5

[history]
max_records = 1000
active = true

[[kinds]]
name = "app"

[[kinds]]
name = "app.file"
parent = "app"

[[sinks]]
dsn = "sqlite://:memory:"

[server]
listen = ":9999"
base_path = "/evhist"

[metrics]
listen = ":9100"
`)
	fc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Log == nil || fc.Log.Level != "debug" || fc.Log.MaxSizeMB != 5 {
		t.Fatalf("unexpected log config %+v", fc.Log)
	}
	if fc.History.MaxRecords != 1000 || !fc.History.Active {
		t.Fatalf("unexpected history config %+v", fc.History)
	}
	if len(fc.Kinds) != 2 || fc.Kinds[1].Parent != "app" {
		t.Fatalf("unexpected kinds %+v", fc.Kinds)
	}
	if len(fc.Sinks) != 1 || fc.Sinks[0].DSN != "sqlite://:memory:" {
		t.Fatalf("unexpected sinks %+v", fc.Sinks)
	}
	if fc.Server.Listen != ":9999" || fc.Server.BasePath != "/evhist" {
		t.Fatalf("unexpected server config %+v", fc.Server)
	}
	if fc.Metrics.Listen != ":9100" {
		t.Fatalf("unexpected metrics config %+v", fc.Metrics)
	}
}

func TestLoadDefaults(t *testing.T) {
	fc, err := Load(writeConfig(t, ``))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Server.Listen != ":8080" {
		t.Errorf("default listen = %q", fc.Server.Listen)
	}
	if fc.Server.BasePath != "/api" {
		t.Errorf("default base path = %q", fc.Server.BasePath)
	}
	if fc.History.MaxRecords != 0 || fc.History.Active {
		t.Errorf("history defaults changed: %+v", fc.History)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative cap", "[history]\nmax_records = -1\n"},
		{"empty kind name", "[[kinds]]\nparent = \"app\"\n"},
		{"duplicate kind", "[[kinds]]\nname = \"a\"\n[[kinds]]\nname = \"a\"\n"},
		{"undeclared parent", "[[kinds]]\nname = \"b\"\nparent = \"a\"\n"},
		{"empty sink dsn", "[[sinks]]\ndsn = \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	fc, err := Load(writeConfig(t, `
[[kinds]]
name = "app"

[[kinds]]
name = "app.file"
parent = "app"

[[kinds]]
name = "app.file.save"
parent = "app.file"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg, err := fc.BuildRegistry()
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	app, ok := reg.Lookup("app")
	if !ok {
		t.Fatal("root kind missing")
	}
	save, ok := reg.Lookup("app.file.save")
	if !ok {
		t.Fatal("leaf kind missing")
	}
	if !save.Is(app) {
		t.Error("declared hierarchy not connected")
	}
}
