package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/dotrender/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Inspector.Port != DefaultInspectorPort {
		t.Errorf("Inspector.Port = %d, want %d", cfg.Inspector.Port, DefaultInspectorPort)
	}
	if cfg.Inspector.Host != DefaultInspectorHost {
		t.Errorf("Inspector.Host = %q, want %q", cfg.Inspector.Host, DefaultInspectorHost)
	}
	if cfg.Snapshot.Sink != "file" {
		t.Errorf("Snapshot.Sink = %q, want file", cfg.Snapshot.Sink)
	}
	if cfg.Bench.Iterations != DefaultBenchIterations {
		t.Errorf("Bench.Iterations = %d, want %d", cfg.Bench.Iterations, DefaultBenchIterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	configJSON := `{
  "log": {"level": "debug"},
  "inspector": {"port": 8080, "host": "0.0.0.0"},
  "snapshot": {"sink": "s3", "s3": {"bucket": "b", "pathStyle": true}}
}
`
	if err := os.WriteFile(filepath.Join(dir, JSONFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.InspectorAddress() != "0.0.0.0:8080" {
		t.Errorf("InspectorAddress() = %q", cfg.InspectorAddress())
	}
	if cfg.Snapshot.S3.Bucket != "b" || !cfg.Snapshot.S3.PathStyle {
		t.Errorf("Snapshot.S3 = %+v", cfg.Snapshot.S3)
	}
	if cfg.Snapshot.S3.Region != "us-east-1" {
		t.Errorf("Snapshot.S3.Region = %q, want default", cfg.Snapshot.S3.Region)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", level, err)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	configTOML := `
[log]
format = "json"

[metrics]
enabled = true
namespace = "app"

[snapshot]
dir = "out"
`
	if err := os.WriteFile(filepath.Join(dir, TOMLFileName), []byte(configTOML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, JSONFileName), []byte(`{"log": {"format": "text"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "app" || cfg.Metrics.Subsystem != "render" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if got := cfg.SnapshotPath(); got != filepath.Join(dir, "out") {
		t.Errorf("SnapshotPath() = %q", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TOMLFileName)
	if err := os.WriteFile(path, []byte("[log\nlevel ="), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.HasCode(err, "C002") {
		t.Errorf("LoadFile() error = %v, want C002", err)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	if !errors.HasCode(err, "C001") {
		t.Errorf("LoadFile() error = %v, want C001", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{TOMLFileName, JSONFileName} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.Inspector.Port = 9999
			cfg.Snapshot.S3.Bucket = "bucket"

			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if loaded.Inspector.Port != 9999 || loaded.Snapshot.S3.Bucket != "bucket" {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad port", func(c *Config) { c.Inspector.Port = 70000 }},
		{"bad sink", func(c *Config) { c.Snapshot.Sink = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Snapshot.Sink = "s3" }},
		{"name with slash", func(c *Config) { c.Snapshot.Name = "a/b" }},
		{"negative rows", func(c *Config) { c.Bench.Rows = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, "C003") {
				t.Errorf("Validate() = %v, want C003", err)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got == root {
		t.Fatalf("found config before one was written")
	}

	if err := os.WriteFile(filepath.Join(root, JSONFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}
