package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultFollowsXDGDataHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	cfg := Default()
	if want := filepath.Join(base, "focusd", "data.json"); cfg.DataFile != want {
		t.Fatalf("DataFile = %q, want %q", cfg.DataFile, want)
	}
	if cfg.Backend != "json" || cfg.LogLevel != "info" || cfg.MarkdownStyle != "auto" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestDataDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	if got, want := DataDir("focusd"), filepath.Join(home, ".local", "share", "focusd"); got != want {
		t.Fatalf("DataDir() = %q, want %q", got, want)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != Default().DataFile {
		t.Fatalf("DataFile = %q, want default", cfg.DataFile)
	}
}

func TestLoadReadsFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "focusd.yaml")
	content := "data_file: /tmp/focus/data.db\nbackend: sqlite\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSD_MARKDOWN_STYLE", "light")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "/tmp/focus/data.db" || cfg.Backend != "sqlite" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.MarkdownStyle != "light" {
		t.Fatalf("MarkdownStyle = %q, want env override", cfg.MarkdownStyle)
	}
	if cfg.Source() != path {
		t.Fatalf("Source() = %q, want %q", cfg.Source(), path)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusd.yaml")
	if err := os.WriteFile(path, []byte("backend: [json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data file", func(c *Config) { c.DataFile = " " }},
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown markdown style", func(c *Config) { c.MarkdownStyle = "neon" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", cfg)
			}
		})
	}
}

func TestSaveWritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focusd.yaml")
	cfg := Default()
	cfg.DataFile = "/data/focusd.json"
	cfg.LogFile = "/var/log/focusd.log"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded map[string]string
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["data_file"] != "/data/focusd.json" || decoded["log_file"] != "/var/log/focusd.log" {
		t.Fatalf("unexpected yaml: %s", raw)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DataFile != cfg.DataFile || loaded.LogFile != cfg.LogFile || loaded.Backend != cfg.Backend {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestTUILogFileDefaultsNextToData(t *testing.T) {
	cfg := Default()
	cfg.DataFile = "/data/focusd/data.json"
	if got := cfg.TUILogFile(); got != "/data/focusd/focusd.log" {
		t.Fatalf("TUILogFile() = %q", got)
	}
	cfg.LogFile = "/tmp/custom.log"
	if got := cfg.TUILogFile(); got != "/tmp/custom.log" {
		t.Fatalf("TUILogFile() = %q", got)
	}
}
