package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"WISP_ENDPOINT", "WISP_MAX_ENTRIES", "WISP_RECONNECT_ATTEMPTS",
	"WISP_RECONNECT_DELAY", "WISP_SHOW_TIMESTAMP", "WISP_RENDERER",
	"WISP_TRANSCRIPT_PATH", "WISP_WEBHOOK_URL", "WISP_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Endpoint != "" {
		t.Fatalf("expected empty endpoint, got %q", cfg.Endpoint)
	}
	if cfg.MaxEntries != 50 {
		t.Fatalf("expected default max_entries=50, got %d", cfg.MaxEntries)
	}
	if cfg.ReconnectAttempts != 5 {
		t.Fatalf("expected default reconnect_attempts=5, got %d", cfg.ReconnectAttempts)
	}
	if cfg.ReconnectDelay != 3*time.Second {
		t.Fatalf("expected default reconnect_delay=3s, got %v", cfg.ReconnectDelay)
	}
	if !cfg.ShowTimestamp {
		t.Fatal("expected default show_timestamp=true")
	}
	if cfg.Renderer.Mode != "text" {
		t.Fatalf("expected default renderer mode 'text', got %q", cfg.Renderer.Mode)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WISP_ENDPOINT", "wss://agent.example/thoughts")
	t.Setenv("WISP_MAX_ENTRIES", "7")
	t.Setenv("WISP_RECONNECT_DELAY", "250ms")
	t.Setenv("WISP_SHOW_TIMESTAMP", "false")
	t.Setenv("WISP_RENDERER", "tui")

	cfg := Load()
	if cfg.Endpoint != "wss://agent.example/thoughts" {
		t.Fatalf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.MaxEntries != 7 {
		t.Fatalf("expected max_entries=7, got %d", cfg.MaxEntries)
	}
	if cfg.ReconnectDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %v", cfg.ReconnectDelay)
	}
	if cfg.ShowTimestamp {
		t.Fatal("expected show_timestamp=false")
	}
	if cfg.Renderer.Mode != "tui" {
		t.Fatalf("expected renderer mode 'tui', got %q", cfg.Renderer.Mode)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WISP_MAX_ENTRIES", "many")
	t.Setenv("WISP_RECONNECT_DELAY", "soon")

	cfg := Load()
	if cfg.MaxEntries != 50 {
		t.Fatalf("expected fallback max_entries=50, got %d", cfg.MaxEntries)
	}
	if cfg.ReconnectDelay != 3*time.Second {
		t.Fatalf("expected fallback delay 3s, got %v", cfg.ReconnectDelay)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wisp.yaml")
	content := `
endpoint: ws://localhost:8080/stream
max_entries: 25
reconnect_attempts: 2
reconnect_delay: 500ms
renderer:
  mode: ndjson
  transcript_path: /tmp/wisp.ndjson
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Endpoint != "ws://localhost:8080/stream" {
		t.Fatalf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.MaxEntries != 25 || cfg.ReconnectAttempts != 2 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.ReconnectDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms delay, got %v", cfg.ReconnectDelay)
	}
	if cfg.Renderer.Mode != "ndjson" || cfg.Renderer.TranscriptPath != "/tmp/wisp.ndjson" {
		t.Fatalf("unexpected renderer config: %+v", cfg.Renderer)
	}
	// Fields absent from the file keep their defaults.
	if !cfg.ShowTimestamp {
		t.Fatal("expected default show_timestamp=true")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Endpoint:       "ws://localhost/stream",
		MaxEntries:     10,
		ReconnectDelay: time.Second,
		Renderer:       RendererConfig{Mode: "text"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing endpoint", func(c *Config) { c.Endpoint = "" }, "endpoint"},
		{"zero max entries", func(c *Config) { c.MaxEntries = 0 }, "max_entries"},
		{"negative attempts", func(c *Config) { c.ReconnectAttempts = -1 }, "reconnect_attempts"},
		{"negative delay", func(c *Config) { c.ReconnectDelay = -time.Second }, "reconnect_delay"},
		{"bad renderer", func(c *Config) { c.Renderer.Mode = "hologram" }, "renderer mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
