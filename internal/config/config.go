// Package config loads and validates client configuration from the
// environment or a YAML file. Validation runs before any transport is
// opened; invalid construction input fails fast.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxEntries        = 50
	defaultReconnectAttempts = 5
	defaultReconnectDelay    = 3 * time.Second
)

// Config holds all wisp configuration.
type Config struct {
	// Endpoint is the streaming connection URL (ws://, wss://, http://,
	// https://). Required.
	Endpoint string `yaml:"endpoint"`

	// MaxEntries bounds the display log. Must be >= 1.
	MaxEntries int `yaml:"max_entries"`

	// ReconnectAttempts caps automatic reconnects. 0 disables them.
	ReconnectAttempts int `yaml:"reconnect_attempts"`

	// ReconnectDelay is the fixed wait between reconnect attempts.
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`

	// ShowTimestamp is a rendering hint only.
	ShowTimestamp bool `yaml:"show_timestamp"`

	Renderer RendererConfig `yaml:"renderer"`
	LogLevel string         `yaml:"log_level"`
}

// RendererConfig selects and parameterizes the render stack.
type RendererConfig struct {
	// Mode is one of "text", "ndjson", "tui".
	Mode string `yaml:"mode"`

	// TranscriptPath, when set, adds an NDJSON transcript renderer.
	TranscriptPath string `yaml:"transcript_path"`

	// WebhookURL, when set, adds a webhook forwarder.
	WebhookURL string `yaml:"webhook_url"`
}

// Load reads configuration from WISP_* environment variables with
// defaults applied.
func Load() Config {
	return Config{
		Endpoint:          os.Getenv("WISP_ENDPOINT"),
		MaxEntries:        getenvInt("WISP_MAX_ENTRIES", defaultMaxEntries),
		ReconnectAttempts: getenvInt("WISP_RECONNECT_ATTEMPTS", defaultReconnectAttempts),
		ReconnectDelay:    getenvDuration("WISP_RECONNECT_DELAY", defaultReconnectDelay),
		ShowTimestamp:     getenvBool("WISP_SHOW_TIMESTAMP", true),
		Renderer: RendererConfig{
			Mode:           getenv("WISP_RENDERER", "text"),
			TranscriptPath: os.Getenv("WISP_TRANSCRIPT_PATH"),
			WebhookURL:     os.Getenv("WISP_WEBHOOK_URL"),
		},
		LogLevel: getenv("WISP_LOG_LEVEL", "info"),
	}
}

// LoadFile reads a YAML config file, filling unset fields with the same
// defaults Load applies.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Config{
		MaxEntries:        defaultMaxEntries,
		ReconnectAttempts: defaultReconnectAttempts,
		ReconnectDelay:    defaultReconnectDelay,
		ShowTimestamp:     true,
		Renderer:          RendererConfig{Mode: "text"},
		LogLevel:          "info",
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks construction input. Any error here is fatal before a
// transport opens.
func (c Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	if c.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("max_entries must be >= 1, got %d", c.MaxEntries))
	}
	if c.ReconnectAttempts < 0 {
		errs = append(errs, fmt.Errorf("reconnect_attempts must be >= 0, got %d", c.ReconnectAttempts))
	}
	if c.ReconnectDelay < 0 {
		errs = append(errs, fmt.Errorf("reconnect_delay must be >= 0, got %v", c.ReconnectDelay))
	}
	switch c.Renderer.Mode {
	case "text", "ndjson", "tui":
	default:
		errs = append(errs, fmt.Errorf("renderer mode must be text, ndjson, or tui, got %q", c.Renderer.Mode))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
