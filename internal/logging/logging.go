package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates and sets the package-level default slog logger.
// When structured is true, uses JSONHandler on stderr (keeps diagnostics
// machine-readable when the display stream is NDJSON or a TUI owns the
// terminal). Otherwise uses TextHandler on stderr for human readability.
func Init(structured bool, level slog.Level) {
	InitWriter(os.Stderr, structured, level)
}

// InitWriter is Init with an explicit destination, for tests.
func InitWriter(w io.Writer, structured bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
