package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type options struct {
	level  slog.Level
	writer io.Writer
}

type Option func(*options)

// WithLevel sets the minimum level from its name: debug, info, warn or error.
// Unknown names keep the default.
func WithLevel(name string) Option {
	return func(o *options) {
		o.level = ParseLevel(name, o.level)
	}
}

// WithWriter redirects output; the CLI logs to stderr so stdout stays for results.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// New returns a structured JSON logger using slog.
func New(opts ...Option) *slog.Logger {
	o := &options{level: slog.LevelInfo, writer: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	handler := slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})
	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, returning fallback when unrecognised.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
