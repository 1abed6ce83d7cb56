// Package logger configures the process-wide log/slog logger with JSON
// output and source locations, so logs stay machine-parseable in
// aggregation systems.
package logger

import (
	"log/slog"
	"os"
)

// Setup installs the global JSON logger at the given level.
func Setup(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level ("debug", "info", "warn",
// "error") to slog.Level. Unrecognized values default to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
