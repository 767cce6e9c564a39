// Package logging builds the structured loggers shared by the NewsGuard
// server components. Each subsystem derives its own logger via
// With("component", ...).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates the service-wide text logger at the given level string.
// Unknown levels fall back to debug so misconfiguration never hides logs.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
