/*
Package logging wraps log/slog with the level-name parsing and handler setup
the engine uses for structured step/invariant logging, grounded on
ehrlich-b-wingthing/internal/logger/logger.go's shape. Unlike that package's
process-wide global, New returns a logger owned by the caller: the cascade
engine is single-threaded and already owns every other collaborator (spec
section 5), so a package-level singleton would only invite accidental
sharing across independently-seeded engines.
*/
package logging

import (
	"io"
	"log/slog"
)

// ParseLevel maps a level name to a slog.Level, defaulting to Info for any
// unrecognized name.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a text-handler logger writing to w at the given level name.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}
