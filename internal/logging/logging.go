package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a console slog.Logger on stderr with provided level string.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: LevelFromString(level),
	})
	return slog.New(handler)
}

// LevelFromString parses error/warn/info/debug; anything else is info.
func LevelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
