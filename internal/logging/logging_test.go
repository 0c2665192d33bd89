package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, LevelFromString(input), input)
	}
}

func TestNewWithWriterFiltersLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "component=test")
}
