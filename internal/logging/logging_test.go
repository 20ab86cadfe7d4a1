package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithWriterTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "text", &buf)

	logger.Info("slot decision", "decision", "enqueue")

	assert.Contains(t, buf.String(), "slot decision")
	assert.Contains(t, buf.String(), "decision=enqueue")
}

func TestNewLoggerWithWriterJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "JSON", &buf)

	logger.Info("slot decision", "session_id", "chat-1")

	assert.Contains(t, buf.String(), `"msg":"slot decision"`)
	assert.Contains(t, buf.String(), `"session_id":"chat-1"`)
}

func TestNewLoggerWithWriterFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	logger.Info("heartbeat")
	logger.Warn("session timed out")

	assert.NotContains(t, buf.String(), "heartbeat")
	assert.Contains(t, buf.String(), "session timed out")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}
