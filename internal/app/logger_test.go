package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFormatAndLevel(t *testing.T) {
	prod := NewLogger(&Config{AppEnv: "production", LogFormat: "pretty", LogLevel: "warn"})
	_, isJSON := prod.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON, "production must log JSON even when LOG_FORMAT says pretty")
	assert.False(t, prod.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, prod.Enabled(context.Background(), slog.LevelWarn))

	dev := NewLogger(&Config{AppEnv: "development", LogFormat: "pretty", LogLevel: "debug"})
	_, isText := dev.Handler().(*slog.TextHandler)
	assert.True(t, isText)
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))

	fallback := NewLogger(nil)
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, fallback.Enabled(context.Background(), slog.LevelInfo))
}
