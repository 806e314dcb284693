package logger_test

import (
	"log/slog"
	"testing"

	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  string
	}{
		{"text handler", "text", "info"},
		{"json handler", "json", "debug"},
		{"invalid format falls back to text", "xml", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := logger.New(&config.LogConfig{
				Format: tt.format,
				Level:  tt.level,
			})
			require.NotNil(t, l)
			assert.True(t,
				l.Enabled(t.Context(), logger.ParseLevel(tt.level)))
		})
	}
}
