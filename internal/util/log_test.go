package util

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug}, // falls back to info
	}
	for _, tt := range tests {
		logger := NewLogger(tt.level, "json")
		if !logger.Enabled(context.Background(), tt.enabled) {
			t.Errorf("level %q: %v should be enabled", tt.level, tt.enabled)
		}
		if logger.Enabled(context.Background(), tt.muted) {
			t.Errorf("level %q: %v should be muted", tt.level, tt.muted)
		}
	}
}

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		if logger := NewLogger("info", format); logger == nil {
			t.Errorf("NewLogger(info, %q) returned nil", format)
		}
	}
}
