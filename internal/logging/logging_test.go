// ABOUTME: Tests for logger construction
// ABOUTME: Verifies level parsing and rejection of unknown levels
package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"info", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"DEBUG", true, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{" warn ", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", true, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level, tt.development)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() { _ = logger.Sync() }()

			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.disabled) {
				t.Errorf("level %v should be disabled", tt.disabled)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", false); err == nil {
		t.Error("New() should fail for unknown level")
	}
}

func TestMustPanicsOnUnknownLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() should panic for unknown level")
		}
	}()
	_ = Must("chatty", false)
}
