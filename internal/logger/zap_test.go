package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for level, want := range tests {
		log, err := New(level, "production")
		if err != nil {
			t.Fatalf("New(%q): %v", level, err)
		}
		if !log.Core().Enabled(want) {
			t.Errorf("New(%q): expected %s enabled", level, want)
		}
		if want > zapcore.DebugLevel && log.Core().Enabled(want-1) {
			t.Errorf("New(%q): expected %s disabled", level, want-1)
		}
	}
}
