package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("development logs at debug", func(t *testing.T) {
		l, err := New("development")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Error("Expected debug level to be enabled in development")
		}
	})

	t.Run("production skips debug", func(t *testing.T) {
		l, err := New(Production)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if l.Core().Enabled(zapcore.DebugLevel) {
			t.Error("Expected debug level to be disabled in production")
		}
	})
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("Expected a no-op logger, got nil")
	}
}
