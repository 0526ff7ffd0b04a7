package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	setup := func(status int) (http.Handler, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		return middleware.Logger(zap.New(core))(next), logs
	}

	t.Run("logs method, path and status", func(t *testing.T) {
		mw, logs := setup(http.StatusCreated)

		req := httptest.NewRequest(http.MethodPost, "/api/alert", nil)
		mw.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("Expected 1 log entry, got %d", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["method"] != "POST" {
			t.Errorf("Expected method POST, got %v", fields["method"])
		}
		if fields["path"] != "/api/alert" {
			t.Errorf("Expected path /api/alert, got %v", fields["path"])
		}
		if fields["status"] != int64(http.StatusCreated) {
			t.Errorf("Expected status 201, got %v", fields["status"])
		}
		if entries[0].Level != zapcore.InfoLevel {
			t.Errorf("Expected info level, got %s", entries[0].Level)
		}
	})

	t.Run("logs server errors at error level", func(t *testing.T) {
		mw, logs := setup(http.StatusInternalServerError)

		mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/report", nil))

		if level := logs.All()[0].Level; level != zapcore.ErrorLevel {
			t.Errorf("Expected error level, got %s", level)
		}
	})

	t.Run("strips line breaks from the path", func(t *testing.T) {
		mw, logs := setup(http.StatusNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/alert", nil)
		req.URL.Path = "/api/alert\r\nforged entry"
		mw.ServeHTTP(httptest.NewRecorder(), req)

		if got := logs.All()[0].ContextMap()["path"]; got != "/api/alertforged entry" {
			t.Errorf("Expected sanitized path, got %q", got)
		}
	})
}
