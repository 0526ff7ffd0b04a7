package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
		wantStatus int
		wantError  string
	}{
		{"passes through valid UUID", "550e8400-e29b-41d4-a716-446655440000", true, http.StatusOK, ""},
		{"rejects malformed UUID", "alert-42", false, http.StatusBadRequest, "invalid UUID format"},
		{"rejects empty UUID", "", false, http.StatusBadRequest, "valid UUID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/alert/x/start-analysis", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uuid", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected next handler called=%v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantError == "" {
				return
			}

			var response map[string]any
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)
			if response["error"] != tt.wantError {
				t.Errorf("Expected error '%s', got '%v'", tt.wantError, response["error"])
			}
		})
	}
}
