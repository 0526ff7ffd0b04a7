package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/validation"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	t.Run("decodes a valid object", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))

		got, err := parseJSON[body](req)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "Alice" {
			t.Errorf("Expected name 'Alice', got '%s'", got.Name)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed JSON", `{"name":`},
		{"unknown field", `{"name":"Alice","role":"admin"}`},
		{"trailing object", `{"name":"Alice"}{"name":"Bob"}`},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			if _, err := parseJSON[body](req); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	fallback := errors.New("failed to do the thing")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", fmt.Errorf("load: %w", apperrors.ErrAlertNotFound), http.StatusNotFound, apperrors.ErrAlertNotFound.Error()},
		{"stale write", apperrors.ErrStaleAlert, http.StatusConflict, apperrors.ErrStaleAlert.Error()},
		{"illegal transition", fmt.Errorf("%w: resolved", apperrors.ErrIllegalTransition), http.StatusConflict, apperrors.ErrIllegalTransition.Error()},
		{"invalid range", apperrors.ErrInvalidRange, http.StatusBadRequest, apperrors.ErrInvalidRange.Error()},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, apperrors.ErrInvalidInput.Error()},
		{"unmapped", errors.New("disk on fire"), http.StatusInternalServerError, fallback.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondServiceError(w, tt.err, fallback)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}

			var response map[string]any
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)

			if response["error"] != tt.wantError {
				t.Errorf("Expected error '%s', got '%v'", tt.wantError, response["error"])
			}
		})
	}

	t.Run("validation errors carry field details", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondServiceError(w, &validation.Error{Fields: map[string]string{"amount": "amount cannot be negative"}}, fallback)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}

		var response struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Details["amount"] != "amount cannot be negative" {
			t.Errorf("Expected amount detail, got %v", response.Details)
		}
	})
}
