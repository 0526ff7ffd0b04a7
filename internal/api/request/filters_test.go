package request

import (
	"testing"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
)

func TestParseDateParams(t *testing.T) {
	t.Run("no parameters", func(t *testing.T) {
		p, err := ParseDateParams("", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !p.IsZero() {
			t.Errorf("Expected zero params, got %+v", p)
		}
	})

	t.Run("both bounds", func(t *testing.T) {
		p, err := ParseDateParams("2024-01-01", " 2024-01-31 ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if p.Start != daterange.NewDate(2024, time.January, 1) {
			t.Errorf("Expected start 2024-01-01, got %s", p.Start)
		}
		if p.End != daterange.NewDate(2024, time.January, 31) {
			t.Errorf("Expected end 2024-01-31, got %s", p.End)
		}
	})

	t.Run("inverted bounds are not rejected here", func(t *testing.T) {
		if _, err := ParseDateParams("2024-02-01", "2024-01-01"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("invalid start", func(t *testing.T) {
		if _, err := ParseDateParams("01/02/2024", ""); err == nil {
			t.Error("Expected error for invalid start_date, got nil")
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		if _, err := ParseDateParams("", "2024-13-01"); err == nil {
			t.Error("Expected error for invalid end_date, got nil")
		}
	})
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" brl ")
	if err != nil || c != "BRL" {
		t.Errorf("Expected BRL, got %q (%v)", c, err)
	}

	c, err = ParseCurrency("")
	if err != nil || c != "" {
		t.Errorf("Expected empty currency, got %q (%v)", c, err)
	}

	if _, err := ParseCurrency("EURO"); err == nil {
		t.Error("Expected error for 4-letter currency, got nil")
	}
}

func TestParseAlertFilters(t *testing.T) {
	t.Run("default values when no parameters provided", func(t *testing.T) {
		filter, err := ParseAlertFilters("", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filter != (model.AlertFilter{}) {
			t.Errorf("Expected empty filter, got %+v", filter)
		}
	})

	t.Run("all filters", func(t *testing.T) {
		id := "3f0e6a52-7a8e-4c1b-9f69-3a2b9d3c1e11"
		filter, err := ParseAlertFilters(id, "IN_ANALYSIS", "High")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filter.ClientID != id {
			t.Errorf("Expected client %s, got %s", id, filter.ClientID)
		}
		if filter.Status != model.AlertInAnalysis {
			t.Errorf("Expected status in_analysis, got %s", filter.Status)
		}
		if filter.Severity != model.SeverityHigh {
			t.Errorf("Expected severity high, got %s", filter.Severity)
		}
	})

	tests := []struct {
		name                       string
		clientID, status, severity string
	}{
		{"invalid client id", "not-a-uuid", "", ""},
		{"invalid status", "", "closed", ""},
		{"invalid severity", "", "", "urgent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAlertFilters(tt.clientID, tt.status, tt.severity); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
