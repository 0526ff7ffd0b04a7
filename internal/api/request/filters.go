package request

import (
	"fmt"
	"strings"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/daterange"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/google/uuid"
)

// DateParams is the optional start_date/end_date pair shared by listing and report endpoints.
// Either bound may be zero; normalization decides what an absent bound means.
type DateParams struct {
	Start daterange.Date
	End   daterange.Date
}

// IsZero reports whether neither bound was supplied.
func (p DateParams) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// ParseDateParams parses start_date and end_date query values in YYYY-MM-DD format.
// Both are optional. No ordering check happens here.
func ParseDateParams(startDateParam, endDateParam string) (DateParams, error) {
	var p DateParams
	var err error

	if p.Start, err = daterange.ParseDate(strings.TrimSpace(startDateParam)); err != nil {
		return p, fmt.Errorf("invalid start_date: %w", err)
	}
	if p.End, err = daterange.ParseDate(strings.TrimSpace(endDateParam)); err != nil {
		return p, fmt.Errorf("invalid end_date: %w", err)
	}
	return p, nil
}

// ParseCurrency upper-cases an optional currency query value.
func ParseCurrency(currencyParam string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(currencyParam))
	if c != "" && len(c) != 3 {
		return "", fmt.Errorf("invalid currency: %s", currencyParam)
	}
	return c, nil
}

// ParseClientID validates an optional client_id query value.
func ParseClientID(clientIDParam string) (string, error) {
	id := strings.TrimSpace(clientIDParam)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("invalid client_id: %s", clientIDParam)
	}
	return id, nil
}

// ParseAlertFilters extracts and validates alert filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - client_id: must be a UUID
//   - status: must be new, in_analysis or resolved (any casing)
//   - severity: must be low, medium, high or critical (any casing)
func ParseAlertFilters(clientIDParam, statusParam, severityParam string) (model.AlertFilter, error) {
	var filter model.AlertFilter
	var err error

	if filter.ClientID, err = ParseClientID(clientIDParam); err != nil {
		return filter, err
	}

	if statusParam != "" {
		if filter.Status, err = model.ParseAlertStatus(statusParam); err != nil {
			return filter, err
		}
	}

	if severityParam != "" {
		if filter.Severity, err = model.ParseSeverity(severityParam); err != nil {
			return filter, err
		}
	}

	return filter, nil
}
