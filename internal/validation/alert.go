package validation

import (
	"strings"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
)

// ValidateCreateAlert validates an alert creation request.
//
// Required fields:
//   - clientId, transactionId: Must be valid UUIDs
//   - rule: Non-blank name of the detection rule that fired
//   - severity: Must be one of: low, medium, high, critical
func ValidateCreateAlert(req request.CreateAlertRequest) error {
	errors := structFields(req)

	if _, failed := errors["rule"]; !failed && strings.TrimSpace(req.Rule) == "" {
		errors["rule"] = "rule is required"
	}

	return result(errors)
}
