package validation

import (
	"strings"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
)

// ValidateCreateClient validates a client creation request.
//
// Required fields:
//   - name: Non-blank, at most 200 characters
//   - country: ISO 3166 alpha-2 code, upper case
//   - riskLevel: Must be one of: low, medium, high
//
// kycStatus is optional and defaults to pending.
func ValidateCreateClient(req request.CreateClientRequest) error {
	errors := structFields(req)

	if _, failed := errors["name"]; !failed && strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	return result(errors)
}
