package validation

import (
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/shopspring/decimal"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - clientId: Must be a valid UUID
//   - type: Must be one of: deposit, withdrawal, transfer
//   - amount: Must be a non-negative decimal string
//   - currency: Must be a 3-letter upper-case code
//
// Optional fields:
//   - counterpartyId: Must be a valid UUID other than clientId, and is required exactly when type is transfer
//   - timestamp: Must be RFC3339 and not in the future
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := structFields(req)

	if _, failed := errors["amount"]; !failed {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			errors["amount"] = "amount must be a decimal number"
		} else if amount.IsNegative() {
			errors["amount"] = "amount cannot be negative"
		}
	}

	if _, failed := errors["counterpartyId"]; !failed {
		if req.Type == "transfer" && req.CounterpartyID == "" {
			errors["counterpartyId"] = "counterpartyId is required for transfers"
		} else if req.Type != "transfer" && req.CounterpartyID != "" {
			errors["counterpartyId"] = "counterpartyId is only allowed on transfers"
		} else if req.Type == "transfer" && req.CounterpartyID == req.ClientID {
			errors["counterpartyId"] = "counterpartyId must be another client"
		}
	}

	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			errors["timestamp"] = "timestamp must be RFC3339"
		} else if ts.After(time.Now()) {
			errors["timestamp"] = "timestamp cannot be in the future"
		}
	}

	return result(errors)
}
