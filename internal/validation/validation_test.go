package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
)

const (
	clientID = "3f0e6a52-7a8e-4c1b-9f69-3a2b9d3c1e11"
	otherID  = "8d1c2b7e-55a4-4b0c-8f3e-0c9a6e2d4f21"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *validation.Error, got %T: %v", err, err)
	}
	return verr.Fields
}

func TestValidateCreateTransaction(t *testing.T) {
	valid := request.CreateTransactionRequest{
		ClientID: clientID,
		Type:     "deposit",
		Amount:   "1500.25",
		Currency: "BRL",
	}

	t.Run("valid deposit", func(t *testing.T) {
		if err := ValidateCreateTransaction(valid); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("valid transfer with timestamp", func(t *testing.T) {
		req := valid
		req.Type = "transfer"
		req.CounterpartyID = otherID
		req.Timestamp = "2024-06-01T10:00:00Z"
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(r *request.CreateTransactionRequest)
		field  string
	}{
		{"missing client", func(r *request.CreateTransactionRequest) { r.ClientID = "" }, "clientId"},
		{"bad client", func(r *request.CreateTransactionRequest) { r.ClientID = "abc" }, "clientId"},
		{"unknown type", func(r *request.CreateTransactionRequest) { r.Type = "refund" }, "type"},
		{"non numeric amount", func(r *request.CreateTransactionRequest) { r.Amount = "ten" }, "amount"},
		{"negative amount", func(r *request.CreateTransactionRequest) { r.Amount = "-1" }, "amount"},
		{"lower case currency", func(r *request.CreateTransactionRequest) { r.Currency = "brl" }, "currency"},
		{"transfer without counterparty", func(r *request.CreateTransactionRequest) { r.Type = "transfer" }, "counterpartyId"},
		{"deposit with counterparty", func(r *request.CreateTransactionRequest) { r.CounterpartyID = otherID }, "counterpartyId"},
		{"transfer to own client", func(r *request.CreateTransactionRequest) {
			r.Type = "transfer"
			r.CounterpartyID = r.ClientID
		}, "counterpartyId"},
		{"bad timestamp", func(r *request.CreateTransactionRequest) { r.Timestamp = "yesterday" }, "timestamp"},
		{"future timestamp", func(r *request.CreateTransactionRequest) {
			r.Timestamp = time.Now().Add(48 * time.Hour).Format(time.RFC3339)
		}, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			fields := fieldsOf(t, ValidateCreateTransaction(req))

			if _, ok := fields[tt.field]; !ok {
				t.Errorf("Expected error on %s, got %v", tt.field, fields)
			}
		})
	}
}

func TestValidateCreateClient(t *testing.T) {
	valid := request.CreateClientRequest{Name: "Ana Souza", Country: "BR", RiskLevel: "medium"}

	if err := ValidateCreateClient(valid); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	blank := valid
	blank.Name = "   "
	if _, ok := fieldsOf(t, ValidateCreateClient(blank))["name"]; !ok {
		t.Error("Expected error on name for blank value")
	}

	critical := valid
	critical.RiskLevel = "critical"
	if _, ok := fieldsOf(t, ValidateCreateClient(critical))["riskLevel"]; !ok {
		t.Error("Expected error on riskLevel for critical")
	}

	kyc := valid
	kyc.KYCStatus = "unknown"
	if _, ok := fieldsOf(t, ValidateCreateClient(kyc))["kycStatus"]; !ok {
		t.Error("Expected error on kycStatus")
	}
}

func TestValidateCreateAlert(t *testing.T) {
	valid := request.CreateAlertRequest{ClientID: clientID, TransactionID: otherID, Rule: "Large cash deposit", Severity: "high"}

	if err := ValidateCreateAlert(valid); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	bad := request.CreateAlertRequest{Rule: " ", Severity: "urgent"}
	fields := fieldsOf(t, ValidateCreateAlert(bad))
	for _, f := range []string{"clientId", "transactionId", "rule", "severity"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("Expected error on %s, got %v", f, fields)
		}
	}
}

func TestError_Deterministic(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	if err.Error() != "a: first; b: second" {
		t.Errorf("Expected sorted message, got %q", err.Error())
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID(clientID); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := ValidateUUID("nope"); !errors.Is(err, ErrInvalidUUID) {
		t.Errorf("Expected ErrInvalidUUID, got %v", err)
	}
}
