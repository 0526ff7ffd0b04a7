package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
	"github.com/shopspring/decimal"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	// Simple creation with defaults
//	client := testutil.NewClient().Build(t, db)
//
//	// Customized client
//	client := testutil.NewClient().
//	    WithName("Ana Souza").
//	    WithRiskLevel(model.SeverityHigh).
//	    Build(t, db)
type ClientBuilder struct {
	ID        string
	Name      string
	Country   string
	RiskLevel model.Severity
	KYCStatus model.KYCStatus
	CreatedAt time.Time
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:        MakeID(),
		Name:      MakeClientName("Test Client"),
		Country:   RandomCountry(),
		RiskLevel: model.SeverityLow,
		KYCStatus: model.KYCApproved,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id string) *ClientBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// WithRiskLevel sets a custom risk level.
func (b *ClientBuilder) WithRiskLevel(level model.Severity) *ClientBuilder {
	b.RiskLevel = level
	return b
}

// WithKYCStatus sets a custom KYC status.
func (b *ClientBuilder) WithKYCStatus(status model.KYCStatus) *ClientBuilder {
	b.KYCStatus = status
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	c := model.Client{
		ID:        b.ID,
		Name:      b.Name,
		Country:   b.Country,
		RiskLevel: b.RiskLevel,
		KYCStatus: b.KYCStatus,
		CreatedAt: b.CreatedAt,
	}

	_, err := db.Exec(`
		INSERT INTO client (id, name, country, risk_level, kyc_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Country, c.RiskLevel, c.KYCStatus, repository.FormatTime(c.CreatedAt))
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return c
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(client.ID).
//	    WithType(model.TransactionWithdrawal).
//	    WithAmount("250.00").
//	    WithCurrency("USD").
//	    WithTimestamp(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID             string
	ClientID       string
	Type           model.TransactionType
	Amount         decimal.Decimal
	Currency       string
	CounterpartyID string
	Timestamp      time.Time
}

// NewTransaction creates a TransactionBuilder for the given client with sensible defaults:
// a BRL deposit of 100.00 made an hour ago.
func NewTransaction(clientID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		ClientID:  clientID,
		Type:      model.TransactionDeposit,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "BRL",
		Timestamp: time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(t model.TransactionType) *TransactionBuilder {
	b.Type = t
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithCurrency sets the currency code.
func (b *TransactionBuilder) WithCurrency(currency string) *TransactionBuilder {
	b.Currency = currency
	return b
}

// Transfer makes the transaction a transfer to counterpartyID.
func (b *TransactionBuilder) Transfer(counterpartyID string) *TransactionBuilder {
	b.Type = model.TransactionTransfer
	b.CounterpartyID = counterpartyID
	return b
}

// WithTimestamp sets the instant the transaction happened.
func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	b.Timestamp = ts.UTC()
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:             b.ID,
		ClientID:       b.ClientID,
		Type:           b.Type,
		Amount:         b.Amount,
		Currency:       b.Currency,
		CounterpartyID: b.CounterpartyID,
		Timestamp:      b.Timestamp,
	}

	var counterparty any
	if tx.CounterpartyID != "" {
		counterparty = tx.CounterpartyID
	}

	_, err := db.Exec(`
		INSERT INTO "transaction" (id, client_id, type, amount, currency, counterparty_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tx.ID, tx.ClientID, tx.Type, tx.Amount.String(), tx.Currency, counterparty, repository.FormatTime(tx.Timestamp))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// AlertBuilder provides a fluent interface for creating test alerts.
// Resolved alerts go through the repository so their resolution is sealed
// exactly as in production.
//
// Example usage:
//
//	alert := testutil.NewAlert(client.ID, tx.ID).
//	    WithSeverity(model.SeverityCritical).
//	    InAnalysis().
//	    Build(t, db)
type AlertBuilder struct {
	ID            string
	ClientID      string
	TransactionID string
	Rule          string
	Severity      model.Severity
	Status        model.AlertStatus
	CreatedAt     time.Time
	ResolvedBy    string
	Resolution    string
}

// NewAlert creates an AlertBuilder for the given client and transaction with
// sensible defaults: a medium severity New alert raised an hour ago.
func NewAlert(clientID, transactionID string) *AlertBuilder {
	return &AlertBuilder{
		ID:            MakeID(),
		ClientID:      clientID,
		TransactionID: transactionID,
		Rule:          "Large cash deposit",
		Severity:      model.SeverityMedium,
		Status:        model.AlertNew,
		CreatedAt:     time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond),
	}
}

// WithRule sets the detection rule name.
func (b *AlertBuilder) WithRule(rule string) *AlertBuilder {
	b.Rule = rule
	return b
}

// WithSeverity sets the severity.
func (b *AlertBuilder) WithSeverity(s model.Severity) *AlertBuilder {
	b.Severity = s
	return b
}

// WithCreatedAt sets the instant the alert was raised.
func (b *AlertBuilder) WithCreatedAt(at time.Time) *AlertBuilder {
	b.CreatedAt = at.UTC()
	return b
}

// InAnalysis puts the alert in analysis.
func (b *AlertBuilder) InAnalysis() *AlertBuilder {
	b.Status = model.AlertInAnalysis
	return b
}

// Resolved resolves the alert by the given analyst with the given note.
func (b *AlertBuilder) Resolved(by, resolution string) *AlertBuilder {
	b.Status = model.AlertResolved
	b.ResolvedBy = by
	b.Resolution = resolution
	return b
}

// Build creates the alert in the database and returns it.
func (b *AlertBuilder) Build(t *testing.T, db *sql.DB) model.Alert {
	t.Helper()

	a := model.Alert{
		ID:            b.ID,
		ClientID:      b.ClientID,
		TransactionID: b.TransactionID,
		Rule:          b.Rule,
		Severity:      b.Severity,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
	if b.Status == model.AlertResolved {
		at := b.CreatedAt.Add(30 * time.Minute)
		by, text := b.ResolvedBy, b.Resolution
		a.ResolvedAt, a.ResolvedBy, a.Resolution = &at, &by, &text
	}

	if err := NewAlertRepository(t, db).InsertAlert(t.Context(), a); err != nil {
		t.Fatalf("Failed to create test alert: %v", err)
	}

	return a
}
