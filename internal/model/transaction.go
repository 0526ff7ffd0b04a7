package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of movements a client account can record.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionTransfer   TransactionType = "transfer"
)

// TransactionTypes lists every transaction type in display order.
var TransactionTypes = []TransactionType{
	TransactionDeposit,
	TransactionWithdrawal,
	TransactionTransfer,
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransfer:
		return true
	}
	return false
}

// ParseTransactionType accepts any casing of a known type name.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}

// Transaction is a single monetary movement on a client account.
// Amount is an exact decimal; CounterpartyID is only set for transfers.
type Transaction struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	Type           TransactionType `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	CounterpartyID string          `json:"counterpartyId,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Validate checks the record-level invariants of a transaction.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %s", t.Type)
	}
	if t.Amount.IsNegative() {
		return apperrors.ErrNegativeAmount
	}
	if len(t.Currency) != 3 || strings.ToUpper(t.Currency) != t.Currency {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, t.Currency)
	}
	if (t.Type == TransactionTransfer) != (t.CounterpartyID != "") {
		return apperrors.ErrCounterpartyMismatch
	}
	return nil
}

// TransactionFilter narrows transaction listings. Zero fields are ignored;
// From and To are inclusive instants.
type TransactionFilter struct {
	ClientID string
	From     *time.Time
	To       *time.Time
}
