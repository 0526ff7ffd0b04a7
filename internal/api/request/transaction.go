package request

// CreateTransactionRequest is the body of POST /api/transaction.
// Amount is a decimal string so no precision is lost in transit.
type CreateTransactionRequest struct {
	ClientID       string `json:"clientId" validate:"required,uuid"`
	Type           string `json:"type" validate:"required,oneof=deposit withdrawal transfer"`
	Amount         string `json:"amount" validate:"required"`
	Currency       string `json:"currency" validate:"required,len=3,uppercase"`
	CounterpartyID string `json:"counterpartyId,omitempty" validate:"omitempty,uuid"`
	Timestamp      string `json:"timestamp,omitempty"`
}
