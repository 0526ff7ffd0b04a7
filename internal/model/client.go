package model

import "time"

// KYCStatus is the outcome of a client's know-your-customer review.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// Client is a monitored account holder. Transactions and alerts hang off a client.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	RiskLevel Severity  `json:"riskLevel"`
	KYCStatus KYCStatus `json:"kycStatus"`
	CreatedAt time.Time `json:"createdAt"`
}
