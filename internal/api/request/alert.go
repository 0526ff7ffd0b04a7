package request

// CreateAlertRequest is the body of POST /api/alert. New alerts always start in status new.
type CreateAlertRequest struct {
	ClientID      string `json:"clientId" validate:"required,uuid"`
	TransactionID string `json:"transactionId" validate:"required,uuid"`
	Rule          string `json:"rule" validate:"required,max=200"`
	Severity      string `json:"severity" validate:"required,oneof=low medium high critical"`
}

// ResolveAlertRequest is the body of POST /api/alert/{uuid}/resolve.
type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolvedBy"`
	Resolution string `json:"resolution"`
}
