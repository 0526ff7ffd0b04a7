package request

// CreateClientRequest is the body of POST /api/client.
type CreateClientRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Country   string `json:"country" validate:"required,len=2,uppercase"`
	RiskLevel string `json:"riskLevel" validate:"required,oneof=low medium high"`
	KYCStatus string `json:"kycStatus" validate:"omitempty,oneof=pending approved rejected"`
}
