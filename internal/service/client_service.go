package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/model"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/repository"
)

// ClientService handles client-related business logic operations.
type ClientService struct {
	clientRepo *repository.ClientRepository
}

// NewClientService creates a new ClientService with the provided repository dependencies.
func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// GetClients retrieves every monitored client.
func (s *ClientService) GetClients(ctx context.Context) ([]model.Client, error) {
	return s.clientRepo.GetClients(ctx)
}

// GetClient retrieves a single client by ID.
// Returns apperrors.ErrClientNotFound if the client does not exist.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	return s.clientRepo.GetClient(ctx, clientID)
}

// CreateClient registers a new client. The request must already be validated;
// an absent KYC status starts as pending.
func (s *ClientService) CreateClient(ctx context.Context, req request.CreateClientRequest) (model.Client, error) {
	kyc := model.KYCStatus(req.KYCStatus)
	if kyc == "" {
		kyc = model.KYCPending
	}

	client := model.Client{
		ID:        newID(),
		Name:      strings.TrimSpace(req.Name),
		Country:   req.Country,
		RiskLevel: model.Severity(req.RiskLevel),
		KYCStatus: kyc,
		CreatedAt: now(),
	}

	if err := s.clientRepo.InsertClient(ctx, client); err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
