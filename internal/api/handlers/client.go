package handlers

import (
	"net/http"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/response"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/service"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/validation"
	"github.com/go-chi/chi/v5"
)

// ClientHandler handles HTTP requests for client endpoints.
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler with the provided service dependency.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Clients handles GET requests to list every monitored client.
//
// Endpoint: GET /api/client
// Response: 200 OK with array of model.Client
// Error: 500 Internal Server Error if retrieval fails
func (h *ClientHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.GetClients(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveClients.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, clients)
}

// GetClient handles GET requests to retrieve a single client.
//
// Endpoint: GET /api/client/{uuid}
// Response: 200 OK with model.Client
// Error: 400 Bad Request if client ID is invalid (validated by middleware)
// Error: 404 Not Found if client not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	client, err := h.clientService.GetClient(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveClient)
		return
	}

	response.RespondJSON(w, http.StatusOK, client)
}

// CreateClient handles POST requests to register a client.
//
// Endpoint: POST /api/client
// Request Body: CreateClientRequest (name, country, riskLevel, kycStatus)
// Response: 201 Created with model.Client
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateClient(req); err != nil {
		respondServiceError(w, err, apperrors.ErrInvalidInput)
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateClient)
		return
	}

	response.RespondJSON(w, http.StatusCreated, client)
}
