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

// AlertHandler handles HTTP requests for alert endpoints, including the two
// lifecycle transitions.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler with the provided service dependency.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// Alerts handles GET requests to list alerts, newest first.
//
// Endpoint: GET /api/alert
// Query params: client_id (UUID), status (new|in_analysis|resolved), severity (low|medium|high|critical)
// Response: 200 OK with array of model.Alert
// Error: 400 Bad Request if a filter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *AlertHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := request.ParseAlertFilters(q.Get("client_id"), q.Get("status"), q.Get("severity"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid alert filter", err.Error())
		return
	}

	alerts, err := h.alertService.GetAlerts(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAlerts)
		return
	}

	response.RespondJSON(w, http.StatusOK, alerts)
}

// GetAlert handles GET requests to retrieve a single alert.
//
// Endpoint: GET /api/alert/{uuid}
// Response: 200 OK with model.Alert
// Error: 400 Bad Request if alert ID is invalid (validated by middleware)
// Error: 404 Not Found if alert not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AlertHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "uuid")

	alert, err := h.alertService.GetAlert(r.Context(), alertID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAlert)
		return
	}

	response.RespondJSON(w, http.StatusOK, alert)
}

// CreateAlert handles POST requests to raise an alert against a transaction.
// The alert always starts in status new.
//
// Endpoint: POST /api/alert
// Request Body: CreateAlertRequest (clientId, transactionId, rule, severity)
// Response: 201 Created with model.Alert
// Error: 400 Bad Request if validation fails or the transaction belongs to another client
// Error: 404 Not Found if the transaction does not exist
// Error: 500 Internal Server Error if creation fails
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAlertRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAlert(req); err != nil {
		respondServiceError(w, err, apperrors.ErrInvalidInput)
		return
	}

	alert, err := h.alertService.CreateAlert(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateAlert)
		return
	}

	response.RespondJSON(w, http.StatusCreated, alert)
}

// StartAnalysis handles POST requests moving a new alert into analysis.
//
// Endpoint: POST /api/alert/{uuid}/start-analysis
// Response: 200 OK with the stored model.Alert
// Error: 404 Not Found if alert not found
// Error: 409 Conflict if the alert is not new or another analyst moved it first
// Error: 500 Internal Server Error if the transition cannot be stored
func (h *AlertHandler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "uuid")

	alert, err := h.alertService.StartAnalysis(r.Context(), alertID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToTransitionAlert)
		return
	}

	response.RespondJSON(w, http.StatusOK, alert)
}

// Resolve handles POST requests closing an alert that is in analysis.
// Blank resolvedBy or resolution is rejected after the status check.
//
// Endpoint: POST /api/alert/{uuid}/resolve
// Request Body: ResolveAlertRequest (resolvedBy, resolution)
// Response: 200 OK with the stored model.Alert
// Error: 400 Bad Request if the body is invalid or a field is blank
// Error: 404 Not Found if alert not found
// Error: 409 Conflict if the alert is not in analysis or another analyst moved it first
// Error: 500 Internal Server Error if the transition cannot be stored
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ResolveAlertRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	alert, err := h.alertService.Resolve(r.Context(), alertID, req.ResolvedBy, req.Resolution)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToTransitionAlert)
		return
	}

	response.RespondJSON(w, http.StatusOK, alert)
}
