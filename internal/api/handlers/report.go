package handlers

import (
	"net/http"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/request"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/response"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/service"
	"github.com/go-chi/chi/v5"
)

// ReportHandler handles HTTP requests for report summaries and their stored snapshots.
type ReportHandler struct {
	reportService   *service.ReportService
	snapshotService *service.SnapshotService
}

// NewReportHandler creates a new ReportHandler with the provided service dependencies.
func NewReportHandler(reportService *service.ReportService, snapshotService *service.SnapshotService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		snapshotService: snapshotService,
	}
}

// parseReportRequest reads start_date, end_date and currency from the query string.
func parseReportRequest(r *http.Request) (service.ReportRequest, error) {
	q := r.URL.Query()

	dates, err := request.ParseDateParams(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		return service.ReportRequest{}, err
	}

	currency, err := request.ParseCurrency(q.Get("currency"))
	if err != nil {
		return service.ReportRequest{}, err
	}

	return service.ReportRequest{
		Start:    dates.Start,
		End:      dates.End,
		Currency: currency,
	}, nil
}

// GlobalReport handles GET requests for the report across every client.
// Absent dates default to the current month up to today; the currency falls
// back to the first one seen in the window when the requested one has no transactions.
//
// Endpoint: GET /api/report
// Query params: start_date, end_date (YYYY-MM-DD), currency (ISO code)
// Response: 200 OK with model.ReportSummary
// Error: 400 Bad Request if a parameter is malformed or the range is invalid
// Error: 500 Internal Server Error if the report cannot be built
func (h *ReportHandler) GlobalReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	summary, err := h.reportService.GlobalReport(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// ClientReport handles GET requests for the report of one client.
//
// Endpoint: GET /api/report/client/{uuid}
// Query params: start_date, end_date (YYYY-MM-DD), currency (ISO code)
// Response: 200 OK with model.ReportSummary
// Error: 400 Bad Request if a parameter is malformed or the range is invalid
// Error: 404 Not Found if the client does not exist
// Error: 500 Internal Server Error if the report cannot be built
func (h *ReportHandler) ClientReport(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	req, err := parseReportRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	summary, err := h.reportService.ClientReport(r.Context(), clientID, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Snapshot handles GET requests for the latest pre-calculated report of a client.
//
// Endpoint: GET /api/report/client/{uuid}/snapshot
// Response: 200 OK with model.ReportSnapshot
// Error: 404 Not Found if the client does not exist or no snapshot has been calculated
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	snapshot, err := h.snapshotService.GetSnapshot(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSnapshot)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// RefreshSnapshot handles POST requests recalculating a client's snapshot immediately
// instead of waiting for the scheduled run.
//
// Endpoint: POST /api/report/client/{uuid}/snapshot
// Response: 200 OK with the stored model.ReportSnapshot
// Error: 404 Not Found if the client does not exist
// Error: 500 Internal Server Error if the snapshot cannot be calculated or stored
func (h *ReportHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	snapshot, err := h.snapshotService.Refresh(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSnapshot)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
