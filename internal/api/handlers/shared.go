package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/response"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/validation"
)

const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields and trailing
// data are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is empty")
		}
		return v, fmt.Errorf("malformed JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}

// errorStatuses maps sentinel errors to the status they are reported with.
// The first match wins, so the more specific sentinels come first.
var errorStatuses = []struct {
	err    error
	status int
}{
	{apperrors.ErrClientNotFound, http.StatusNotFound},
	{apperrors.ErrTransactionNotFound, http.StatusNotFound},
	{apperrors.ErrAlertNotFound, http.StatusNotFound},
	{apperrors.ErrSnapshotNotFound, http.StatusNotFound},

	{apperrors.ErrStaleAlert, http.StatusConflict},
	{apperrors.ErrIllegalTransition, http.StatusConflict},
	{apperrors.ErrDuplicateEntry, http.StatusConflict},

	{apperrors.ErrInvalidRange, http.StatusBadRequest},
	{apperrors.ErrInvalidInput, http.StatusBadRequest},
	{apperrors.ErrInvalidClientID, http.StatusBadRequest},
	{apperrors.ErrInvalidCurrency, http.StatusBadRequest},
	{apperrors.ErrNegativeAmount, http.StatusBadRequest},
	{apperrors.ErrCounterpartyMismatch, http.StatusBadRequest},
	{apperrors.ErrInconsistentResolution, http.StatusBadRequest},
}

// respondServiceError writes err with the status its sentinel maps to.
// Validation errors carry their field map as details. Anything unmapped is a
// 500 reported under the fallback message.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}

	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			response.RespondError(w, m.status, m.err.Error(), err.Error())
			return
		}
	}

	response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
}
