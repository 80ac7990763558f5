package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todomvc/internal/domain"
)

// Error messages returned in ErrorResponse.Error.
const (
	MsgInvalidData = "data is not valid"
	MsgInvalidID   = "invalid id"
	MsgUnavailable = "service unavailable"
	MsgInternal    = "internal error"
	MsgTimeout     = "request timed out"
)

// ErrorResponse is the JSON body of every non-2xx API response. Errors is
// set only for validation failures.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Errors []domain.Violation `json:"errors,omitempty"`
}

// NewErrorResponse maps a domain error to a status code and body.
// Validation failures and unknown ids are both client errors (400).
func NewErrorResponse(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: MsgInvalidData, Errors: verr.Violations}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: MsgInvalidData}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusBadRequest, ErrorResponse{Error: MsgInvalidID}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: MsgUnavailable}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgInternal}
	}
}

// WriteErrorResponse writes the error body for err. Server errors are logged
// with the underlying cause, which is never sent to the client.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := NewErrorResponse(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}
