package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todomvc/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todomvc/internal/domain"
)

// parseID extracts an int64 path parameter. A malformed id cannot name a
// stored todo, so it is reported the same way as an unknown one.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeTodoRequest decodes the body into a TodoRequest. On failure it
// writes a 400 response and returns nil.
func decodeTodoRequest(w http.ResponseWriter, r *http.Request) *dto.TodoRequest {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var req dto.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Violations: []domain.Violation{{Field: "body", Message: "invalid JSON"}},
		})
		return nil
	}
	return &req
}
