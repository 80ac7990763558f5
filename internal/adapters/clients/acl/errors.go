// Package acl is the client-side adapter for the todo REST API. It turns
// domain calls into HTTP requests, and HTTP responses (including the API's
// 400 error bodies) back into domain values and errors. Wire shapes live in
// the acl/todo subpackage.
package acl

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/todomvc/internal/adapters/clients/acl/todo"
	"github.com/jsamuelsen11/todomvc/internal/domain"
)

// maxErrorBodySize caps how much of an error body is read (1 MiB).
const maxErrorBodySize = 1 << 20

// msgInvalidID is the API's answer for an unknown or malformed id.
const msgInvalidID = "invalid id"

// statusErrors are the domain errors behind each status the API uses.
var statusErrors = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
}

// TranslateHTTPError maps an API error response to a domain error.
//
// The API answers every client error with 400. A body of
// {"error":"invalid id"} becomes domain.ErrNotFound and a body carrying
// field violations becomes a *domain.ValidationError. Server errors wrap
// domain.ErrUnavailable.
func TranslateHTTPError(resp *http.Response) error {
	body := parseErrorBody(resp)
	detail := cmp.Or(body.Error, http.StatusText(resp.StatusCode))

	if resp.StatusCode == http.StatusBadRequest {
		switch {
		case body.Error == msgInvalidID:
			return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)
		case len(body.Errors) > 0:
			return &domain.ValidationError{Violations: todo.ToDomainViolations(body.Errors)}
		}
	}

	sentinel, ok := statusErrors[resp.StatusCode]
	if !ok && resp.StatusCode >= http.StatusInternalServerError {
		sentinel, ok = domain.ErrUnavailable, true
	}
	if !ok {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
	return fmt.Errorf("%s: %w", detail, sentinel)
}

// parseErrorBody decodes a JSON error body. Anything else, including a
// truncated body, yields the zero value.
func parseErrorBody(resp *http.Response) todo.ErrorDTO {
	var body todo.ErrorDTO
	if resp.Body == nil || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return body
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&body); err != nil {
		return todo.ErrorDTO{}
	}
	return body
}
