package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todomvc/internal/platform/httpclient"
)

// Requester runs one JSON round trip against the todo API and turns any
// answer other than the expected status into a domain error.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester wraps client.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// BaseURL is the root of the todo API.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// Do sends method to path with in as the JSON body (nil sends none) and
// decodes a wantStatus answer into out (nil skips decoding).
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, in, out any) error {
	req, err := r.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.closeBody(ctx, resp)
	}

	switch {
	case resp != nil && resp.StatusCode != wantStatus:
		// Also covers a 5xx that exhausted its retries: the body says more
		// than the retry error does.
		r.logStatus(ctx, req, resp.StatusCode, wantStatus)
		return TranslateHTTPError(resp)
	case err != nil:
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	case out == nil:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

func (r *Requester) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// logStatus keeps 4xx answers, such as a rejected todo text, at debug: they
// are answers, not faults.
func (r *Requester) logStatus(ctx context.Context, req *http.Request, got, want int) {
	level := slog.LevelError
	if got < http.StatusInternalServerError {
		level = slog.LevelDebug
	}
	r.logger.Log(ctx, level, "unexpected status",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", got),
		slog.Int("want_status", want),
	)
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}
