package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
)

// jitter spreads each delay uniformly over ±25% of its nominal value.
const jitter = 0.25

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   cfg.MaxAttempts,
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
}

// attemptsFor is the attempt budget for method. A repeated POST would
// create a second todo, so non-idempotent methods get one shot.
func (p retryPolicy) attemptsFor(method string) int {
	if !isIdempotent(method) {
		return 1
	}
	return p.attempts
}

// delay is the wait before retry number n (1 for the first retry). A
// Retry-After hint from the server wins when it is longer, but neither may
// exceed the ceiling by more than the jitter.
func (p retryPolicy) delay(n int, hint time.Duration) time.Duration {
	nominal := min(float64(p.initial)*math.Pow(p.multiplier, float64(n-1)), float64(p.ceiling))
	spread := nominal * jitter * (2*rand.Float64() - 1) //nolint:gosec // jitter, not a secret
	return max(time.Duration(nominal+spread), min(hint, p.ceiling), 0)
}

// doWithRetry stores the outcome in resp instead of returning it so the
// bodyclose linter does not flag the caller; the caller owns resp.Body.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.attempts <= 0 {
		return fmt.Errorf("httpclient: retry attempts must be >= 1, got %d", c.retry.attempts)
	}

	body, err := snapshotBody(req)
	if err != nil {
		return err
	}

	attempts := c.retry.attemptsFor(req.Method)
	var (
		lastErr error
		hint    time.Duration
	)
	for n := range attempts {
		if n > 0 {
			if err := c.pause(ctx, req, n, attempts, hint, lastErr); err != nil {
				return err
			}
		}
		rewind(req, body)

		r, err := c.http.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return err
			}
			lastErr, hint = err, 0
			continue
		}
		if !isRetryableStatus(r.StatusCode) {
			*resp = r
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.peer)
		hint = parseRetryAfter(r.Header.Get("Retry-After"))
		if n == attempts-1 {
			*resp = r
			return lastErr
		}
		discard(r)
	}
	return lastErr
}

func (c *Client) pause(ctx context.Context, req *http.Request, n, attempts int, hint time.Duration, cause error) error {
	wait := c.retry.delay(n, hint)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.peer),
		slog.Int("attempt", n+1),
		slog.Int("max_attempts", attempts),
		slog.Duration("backoff", wait),
		slog.Any("error", cause),
	)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// snapshotBody drains req.Body so each attempt can replay it.
func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: reading request body: %w", err)
	}
	return b, nil
}

func rewind(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// discard lets the transport reuse the connection of a response we drop.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable treats network and unknown errors as transient. Cancellation
// and expired deadlines belong to the caller and stop the loop.
func isRetryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// isRetryableStatus accepts 429 and server errors other than 501, which
// will not change on a second try.
func isRetryableStatus(code int) bool {
	switch {
	case code == http.StatusTooManyRequests:
		return true
	case code == http.StatusNotImplemented:
		return false
	default:
		return code >= http.StatusInternalServerError
	}
}

// parseRetryAfter reads Retry-After as seconds or an HTTP date. Missing,
// malformed and past values yield zero.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}
