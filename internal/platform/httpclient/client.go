// Package httpclient is the outbound HTTP stack of the todo client. Every
// call to the todo API passes, in order, through a circuit breaker, a token
// bucket, ID header injection, a client span and a retry loop that only
// repeats idempotent methods.
//
//	client := httpclient.New(&cfg.Client, "todo-api", metrics, logger)
//	resp, err := client.Do(ctx, req)
//
// Requests that are not plain round trips, like the websocket handshake of
// the change feed, go through Guard so they share the breaker and limiter.
package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/platform/telemetry"
)

// Client sends requests to one downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	peer    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil disables limiting
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a Client for the service called peer. A nil metrics skips
// metric recording.
func New(cfg *config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		peer:    peer,
		retry:   newRetryPolicy(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	}
	return c
}

// Do sends req and returns the first non-retryable response. When every
// attempt ends on a retryable status the last response comes back together
// with an error and its body is still open; the caller closes it in both
// cases. A nil response means the breaker, the limiter or the network
// failed.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	err := c.guarded(ctx, func() error {
		injectIDs(ctx, req.Header)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		req = req.WithContext(spanCtx)
		err := c.doWithRetry(spanCtx, req, &resp)
		endSpan(span, resp, err)
		return err
	})

	c.recordMetrics(ctx, req.Method, start, resp, err)
	return resp, err
}

// Guard runs fn behind the breaker and the limiter. fn receives the headers
// it must send: the request and correlation IDs plus trace context. Its
// error counts as a breaker failure and is never retried.
func (c *Client) Guard(ctx context.Context, name string, fn func(ctx context.Context, h http.Header) error) error {
	return c.guarded(ctx, func() error {
		spanCtx, span := c.startNamedSpan(ctx, name)
		defer span.End()

		h := make(http.Header)
		injectIDs(spanCtx, h)
		injectTrace(spanCtx, h)

		err := fn(spanCtx, h)
		endSpan(span, nil, err)
		return err
	})
}

func (c *Client) guarded(ctx context.Context, fn func() error) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, fn()
	})
	return err
}

// BaseURL is the configured root of the downstream API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name identifies the downstream service, e.g. "todo-api".
func (c *Client) Name() string {
	return c.peer
}

// HealthCheck maps the breaker state to a health verdict without touching
// the network: closed is healthy, half-open is degraded and open is failing.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.peer)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.peer, state)
	}
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
