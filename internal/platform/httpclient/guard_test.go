package httpclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/todomvc/internal/platform/httpclient"
)

func TestGuard_PassesIDHeaders(t *testing.T) {
	t.Parallel()

	client := httpclient.New(testConfig("http://todo.invalid"), "todo-api", nil, testLogger())

	ctx := httpclient.WithRequestID(context.Background(), "req-7")
	ctx = httpclient.WithCorrelationID(ctx, "corr-7")

	var got http.Header
	err := client.Guard(ctx, "WS /api/todos/events", func(_ context.Context, h http.Header) error {
		got = h
		return nil
	})
	if err != nil {
		t.Fatalf("Guard() error = %v", err)
	}
	if got.Get("X-Request-ID") != "req-7" {
		t.Errorf("X-Request-ID = %q, want %q", got.Get("X-Request-ID"), "req-7")
	}
	if got.Get("X-Correlation-ID") != "corr-7" {
		t.Errorf("X-Correlation-ID = %q, want %q", got.Get("X-Correlation-ID"), "corr-7")
	}
}

func TestGuard_FailuresOpenBreakerForDo(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	client := httpclient.New(cfg, "todo-api", nil, testLogger())

	dialErr := errors.New("handshake refused")
	err := client.Guard(context.Background(), "WS /api/todos/events", func(context.Context, http.Header) error {
		return dialErr
	})
	if !errors.Is(err, dialErr) {
		t.Fatalf("Guard() error = %v, want %v", err, dialErr)
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/api/todos", http.NoBody)
	resp, err := client.Do(context.Background(), req)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Do() error = %v, want gobreaker.ErrOpenState", err)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server hits = %d, want 0 while the breaker is open", n)
	}
	if client.HealthCheck(context.Background()) == nil {
		t.Error("HealthCheck() = nil with the breaker open")
	}
}

func TestGuard_OpenBreakerSkipsFn(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://todo.invalid")
	cfg.CircuitBreaker.MaxFailures = 1
	client := httpclient.New(cfg, "todo-api", nil, testLogger())

	_ = client.Guard(context.Background(), "dial", func(context.Context, http.Header) error {
		return errors.New("down")
	})

	called := false
	err := client.Guard(context.Background(), "dial", func(context.Context, http.Header) error {
		called = true
		return nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Guard() error = %v, want gobreaker.ErrOpenState", err)
	}
	if called {
		t.Error("fn ran while the breaker is open")
	}
}
