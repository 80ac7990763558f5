package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todomvc/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
)

// records serves req through Logging behind the ID middleware and returns
// every JSON log line keyed by message.
func records(t *testing.T, req *http.Request, h http.HandlerFunc) map[string]map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	middleware.Chain(
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(logger),
	)(h).ServeHTTP(httptest.NewRecorder(), req)

	out := map[string]map[string]any{}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), sc.Text())
		out[rec["msg"].(string)] = rec
	}
	return out
}

func TestLogging_StartAndCompletion(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"text":"Buy milk"}`))
	req.Header.Set("X-Request-ID", "req-log")
	req.Header.Set("X-Correlation-ID", "corr-log")

	got := records(t, req, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	started := got["request started"]
	require.NotNil(t, started)
	assert.Equal(t, "POST", started["method"])
	assert.Equal(t, "/api/todos", started["path"])
	assert.Equal(t, "req-log", started["request_id"])
	assert.Equal(t, "corr-log", started["correlation_id"])

	done := got["request completed"]
	require.NotNil(t, done)
	assert.EqualValues(t, http.StatusCreated, done["status"])
	assert.EqualValues(t, len(`{"id":1}`), done["bytes"])
	assert.Contains(t, done, "duration")
}

func TestLogging_ImplicitStatusIs200(t *testing.T) {
	t.Parallel()

	got := records(t, httptest.NewRequest(http.MethodGet, "/api/todos", http.NoBody),
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

	assert.EqualValues(t, http.StatusOK, got["request completed"]["status"])
}

func TestLogging_HandlersLogWithRequestFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/3", http.NoBody)
	req.Header.Set("X-Request-ID", "req-handler")

	got := records(t, req, func(_ http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("todo deleted")
	})

	rec := got["todo deleted"]
	require.NotNil(t, rec, "handler log missing; the request logger is not in the context")
	assert.Equal(t, "req-handler", rec["request_id"])
}

func TestLogging_DebugHeadersMasked(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/todos/events", http.NoBody)
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Cookie", "session=abc123")

	got := records(t, req, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})

	headers, ok := got["request headers"]["headers"].(map[string]any)
	require.True(t, ok, "request headers record missing a headers group")
	assert.Equal(t, "websocket", headers["Upgrade"])
	assert.NotContains(t, headers["Cookie"], "abc123")
}
