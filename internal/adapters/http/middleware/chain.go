package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todomvc/internal/platform/telemetry"
)

// Chain composes middleware so that the first argument is outermost.
// Nil entries are skipped, which lets callers switch layers off inline.
//
//	Chain(Recovery(l), RequestID(), Logging(l))(h) == Recovery(l)(RequestID()(Logging(l)(h)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] == nil {
				continue
			}
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Standard is the inbound chain the todo server mounts in front of every
// route. RequestID must precede CorrelationID, which falls back to it, and
// AppContext must precede the handlers that stage writes.
func Standard(logger *slog.Logger, metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		AppContext(),
		OpenTelemetry(metrics),
		Logging(logger),
	)
}
