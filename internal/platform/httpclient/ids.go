package httpclient

import (
	"context"
	"net/http"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// Header names carried on every outbound request.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// WithRequestID stores the request ID that outbound calls made with ctx
// will send.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the correlation ID that outbound calls made with
// ctx will send.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func injectIDs(ctx context.Context, h http.Header) {
	for key, header := range map[any]string{
		requestIDKey{}:     HeaderRequestID,
		correlationIDKey{}: HeaderCorrelationID,
	} {
		if id, _ := ctx.Value(key).(string); id != "" {
			h.Set(header, id)
		}
	}
}
