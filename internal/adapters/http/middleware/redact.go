package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
)

const redacted = "[REDACTED]"

// HeaderGroup renders headers as a "headers" group for debug logs, sorted by
// name. Values of logging.SensitiveHeaders are masked and repeated headers are
// joined with a comma.
func HeaderGroup(headers http.Header) slog.Attr {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.Sort(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		value := strings.Join(headers[name], ",")
		if logging.SensitiveHeaders[strings.ToLower(name)] {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
