// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The middleware chain processes requests in this order:
//
//	Recovery → RequestID → CorrelationID → AppContext → OpenTelemetry → Logging → Handler
//
// Standard assembles exactly that chain.
//
// Timeout is applied per route group by the router (REST endpoints only) so
// that long-lived websocket connections are not cut off.
package middleware

import (
	"bufio"
	"io"
	"net"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// statusTracker records whether a response has started. It wraps the writer
// with httpsnoop so the wrapped value still satisfies every optional
// interface of the original (http.Hijacker in particular).
type statusTracker struct {
	statusCode    int
	headerWritten bool
}

// track returns a writer that records the first status code written to w.
func track(w http.ResponseWriter) (http.ResponseWriter, *statusTracker) {
	st := &statusTracker{statusCode: http.StatusOK}
	wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				if !st.headerWritten {
					st.statusCode = code
					st.headerWritten = true
				}
				next(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				st.headerWritten = true
				return next(b)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				st.headerWritten = true
				return next(src)
			}
		},
		Hijack: func(next httpsnoop.HijackFunc) httpsnoop.HijackFunc {
			return func() (c net.Conn, rw *bufio.ReadWriter, err error) {
				st.headerWritten = true
				return next()
			}
		},
	})
	return wrapped, st
}
