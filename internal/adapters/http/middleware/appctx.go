package middleware

import (
	"net/http"
	"strings"

	appctx "github.com/jsamuelsen11/todomvc/internal/app/context"
)

// AppContext installs a fresh appctx.RequestContext for each REST request so
// the todo service can stage and commit its writes. Websocket upgrades for
// the change feed never write and live far longer than a request, so they
// pass through untouched.
//
// It runs after CorrelationID, so the RequestContext already carries the
// request's IDs.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isWebsocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := appctx.WithRequestContext(r.Context(), appctx.New(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
