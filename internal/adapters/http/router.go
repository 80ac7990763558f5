// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todomvc/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/middleware"
)

// Routes groups the handlers mounted by NewRouter. Events and Static are
// optional; a zero RequestTimeout disables the REST timeout.
type Routes struct {
	Todos          *handlers.TodoHandler
	Health         *handlers.HealthHandler
	Static         *handlers.StaticHandler
	Events         http.Handler
	RequestTimeout time.Duration
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(routes Routes, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", routes.Health.Liveness)
	r.Get("/health/ready", routes.Health.Readiness)

	r.Route("/api/todos", func(r chi.Router) {
		// The change feed is long-lived, so it sits outside the timeout group.
		if routes.Events != nil {
			r.Handle("/events", routes.Events)
		}

		r.Group(func(r chi.Router) {
			if routes.RequestTimeout > 0 {
				r.Use(middleware.Timeout(routes.RequestTimeout))
			}
			r.Get("/", routes.Todos.ListTodos)
			r.Post("/", routes.Todos.CreateTodo)
			r.Put("/{id}", routes.Todos.UpdateTodo)
			r.Delete("/{id}", routes.Todos.DeleteTodo)
		})
	})

	if routes.Static != nil {
		r.Get("/", routes.Static.Root)
		r.Get("/*", routes.Static.Files)
	}

	return r
}
