package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todomvc/internal/adapters/http"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/events"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage"
	"github.com/jsamuelsen11/todomvc/internal/app"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/platform/health"
	"github.com/jsamuelsen11/todomvc/internal/platform/telemetry"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// provide registers the server's object graph. Everything is lazy; invoking
// *adapthttp.Server builds it all.
func provide(i *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(i, func(do.Injector) (storage.Repository, error) {
		return openStorage(cfg.Storage, logger)
	})
	do.Provide(i, func(do.Injector) (*events.Hub, error) {
		return events.NewHub(logger), nil
	})
	do.Provide(i, func(do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(i, func(i do.Injector) (ports.TodoService, error) {
		return app.NewTodoService(
			do.MustInvoke[storage.Repository](i),
			todo.NewValidator(cfg.Todo.MaxTextLength),
			do.MustInvoke[*events.Hub](i),
			logger,
			app.WithMetrics(do.MustInvoke[*telemetry.Metrics](i)),
		), nil
	})

	do.Provide(i, func(i do.Injector) (http.Handler, error) {
		routes := adapthttp.Routes{
			Todos:          handlers.NewTodoHandler(do.MustInvoke[ports.TodoService](i)),
			Health:         handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			Static:         handlers.NewStaticHandler(cfg.Server.StaticDir),
			Events:         do.MustInvoke[*events.Hub](i),
			RequestTimeout: cfg.Server.RequestTimeout,
		}
		chain := middleware.Standard(logger, do.MustInvoke[*telemetry.Metrics](i))
		return adapthttp.NewRouter(routes, chain), nil
	})

	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[http.Handler](i), logger), nil
	})
}

// openStorage opens the configured driver and seeds an empty store.
func openStorage(cfg config.StorageConfig, logger *slog.Logger) (storage.Repository, error) {
	repo, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	n, err := storage.Seed(context.Background(), repo, cfg.Seed)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	logger.Info("storage ready", slog.String("driver", cfg.Driver), slog.Int("seeded", n))
	return repo, nil
}
