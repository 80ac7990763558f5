// Command server serves the todo REST API, its websocket change feed and
// the static TodoMVC assets until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todomvc/internal/adapters/http"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/events"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage"
	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

const (
	drainTimeout = 15 * time.Second
	flushTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	otel, err := startTelemetry(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer otel.flush(logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	provide(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	repo := do.MustInvoke[storage.Repository](injector)
	defer closeStorage(repo, logger)

	do.MustInvoke[ports.HealthRegistry](injector).Register(repo)
	// Feed subscribers are hijacked connections that Shutdown would not wait for.
	server.OnShutdown(do.MustInvoke[*events.Hub](injector).Close)

	return serve(server, logger)
}

// serve binds the listener up front so a taken port fails startup, then
// blocks until a signal arrives or the server stops on its own.
func serve(server *adapthttp.Server, logger *slog.Logger) error {
	if err := server.Listen(); err != nil {
		return err
	}

	stopped := make(chan error, 1)
	go func() { stopped <- server.Start() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-stopped:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-stopped

	logger.Info("shutdown complete")
	return nil
}

func closeStorage(repo storage.Repository, logger *slog.Logger) {
	if err := repo.Close(); err != nil {
		logger.Error("storage close error", slog.Any("error", err))
	}
}
