// Package logging builds the slog loggers used by the todo server and CLI and
// carries them through context.
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
//	ctx = logging.WithLogger(ctx, logger)
//
// Error logs name the operation, the todo id when there is one, and the full
// error chain:
//
//	logger.ErrorContext(ctx, "todo operation failed",
//	    slog.String("operation", "UpdateTodo"),
//	    slog.Int64("id", id),
//	    slog.Any("error", err),
//	)
//
// Behind the HTTP middleware the context logger already carries request_id
// and correlation_id.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New returns a logger writing to w. Level accepts anything slog.Level parses
// ("debug", "WARN", "info+2"); anything else means info. Format "text"
// selects the text handler and every other value JSON. At debug level
// records carry their source location.
//
// Every record passes through the masq redaction hook.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops every record. Constructors fall back
// to it when handed a nil logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
