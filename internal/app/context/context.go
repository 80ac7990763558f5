// Package appctx provides a per-request unit of work for the application
// layer. Reads are memoized by key, and writes are staged as domain.Actions
// that run in order on Commit, with completed actions rolled back in reverse
// when a later one fails.
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/todomvc/internal/domain"
)

var _ domain.WriteStager = (*RequestContext)(nil)

var (
	// ErrAlreadyCommitted is returned when staging or committing after Commit.
	ErrAlreadyCommitted = errors.New("appctx: request context already committed")

	// ErrNilAction is returned when a nil action is staged or executed.
	ErrNilAction = errors.New("appctx: nil action")

	// ErrTypeMismatch is returned by GetOrFetch when a cached value has a
	// different type than requested.
	ErrTypeMismatch = errors.New("appctx: cached value type mismatch")
)

type ctxKey struct{}

// RequestContext holds the read cache and the write queue for one request.
// It embeds the request's context.Context so it can be passed where a
// context is expected.
type RequestContext struct {
	context.Context

	mu        sync.Mutex
	cache     map[string]cached
	queue     []domain.Action
	committed bool
}

type cached struct {
	value any
	err   error
}

// New creates an empty RequestContext bound to ctx.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cached),
	}
}

// WithRequestContext stores rc in ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or a fresh one bound
// to ctx when none was installed (e.g. in tests or background jobs).
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(ctxKey{}).(*RequestContext); ok && !rc.isCommitted() {
		return rc
	}
	return New(ctx)
}

// GetOrFetch returns the cached value for key, calling fetch on the first
// miss. Errors are cached too, so a failed lookup is not retried within the
// same request.
func GetOrFetch[T any](rc *RequestContext, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	rc.mu.Lock()
	entry, ok := rc.cache[key]
	rc.mu.Unlock()

	if !ok {
		val, err := fetch(rc.Context)
		rc.mu.Lock()
		rc.cache[key] = cached{value: val, err: err}
		rc.mu.Unlock()
		return val, err
	}

	if entry.err != nil {
		return zero, entry.err
	}
	v, ok := entry.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
	}
	return v, nil
}

func (rc *RequestContext) isCommitted() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.committed
}
