// Package health keeps the set of readiness checks behind /health/ready.
// The todo server registers its storage backend; the CLI registers the API
// client's circuit breaker.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/todomvc/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds a single checker during CheckAll.
const DefaultCheckTimeout = 2 * time.Second

// Registry runs registered checks in parallel. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
	timeout  time.Duration
}

// New returns an empty registry using DefaultCheckTimeout.
func New() *Registry {
	return NewWithTimeout(DefaultCheckTimeout)
}

// NewWithTimeout returns an empty registry that abandons a check after d.
// A non-positive d lets checks run as long as the caller's context allows.
func NewWithTimeout(d time.Duration) *Registry {
	return &Registry{timeout: d}
}

// Register adds checker.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	r.checkers = append(r.checkers, checker)
	r.mu.Unlock()
}

// CheckAll returns each checker's verdict keyed by name; nil means healthy.
// When two checkers share a name the one registered last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	verdicts := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			verdicts[i] = r.check(ctx, c)
		})
	}
	wg.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = verdicts[i]
	}
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}
