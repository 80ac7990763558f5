package ports

import "context"

// HealthChecker is a dependency whose failure makes the service not ready.
// The todo server registers its storage backend; the CLI checks the remote
// todo API through the same interface.
type HealthChecker interface {
	// Name keys the checker in readiness output, e.g. "sqlite" or "todo-api".
	Name() string

	// HealthCheck returns nil when the dependency is usable. It must give up
	// when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for GET /health/ready.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and maps its name to its error, nil
	// meaning healthy.
	CheckAll(ctx context.Context) map[string]error
}
