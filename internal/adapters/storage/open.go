package storage

import (
	"fmt"

	"github.com/jsamuelsen11/todomvc/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// Repository is a todo repository that reports its own health and holds
// resources released by Close.
type Repository interface {
	ports.TodoRepository
	ports.HealthChecker
	Close() error
}

// Open returns the repository selected by cfg.Driver.
func Open(cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite %s: %w", cfg.Path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
