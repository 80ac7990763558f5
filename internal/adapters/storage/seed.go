// Package storage holds helpers shared by the storage adapters.
package storage

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// Seed inserts one active todo per text when repo is empty. It returns the
// number of todos inserted.
func Seed(ctx context.Context, repo ports.TodoRepository, texts []string) (int, error) {
	if len(texts) == 0 {
		return 0, nil
	}

	existing, err := repo.ListTodos(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, text := range texts {
		if _, err := repo.InsertTodo(ctx, &todo.Todo{Text: text}); err != nil {
			return i, fmt.Errorf("seed %q: %w", text, err)
		}
	}
	return len(texts), nil
}
