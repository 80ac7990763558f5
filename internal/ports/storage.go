package ports

import (
	"context"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// TodoRepository defines the storage port for todos.
// Implemented by the memory and sqlite adapters; called by the application layer.
// Each method is atomic on its own; callers get no cross-call transaction.
type TodoRepository interface {
	// ListTodos returns all todos ordered by ID.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// FindTodo returns the todo with the given ID.
	// Returns domain.ErrNotFound if it does not exist.
	FindTodo(ctx context.Context, id int64) (*todo.Todo, error)

	// InsertTodo stores a new todo, ignoring any ID on the input, and
	// returns it with the assigned ID.
	InsertTodo(ctx context.Context, todo *todo.Todo) (*todo.Todo, error)

	// UpdateTodo overwrites text and completed for the given ID.
	// Returns domain.ErrNotFound if it does not exist.
	UpdateTodo(ctx context.Context, id int64, todo *todo.Todo) (*todo.Todo, error)

	// DeleteTodo removes the todo with the given ID.
	// Returns domain.ErrNotFound if it does not exist.
	DeleteTodo(ctx context.Context, id int64) error
}

// ChangePublisher receives every successful storage mutation.
type ChangePublisher interface {
	Publish(ctx context.Context, change todo.Change)
}
