package ports

import (
	"context"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// TodoService defines the service port for todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// ListTodos returns the todos matching the filter in ID order.
	ListTodos(ctx context.Context, filter todo.Filter) ([]todo.Todo, error)

	// CreateTodo validates and stores a new todo.
	// Returns domain.ErrValidation if the todo fails validation.
	CreateTodo(ctx context.Context, todo *todo.Todo) (*todo.Todo, error)

	// UpdateTodo validates and replaces an existing todo. The ID argument
	// wins over any ID in the body.
	// Returns domain.ErrNotFound if the todo does not exist.
	// Returns domain.ErrValidation if the todo fails validation.
	UpdateTodo(ctx context.Context, id int64, todo *todo.Todo) (*todo.Todo, error)

	// DeleteTodo removes a todo and returns what was removed.
	// Returns domain.ErrNotFound if the todo does not exist.
	DeleteTodo(ctx context.Context, id int64) (*todo.Todo, error)
}
