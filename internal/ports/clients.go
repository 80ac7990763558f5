package ports

import (
	"context"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// TodoClient defines the client port for the remote todo API.
// Implemented by the REST adapter; called by the client-side store.
// Methods map 1:1 to the /api/todos endpoints.
type TodoClient interface {
	// ListTodos returns every stored todo in server order.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// CreateTodo stores a new todo and returns it with its assigned ID.
	// Returns domain.ErrValidation if the server rejects the text.
	CreateTodo(ctx context.Context, todo *todo.Todo) (*todo.Todo, error)

	// UpdateTodo replaces the todo with the given ID.
	// Returns domain.ErrNotFound if the ID is unknown to the server.
	UpdateTodo(ctx context.Context, id int64, todo *todo.Todo) (*todo.Todo, error)

	// DeleteTodo removes the todo with the given ID.
	// Returns domain.ErrNotFound if the ID is unknown to the server.
	DeleteTodo(ctx context.Context, id int64) error
}

// TodoWatcher streams server-side changes until ctx is cancelled.
// The returned channel is closed when the stream ends.
type TodoWatcher interface {
	WatchTodos(ctx context.Context) (<-chan todo.Change, error)
}
