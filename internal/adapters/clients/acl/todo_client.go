package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/jsamuelsen11/todomvc/internal/adapters/clients/acl/todo"
	domtodo "github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/httpclient"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

const todosPath = "/api/todos"

var (
	_ ports.TodoClient    = (*TodoClient)(nil)
	_ ports.TodoWatcher   = (*TodoClient)(nil)
	_ ports.HealthChecker = (*TodoClient)(nil)
)

// TodoClient is the client-side repository for the todo REST API. It
// implements [ports.TodoClient] and, through the change feed,
// [ports.TodoWatcher].
//
// The underlying [httpclient.Client] provides circuit breaking, rate
// limiting, retry for idempotent calls and tracing for every request.
type TodoClient struct {
	http   *httpclient.Client
	req    *Requester
	dialer *websocket.Dialer
	logger *slog.Logger
}

// NewTodoClient creates a TodoClient. The client's BaseURL must point at the
// server root (e.g. "http://localhost:8080").
func NewTodoClient(client *httpclient.Client, logger *slog.Logger) *TodoClient {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TodoClient{
		http:   client,
		req:    NewRequester(client, logger),
		dialer: newWebsocketDialer(),
		logger: logger,
	}
}

// ListTodos fetches every todo from GET /api/todos.
func (c *TodoClient) ListTodos(ctx context.Context) ([]domtodo.Todo, error) {
	return c.ListFiltered(ctx, domtodo.FilterAll)
}

// ListFiltered fetches the todos matching filter, letting the server apply
// it via ?filter=.
func (c *TodoClient) ListFiltered(ctx context.Context, filter domtodo.Filter) ([]domtodo.Todo, error) {
	path := todosPath
	if filter != domtodo.FilterAll && filter != "" {
		path += "?" + url.Values{"filter": {filter.String()}}.Encode()
	}

	var dto []todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return nil, err
	}
	return todo.ToDomainTodoList(dto), nil
}

// CreateTodo sends POST /api/todos and returns the stored todo with its
// server-assigned id. A rejected payload yields a *domain.ValidationError.
func (c *TodoClient) CreateTodo(ctx context.Context, t *domtodo.Todo) (*domtodo.Todo, error) {
	var respDTO todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodPost, todosPath, http.StatusCreated, todo.ToRequest(t), &respDTO); err != nil {
		return nil, err
	}
	result := todo.ToDomainTodo(&respDTO)
	return &result, nil
}

// UpdateTodo sends PUT /api/todos/{id} with the full replacement. An unknown
// id yields domain.ErrNotFound.
func (c *TodoClient) UpdateTodo(ctx context.Context, id int64, t *domtodo.Todo) (*domtodo.Todo, error) {
	var respDTO todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodPut, todoPath(id), http.StatusCreated, todo.ToRequest(t), &respDTO); err != nil {
		return nil, err
	}
	result := todo.ToDomainTodo(&respDTO)
	return &result, nil
}

// DeleteTodo sends DELETE /api/todos/{id}. An unknown id yields
// domain.ErrNotFound.
func (c *TodoClient) DeleteTodo(ctx context.Context, id int64) error {
	return c.req.Do(ctx, http.MethodDelete, todoPath(id), http.StatusOK, nil, nil)
}

func todoPath(id int64) string {
	return fmt.Sprintf("%s/%d", todosPath, id)
}
