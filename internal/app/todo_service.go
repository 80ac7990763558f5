// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	appctx "github.com/jsamuelsen11/todomvc/internal/app/context"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
	"github.com/jsamuelsen11/todomvc/internal/platform/telemetry"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of the storage port. It
// re-validates every write, stages storage mutations in the request's
// appctx.RequestContext, and announces committed changes to the publisher.
type TodoService struct {
	repo      ports.TodoRepository
	validator *todo.Validator
	publisher ports.ChangePublisher
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// TodoServiceOption configures optional TodoService collaborators.
type TodoServiceOption func(*TodoService)

// WithMetrics counts committed changes on m.
func WithMetrics(m *telemetry.Metrics) TodoServiceOption {
	return func(s *TodoService) {
		s.metrics = m
	}
}

// NewTodoService creates a TodoService. A nil validator uses
// todo.DefaultValidator, a nil publisher drops change events and a nil
// logger discards output.
func NewTodoService(
	repo ports.TodoRepository,
	validator *todo.Validator,
	publisher ports.ChangePublisher,
	logger *slog.Logger,
	opts ...TodoServiceOption,
) *TodoService {
	if validator == nil {
		validator = todo.DefaultValidator()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &TodoService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func todoKey(id int64) string {
	return "todo:" + strconv.FormatInt(id, 10)
}

// ListTodos returns the stored todos that pass filter.
func (s *TodoService) ListTodos(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	s.logger.DebugContext(ctx, "listing todos", slog.String("filter", filter.String()))

	todos, err := s.repo.ListTodos(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return filter.Apply(todos), nil
}

// CreateTodo validates and stores a new todo. Any ID on the input is ignored.
func (s *TodoService) CreateTodo(ctx context.Context, td *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "creating todo", slog.String("text", td.Text))

	if err := s.validator.Check(*td); err != nil {
		return nil, err
	}

	rc := appctx.FromContext(ctx)
	action := &insertAction{repo: s.repo, input: todo.Todo{Text: td.Text, Completed: td.Completed}}
	if err := rc.Stage("todo:new", &action.input, action); err != nil {
		return nil, err
	}
	if err := rc.Commit(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.publish(ctx, rc, todo.ChangeCreated, *action.created)
	return action.created, nil
}

// UpdateTodo validates and replaces the todo stored under id. The path id
// wins over any id in td.
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, td *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.Int64("id", id))

	next := todo.Todo{ID: id, Text: td.Text, Completed: td.Completed}
	if err := s.validator.Check(next); err != nil {
		return nil, err
	}

	rc := appctx.FromContext(ctx)
	prev, err := appctx.GetOrFetch(rc, todoKey(id), func(ctx context.Context) (*todo.Todo, error) {
		return s.repo.FindTodo(ctx, id)
	})
	if err != nil {
		return nil, s.logFailure(ctx, "UpdateTodo", id, fmt.Errorf("finding todo: %w", err))
	}

	action := &updateAction{repo: s.repo, prev: *prev, next: next}
	if err := rc.Stage(todoKey(id), &next, action); err != nil {
		return nil, err
	}
	if err := rc.Commit(ctx); err != nil {
		return nil, s.logFailure(ctx, "UpdateTodo", id, fmt.Errorf("updating todo: %w", err))
	}

	s.publish(ctx, rc, todo.ChangeUpdated, *action.updated)
	return action.updated, nil
}

// DeleteTodo removes the todo stored under id and returns it.
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	rc := appctx.FromContext(ctx)
	existing, err := appctx.GetOrFetch(rc, todoKey(id), func(ctx context.Context) (*todo.Todo, error) {
		return s.repo.FindTodo(ctx, id)
	})
	if err != nil {
		return nil, s.logFailure(ctx, "DeleteTodo", id, fmt.Errorf("finding todo: %w", err))
	}

	removed := *existing
	if err := rc.Stage(todoKey(id), (*todo.Todo)(nil), &deleteAction{repo: s.repo, removed: removed}); err != nil {
		return nil, err
	}
	if err := rc.Commit(ctx); err != nil {
		return nil, s.logFailure(ctx, "DeleteTodo", id, fmt.Errorf("deleting todo: %w", err))
	}

	s.publish(ctx, rc, todo.ChangeDeleted, removed)
	return &removed, nil
}

func (s *TodoService) logFailure(ctx context.Context, op string, id int64, err error) error {
	s.logger.ErrorContext(ctx, "todo operation failed",
		slog.String("operation", op),
		slog.Int64("id", id),
		slog.Any("error", err),
	)
	return err
}

// publish runs outside the commit queue; a lost event never undoes a write.
func (s *TodoService) publish(ctx context.Context, rc *appctx.RequestContext, typ todo.ChangeType, td todo.Todo) {
	s.metrics.RecordTodoChange(ctx, string(typ))

	if s.publisher == nil {
		return
	}
	change := todo.Change{Type: typ, Todo: td}
	if err := rc.Execute(&publishAction{publisher: s.publisher, change: change}); err != nil {
		s.logger.WarnContext(ctx, "failed to publish change",
			slog.String("type", string(typ)),
			slog.Int64("id", td.ID),
			slog.Any("error", err),
		)
	}
}
