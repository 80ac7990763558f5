package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/todomvc/internal/app/fanout"
	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// Load replaces the list with the server's todos. On failure the list is
// left as it was.
func (s *Store) Load(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	todos, err := s.client.ListTodos(ctx)
	if err != nil {
		return s.fail(ctx, "load", 0, err)
	}

	s.commit(func(st *State) {
		st.Todos = slices.Clone(todos)
		st.Violations = nil
	})
	return nil
}

// Add validates text and creates a todo from it. Invalid text leaves the
// list unchanged, publishes the violations and returns a
// *domain.ValidationError. The created todo is appended as returned by the
// server.
func (s *Store) Add(ctx context.Context, text string) (*todo.Todo, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	candidate := todo.Todo{Text: text}
	if err := s.checkLocked(candidate); err != nil {
		return nil, err
	}

	created, err := s.client.CreateTodo(ctx, &candidate)
	if err != nil {
		s.rejectLocked(err)
		return nil, s.fail(ctx, "add", 0, err)
	}

	s.commit(func(st *State) {
		st.Todos = append(st.Todos, *created)
		st.Violations = nil
	})
	return created, nil
}

// Update validates t and replaces the stored todo with the same id. The
// server's copy is merged into the list in place. A todo the server no
// longer knows about is dropped from the list and domain.ErrNotFound is
// returned.
func (s *Store) Update(ctx context.Context, t todo.Todo) (*todo.Todo, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.updateLocked(ctx, t)
}

// Toggle flips the completed flag of the todo with the given id.
func (s *Store) Toggle(ctx context.Context, id int64) (*todo.Todo, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	todos := s.todos()
	i := indexOf(todos, id)
	if i < 0 {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	t := todos[i]
	t.Completed = !t.Completed
	return s.updateLocked(ctx, t)
}

func (s *Store) updateLocked(ctx context.Context, t todo.Todo) (*todo.Todo, error) {
	if err := s.checkLocked(t); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateTodo(ctx, t.ID, &t)
	if errors.Is(err, domain.ErrNotFound) {
		s.dropLocked(t.ID)
		return nil, s.fail(ctx, "update", t.ID, err)
	}
	if err != nil {
		s.rejectLocked(err)
		return nil, s.fail(ctx, "update", t.ID, err)
	}

	s.commit(func(st *State) {
		if i := indexOf(st.Todos, updated.ID); i >= 0 {
			st.Todos[i] = *updated
		}
		st.Violations = nil
	})
	return updated, nil
}

// Remove deletes the todo with the given id. The todo disappears from the
// list immediately and is put back at its old position if the server call
// fails. A todo the server no longer knows about stays removed.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	before := s.todos()
	i := indexOf(before, id)
	if i < 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	removed := before[i]

	s.commit(func(st *State) {
		st.Todos = slices.Delete(st.Todos, i, i+1)
	})

	err := s.client.DeleteTodo(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		s.logger.DebugContext(ctx, "todo already gone on server", slog.Int64("id", id))
		return nil
	}

	s.commit(func(st *State) {
		st.Todos = slices.Insert(st.Todos, min(i, len(st.Todos)), removed)
	})
	return s.fail(ctx, "remove", id, err)
}

// ToggleAll sets every todo's completed flag to completed, sending one
// update per todo that needs to change. Todos whose update fails keep their
// previous state and the joined errors are returned. Todos the server no
// longer knows about are dropped. Subscribers are notified even when nothing
// needs to change.
func (s *Store) ToggleAll(ctx context.Context, completed bool) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	before := s.todos()
	var targets []todo.Todo
	for _, t := range before {
		if t.Completed != completed {
			t.Completed = completed
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		s.commit(func(*State) {})
		return nil
	}

	s.commit(func(st *State) {
		for i := range st.Todos {
			st.Todos[i].Completed = completed
		}
	})

	// A nil value with a nil error marks a todo deleted elsewhere.
	results := fanout.Run(ctx, s.maxWorkers, targets, func(ctx context.Context, t todo.Todo) (*todo.Todo, error) {
		updated, err := s.client.UpdateTodo(ctx, t.ID, &t)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return updated, err
	})

	merged := make(map[int64]todo.Todo, len(targets))
	gone := make(map[int64]bool)
	for i, r := range results {
		switch {
		case r.Err != nil:
		case r.Value == nil:
			gone[targets[i].ID] = true
		default:
			merged[targets[i].ID] = *r.Value
		}
	}

	s.commit(func(st *State) {
		st.Todos = st.Todos[:0]
		for _, t := range before {
			if gone[t.ID] {
				continue
			}
			if u, ok := merged[t.ID]; ok {
				t = u
			}
			st.Todos = append(st.Todos, t)
		}
	})

	if err := fanout.Err(results); err != nil {
		return s.fail(ctx, "toggle_all", 0, err)
	}
	return nil
}

// ClearCompleted deletes every completed todo and keeps the active ones.
// Completed todos whose delete fails are put back in place; the joined
// errors are returned. A todo the server no longer knows about counts as
// deleted. With nothing completed no request is sent, but subscribers are
// still notified.
func (s *Store) ClearCompleted(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	before := s.todos()
	completed, active := todo.Partition(before)
	if len(completed) == 0 {
		s.commit(func(*State) {})
		return nil
	}

	s.commit(func(st *State) {
		st.Todos = slices.Clone(active)
	})

	results := fanout.Run(ctx, s.maxWorkers, completed, func(ctx context.Context, t todo.Todo) (struct{}, error) {
		err := s.client.DeleteTodo(ctx, t.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return struct{}{}, nil
		}
		return struct{}{}, err
	})

	failed := make(map[int64]bool)
	for i, r := range results {
		if r.Err != nil {
			failed[completed[i].ID] = true
		}
	}
	if len(failed) == 0 {
		return nil
	}

	s.commit(func(st *State) {
		st.Todos = st.Todos[:0]
		for _, t := range before {
			if !t.Completed || failed[t.ID] {
				st.Todos = append(st.Todos, t)
			}
		}
	})
	return s.fail(ctx, "clear_completed", 0, fanout.Err(results))
}

// dropLocked removes the todo with id from the list, if present.
func (s *Store) dropLocked(id int64) {
	s.commit(func(st *State) {
		if i := indexOf(st.Todos, id); i >= 0 {
			st.Todos = slices.Delete(st.Todos, i, i+1)
		}
	})
}

// checkLocked validates t and publishes the violations when it fails.
func (s *Store) checkLocked(t todo.Todo) error {
	violations := s.validator.Validate(t)
	if len(violations) == 0 {
		return nil
	}
	s.commit(func(st *State) { st.Violations = violations })
	return domain.NewValidationError(violations)
}

// rejectLocked publishes the violations carried by a server-side rejection.
func (s *Store) rejectLocked(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.commit(func(st *State) { st.Violations = slices.Clone(verr.Violations) })
	}
}

func (s *Store) fail(ctx context.Context, op string, id int64, err error) error {
	attrs := []any{slog.String("operation", op), slog.Any("error", err)}
	if id != 0 {
		attrs = append(attrs, slog.Int64("id", id))
	}
	if errors.Is(err, domain.ErrValidation) {
		s.logger.DebugContext(ctx, "todo rejected", attrs...)
	} else {
		s.logger.WarnContext(ctx, "todo operation failed", attrs...)
	}
	return fmt.Errorf("%s: %w", op, err)
}
