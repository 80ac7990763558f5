package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// Follow applies the server's change feed to the list until ctx is done or
// the feed ends. Changes made by this store come back on the feed too and
// are no-ops by then.
func (s *Store) Follow(ctx context.Context, watcher ports.TodoWatcher) error {
	changes, err := watcher.WatchTodos(ctx)
	if err != nil {
		return fmt.Errorf("watching todos: %w", err)
	}

	for change := range changes {
		s.Apply(change)
	}
	return ctx.Err()
}

// Apply merges one server-side change into the list and publishes the
// result. Created todos already in the list, and updates or deletes of ids
// the list does not hold, are ignored. An update racing a local remove must
// not bring the todo back.
func (s *Store) Apply(change todo.Change) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	i := indexOf(s.todos(), change.Todo.ID)

	switch change.Type {
	case todo.ChangeCreated:
		if i >= 0 {
			return
		}
		s.commit(func(st *State) { st.Todos = append(st.Todos, change.Todo) })
	case todo.ChangeUpdated:
		if i < 0 {
			return
		}
		s.commit(func(st *State) { st.Todos[i] = change.Todo })
	case todo.ChangeDeleted:
		if i < 0 {
			return
		}
		s.commit(func(st *State) { st.Todos = slices.Delete(st.Todos, i, i+1) })
	default:
		s.logger.Debug("ignoring change", slog.String("type", string(change.Type)))
	}
}
