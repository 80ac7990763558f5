// Package memory implements ports.TodoRepository in process memory. Data is
// lost on restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

var (
	_ ports.TodoRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Store keeps todos in insertion order behind a mutex. IDs start at 1 and
// are never reused.
type Store struct {
	mu     sync.RWMutex
	todos  []todo.Todo
	nextID int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{nextID: 1}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// HealthCheck implements ports.HealthChecker. Memory is always available.
func (s *Store) HealthCheck(context.Context) error { return nil }

// Close is a no-op; it lets Store stand in wherever a closable repository is
// expected.
func (s *Store) Close() error { return nil }

// ListTodos returns a copy of every todo in insertion order.
func (s *Store) ListTodos(context.Context) ([]todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.todos), nil
}

// FindTodo returns the todo with id, or domain.ErrNotFound.
func (s *Store) FindTodo(_ context.Context, id int64) (*todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	t := s.todos[i]
	return &t, nil
}

// InsertTodo stores a copy of td under the next free id and returns it. Any
// id already set on td is ignored.
func (s *Store) InsertTodo(_ context.Context, td *todo.Todo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := todo.Todo{ID: s.nextID, Text: td.Text, Completed: td.Completed}
	s.nextID++
	s.todos = append(s.todos, t)
	return &t, nil
}

// UpdateTodo replaces the text and completed flag of the todo with id and
// returns the stored copy. Unknown ids yield domain.ErrNotFound.
func (s *Store) UpdateTodo(_ context.Context, id int64, td *todo.Todo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	s.todos[i] = todo.Todo{ID: id, Text: td.Text, Completed: td.Completed}
	t := s.todos[i]
	return &t, nil
}

// DeleteTodo removes the todo with id. Unknown ids yield domain.ErrNotFound.
func (s *Store) DeleteTodo(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	return nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.todos, func(t todo.Todo) bool { return t.ID == id })
}
