package store

import (
	"slices"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// State is an immutable snapshot of the store handed to subscribers.
type State struct {
	// Todos is the full list in server insertion order.
	Todos []todo.Todo

	// Filter is the view selected by the current route.
	Filter todo.Filter

	// Violations holds the rules broken by the last rejected Add or Update.
	// It is cleared by the next successful mutation.
	Violations []domain.Violation
}

// Visible returns the todos that pass the current filter.
func (s State) Visible() []todo.Todo {
	return s.Filter.Apply(s.Todos)
}

// RemainingCount returns the number of active todos.
func (s State) RemainingCount() int {
	return todo.RemainingCount(s.Todos)
}

// IsEmpty reports whether there are no todos at all, regardless of filter.
func (s State) IsEmpty() bool {
	return len(s.Todos) == 0
}

// AllChecked reports whether every todo is completed.
func (s State) AllChecked() bool {
	return todo.AllChecked(s.Todos)
}

// Find returns the todo with the given id.
func (s State) Find(id int64) (todo.Todo, bool) {
	i := indexOf(s.Todos, id)
	if i < 0 {
		return todo.Todo{}, false
	}
	return s.Todos[i], true
}

func (s State) clone() State {
	return State{
		Todos:      slices.Clone(s.Todos),
		Filter:     s.Filter,
		Violations: slices.Clone(s.Violations),
	}
}

func indexOf(todos []todo.Todo, id int64) int {
	return slices.IndexFunc(todos, func(t todo.Todo) bool { return t.ID == id })
}
