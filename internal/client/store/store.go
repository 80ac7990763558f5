// Package store holds the client-side todo list and keeps it in step with
// the server.
//
// A [Store] owns the list, the current filter and the last validation
// violations. Every operation talks to the server through a
// [ports.TodoClient] and then publishes the new [State] to all subscribers
// before it returns. Remove, ToggleAll and ClearCompleted apply their change
// locally first and undo it for the items the server rejects.
//
// Operations are serialised: a second call waits for the first to finish.
// Subscribers run on the goroutine of the operation that triggered them and
// must not call back into mutating methods.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// DefaultMaxWorkers bounds the concurrent requests sent by ToggleAll and
// ClearCompleted.
const DefaultMaxWorkers = 4

// Store is the client-side todo list. Create one with [New].
type Store struct {
	client     ports.TodoClient
	validator  *todo.Validator
	logger     *slog.Logger
	maxWorkers int

	// opMu serialises operations, including their network calls.
	opMu sync.Mutex

	stateMu sync.RWMutex
	state   State

	subsMu  sync.Mutex
	subs    []subscriber
	nextSub uint64
}

type subscriber struct {
	id uint64
	fn func(State)
}

// Option configures a Store.
type Option func(*Store)

// WithValidator sets the validator used before every Add and Update.
func WithValidator(v *todo.Validator) Option {
	return func(s *Store) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxWorkers bounds the fan-out of ToggleAll and ClearCompleted.
func WithMaxWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}

// New creates an empty Store showing every todo.
func New(client ports.TodoClient, opts ...Option) *Store {
	s := &Store{
		client:     client,
		validator:  todo.DefaultValidator(),
		logger:     logging.Discard(),
		maxWorkers: DefaultMaxWorkers,
		state:      State{Filter: todo.FilterAll},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to receive every published state. The returned
// function removes the subscription; calling it more than once is a no-op.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		})
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state.clone()
}

// Visible returns the todos that pass the current filter.
func (s *Store) Visible() []todo.Todo { return s.State().Visible() }

// RemainingCount returns the number of active todos.
func (s *Store) RemainingCount() int { return s.State().RemainingCount() }

// IsEmpty reports whether the list holds no todos.
func (s *Store) IsEmpty() bool { return s.State().IsEmpty() }

// AllChecked reports whether every todo is completed.
func (s *Store) AllChecked() bool { return s.State().AllChecked() }

// Filter returns the current filter.
func (s *Store) Filter() todo.Filter { return s.State().Filter }

// SetFilter changes the view filter. Invalid filters select FilterAll.
func (s *Store) SetFilter(f todo.Filter) {
	if !f.IsValid() {
		f = todo.FilterAll
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.commit(func(st *State) { st.Filter = f })
}

// SetRoute selects the filter named by a route such as "#/active".
func (s *Store) SetRoute(route string) {
	s.SetFilter(todo.FromRoute(route))
}

// commit applies fn to the state and publishes the result. The caller must
// hold opMu.
func (s *Store) commit(fn func(*State)) {
	s.stateMu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	s.stateMu.Unlock()

	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot.clone())
	}
}

// todos returns a copy of the current list. The caller must hold opMu.
func (s *Store) todos() []todo.Todo {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return slices.Clone(s.state.Todos)
}
