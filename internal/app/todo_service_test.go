package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	appctx "github.com/jsamuelsen11/todomvc/internal/app/context"
	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newService(t *testing.T) (*TodoService, *mocks.MockTodoRepository, *mocks.MockChangePublisher) {
	t.Helper()
	repo := mocks.NewMockTodoRepository(t)
	pub := mocks.NewMockChangePublisher(t)
	return NewTodoService(repo, nil, pub, discardLogger()), repo, pub
}

// --- NewTodoService ---

func TestNewTodoService_Defaults(t *testing.T) {
	t.Parallel()
	svc := NewTodoService(mocks.NewMockTodoRepository(t), nil, nil, nil)

	if svc.logger == nil {
		t.Fatal("NewTodoService(nil logger) should create a no-op logger, got nil")
	}
	if svc.validator == nil || svc.validator.MaxTextLength() != todo.DefaultMaxTextLength {
		t.Fatal("NewTodoService(nil validator) should use the default validator")
	}
}

// --- ListTodos ---

func TestTodoService_ListTodos(t *testing.T) {
	t.Parallel()

	stored := []todo.Todo{
		{ID: 1, Text: "build good programs"},
		{ID: 2, Text: "testing", Completed: true},
	}

	t.Run("applies filter", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().ListTodos(mock.Anything).Return(stored, nil)

		got, err := svc.ListTodos(context.Background(), todo.FilterActive)
		if err != nil {
			t.Fatalf("ListTodos() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("ListTodos(active) = %+v, want only id 1", got)
		}
	})

	t.Run("returns storage error", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().ListTodos(mock.Anything).Return(nil, domain.ErrUnavailable)

		if _, err := svc.ListTodos(context.Background(), todo.FilterAll); !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("ListTodos() error = %v, want ErrUnavailable", err)
		}
	})
}

// --- CreateTodo ---

func TestTodoService_CreateTodo(t *testing.T) {
	t.Parallel()

	t.Run("stores and publishes", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)

		created := &todo.Todo{ID: 3, Text: "abc"}
		repo.EXPECT().InsertTodo(mock.Anything, &todo.Todo{Text: "abc"}).Return(created, nil)
		pub.EXPECT().Publish(mock.Anything, todo.Change{Type: todo.ChangeCreated, Todo: *created}).Return()

		got, err := svc.CreateTodo(context.Background(), &todo.Todo{ID: 99, Text: "abc"})
		if err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}
		if got.ID != 3 {
			t.Errorf("CreateTodo().ID = %d, want 3", got.ID)
		}
	})

	t.Run("rejects invalid text without touching storage", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		for _, text := range []string{"a", " abc", ""} {
			_, err := svc.CreateTodo(context.Background(), &todo.Todo{Text: text})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateTodo(%q) error = %v, want ErrValidation", text, err)
			}
		}
	})

	t.Run("wraps storage failure", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().InsertTodo(mock.Anything, mock.Anything).Return(nil, domain.ErrUnavailable)

		_, err := svc.CreateTodo(context.Background(), &todo.Todo{Text: "abc"})
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("CreateTodo() error = %v, want ErrUnavailable", err)
		}
	})
}

// --- UpdateTodo ---

func TestTodoService_UpdateTodo(t *testing.T) {
	t.Parallel()

	t.Run("uses id from argument", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)

		want := &todo.Todo{ID: 5, Text: "done thing", Completed: true}
		repo.EXPECT().FindTodo(mock.Anything, int64(5)).Return(&todo.Todo{ID: 5, Text: "thing"}, nil)
		repo.EXPECT().UpdateTodo(mock.Anything, int64(5), want).Return(want, nil)
		pub.EXPECT().Publish(mock.Anything, mock.Anything).Return()

		got, err := svc.UpdateTodo(context.Background(), 5, &todo.Todo{ID: 77, Text: "done thing", Completed: true})
		if err != nil {
			t.Fatalf("UpdateTodo() error = %v", err)
		}
		if *got != *want {
			t.Errorf("UpdateTodo() = %+v, want %+v", got, want)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().FindTodo(mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateTodo(context.Background(), 999, &todo.Todo{Text: "abc"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpdateTodo() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.UpdateTodo(context.Background(), 1, &todo.Todo{Text: "x"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("UpdateTodo() error = %v, want ErrValidation", err)
		}
	})

	t.Run("reuses lookup cached in request context", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)

		rc := appctx.New(context.Background())
		ctx := appctx.WithRequestContext(context.Background(), rc)
		_, _ = appctx.GetOrFetch(rc, todoKey(4), func(context.Context) (*todo.Todo, error) {
			return &todo.Todo{ID: 4, Text: "cached"}, nil
		})

		repo.EXPECT().UpdateTodo(mock.Anything, int64(4), mock.Anything).Return(&todo.Todo{ID: 4, Text: "renamed"}, nil)
		pub.EXPECT().Publish(mock.Anything, mock.Anything).Return()

		if _, err := svc.UpdateTodo(ctx, 4, &todo.Todo{Text: "renamed"}); err != nil {
			t.Fatalf("UpdateTodo() error = %v", err)
		}
	})
}

// --- DeleteTodo ---

func TestTodoService_DeleteTodo(t *testing.T) {
	t.Parallel()

	t.Run("returns removed todo", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)

		existing := &todo.Todo{ID: 2, Text: "testing", Completed: true}
		repo.EXPECT().FindTodo(mock.Anything, int64(2)).Return(existing, nil)
		repo.EXPECT().DeleteTodo(mock.Anything, int64(2)).Return(nil)
		pub.EXPECT().Publish(mock.Anything, todo.Change{Type: todo.ChangeDeleted, Todo: *existing}).Return()

		got, err := svc.DeleteTodo(context.Background(), 2)
		if err != nil {
			t.Fatalf("DeleteTodo() error = %v", err)
		}
		if *got != *existing {
			t.Errorf("DeleteTodo() = %+v, want %+v", got, existing)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().FindTodo(mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

		if _, err := svc.DeleteTodo(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("DeleteTodo() error = %v, want ErrNotFound", err)
		}
	})
}
