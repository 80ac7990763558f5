package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todomvc/internal/adapters/storage"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

type repoFactory func(t *testing.T) ports.TodoRepository

func factories() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(*testing.T) ports.TodoRepository { return memory.New() },
		"sqlite-file": func(t *testing.T) ports.TodoRepository {
			s, err := sqlite.Open(filepath.Join(t.TempDir(), "todos.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"sqlite-memory": func(t *testing.T) ports.TodoRepository {
			s, err := sqlite.Open(sqlite.MemoryPath)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestRepository_CRUD(t *testing.T) {
	t.Parallel()

	for name, newRepo := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := newRepo(t)

			list, err := repo.ListTodos(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			first, err := repo.InsertTodo(ctx, &todo.Todo{ID: 500, Text: "build good programs"})
			require.NoError(t, err)
			second, err := repo.InsertTodo(ctx, &todo.Todo{Text: "testing", Completed: true})
			require.NoError(t, err)

			assert.Positive(t, first.ID)
			assert.NotEqual(t, int64(500), first.ID, "input id must be ignored")
			assert.Greater(t, second.ID, first.ID)

			found, err := repo.FindTodo(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, *second, *found)

			updated, err := repo.UpdateTodo(ctx, first.ID, &todo.Todo{Text: "renamed", Completed: true})
			require.NoError(t, err)
			assert.Equal(t, todo.Todo{ID: first.ID, Text: "renamed", Completed: true}, *updated)

			require.NoError(t, repo.DeleteTodo(ctx, second.ID))

			list, err = repo.ListTodos(ctx)
			require.NoError(t, err)
			assert.Equal(t, []todo.Todo{*updated}, list)
		})
	}
}

func TestRepository_UnknownID(t *testing.T) {
	t.Parallel()

	for name, newRepo := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := newRepo(t)

			_, err := repo.FindTodo(ctx, 999)
			assert.True(t, errors.Is(err, domain.ErrNotFound), "FindTodo: %v", err)

			_, err = repo.UpdateTodo(ctx, 999, &todo.Todo{Text: "abc"})
			assert.True(t, errors.Is(err, domain.ErrNotFound), "UpdateTodo: %v", err)

			err = repo.DeleteTodo(ctx, 999)
			assert.True(t, errors.Is(err, domain.ErrNotFound), "DeleteTodo: %v", err)
		})
	}
}

func TestRepository_IDsNotReused(t *testing.T) {
	t.Parallel()

	for name, newRepo := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := newRepo(t)

			a, err := repo.InsertTodo(ctx, &todo.Todo{Text: "one"})
			require.NoError(t, err)
			require.NoError(t, repo.DeleteTodo(ctx, a.ID))

			b, err := repo.InsertTodo(ctx, &todo.Todo{Text: "two"})
			require.NoError(t, err)
			assert.NotEqual(t, a.ID, b.ID)
		})
	}
}

func TestRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	for name, newRepo := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := newRepo(t)

			in := &todo.Todo{Text: "original"}
			inserted, err := repo.InsertTodo(ctx, in)
			require.NoError(t, err)
			in.Text = "mutated input"
			inserted.Text = "mutated result"

			list, err := repo.ListTodos(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			list[0].Text = "mutated list"

			found, err := repo.FindTodo(ctx, inserted.ID)
			require.NoError(t, err)
			assert.Equal(t, "original", found.Text)
		})
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := memory.New()

	n, err := storage.Seed(ctx, repo, []string{"build good programs", "testing"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = storage.Seed(ctx, repo, []string{"again"})
	require.NoError(t, err)
	assert.Zero(t, n, "seeding a non-empty repository must be a no-op")

	list, err := repo.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "build good programs", list[0].Text)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	s, err := sqlite.Open(path)
	require.NoError(t, err)
	created, err := s.InsertTodo(ctx, &todo.Todo{Text: "survive restart"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path)
	require.NoError(t, err)
	defer s.Close()

	found, err := s.FindTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "survive restart", found.Text)
	assert.NoError(t, s.HealthCheck(ctx))
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      config.StorageConfig
		wantName string
		wantErr  bool
	}{
		{name: "memory", cfg: config.StorageConfig{Driver: config.DriverMemory}, wantName: "memory"},
		{name: "sqlite", cfg: config.StorageConfig{Driver: config.DriverSQLite, Path: sqlite.MemoryPath}, wantName: "sqlite"},
		{name: "unknown", cfg: config.StorageConfig{Driver: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, err := storage.Open(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer repo.Close()

			assert.Equal(t, tt.wantName, repo.Name())
			assert.NoError(t, repo.HealthCheck(ctx))
		})
	}
}
