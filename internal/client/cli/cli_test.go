package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/todomvc/internal/adapters/http"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todomvc/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todomvc/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/todomvc/internal/app"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/health"
)

// newTestServer serves the real API over an in-memory store.
func newTestServer(t *testing.T, seed ...todo.Todo) (*httptest.Server, *memory.Store) {
	t.Helper()

	repo := memory.New()
	for i := range seed {
		_, err := repo.InsertTodo(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	router := adapthttp.NewRouter(adapthttp.Routes{
		Todos:  handlers.NewTodoHandler(app.NewTodoService(repo, nil, nil, nil)),
		Health: handlers.NewHealthHandler(health.New()),
	}, middleware.AppContext())

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, repo
}

// execute runs the CLI against ts and returns stdout and stderr.
func execute(t *testing.T, ts *httptest.Server, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--profile", "local",
		"--config-dir", "../../../configs",
		"--base-url", ts.URL,
	}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func listTexts(t *testing.T, repo *memory.Store) []string {
	t.Helper()
	todos, err := repo.ListTodos(context.Background())
	require.NoError(t, err)
	texts := make([]string, 0, len(todos))
	for _, td := range todos {
		texts = append(texts, td.Text)
	}
	return texts
}

func TestList(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t,
		todo.Todo{Text: "build good programs"},
		todo.Todo{Text: "testing", Completed: true},
	)

	out, _, err := execute(t, ts, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "build good programs")
	assert.Contains(t, out, "testing")
	assert.Contains(t, out, "1 item left")

	out, _, err = execute(t, ts, "ls", "--filter", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "build good programs")
	assert.NotContains(t, out, "testing")
}

func TestList_InvalidFilter(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t)

	_, _, err := execute(t, ts, "ls", "--filter", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
}

func TestAdd(t *testing.T) {
	t.Parallel()

	ts, repo := newTestServer(t)

	out, _, err := execute(t, ts, "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "added #1 Buy milk")
	assert.Equal(t, []string{"Buy milk"}, listTexts(t, repo))
}

func TestAdd_Invalid(t *testing.T) {
	t.Parallel()

	ts, repo := newTestServer(t)

	_, errOut, err := execute(t, ts, "add", "a")
	require.Error(t, err)
	assert.Contains(t, errOut, "Text length must be at least 3 characters.")
	assert.Empty(t, listTexts(t, repo))
}

func TestEdit(t *testing.T) {
	t.Parallel()

	ts, repo := newTestServer(t, todo.Todo{Text: "first"})

	_, _, err := execute(t, ts, "edit", "1", "first", "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"first draft"}, listTexts(t, repo))

	_, _, err = execute(t, ts, "edit", "7", "nothing here")
	require.Error(t, err)
}

func TestToggleAndClear(t *testing.T) {
	t.Parallel()

	ts, repo := newTestServer(t,
		todo.Todo{Text: "first"},
		todo.Todo{Text: "second"},
	)

	out, _, err := execute(t, ts, "toggle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "#2 is completed")

	out, _, err = execute(t, ts, "clear-completed")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared 1")
	assert.Equal(t, []string{"first"}, listTexts(t, repo))
}

func TestToggleAll(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t,
		todo.Todo{Text: "first"},
		todo.Todo{Text: "second", Completed: true},
	)

	out, _, err := execute(t, ts, "toggle-all")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items left")

	out, _, err = execute(t, ts, "toggle-all")
	require.NoError(t, err)
	assert.Contains(t, out, "2 items left")
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ts, repo := newTestServer(t, todo.Todo{Text: "first"}, todo.Todo{Text: "second"})

	_, _, err := execute(t, ts, "rm", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, listTexts(t, repo))

	_, _, err = execute(t, ts, "rm", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "42", want: 42},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
