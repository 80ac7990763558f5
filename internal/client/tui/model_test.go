package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todomvc/internal/client/store"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/mocks"
)

func newLoadedModel(t *testing.T, todos ...todo.Todo) (Model, *mocks.MockTodoClient) {
	t.Helper()

	client := mocks.NewMockTodoClient(t)
	client.EXPECT().ListTodos(mock.Anything).Return(todos, nil).Once()

	m := New(context.Background(), store.New(client))
	m = update(t, m, m.Init()())
	return m, client
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out
}

// send delivers a key and drops the returned command. Used for keys whose
// commands only drive the cursor blink.
func send(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	return update(t, m, msg)
}

// press delivers a key and feeds the result of its store command back in.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	return update(t, m, cmd())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestModel_InitLoads(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t,
		todo.Todo{ID: 1, Text: "build good programs"},
		todo.Todo{ID: 2, Text: "testing", Completed: true},
	)

	view := m.View()
	assert.Contains(t, view, "build good programs")
	assert.Contains(t, view, "testing")
	assert.Contains(t, view, "1 item left")
	assert.Contains(t, view, "clear completed")
}

func TestModel_EmptyListHidesFooter(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t)

	assert.NotContains(t, m.View(), "items left")
}

func TestModel_AddTodo(t *testing.T) {
	t.Parallel()

	m, client := newLoadedModel(t)
	client.EXPECT().CreateTodo(mock.Anything, &todo.Todo{Text: "abc"}).
		Return(&todo.Todo{ID: 1, Text: "abc"}, nil)

	m = send(t, m, runes("n"))
	require.Equal(t, modeNew, m.mode)
	m = typeText(t, m, "abc")
	m = press(t, m, enter)

	assert.Empty(t, m.input.Value())
	assert.Equal(t, modeNew, m.mode)
	assert.Len(t, m.state.Todos, 1)
	assert.Contains(t, m.View(), "1 item left")
}

func TestModel_AddShowsViolations(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t)

	m = send(t, m, runes("n"))
	m = typeText(t, m, "a")
	m = press(t, m, enter)

	assert.Equal(t, "a", m.input.Value())
	assert.Empty(t, m.status)
	assert.Contains(t, m.View(), "Text length must be at least 3 characters.")
}

func TestModel_Toggle(t *testing.T) {
	t.Parallel()

	m, client := newLoadedModel(t, todo.Todo{ID: 1, Text: "first"})
	client.EXPECT().UpdateTodo(mock.Anything, int64(1), &todo.Todo{ID: 1, Text: "first", Completed: true}).
		Return(&todo.Todo{ID: 1, Text: "first", Completed: true}, nil)

	m = press(t, m, space)

	assert.True(t, m.state.AllChecked())
	assert.Contains(t, m.View(), "0 items left")
}

func TestModel_EditCommitsOnEnter(t *testing.T) {
	t.Parallel()

	m, client := newLoadedModel(t, todo.Todo{ID: 1, Text: "first"})
	client.EXPECT().UpdateTodo(mock.Anything, int64(1), &todo.Todo{ID: 1, Text: "first one"}).
		Return(&todo.Todo{ID: 1, Text: "first one"}, nil)

	m = send(t, m, runes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "first", m.edit.Value())

	m = typeText(t, m, " one")
	m = press(t, m, enter)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "first one", m.state.Todos[0].Text)
}

func TestModel_EditEscDiscards(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t, todo.Todo{ID: 1, Text: "first"})

	m = send(t, m, runes("e"))
	m = typeText(t, m, " changed")
	m = send(t, m, esc)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "first", m.state.Todos[0].Text)
}

func TestModel_FilterTabs(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t,
		todo.Todo{ID: 1, Text: "first"},
		todo.Todo{ID: 2, Text: "second", Completed: true},
	)

	m = press(t, m, tab)
	assert.Equal(t, todo.FilterActive, m.state.Filter)
	assert.NotContains(t, m.View(), "second")

	m = press(t, m, runes("3"))
	assert.Equal(t, todo.FilterCompleted, m.state.Filter)
	assert.NotContains(t, m.View(), "first")

	m = press(t, m, tab)
	assert.Equal(t, todo.FilterAll, m.state.Filter)
}

func TestModel_RemoveFailureShowsStatus(t *testing.T) {
	t.Parallel()

	m, client := newLoadedModel(t, todo.Todo{ID: 1, Text: "first"})
	client.EXPECT().DeleteTodo(mock.Anything, int64(1)).Return(errors.New("connection refused"))

	m = press(t, m, runes("d"))

	assert.Len(t, m.state.Todos, 1)
	assert.Contains(t, m.status, "delete failed")
	assert.Contains(t, m.View(), "connection refused")
}

func TestModel_CursorStaysInRange(t *testing.T) {
	t.Parallel()

	m, client := newLoadedModel(t,
		todo.Todo{ID: 1, Text: "first"},
		todo.Todo{ID: 2, Text: "second"},
	)
	client.EXPECT().DeleteTodo(mock.Anything, int64(2)).Return(nil)

	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))
	require.Equal(t, 1, m.cursor)

	m = press(t, m, runes("d"))
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m, _ := newLoadedModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNextFilter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, todo.FilterActive, nextFilter(todo.FilterAll))
	assert.Equal(t, todo.FilterCompleted, nextFilter(todo.FilterActive))
	assert.Equal(t, todo.FilterAll, nextFilter(todo.FilterCompleted))
	assert.Equal(t, todo.FilterAll, nextFilter("bogus"))
}
