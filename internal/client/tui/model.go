// Package tui renders a store.Store as an interactive terminal list.
//
// The model never mutates the store from Update. Every store call runs in a
// tea.Cmd so that the store's subscribers, which post back into the running
// program, never block the event loop.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/todomvc/internal/client/store"
	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

type mode int

const (
	modeBrowse mode = iota
	modeNew
	modeEdit
)

// stateMsg carries a state published by the store.
type stateMsg store.State

// doneMsg reports the end of a store operation.
type doneMsg struct {
	op  string
	err error
}

// Model is the bubbletea model for the todo list.
type Model struct {
	ctx   context.Context
	store *store.Store
	keys  keyMap
	help  help.Model

	state  store.State
	cursor int
	mode   mode

	input  textinput.Model
	edit   textinput.Model
	editID int64

	status string
	width  int
}

// New returns a model bound to s. Operations started from the UI use ctx.
func New(ctx context.Context, s *store.Store) Model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 200

	edit := textinput.New()
	edit.Prompt = "✎ "
	edit.CharLimit = 200

	return Model{
		ctx:   ctx,
		store: s,
		keys:  defaultKeyMap(),
		help:  help.New(),
		state: s.State(),
		input: input,
		edit:  edit,
	}
}

// Init loads the list from the server.
func (m Model) Init() tea.Cmd {
	return m.run("load", m.store.Load)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case stateMsg:
		m.state = store.State(msg)
		m.clampCursor()
		return m, nil
	case doneMsg:
		return m.finish(msg), nil
	case tea.KeyMsg:
		switch m.mode {
		case modeNew:
			return m.updateNew(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.mode = modeNew
		m.status = ""
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.edit.SetValue(t.Text)
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.run("toggle", func(ctx context.Context) error {
				_, err := m.store.Toggle(ctx, t.ID)
				return err
			})
		}
	case key.Matches(msg, m.keys.Remove):
		if t, ok := m.selected(); ok {
			return m, m.run("delete", func(ctx context.Context) error {
				return m.store.Remove(ctx, t.ID)
			})
		}
	case key.Matches(msg, m.keys.ToggleAll):
		completed := !m.state.AllChecked()
		return m, m.run("toggle all", func(ctx context.Context) error {
			return m.store.ToggleAll(ctx, completed)
		})
	case key.Matches(msg, m.keys.ClearCompleted):
		return m, m.run("clear completed", m.store.ClearCompleted)
	case key.Matches(msg, m.keys.Reload):
		return m, m.run("load", m.store.Load)
	case key.Matches(msg, m.keys.NextFilter):
		return m, m.setFilter(nextFilter(m.state.Filter))
	case key.Matches(msg, m.keys.All):
		return m, m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Active):
		return m, m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		return m, m.setFilter(todo.FilterCompleted)
	}
	return m, nil
}

func (m Model) updateNew(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := m.input.Value()
		return m, m.run("add", func(ctx context.Context) error {
			_, err := m.store.Add(ctx, text)
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateEdit leaves edit mode on Enter or Esc. Only Enter saves.
func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.edit.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.edit.Blur()

		t, ok := m.state.Find(m.editID)
		if !ok {
			return m, nil
		}
		t.Text = m.edit.Value()
		return m, m.run("update", func(ctx context.Context) error {
			_, err := m.store.Update(ctx, t)
			return err
		})
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

// run wraps a store operation as a command. The resulting doneMsg carries a
// fresh snapshot through the store's subscribers, so it only reports errors.
func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) setFilter(f todo.Filter) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.SetFilter(f)
		return stateMsg(s.State())
	}
}

func (m Model) finish(msg doneMsg) Model {
	m.state = m.store.State()
	m.clampCursor()

	if msg.err == nil {
		m.status = ""
		if msg.op == "add" {
			m.input.SetValue("")
		}
		return m
	}

	// Violations are shown from the state; anything else goes to the status line.
	if !errors.Is(msg.err, domain.ErrValidation) {
		m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
	}
	return m
}

func (m Model) selected() (todo.Todo, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f todo.Filter) todo.Filter {
	for i, candidate := range todo.Filters {
		if candidate == f {
			return todo.Filters[(i+1)%len(todo.Filters)]
		}
	}
	return todo.FilterAll
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n")
	for _, v := range m.state.Violations {
		b.WriteString(errorStyle.Render("✖ " + v.Message))
		b.WriteString("\n")
	}
	if m.mode == modeNew {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(mutedStyle.Render(m.input.Prompt + m.input.Placeholder))
	}
	b.WriteString("\n\n")

	for i, t := range m.state.Visible() {
		b.WriteString(m.renderTodo(i, t))
		b.WriteString("\n")
	}

	if !m.state.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return panelStyle.Render(b.String())
}

func (m Model) renderTodo(i int, t todo.Todo) string {
	if m.mode == modeEdit && t.ID == m.editID {
		return "  " + m.edit.View()
	}

	box, text := mutedStyle.Render(boxUnchecked), t.Text
	if t.Completed {
		box, text = successStyle.Render(boxChecked), doneStyle.Render(t.Text)
	}

	prefix := "  "
	if i == m.cursor && m.mode == modeBrowse {
		prefix = selectedStyle.Render("❯") + " "
	}
	return prefix + box + " " + text
}

func (m Model) renderFooter() string {
	tabs := make([]string, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == m.state.Filter {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	footer := []string{
		todo.ItemsLeftLabel(m.state.RemainingCount()),
		"  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	}
	if m.state.RemainingCount() < len(m.state.Todos) {
		footer = append(footer, "  ", mutedStyle.Render("[c] clear completed"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, footer...)
}
