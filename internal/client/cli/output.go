package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/todomvc/internal/domain"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

func ok(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✔ "+fmt.Sprintf(format, args...)))
}

// printViolations lists the rules broken by err, if it is a validation error.
func printViolations(w io.Writer, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, v := range verr.Violations {
		fmt.Fprintln(w, errorStyle.Render("✖ "+v.Message))
	}
}

func printTodos(w io.Writer, filter todo.Filter, visible []todo.Todo, remaining int) {
	fmt.Fprintln(w, titleStyle.Render("todos")+mutedStyle.Render(" ("+filter.String()+")"))
	for _, t := range visible {
		box, text := "☐", t.Text
		if t.Completed {
			box, text = successStyle.Render("☑"), doneStyle.Render(t.Text)
		}
		fmt.Fprintf(w, "%4d %s %s\n", t.ID, box, text)
	}
	fmt.Fprintln(w, mutedStyle.Render(todo.ItemsLeftLabel(remaining)))
}
