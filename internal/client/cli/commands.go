package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/todomvc/internal/client/tui"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
)

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Filter string
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := todo.ParseFilter(opts.Filter)
			if err != nil {
				return err
			}

			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			s.SetFilter(filter)

			st := s.State()
			printTodos(cmd.OutOrStdout(), st.Filter, st.Visible(), st.RemainingCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "all", "all|active|completed")

	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a todo",
		Long: `Add a todo. All arguments are joined with single spaces.

Example:
  todo add Buy milk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := opts.session.store.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				printViolations(cmd.ErrOrStderr(), err)
				return err
			}
			ok(cmd.OutOrStdout(), "added #%d %s", created.ID, created.Text)
			return nil
		},
	}
}

// NewEditCommand creates the edit command.
func NewEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace a todo's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			t, found := s.State().Find(id)
			if !found {
				return fmt.Errorf("no todo with id %d", id)
			}

			t.Text = strings.Join(args[1:], " ")
			updated, err := s.Update(cmd.Context(), t)
			if err != nil {
				printViolations(cmd.ErrOrStderr(), err)
				return err
			}
			ok(cmd.OutOrStdout(), "updated #%d %s", updated.ID, updated.Text)
			return nil
		},
	}
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			updated, err := s.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}

			state := "active"
			if updated.Completed {
				state = "completed"
			}
			ok(cmd.OutOrStdout(), "#%d is %s", updated.ID, state)
			return nil
		},
	}
}

// NewToggleAllCommand creates the toggle-all command. Like the checkbox in
// the list header it completes everything unless everything is already
// completed, in which case it reactivates everything.
func NewToggleAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Complete every todo, or reactivate them all if all are completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			if err := s.ToggleAll(cmd.Context(), !s.AllChecked()); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "%s", todo.ItemsLeftLabel(s.RemainingCount()))
			return nil
		},
	}
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			if err := s.Remove(cmd.Context(), id); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "deleted #%d", id)
			return nil
		},
	}
}

// NewClearCompletedCommand creates the clear-completed command.
func NewClearCompletedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := opts.session.store
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			before := len(s.State().Todos)
			if err := s.ClearCompleted(cmd.Context()); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "cleared %d", before-len(s.State().Todos))
			return nil
		},
	}
}

// NewTUICommand creates the tui command.
func NewTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := opts.session
			return tui.Run(cmd.Context(), s.store, s.client, s.logger)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
