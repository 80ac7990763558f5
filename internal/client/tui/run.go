package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsamuelsen11/todomvc/internal/client/store"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
	"github.com/jsamuelsen11/todomvc/internal/ports"
)

// Run shows the interactive list until the user quits or ctx is done.
// When watcher is non-nil the list also follows the server's change feed.
func Run(ctx context.Context, s *store.Store, watcher ports.TodoWatcher, logger *slog.Logger, opts ...tea.ProgramOption) error {
	if logger == nil {
		logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, s), opts...)

	unsubscribe := s.Subscribe(func(st store.State) { p.Send(stateMsg(st)) })
	defer unsubscribe()

	if watcher != nil {
		go func() {
			if err := s.Follow(ctx, watcher); err != nil && !errors.Is(err, context.Canceled) {
				logger.WarnContext(ctx, "change feed stopped", slog.Any("error", err))
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
