// Package cli implements the todo command-line client.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/todomvc/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/todomvc/internal/client/store"
	"github.com/jsamuelsen11/todomvc/internal/domain/todo"
	"github.com/jsamuelsen11/todomvc/internal/platform/config"
	"github.com/jsamuelsen11/todomvc/internal/platform/httpclient"
	"github.com/jsamuelsen11/todomvc/internal/platform/logging"
)

const defaultProfile = "local"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Profile   string
	ConfigDir string
	BaseURL   string
	Verbose   bool

	session *session
}

// session is the wiring shared by every subcommand once flags are parsed.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	client *acl.TodoClient
	store  *store.Store
}

// NewRootCommand creates the root command for the todo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage todos on a todo API server",
		Long: `Manage todos on a todo API server.

Configuration is read from {config-dir}/base.yaml and {config-dir}/{profile}.yaml
and can be overridden with APP_ environment variables, e.g. APP_CLIENT_BASE_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(opts, cmd)
			if err != nil {
				return err
			}
			opts.session = s
			return nil
		},
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		profile = defaultProfile
	}

	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", profile, "config profile")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "configs", "directory holding the config files")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "server URL, overrides client.base_url")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewToggleAllCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewClearCompletedCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	loadOpts := []config.Option{config.WithConfigDir(opts.ConfigDir)}
	if opts.BaseURL != "" {
		loadOpts = append(loadOpts, config.WithOverride("client.base_url", opts.BaseURL))
	}
	cfg, err := config.Load(opts.Profile, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	logger := logging.New(level, "text", cmd.ErrOrStderr())

	client := acl.NewTodoClient(httpclient.New(&cfg.Client, "todo-api", nil, logger), logger)

	return &session{
		cfg:    cfg,
		logger: logger,
		client: client,
		store: store.New(client,
			store.WithValidator(todo.NewValidator(cfg.Todo.MaxTextLength)),
			store.WithLogger(logger),
		),
	}, nil
}
