package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/pkg/container"
	"kitabcloud-admin/pkg/logger"
)

var errNotLoggedIn = errors.New("not logged in: run `admin login` first")

// app is the state shared by every command of one invocation.
type app struct {
	cfg     *config.Config
	profile string
	in      io.Reader

	// newTerminal is replaced in tests to avoid the OS keyring.
	newTerminal func(*config.Config) *container.Terminal
	term        *container.Terminal
}

func newApp() *app {
	return &app{
		in: os.Stdin,
		newTerminal: func(cfg *config.Config) *container.Terminal {
			return container.NewTerminal(cfg, nil)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "KitabCloud administration console",
		Long: `Administration console for the KitabCloud content platform.

Run "admin serve" for the web console, or use the subcommands below to
manage records from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.profile != "" {
				cfg.App.Profile = a.profile
			}
			a.cfg = cfg
			logger.Init(cfg.App.Environment)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.profile, "profile", "", "keyring profile holding the terminal session (default $ADMIN_PROFILE)")

	root.AddCommand(
		newServeCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newEntitiesCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newStatusCmd(a),
		newExportCmd(a),
		newDashboardCmd(a),
		newRolesCmd(a),
	)
	return root
}

func (a *app) terminal() *container.Terminal {
	if a.term == nil {
		a.term = a.newTerminal(a.cfg)
	}
	return a.term
}

// session restores and verifies the stored session.
func (a *app) session(ctx context.Context) (*container.Terminal, error) {
	t := a.terminal()
	if err := t.Auth.Restore(ctx); err != nil {
		return nil, err
	}
	if !t.Auth.IsAuthenticated() {
		return nil, errNotLoggedIn
	}
	return t, nil
}

// failed maps a backend 401 to the login hint; the stored session has
// already been cleared by then.
func failed(err error) error {
	if crud.Unauthorized(err) {
		return fmt.Errorf("session expired: %w", errNotLoggedIn)
	}
	return err
}

// revoked reports a session a backend 401 ended while the command ran.
func revoked(t *container.Terminal) error {
	if t.Auth.Revoked() {
		return fmt.Errorf("session expired: %w", errNotLoggedIn)
	}
	return nil
}

// printNotices writes successes to stdout and failures to stderr.
func printNotices(cmd *cobra.Command, notices ...crud.Notice) {
	for _, n := range notices {
		if n.IsZero() {
			continue
		}
		if n.Kind == crud.NoticeError {
			fmt.Fprintln(cmd.ErrOrStderr(), "✗ "+n.Message)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ "+n.Message)
	}
}
