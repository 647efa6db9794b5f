package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session in the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(a.in)
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := readLine(in)
				if err != nil {
					return err
				}
				email = line
			}

			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			password, err := readPassword(a.in, in)
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			t := a.terminal()
			res := t.Auth.Login(cmd.Context(), email, password)
			if !res.Success {
				keys := make([]string, 0, len(res.Errors))
				for k := range res.Errors {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", k, res.Errors[k])
				}
				if res.Message != "" {
					return errors.New(res.Message)
				}
				return errors.New("login failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", t.Auth.User().DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.terminal().Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(t.Auth.RawUser()))
				return err
			}
			user := t.Auth.User()
			fmt.Fprintln(cmd.OutOrStdout(), user.DisplayName())
			if email := user.Email(); email != "" {
				fmt.Fprintln(cmd.OutOrStdout(), email)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored user object")
	return cmd
}

// readPassword reads without echo when stdin is a terminal, a plain line
// otherwise.
func readPassword(raw io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return readLine(buffered)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
