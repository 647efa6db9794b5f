package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/dashboard"
	"kitabcloud-admin/internal/domains/roles"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show platform totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := t.Dashboard.Load(cmd.Context())
			if err != nil {
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: dashboard.FailedMessage})
				return failed(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Total Revenue\t%s\n", summary.Revenue.StringFixed(2))
			for _, c := range summary.Counters {
				fmt.Fprintf(w, "%s\t%d\n", c.Label, c.Value)
			}
			for _, s := range summary.Devices {
				fmt.Fprintf(w, "%s\t%d\t%s%%\n", s.Name, s.Value, s.Percent.String())
			}
			return w.Flush()
		},
	}
}

// ========================================
// ROLES
// ========================================

func newRolesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Show the role permission matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			screen, err := t.Roles.Load(cmd.Context())
			if err != nil {
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: roles.LoadFailed})
				return failed(err)
			}
			return printMatrix(cmd, screen)
		},
	}
	cmd.AddCommand(newGrantCmd(a, true), newGrantCmd(a, false))
	return cmd
}

func newGrantCmd(a *app, grant bool) *cobra.Command {
	var group string
	use, short := "grant", "Grant permissions to a role and save"
	if !grant {
		use, short = "revoke", "Revoke permissions from a role and save"
	}

	cmd := &cobra.Command{
		Use:   use + " <role-id> [permission...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perms := args[1:]
			if group != "" {
				g, ok := roles.GroupByName(group)
				if !ok {
					return fmt.Errorf("unknown permission group %q", group)
				}
				perms = append(perms, g.Permissions...)
			}
			if len(perms) == 0 {
				return errors.New("name at least one permission or a --group")
			}

			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			screen, err := t.Roles.Load(cmd.Context())
			if err != nil {
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: roles.LoadFailed})
				return failed(err)
			}

			m := screen.Matrix.Clone()
			m.SetAll(args[0], perms, grant)
			if err := t.Roles.Save(cmd.Context(), m); err != nil {
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: roles.SaveFailed})
				return failed(err)
			}
			printNotices(cmd, crud.Notice{Kind: crud.NoticeSuccess, Message: roles.SaveSuccess})
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", `apply to a whole group, e.g. "User Management"`)
	return cmd
}

func printMatrix(cmd *cobra.Command, screen *roles.Screen) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	header := []string{"PERMISSION"}
	for _, r := range screen.Roles {
		header = append(header, fmt.Sprintf("%s (#%s, %d users)", r.Name, r.ID, r.UsersCount))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, g := range roles.Groups {
		fmt.Fprintf(w, "%s\n", strings.ToUpper(g.Name))
		for _, p := range g.Permissions {
			row := []string{"  " + p}
			for _, r := range screen.Roles {
				mark := "-"
				if screen.Matrix.Has(r.ID, p) {
					mark = "✓"
				}
				row = append(row, mark)
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}
	return w.Flush()
}
