package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kitabcloud-admin/internal/domains/catalog"
	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/table"
)

// ========================================
// BROWSING
// ========================================

func newEntitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the manageable resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range catalog.Sections() {
				fmt.Fprintf(w, "%s\n", strings.ToUpper(s.Title))
				for _, d := range s.Entities {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", d.Name, capabilities(d), d.Description)
				}
			}
			return w.Flush()
		},
	}
}

func capabilities(d *entity.Descriptor) string {
	var caps []string
	if d.CanAdd() {
		caps = append(caps, "add")
	}
	if d.CanEdit() {
		caps = append(caps, "edit")
	}
	if d.CanDelete() {
		caps = append(caps, "delete")
	}
	if d.CanToggle() {
		caps = append(caps, "status")
	}
	if len(caps) == 0 {
		return "read-only"
	}
	return strings.Join(caps, ",")
}

func newListCmd(a *app) *cobra.Command {
	var (
		page, size int
		search     string
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Show one page of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			view := crud.NewListView(t.CRUD, d)
			view.Query = strings.TrimSpace(search)
			if out := view.Load(cmd.Context()); !out.OK() {
				printNotices(cmd, out.Notices...)
				return failed(out.Err)
			}
			return printGrid(cmd.OutOrStdout(), table.Build(d, view.Rows, page, size))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", table.DefaultPageSize, "rows per page (10, 25, 50 or 100)")
	cmd.Flags().StringVar(&search, "search", "", "let the backend filter rows by this term")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource> <id>",
		Short: "Show every attribute of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			rec, err := t.CRUD.Fetch(cmd.Context(), d, args[1])
			if err != nil {
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: crud.DetailsFailed(d)})
				return failed(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, attr := range table.Detail(d, rec) {
				fmt.Fprintf(w, "%s\t%s\n", attr.Label, attr.Cell.Text)
			}
			return w.Flush()
		},
	}
}

func printGrid(out io.Writer, g table.Grid) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(g.Headers, "\t"))
	for _, row := range g.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.Text
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d-%d of %d (page %d/%d)\n", g.Page.From(), g.Page.To(), g.Page.Total, g.Page.Number, g.Page.Pages)
	return err
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Write every row of a resource to an XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			view := crud.NewListView(t.CRUD, d)
			if out := view.Load(cmd.Context()); !out.OK() {
				printNotices(cmd, out.Notices...)
				return failed(out.Err)
			}

			if output == "" {
				output = table.ExportFileName(d)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := table.WriteXLSX(f, d, view.Rows); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d %s written to %s\n", len(view.Rows), strings.ToLower(d.Plural), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <resource>.xlsx)")
	return cmd
}

// ========================================
// FORMS
// ========================================

type formFlags struct {
	sets  []string
	files []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "file field as name=path (repeatable)")
}

// apply copies the flag values into the form.
func (f *formFlags) apply(form *crud.Form) error {
	for _, kv := range f.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected name=value", kv)
		}
		if err := form.SetInput(name, value); err != nil {
			return err
		}
	}
	for _, kv := range f.files {
		name, path, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--file %q: expected name=path", kv)
		}
		file, err := localFile(path)
		if err != nil {
			return err
		}
		if err := form.Set(name, file); err != nil {
			return err
		}
	}
	return nil
}

func localFile(path string) (*entity.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return entity.NewFile(filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

func newAddCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "add <resource>",
		Short: "Create a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			form, err := t.CRUD.NewForm(cmd.Context(), d)
			if err != nil {
				return err
			}
			if err := revoked(t); err != nil {
				return err
			}
			if err := flags.apply(form); err != nil {
				return err
			}
			return submitForm(cmd, t.CRUD, form)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "edit <resource> <id>",
		Short: "Update a record; unset fields keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			form, err := t.CRUD.EditForm(cmd.Context(), d, args[1])
			if err != nil {
				if errors.Is(err, crud.ErrReadOnly) {
					return err
				}
				printNotices(cmd, crud.Notice{Kind: crud.NoticeError, Message: crud.DetailsFailed(d)})
				return failed(err)
			}
			if err := revoked(t); err != nil {
				return err
			}
			if err := flags.apply(form); err != nil {
				return err
			}
			return submitForm(cmd, t.CRUD, form)
		},
	}
	flags.register(cmd)
	return cmd
}

// submitForm sends the form and reports the outcome. Validation failures
// list every field message and make no request.
func submitForm(cmd *cobra.Command, svc *crud.Service, form *crud.Form) error {
	res := svc.Submit(cmd.Context(), form)
	if errors.Is(res.Err, crud.ErrInvalidForm) {
		names := make([]string, 0, len(form.Errors))
		for name := range form.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", name, form.Errors[name])
		}
		return res.Err
	}

	printNotices(cmd, res.Notice)
	if !res.Saved {
		return failed(res.Err)
	}
	return nil
}

// ========================================
// DELETE & STATUS
// ========================================

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			if !d.CanDelete() {
				return fmt.Errorf("%s cannot be deleted", d.Plural)
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s %s? This action cannot be undone. [y/N]: ", strings.ToLower(d.Singular), args[1])
				answer, err := readLine(bufio.NewReader(a.in))
				if err != nil {
					return err
				}
				if ans := strings.ToLower(answer); ans != "y" && ans != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			view := crud.NewListView(t.CRUD, d)
			out := view.Delete(cmd.Context(), args[1])
			printNotices(cmd, out.Notices...)
			if !out.OK() {
				return failed(out.Err)
			}
			if view.Loaded {
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s remaining\n", len(view.Rows), strings.ToLower(d.Plural))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <resource> <id> <active|inactive>",
		Short: "Activate or deactivate a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			if !d.CanToggle() {
				return fmt.Errorf("%s have no status", d.Plural)
			}
			status, ok := entity.Truthy(args[2])
			if !ok {
				return fmt.Errorf("status must be active or inactive, got %q", args[2])
			}
			t, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			view := crud.NewListView(t.CRUD, d)
			out := view.ToggleStatus(cmd.Context(), args[1], status)
			printNotices(cmd, out.Notices...)
			if !out.OK() {
				return failed(out.Err)
			}
			if rec, ok := view.Find(args[1]); ok {
				cell := table.Render(entity.Status(d.StatusField, "Status"), rec)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", d.Singular, args[1], cell.Text)
			}
			return nil
		},
	}
}
