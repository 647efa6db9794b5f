package table

import "kitabcloud-admin/internal/domains/entity"

var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

// Actions are the row actions wired for an entity.
type Actions struct {
	Edit   bool
	Delete bool
	View   bool
	Toggle bool
}

// HasAny reports whether an actions column is needed at all.
func (a Actions) HasAny() bool {
	return a.Edit || a.Delete || a.View || a.Toggle
}

// ActionsFor derives the row actions from the descriptor capabilities.
func ActionsFor(d *entity.Descriptor) Actions {
	return Actions{
		Edit:   d.CanEdit(),
		Delete: d.CanDelete(),
		View:   d.CanView(),
		Toggle: d.CanToggle(),
	}
}

// Row is one rendered record.
type Row struct {
	ID     string
	Record entity.Record
	Cells  []Cell
	Active bool // current status, for the toggle control
}

// Grid is a fully rendered page of a list view.
type Grid struct {
	Entity  *entity.Descriptor
	Headers []string
	Rows    []Row
	Actions Actions
	Page    Page
}

// Width is the number of table columns, actions included.
func (g Grid) Width() int {
	if g.Actions.HasAny() {
		return len(g.Headers) + 1
	}
	return len(g.Headers)
}

// Build renders one page of rows through the descriptor columns.
func Build(d *entity.Descriptor, rows []entity.Record, page, size int) Grid {
	p := Paginate(len(rows), page, size)

	g := Grid{
		Entity:  d,
		Headers: Headers(d),
		Actions: ActionsFor(d),
		Page:    p,
	}
	for _, rec := range rows[p.Offset():p.End()] {
		g.Rows = append(g.Rows, RenderRow(d, rec))
	}
	return g
}

// Headers lists the column titles of d.
func Headers(d *entity.Descriptor) []string {
	out := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		out = append(out, c.Header())
	}
	return out
}

// RenderRow renders every column of one record.
func RenderRow(d *entity.Descriptor, rec entity.Record) Row {
	row := Row{ID: rec.ID(), Record: rec, Cells: make([]Cell, 0, len(d.Columns))}
	for _, c := range d.Columns {
		row.Cells = append(row.Cells, Render(c, rec))
	}
	if d.CanToggle() {
		row.Active, _ = rec.Status(d.StatusField)
	}
	return row
}

// Page describes the visible window of a list.
type Page struct {
	Number int // 1-based
	Size   int
	Total  int
	Pages  int
}

// Paginate clamps page and size against total. Unknown sizes fall back to
// the default.
func Paginate(total, page, size int) Page {
	if !validSize(size) {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Page{Number: page, Size: size, Total: total, Pages: pages}
}

func validSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) End() int {
	end := p.Offset() + p.Size
	if end > p.Total {
		end = p.Total
	}
	return end
}

// From and To are the 1-based bounds shown as "From–To of Total".
func (p Page) From() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

func (p Page) To() int { return p.End() }

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.Pages }
func (p Page) Prev() int { return p.Number - 1 }
func (p Page) Next() int { return p.Number + 1 }
