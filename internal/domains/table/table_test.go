package table

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kitabcloud-admin/internal/domains/entity"
)

func TestRenderColumns(t *testing.T) {
	row := entity.Record{
		"id":         float64(12),
		"name":       "Fiction",
		"status":     "1",
		"created_at": "2024-03-05T10:00:00Z",
		"author":     map[string]any{"name": "Ngugi"},
		"category":   nil,
	}

	assert.Equal(t, Cell{Kind: CellText, Text: "12"}, Render(entity.Text("id", "ID"), row))
	assert.Equal(t, Cell{Kind: CellText, Text: "Fiction"}, Render(entity.Text("name", "Name"), row))
	assert.Equal(t, Cell{Kind: CellRelation, Text: "Ngugi"}, Render(entity.Relation("author", "Author", "author.name"), row))
	assert.Equal(t, Cell{Kind: CellRelation, Text: NotAvailable}, Render(entity.Relation("category", "Category", "category.category_name"), row))
	assert.Equal(t, Cell{Kind: CellRelation, Text: NotAvailable}, Render(entity.Relation("language", "Language", "language.name"), row))

	want := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC).Local().Format("2006-01-02")
	assert.Equal(t, Cell{Kind: CellDate, Text: want}, Render(entity.Date("created_at", "Created"), row))
}

func TestStatusChip(t *testing.T) {
	col := entity.Status("status", "Status")
	for _, v := range []any{true, float64(1), "1", "true"} {
		c := Render(col, entity.Record{"status": v})
		assert.Equal(t, "Active", c.Text, "%v", v)
		assert.Equal(t, "success", c.Tone)
	}
	for _, v := range []any{false, float64(0), "0", "false", nil} {
		c := Render(col, entity.Record{"status": v})
		assert.Equal(t, "Inactive", c.Text, "%v", v)
		assert.Equal(t, "error", c.Tone)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "next week", FormatDate("next week"))
	assert.Equal(t, "2024-01-31", FormatDate("2024-01-31"))
}

func TestActionsColumn(t *testing.T) {
	assert.False(t, Actions{}.HasAny())
	assert.True(t, Actions{Toggle: true}.HasAny())

	readOnly := &entity.Descriptor{Name: "logs", NoDelete: true, Columns: []entity.Column{entity.Text("id", "ID")}}
	assert.False(t, ActionsFor(readOnly).HasAny())

	tags := &entity.Descriptor{
		Name:        "tags",
		StatusField: "status",
		Fields:      []entity.Field{{Name: "name", Kind: entity.KindText}},
	}
	assert.Equal(t, Actions{Edit: true, Delete: true, Toggle: true}, ActionsFor(tags))

	feedback := &entity.Descriptor{Name: "feedback", ReadOnly: true}
	assert.Equal(t, Actions{Delete: true, View: true}, ActionsFor(feedback))
}

func TestGridWidth(t *testing.T) {
	g := Build(sampleDescriptor(), nil, 1, 10)
	assert.Equal(t, 5, g.Width())

	g.Actions = Actions{}
	assert.Equal(t, 4, g.Width())
}

func TestDetail(t *testing.T) {
	d := sampleDescriptor()
	d.Fields = []entity.Field{{Name: "secret_code", Kind: entity.KindPassword}}
	rec := entity.Record{
		"id":          float64(7),
		"title":       "Kitab",
		"author":      map[string]any{"name": "Ngugi"},
		"status":      1,
		"tags":        []any{"a", "b"},
		"isbn":        "978-0",
		"password":    "x",
		"secret_code": "y",
	}

	attrs := Detail(d, rec)
	labels := make([]string, 0, len(attrs))
	for _, a := range attrs {
		labels = append(labels, a.Label)
	}
	assert.Equal(t, []string{"ID", "Title", "Author", "Status", "isbn", "tags"}, labels)
	assert.Equal(t, "Ngugi", attrs[2].Cell.Text)
	assert.Equal(t, "Active", attrs[3].Cell.Text)
	assert.Equal(t, `["a","b"]`, attrs[5].Cell.Text)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		want              Page
	}{
		{"defaults", 0, 0, 0, Page{Number: 1, Size: 10, Total: 0, Pages: 1}},
		{"unknown size", 30, 1, 7, Page{Number: 1, Size: 10, Total: 30, Pages: 3}},
		{"last page clamp", 30, 9, 25, Page{Number: 2, Size: 25, Total: 30, Pages: 2}},
		{"exact", 100, 1, 100, Page{Number: 1, Size: 100, Total: 100, Pages: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.total, tt.page, tt.size))
		})
	}

	p := Paginate(30, 2, 25)
	assert.Equal(t, 26, p.From())
	assert.Equal(t, 30, p.To())
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func sampleDescriptor() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "books",
		Plural:      "Books",
		StatusField: "status",
		ReadOnly:    true,
		Columns: []entity.Column{
			entity.Text("id", "ID"),
			entity.Text("title", "Title"),
			entity.Relation("author", "Author", "author.name"),
			entity.Status("status", "Status"),
		},
	}
}

func sampleRows(n int) []entity.Record {
	rows := make([]entity.Record, n)
	for i := range rows {
		rows[i] = entity.Record{"id": float64(i + 1), "title": "Book", "status": i%2 == 0}
	}
	return rows
}

func TestBuildGrid(t *testing.T) {
	g := Build(sampleDescriptor(), sampleRows(23), 3, 10)

	assert.Equal(t, []string{"ID", "Title", "Author", "Status"}, g.Headers)
	require.Len(t, g.Rows, 3)
	assert.Equal(t, "21", g.Rows[0].ID)
	assert.True(t, g.Rows[0].Active)
	assert.Equal(t, NotAvailable, g.Rows[0].Cells[2].Text)
	assert.Equal(t, Actions{Delete: true, View: true, Toggle: true}, g.Actions)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleDescriptor(), sampleRows(2)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Books")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Author", "Status"}, rows[0])
	assert.Equal(t, []string{"1", "Book", "N/A", "Active"}, rows[1])
	assert.Equal(t, []string{"2", "Book", "N/A", "Inactive"}, rows[2])
}
