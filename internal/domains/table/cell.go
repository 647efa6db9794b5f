package table

import (
	"fmt"
	"strconv"
	"time"

	"kitabcloud-admin/internal/domains/entity"
)

// NotAvailable is shown when a relation path does not resolve.
const NotAvailable = "N/A"

const dateLayout = "2006-01-02"

// CellKind tells a renderer how to draw a cell.
type CellKind int

const (
	CellText CellKind = iota
	CellDate
	CellStatus
	CellRelation
)

// Cell is one rendered value of a row.
type Cell struct {
	Kind   CellKind
	Text   string
	Active bool   // status cells only
	Tone   string // status cells: success or error
}

// Render draws one column of one row.
func Render(col entity.Column, row entity.Record) Cell {
	switch c := col.(type) {
	case entity.TextColumn:
		return Cell{Kind: CellText, Text: entity.FormatValue(row[c.Field])}
	case entity.DateColumn:
		return Cell{Kind: CellDate, Text: FormatDate(row[c.Field])}
	case entity.StatusColumn:
		active, _ := entity.Truthy(row[c.Field])
		return statusCell(active)
	case entity.RelationColumn:
		v, ok := c.Path.Lookup(row)
		if !ok {
			return Cell{Kind: CellRelation, Text: NotAvailable}
		}
		text := entity.FormatValue(v)
		if text == "" {
			text = NotAvailable
		}
		return Cell{Kind: CellRelation, Text: text}
	default:
		panic(fmt.Sprintf("table: unhandled column type %T", col))
	}
}

func statusCell(active bool) Cell {
	if active {
		return Cell{Kind: CellStatus, Text: "Active", Active: true, Tone: "success"}
	}
	return Cell{Kind: CellStatus, Text: "Inactive", Tone: "error"}
}

var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
)

// FormatDate renders a backend timestamp as a local calendar date. Missing
// values render empty; values that do not parse are shown as they are.
func FormatDate(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return unixDate(int64(t))
	case string:
		if t == "" {
			return ""
		}
		for _, layout := range zonedLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.Local().Format(dateLayout)
			}
		}
		for _, layout := range localLayouts {
			if ts, err := time.ParseInLocation(layout, t, time.Local); err == nil {
				return ts.Format(dateLayout)
			}
		}
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return unixDate(n)
		}
		return t
	default:
		return entity.FormatValue(v)
	}
}

// unixDate accepts seconds or milliseconds since the epoch.
func unixDate(n int64) string {
	if n > 1e12 {
		return time.UnixMilli(n).Local().Format(dateLayout)
	}
	return time.Unix(n, 0).Local().Format(dateLayout)
}
