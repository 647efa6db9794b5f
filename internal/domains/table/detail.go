package table

import (
	"encoding/json"
	"sort"

	"kitabcloud-admin/internal/domains/entity"
)

// Attribute is one labelled value of a record detail view.
type Attribute struct {
	Label string
	Cell  Cell
}

// Detail renders a single record: the descriptor columns first, then every
// other attribute the backend sent, sorted by key. Passwords are never shown.
func Detail(d *entity.Descriptor, rec entity.Record) []Attribute {
	out := make([]Attribute, 0, len(rec)+len(d.Columns))
	shown := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		out = append(out, Attribute{Label: c.Header(), Cell: Render(c, rec)})
		shown[c.Key()] = true
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		if shown[k] || secret(d, k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out = append(out, Attribute{Label: k, Cell: Cell{Kind: CellText, Text: detailValue(rec[k])}})
	}
	return out
}

func secret(d *entity.Descriptor, key string) bool {
	if key == "password" {
		return true
	}
	f, ok := d.Field(key)
	return ok && f.Kind == entity.KindPassword
}

// detailValue shows nested objects and lists as compact JSON.
func detailValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return entity.FormatValue(v)
		}
		return string(b)
	default:
		return entity.FormatValue(v)
	}
}
