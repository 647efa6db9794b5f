package entity

import (
	"fmt"
	"net/http"
	"strings"

	"kitabcloud-admin/internal/domains/registry"
)

// Descriptor is the static metadata of one backend resource. A single value
// drives the list view, the add form and the edit form.
type Descriptor struct {
	Name        string // registry name and console route segment
	Singular    string
	Plural      string
	Description string
	Path        string // REST collection path

	Fields  []Field
	Columns []Column

	StatusField  string // empty when the resource has no status toggle
	StatusMethod string // defaults to POST
	ReadOnly     bool   // list only, no add/edit forms
	NoDelete     bool
}

// ListEndpoint is the collection path: GET list, POST create.
func (d *Descriptor) ListEndpoint() string { return d.Path }

// ItemEndpoint is the record path: GET, PUT, DELETE.
func (d *Descriptor) ItemEndpoint(id string) string { return registry.Item(d.Path, id) }

// StatusEndpoint is the status sub-resource of a record.
func (d *Descriptor) StatusEndpoint(id string) string { return registry.Status(d.Path, id) }

// StatusVerb is the HTTP method for status toggles.
func (d *Descriptor) StatusVerb() string {
	if d.StatusMethod == "" {
		return http.MethodPost
	}
	return d.StatusMethod
}

// Route is the console list route of the resource.
func (d *Descriptor) Route() string { return "/" + d.Name }

func (d *Descriptor) CanAdd() bool { return !d.ReadOnly && len(d.Fields) > 0 }
func (d *Descriptor) CanEdit() bool { return !d.ReadOnly && len(d.Fields) > 0 }
func (d *Descriptor) CanDelete() bool { return !d.NoDelete }
func (d *Descriptor) CanToggle() bool { return d.StatusField != "" }

// CanView reports whether records open in a read-only detail view, which
// read-only resources offer in place of an edit form.
func (d *Descriptor) CanView() bool { return d.ReadOnly }

// Field returns the declared field with the given name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasFileField reports whether forms of this entity upload files.
func (d *Descriptor) HasFileField() bool {
	for _, f := range d.Fields {
		if f.Kind == KindFile {
			return true
		}
	}
	return false
}

// Defaults returns the add-mode initial values.
func (d *Descriptor) Defaults() Values {
	v := make(Values, len(d.Fields))
	for _, f := range d.Fields {
		v[f.Name] = f.Initial()
	}
	return v
}

// Seed builds edit-mode values from a fetched record. Password fields stay
// blank and file fields stay unset.
func (d *Descriptor) Seed(rec Record) Values {
	v := d.Defaults()
	for _, f := range d.Fields {
		switch f.Kind {
		case KindPassword:
			v[f.Name] = ""
		case KindFile:
			v[f.Name] = nil
		case KindSwitch:
			if b, ok := Truthy(rec[f.Name]); ok {
				v[f.Name] = b
			}
		default:
			if raw, ok := rec[f.Name]; ok && raw != nil {
				v[f.Name] = FormatValue(raw)
			}
		}
	}
	return v
}

// ParseInput converts raw text input (a form post, a CLI flag) into a value of
// the field's kind.
func (d *Descriptor) ParseInput(name, raw string) (any, error) {
	f, ok := d.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, d.Name, name)
	}
	switch f.Kind {
	case KindSwitch:
		b, ok := Truthy(raw)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not a boolean", name, raw)
		}
		return b, nil
	case KindFile:
		return nil, fmt.Errorf("%s: file fields take a file, not text", name)
	default:
		return raw, nil
	}
}

// Payload builds the request body from validated values. Every non-file field
// is present; file fields only when a file was picked. In edit mode a blank
// password is left out entirely.
func (d *Descriptor) Payload(mode Mode, values Values) map[string]any {
	out := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		v := values[f.Name]
		switch f.Kind {
		case KindFile:
			if file, ok := v.(*File); ok && file != nil {
				out[f.Name] = file
			}
		case KindPassword:
			s := strings.TrimSpace(FormatValue(v))
			if s == "" && mode == ModeEdit {
				continue
			}
			out[f.Name] = FormatValue(v)
		case KindSwitch:
			b, _ := Truthy(v)
			out[f.Name] = b
		case KindNumber:
			out[f.Name] = numberOf(v)
		default:
			if f.Numeric {
				out[f.Name] = numberOf(v)
				continue
			}
			out[f.Name] = FormatValue(v)
		}
	}
	return out
}

// HasFiles reports whether a payload carries a picked file.
func HasFiles(payload map[string]any) bool {
	for _, v := range payload {
		if _, ok := v.(*File); ok {
			return true
		}
	}
	return false
}
