package entity

import (
	"io"
	"strconv"
	"strings"
)

// Mode distinguishes the add and edit flavours of an entity form.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// Values holds the current state of a form, keyed by field name.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String returns the text form of a value, empty when unset.
func (v Values) String(name string) string {
	if f, ok := v[name].(*File); ok && f != nil {
		return f.FileName()
	}
	return FormatValue(v[name])
}

// Bool returns a switch value.
func (v Values) Bool(name string) bool {
	b, _ := Truthy(v[name])
	return b
}

// File returns the chosen file of a file field, nil when none was picked.
func (v Values) File(name string) *File {
	f, _ := v[name].(*File)
	return f
}

// File is a picked file handle. It is passed to the backend unmodified.
type File struct {
	name        string
	contentType string
	size        int64
	open        func() (io.ReadCloser, error)
}

// NewFile wraps a file handle from a web upload or a local path.
func NewFile(name, contentType string, size int64, open func() (io.ReadCloser, error)) *File {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &File{name: name, contentType: contentType, size: size, open: open}
}

func (f *File) FileName() string { return f.name }
func (f *File) ContentType() string { return f.contentType }
func (f *File) Size() int64 { return f.size }
func (f *File) Open() (io.ReadCloser, error) { return f.open() }

// numberOf converts form text into a JSON number where possible.
func numberOf(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64, int, int64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return t
	default:
		return t
	}
}
