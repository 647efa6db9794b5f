package entity

// FieldKind selects the input widget and the validation type class of a form field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindEmail
	KindPassword
	KindTextarea
	KindSwitch
	KindSelect
	KindFile
	KindNumber
	KindDateTime
)

const (
	DefaultTextareaRows = 4
	DefaultAccept       = "image/*"
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmail:
		return "email"
	case KindPassword:
		return "password"
	case KindTextarea:
		return "textarea"
	case KindSwitch:
		return "switch"
	case KindSelect:
		return "select"
	case KindFile:
		return "file"
	case KindNumber:
		return "number"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// InputType is the HTML input type used to render single-line kinds.
func (k FieldKind) InputType() string {
	switch k {
	case KindEmail:
		return "email"
	case KindPassword:
		return "password"
	case KindFile:
		return "file"
	case KindNumber:
		return "number"
	case KindDateTime:
		return "datetime-local"
	case KindSwitch:
		return "checkbox"
	default:
		return "text"
	}
}

// Option is one entry of a select field.
type Option struct {
	Value string
	Label string
}

// OptionSource binds a select field to options fetched from another resource.
type OptionSource struct {
	Resource   string
	ValueField string // defaults to "id"
	LabelField string // defaults to "name"
}

// Field declares one form input of an entity.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Message  string // required-ness message

	// MinLength applies to password fields; FormatMessage is reported when
	// the value has the wrong shape (email format, short password, not a number).
	MinLength     int
	FormatMessage string

	Default     any
	Options     []Option
	OptionsFrom *OptionSource
	Numeric     bool // select/text value travels as a JSON number

	Accept string // file picker filter
	Rows   int    // textarea rows
}

// Initial returns the add-mode value of the field.
func (f Field) Initial() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case KindSwitch:
		return true
	case KindFile:
		return nil
	default:
		return ""
	}
}

// AcceptFilter returns the file accept filter, defaulting to images.
func (f Field) AcceptFilter() string {
	if f.Accept == "" {
		return DefaultAccept
	}
	return f.Accept
}

// TextareaRows returns the fixed textarea row count.
func (f Field) TextareaRows() int {
	if f.Rows <= 0 {
		return DefaultTextareaRows
	}
	return f.Rows
}

// IsDynamic reports whether the option list must be fetched.
func (f Field) IsDynamic() bool {
	return f.Kind == KindSelect && f.OptionsFrom != nil
}

func (s OptionSource) valueField() string {
	if s.ValueField == "" {
		return "id"
	}
	return s.ValueField
}

func (s OptionSource) labelField() string {
	if s.LabelField == "" {
		return "name"
	}
	return s.LabelField
}

// OptionsFromRecords maps fetched records to select options.
func (s OptionSource) OptionsFromRecords(records []Record) []Option {
	opts := make([]Option, 0, len(records))
	for _, rec := range records {
		value := FormatValue(rec[s.valueField()])
		if value == "" {
			continue
		}
		label := FormatValue(rec[s.labelField()])
		if label == "" {
			label = value
		}
		opts = append(opts, Option{Value: value, Label: label})
	}
	return opts
}
