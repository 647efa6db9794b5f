package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// FieldErrors maps a field name to its inline error message.
type FieldErrors map[string]string

// Error implements error so a failed validation can travel as one value.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(parts, "; ")
}

// Schema validates form values of one descriptor in one mode.
type Schema struct {
	fields []Field
	keys   []*validation.KeyRules
}

// Schema builds the validation schema for the given form mode.
func (d *Descriptor) Schema(mode Mode) *Schema {
	s := &Schema{fields: d.Fields}
	for _, f := range d.Fields {
		rules := fieldRules(f, mode)
		s.keys = append(s.keys, validation.Key(f.Name, rules...).Optional())
	}
	return s
}

func fieldRules(f Field, mode Mode) []validation.Rule {
	var rules []validation.Rule

	required := f.Required
	// Edit forms leave passwords blank to keep the stored credential.
	if f.Kind == KindPassword && mode == ModeEdit {
		required = false
	}
	if f.Kind == KindSwitch {
		required = false
	}
	if required {
		rules = append(rules, validation.Required.Error(requiredMessage(f)))
	}

	switch f.Kind {
	case KindEmail:
		rules = append(rules, is.EmailFormat.Error(formatMessage(f, "Invalid email")))
	case KindPassword:
		if f.MinLength > 0 {
			msg := formatMessage(f, fmt.Sprintf("Password must be at least %d characters", f.MinLength))
			rules = append(rules, validation.RuneLength(f.MinLength, 0).Error(msg))
		}
	case KindNumber:
		rules = append(rules, is.Float.Error(formatMessage(f, fmt.Sprintf("%s must be a number", f.label()))))
	case KindSwitch:
		rules = append(rules, validation.By(isBoolean(formatMessage(f, fmt.Sprintf("%s must be true or false", f.label())))))
	case KindFile:
		if required {
			rules = []validation.Rule{validation.By(fileChosen(requiredMessage(f)))}
		}
	}
	return rules
}

// Validate checks values and returns nil when every rule passes.
func (s *Schema) Validate(values Values) FieldErrors {
	normalized := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		normalized[f.Name] = normalizeForRules(f, values[f.Name])
	}

	err := validation.Validate(normalized, validation.Map(s.keys...).AllowExtraKeys())
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := FieldErrors{}
	for name, ferr := range verrs {
		out[name] = ferr.Error()
	}
	return out
}

// normalizeForRules shapes a value for ozzo rules: text kinds validate as
// trimmed strings, files as *File (nil interface when unset).
func normalizeForRules(f Field, v any) interface{} {
	switch f.Kind {
	case KindSwitch:
		if v == nil {
			return false
		}
		return v
	case KindFile:
		if file, ok := v.(*File); ok && file != nil {
			return file
		}
		return nil
	default:
		if v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return FormatValue(v)
	}
}

func isBoolean(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		if _, ok := value.(bool); !ok {
			return errors.New(msg)
		}
		return nil
	}
}

func fileChosen(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		if f, ok := value.(*File); !ok || f == nil {
			return errors.New(msg)
		}
		return nil
	}
}

func requiredMessage(f Field) string {
	if f.Message != "" {
		return f.Message
	}
	return f.label() + " is required"
}

func formatMessage(f Field, fallback string) string {
	if f.FormatMessage != "" {
		return f.FormatMessage
	}
	return fallback
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
