package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one backend resource instance: field name to decoded JSON value.
type Record map[string]any

// ID returns the stable identifier used for row keys and item paths.
func (r Record) ID() string {
	return FormatValue(r["id"])
}

// Status reads a distinguished boolean-like field.
func (r Record) Status(field string) (bool, bool) {
	v, ok := r[field]
	if !ok {
		return false, false
	}
	return Truthy(v)
}

// FormatValue renders a decoded JSON scalar as text. Whole numbers lose their
// decimal point so ids round-trip into paths.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Truthy accepts the status encodings the backend uses: bool, 0/1 and their
// string forms. The second result is false when v is none of them.
func Truthy(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "on", "yes", "active":
			return true, true
		case "0", "false", "off", "no", "inactive", "":
			return false, true
		}
	}
	return false, false
}
