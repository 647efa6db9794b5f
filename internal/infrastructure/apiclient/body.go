package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
)

// Body is a request payload.
type Body interface {
	encode() (io.Reader, string, error)
}

// Upload is a file passed through to the backend unmodified.
type Upload interface {
	FileName() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

type jsonBody struct{ v any }

// JSONBody encodes v as application/json.
func JSONBody(v any) Body { return jsonBody{v: v} }

func (b jsonBody) encode() (io.Reader, string, error) {
	raw, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return bytes.NewReader(raw), "application/json", nil
}

type multipartBody struct{ fields map[string]any }

// MultipartBody encodes fields as multipart/form-data. Upload values become
// file parts, booleans are sent as 1/0, nil values are left out.
func MultipartBody(fields map[string]any) Body { return multipartBody{fields: fields} }

// FormBody picks multipart when any value is an Upload, JSON otherwise.
func FormBody(fields map[string]any) Body {
	for _, v := range fields {
		if _, ok := v.(Upload); ok {
			return MultipartBody(fields)
		}
	}
	return JSONBody(fields)
}

func (b multipartBody) encode() (io.Reader, string, error) {
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range keys {
		switch v := b.fields[key].(type) {
		case nil:
			continue
		case Upload:
			if err := writeFilePart(w, key, v); err != nil {
				return nil, "", err
			}
		default:
			if err := w.WriteField(key, formValue(v)); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", key, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, key string, up Upload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(key), quoteEscaper.Replace(up.FileName())))
	h.Set("Content-Type", up.ContentType())

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part %s: %w", key, err)
	}

	src, err := up.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", up.FileName(), err)
	}
	defer src.Close()

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", up.FileName(), err)
	}
	return nil
}

func formValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
