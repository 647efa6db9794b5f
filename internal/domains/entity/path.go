package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
)

// Path is a compiled dot-path lookup (e.g. "author.name") over decoded JSON.
type Path struct {
	raw  string
	code *gojq.Code
}

// CompilePath compiles a dot-separated path into a jq query. Segments are
// quoted so keys with dashes or digits resolve literally.
func CompilePath(dotted string) (*Path, error) {
	segments := strings.Split(dotted, ".")
	var b strings.Builder
	b.WriteString(".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("path %q: empty segment", dotted)
		}
		b.WriteString("[")
		b.WriteString(strconv.Quote(seg))
		b.WriteString("]")
	}

	query, err := gojq.Parse(b.String())
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", dotted, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", dotted, err)
	}
	return &Path{raw: dotted, code: code}, nil
}

// MustPath compiles a static path and panics on error.
func MustPath(dotted string) *Path {
	p, err := CompilePath(dotted)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Path) String() string { return p.raw }

// Lookup resolves the path against v. It reports false when any segment is
// missing, null, or crosses a non-object value.
func (p *Path) Lookup(v map[string]any) (any, bool) {
	iter := p.code.Run(v)
	out, ok := iter.Next()
	if !ok {
		return nil, false
	}
	if _, isErr := out.(error); isErr {
		return nil, false
	}
	if out == nil {
		return nil, false
	}
	return out, true
}
