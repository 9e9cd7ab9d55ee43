// Package postgres provides the PostgreSQL dialect renderer for dblink.
package postgres

import (
	"fmt"
	"strings"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	render.Base
}

// New creates a new PostgreSQL renderer.
func New() *Renderer {
	return &Renderer{Base: render.Base{
		Dialect: "postgres",
		Capabilities: render.Capabilities{
			Returning:          true,
			NumberedParameters: true,
			NativeBoolean:      true,
			NativeTime:         true,
		},
	}}
}

// Placeholder returns $1, $2, ...
func (r *Renderer) Placeholder(index int) string {
	return render.NumberedPlaceholder("$", index)
}

// SerializeValue binds arrays as-is for pgx and defers everything else to the default codec.
func (r *Renderer) SerializeValue(v any, t types.DataType) (any, error) {
	if t == types.TypeUnknown {
		t = render.InferType(v)
	}
	if t == types.TypeArray {
		if _, ok := v.(string); !ok {
			return v, nil
		}
	}
	return r.Base.SerializeValue(v, t)
}

// DeserializeValue decodes array literals such as {1,2,"a b"}.
func (r *Renderer) DeserializeValue(v any, t types.DataType) (any, error) {
	if t == types.TypeArray {
		var raw string
		switch x := v.(type) {
		case string:
			raw = x
		case []byte:
			raw = string(x)
		default:
			return v, nil
		}
		if strings.HasPrefix(raw, "{") {
			return parseArray(raw)
		}
	}
	return r.Base.DeserializeValue(v, t)
}

// parseArray decodes a one-dimensional array literal. Elements are returned as
// strings; unquoted NULL becomes nil.
func parseArray(raw string) ([]any, error) {
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return nil, fmt.Errorf("malformed array literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	out := []any{}
	if body == "" {
		return out, nil
	}

	var sb strings.Builder
	quoted, inQuotes := false, false
	flush := func() {
		elem := sb.String()
		if !quoted && strings.EqualFold(elem, "NULL") {
			out = append(out, nil)
		} else {
			out = append(out, elem)
		}
		sb.Reset()
		quoted = false
	}

	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case inQuotes && ch == '\\':
			if i+1 >= len(body) {
				return nil, fmt.Errorf("malformed array literal %q", raw)
			}
			i++
			sb.WriteByte(body[i])
		case ch == '"':
			inQuotes = !inQuotes
			quoted = true
		case !inQuotes && ch == ',':
			flush()
		case !inQuotes && (ch == '{' || ch == '}'):
			return nil, fmt.Errorf("nested array literal %q is not supported", raw)
		default:
			sb.WriteByte(ch)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in array literal %q", raw)
	}
	flush()
	return out, nil
}
