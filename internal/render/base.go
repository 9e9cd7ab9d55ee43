// Package render holds the lexical templates and helpers shared by the dialect renderers.
package render

import (
	"strconv"
	"strings"

	"github.com/nitinet/dblink-core/internal/types"
)

// Base implements the default lexical templates for every operator.
// Dialects embed it and override what differs.
type Base struct {
	Dialect      string
	Capabilities Capabilities

	// LegacyOperators renders unknown operators as a conjunction instead of failing.
	LegacyOperators bool
}

var (
	_ types.Handler               = Base{}
	_ types.Placeholder           = Base{}
	_ types.ValueCodec            = Base{}
	_ types.LegacyOperatorHandler = Base{}
	_ types.LimitOrderHandler     = Base{}
)

// Name returns the dialect name.
func (b Base) Name() string {
	if b.Dialect == "" {
		return "generic"
	}
	return b.Dialect
}

// Caps returns the dialect capabilities.
func (b Base) Caps() Capabilities {
	return b.Capabilities
}

// LegacyOperatorFallback reports whether unknown operators render as AND.
func (b Base) LegacyOperatorFallback() bool {
	return b.LegacyOperators
}

// LimitOffsetFirst reports whether Limit writes the offset before the size.
func (b Base) LimitOffsetFirst() bool {
	return b.Capabilities.OffsetFirst
}

// Placeholder returns "?" for every index.
func (b Base) Placeholder(_ int) string {
	return "?"
}

func (b Base) Eq(a, c string) string  { return a + " = " + c }
func (b Base) Neq(a, c string) string { return a + " != " + c }
func (b Base) Lt(a, c string) string  { return a + " < " + c }
func (b Base) Lte(a, c string) string { return a + " <= " + c }
func (b Base) Gt(a, c string) string  { return a + " > " + c }
func (b Base) Gte(a, c string) string { return a + " >= " + c }

// And joins the non-empty fragments, each wrapped in parentheses.
func (b Base) And(values []string) string {
	return Group(values, " and ")
}

// Or joins the non-empty fragments, each wrapped in parentheses.
func (b Base) Or(values []string) string {
	return Group(values, " or ")
}

func (b Base) Not(v string) string { return "not (" + v + ")" }

// Arithmetic operands that are not atomic are wrapped in parentheses.
func (b Base) Plus(a, c string) string     { return Atom(a) + " + " + Atom(c) }
func (b Base) Minus(a, c string) string    { return Atom(a) + " - " + Atom(c) }
func (b Base) Multiply(a, c string) string { return Atom(a) + " * " + Atom(c) }
func (b Base) Divide(a, c string) string   { return Atom(a) + " / " + Atom(c) }

func (b Base) Between(v, low, high string) string {
	return v + " between " + low + " and " + high
}

func (b Base) Exists(v string) string { return "exists (" + v + ")" }

// In renders the first fragment against the rest as a list.
func (b Base) In(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0] + " in (" + strings.Join(values[1:], ", ") + ")"
}

func (b Base) Like(a, c string) string   { return a + " like " + c }
func (b Base) IsNull(v string) string    { return v + " is null" }
func (b Base) IsNotNull(v string) string { return v + " is not null" }
func (b Base) Asc(v string) string       { return v + " asc" }
func (b Base) Desc(v string) string      { return v + " desc" }

// Limit renders "limit size[ offset n]", keeping operands in argument order.
func (b Base) Limit(size, offset string) string {
	if offset != "" {
		return "limit " + size + " offset " + offset
	}
	return "limit " + size
}

func (b Base) Count(v string) string { return "count(" + v + ")" }
func (b Base) Sum(v string) string   { return "sum(" + v + ")" }
func (b Base) Min(v string) string   { return "min(" + v + ")" }
func (b Base) Max(v string) string   { return "max(" + v + ")" }
func (b Base) Avg(v string) string   { return "avg(" + v + ")" }

// ReturnColumns renders "returning a, b" when the dialect supports it.
func (b Base) ReturnColumns(columns []string) (string, error) {
	if !b.Capabilities.Returning {
		return "", NewUnsupportedFeatureError(b.Name(), "RETURNING",
			"run a separate SELECT after the INSERT")
	}
	if len(columns) == 0 {
		return "", nil
	}
	return "returning " + strings.Join(columns, ", "), nil
}

// Group wraps each non-empty fragment in parentheses and joins them with sep.
func Group(values []string, sep string) string {
	var sb strings.Builder
	for _, v := range values {
		if v == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString("(")
		sb.WriteString(v)
		sb.WriteString(")")
	}
	return sb.String()
}

// Atom returns v unchanged when it has no whitespace outside parentheses and
// quotes, and wrapped in parentheses otherwise.
func Atom(v string) string {
	if v == "" {
		return v
	}
	depth := 0
	var quote byte
	for i := 0; i < len(v); i++ {
		ch := v[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == '\n'):
			return "(" + v + ")"
		}
	}
	return v
}

// NumberedPlaceholder formats prefix followed by the decimal index.
func NumberedPlaceholder(prefix string, index int) string {
	return prefix + strconv.Itoa(index)
}
