package render

import (
	"strings"

	"github.com/nitinet/dblink-core/internal/types"
)

// Rebind rewrites each "?" marker outside quoted literals and identifiers to the
// dialect placeholder for its position. SQL is returned unchanged when the
// dialect already uses "?". Brackets quote identifiers only when p reports
// Capabilities.BracketIdentifiers.
func Rebind(sql string, p types.Placeholder) string {
	if p == nil || p.Placeholder(1) == "?" || !strings.Contains(sql, "?") {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql) + 8)

	index := 0
	last := 0
	scanMarkers(sql, BracketIdentifiers(p), func(i int) {
		index++
		sb.WriteString(sql[last:i])
		sb.WriteString(p.Placeholder(index))
		last = i + 1
	})
	sb.WriteString(sql[last:])
	return sb.String()
}

// CountPlaceholders returns the number of "?" markers outside quoted sections.
// When brackets is set, [name] is treated as a quoted identifier.
func CountPlaceholders(sql string, brackets bool) int {
	n := 0
	scanMarkers(sql, brackets, func(int) { n++ })
	return n
}

// BracketIdentifiers reports whether v is a dialect that quotes identifiers
// with brackets.
func BracketIdentifiers(v any) bool {
	c, ok := v.(interface{ Caps() Capabilities })
	return ok && c.Caps().BracketIdentifiers
}

// scanMarkers calls fn with the byte offset of every "?" outside quotes.
func scanMarkers(sql string, brackets bool, fn func(i int)) {
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			// a doubled quote inside a literal is an escaped quote and keeps us inside
			if ch == quote {
				if i+1 < len(sql) && sql[i+1] == quote {
					i++
				} else {
					quote = 0
				}
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '[' && brackets:
			quote = ']'
		case ch == '?':
			fn(i)
		}
	}
}
