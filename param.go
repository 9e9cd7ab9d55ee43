package dblink

import (
	"fmt"
	"strings"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

// P creates a "?" leaf bound to value.
// This is the primary way to reference user values in queries.
func P(value any) *Expression {
	return &types.Expression{Value: "?", Args: []any{value}}
}

// Ps creates one bound leaf per value, for IN lists and INSERT rows.
func Ps(values ...any) []*Expression {
	out := make([]*Expression, len(values))
	for i, v := range values {
		out[i] = P(v)
	}
	return out
}

// TryE creates a raw SQL leaf, returning an error if the number of "?" markers
// outside quoted sections differs from the number of args. The dialect is not
// known yet, so text matching with [name] read either as an identifier or as a
// subscript is accepted; Render checks again with the dialect's rule.
func TryE(sql string, args ...any) (*Expression, error) {
	if sql == "" {
		return nil, fmt.Errorf("empty expression")
	}
	n := render.CountPlaceholders(sql, false)
	if n != len(args) && render.CountPlaceholders(sql, true) != len(args) {
		return nil, fmt.Errorf("%w: %q has %d markers for %d arguments", ErrPlaceholderMismatch, sql, n, len(args))
	}
	return &types.Expression{Value: sql, Args: args}, nil
}

// E creates a raw SQL leaf. The text is emitted verbatim.
func E(sql string, args ...any) *Expression {
	e, err := TryE(sql, args...)
	if err != nil {
		panic(err)
	}
	return e
}

// isValidSQLIdentifier checks if a string is a plain SQL identifier.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}
	return true
}

// isValidQualifiedIdentifier accepts schema-qualified names such as "public.users".
func isValidQualifiedIdentifier(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return false
	}
	for _, p := range parts {
		if !isValidSQLIdentifier(p) {
			return false
		}
	}
	return true
}
