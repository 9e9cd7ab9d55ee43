package dblink

import (
	"fmt"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

// Render compiles stmt with h. When h also provides placeholders, every "?"
// marker is rewritten to the dialect form so Args bind by position.
func Render(h Handler, stmt *Statement) (*QueryResult, error) {
	if stmt == nil {
		return nil, fmt.Errorf("%w: nil statement", ErrInvalidStatement)
	}
	sql, args, err := stmt.Eval(h)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", commandName(stmt.Command), err)
	}
	return finish(h, sql, args)
}

// RenderAll compiles several statements into one "; "-separated script.
// Placeholder numbering continues across statements.
func RenderAll(h Handler, stmts ...*Statement) (*QueryResult, error) {
	if len(stmts) == 0 {
		return nil, fmt.Errorf("%w: no statements", ErrInvalidStatement)
	}
	sql, args, err := types.EvalStatements(h, stmts)
	if err != nil {
		return nil, fmt.Errorf("failed to render statements: %w", err)
	}
	return finish(h, sql, args)
}

func finish(h Handler, sql string, args []any) (*QueryResult, error) {
	if n := render.CountPlaceholders(sql, render.BracketIdentifiers(h)); n != len(args) {
		return nil, fmt.Errorf("%w: %d markers for %d arguments", ErrPlaceholderMismatch, n, len(args))
	}
	if p, ok := h.(types.Placeholder); ok {
		sql = render.Rebind(sql, p)
	}
	return &QueryResult{SQL: sql, Args: args}, nil
}

func commandName(cmd Command) string {
	if cmd == "" {
		return "statement"
	}
	return string(cmd)
}
