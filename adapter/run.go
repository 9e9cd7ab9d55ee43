package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nitinet/dblink-core"
	"github.com/nitinet/dblink-core/internal/types"
)

// Run executes raw SQL with positional args already in dialect form.
// Statements that return rows are queried and materialized; others are
// executed and report rows affected.
func (d *DB) Run(ctx context.Context, query string, args []any, s *Session) (*ResultSet, error) {
	return d.run(ctx, query, args, returnsRows(query), s)
}

// RunStatement compiles and runs stmts. Several statements run one after
// another on the same connection; the result carries the total row count
// and the rows of the last statement that returned any.
func (d *DB) RunStatement(ctx context.Context, s *Session, stmts ...*dblink.Statement) (*ResultSet, error) {
	switch len(stmts) {
	case 0:
		return nil, fmt.Errorf("%w: no statements", dblink.ErrInvalidStatement)
	case 1:
		return d.runStatement(ctx, stmts[0], s)
	}

	if s == nil {
		pinned, err := d.GetConnection(ctx)
		if err != nil {
			return nil, err
		}
		defer func() { _ = d.Close(pinned) }()
		s = pinned
	}

	total := &ResultSet{}
	for i, stmt := range stmts {
		rs, err := d.runStatement(ctx, stmt, s)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		total.RowCount += rs.RowCount
		if rs.ID != nil {
			total.ID = rs.ID
		}
		if rs.Rows != nil {
			total.Rows = rs.Rows
		}
	}
	return total, nil
}

func (d *DB) runStatement(ctx context.Context, stmt *dblink.Statement, s *Session) (*ResultSet, error) {
	result, err := dblink.Render(d.dialect, stmt)
	if err != nil {
		return nil, err
	}
	return d.run(ctx, result.SQL, result.Args, statementReturnsRows(stmt), s)
}

func (d *DB) run(ctx context.Context, query string, args []any, wantRows bool, s *Session) (*ResultSet, error) {
	ex, err := d.executor(s)
	if err != nil {
		return nil, err
	}
	bound, err := d.serializeArgs(args)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("executing statement", slog.String("sql", query), slog.Int("args", len(bound)))

	if !wantRows {
		res, err := ex.ExecContext(ctx, query, bound...)
		if err != nil {
			return nil, fmt.Errorf("failed to execute SQL: %w", err)
		}
		rs := &ResultSet{}
		if n, err := res.RowsAffected(); err == nil {
			rs.RowCount = n
		}
		if id, err := res.LastInsertId(); err == nil && id != 0 {
			rs.ID = id
		}
		return rs, nil
	}

	rows, err := ex.QueryContext(ctx, query, bound...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	scanner, err := newRowScanner(rows, d.dialect)
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{Rows: []map[string]any{}}
	for rows.Next() {
		row, err := scanner.scan(rows)
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	rs.RowCount = int64(len(rs.Rows))
	if len(rs.Rows) > 0 {
		if id, ok := rs.Rows[0]["id"]; ok {
			rs.ID = id
		}
	}
	return rs, nil
}

func (d *DB) serializeArgs(args []any) ([]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	bound := make([]any, len(args))
	for i, a := range args {
		v, err := d.dialect.SerializeValue(a, types.TypeUnknown)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		bound[i] = v
	}
	return bound, nil
}

func statementReturnsRows(stmt *dblink.Statement) bool {
	return stmt != nil && (stmt.Command == dblink.CmdSelect || len(stmt.ReturnColumns) > 0)
}

// rowKeywords start statements that produce a result set.
var rowKeywords = []string{"select", "with", "values", "show", "pragma", "explain", "describe", "table"}

// returnsRows guesses from the leading keyword, or a RETURNING clause,
// whether query produces rows.
func returnsRows(query string) bool {
	q := strings.ToLower(strings.TrimLeft(query, " \t\r\n("))
	for _, kw := range rowKeywords {
		if strings.HasPrefix(q, kw) && (len(q) == len(kw) || !isWordByte(q[len(kw)])) {
			return true
		}
	}
	return strings.Contains(q, " returning ")
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
