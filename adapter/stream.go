package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nitinet/dblink-core"
)

// RowStream yields decoded rows one at a time. Callers must Close it; the
// underlying connection stays busy until then.
//
//	st, err := db.Stream(ctx, query, args, nil)
//	defer st.Close()
//	for st.Next() {
//		use(st.Row())
//	}
//	err = st.Err()
type RowStream struct {
	rows    *sql.Rows
	scanner *rowScanner
	row     map[string]any
	err     error
}

// Stream runs a row-returning query without materializing the result.
func (d *DB) Stream(ctx context.Context, query string, args []any, s *Session) (*RowStream, error) {
	ex, err := d.executor(s)
	if err != nil {
		return nil, err
	}
	bound, err := d.serializeArgs(args)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("streaming statement", slog.String("sql", query), slog.Int("args", len(bound)))

	//nolint:rowserrcheck // checked by RowStream.Err
	rows, err := ex.QueryContext(ctx, query, bound...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	scanner, err := newRowScanner(rows, d.dialect)
	if err != nil {
		_ = rows.Close()
		return nil, err
	}
	return &RowStream{rows: rows, scanner: scanner}, nil
}

// StreamStatement compiles stmt and streams its rows.
func (d *DB) StreamStatement(ctx context.Context, s *Session, stmt *dblink.Statement) (*RowStream, error) {
	result, err := dblink.Render(d.dialect, stmt)
	if err != nil {
		return nil, err
	}
	return d.Stream(ctx, result.SQL, result.Args, s)
}

// Columns returns the result column names in order.
func (st *RowStream) Columns() []string {
	return st.scanner.names
}

// Next advances to the next row. It returns false at the end of the result
// or on the first error.
func (st *RowStream) Next() bool {
	if st.err != nil || !st.rows.Next() {
		st.row = nil
		return false
	}
	row, err := st.scanner.scan(st.rows)
	if err != nil {
		st.err = err
		st.row = nil
		return false
	}
	st.row = row
	return true
}

// Row returns the current row.
func (st *RowStream) Row() map[string]any {
	return st.row
}

// Err returns the first error met while streaming.
func (st *RowStream) Err() error {
	if st.err != nil {
		return st.err
	}
	if err := st.rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	return nil
}

// Close releases the result set.
func (st *RowStream) Close() error {
	return st.rows.Close()
}
