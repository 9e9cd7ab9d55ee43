package adapter

import (
	"database/sql"
	"fmt"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

// ResultSet is the materialized outcome of a statement.
type ResultSet struct {
	RowCount int64
	ID       any // last insert id, or the id column of the first returned row
	Rows     []map[string]any
}

// rowScanner decodes rows into column-name maps through a codec.
type rowScanner struct {
	names []string
	kinds []types.DataType
	codec types.ValueCodec
}

func newRowScanner(rows *sql.Rows, codec types.ValueCodec) (*rowScanner, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}
	rs := &rowScanner{
		names: make([]string, len(cols)),
		kinds: make([]types.DataType, len(cols)),
		codec: codec,
	}
	for i, c := range cols {
		rs.names[i] = c.Name()
		rs.kinds[i] = render.TypeFromDatabase(c.DatabaseTypeName())
	}
	return rs, nil
}

func (rs *rowScanner) scan(rows *sql.Rows) (map[string]any, error) {
	values := make([]any, len(rs.names))
	ptrs := make([]any, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	row := make(map[string]any, len(values))
	for i, v := range values {
		decoded, err := rs.codec.DeserializeValue(v, rs.kinds[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", rs.names[i], err)
		}
		row[rs.names[i]] = decoded
	}
	return row, nil
}
