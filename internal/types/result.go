package types

// QueryResult contains the rendered SQL and its positional arguments.
// Args are ordered to match placeholder order in SQL.
type QueryResult struct {
	SQL  string
	Args []any
}
