package dblink

import "github.com/nitinet/dblink-core/internal/types"

// QueryResult contains the rendered SQL and its positional arguments.
type QueryResult = types.QueryResult
