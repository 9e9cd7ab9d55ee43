package dblink

import "github.com/nitinet/dblink-core/internal/types"

// Operator identifies the operation an expression applies to its children.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Comparison operators.
	EQ = types.Equal
	NE = types.NotEqual
	LT = types.LessThan
	LE = types.LessThanEqual
	GT = types.GreaterThan
	GE = types.GreaterThanEqual

	// Logical operators.
	AND = types.And
	OR  = types.Or
	NOT = types.Not

	// Arithmetic operators.
	PLUS  = types.Plus
	MINUS = types.Minus
	MUL   = types.Multiply
	DIV   = types.Divide

	// Predicates.
	BETWEEN   = types.Between
	EXISTS    = types.Exists
	IN        = types.In
	LIKE      = types.Like
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull

	// Sorting and paging.
	ASC   = types.Asc
	DESC  = types.Desc
	LIMIT = types.Limit

	// Aggregates.
	COUNT = types.Count
	SUM   = types.Sum
	MIN   = types.Min
	MAX   = types.Max
	AVG   = types.Avg
)
