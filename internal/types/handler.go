package types

// Handler renders operator fragments for a SQL dialect.
// Every method is a pure string transform: no I/O, no escaping of literal values.
type Handler interface {
	// Comparison operators.
	Eq(a, b string) string
	Neq(a, b string) string
	Lt(a, b string) string
	Lte(a, b string) string
	Gt(a, b string) string
	Gte(a, b string) string

	// Logical operators. And and Or receive every child fragment.
	And(values []string) string
	Or(values []string) string
	Not(v string) string

	// Arithmetic operators.
	Plus(a, b string) string
	Minus(a, b string) string
	Multiply(a, b string) string
	Divide(a, b string) string

	Between(v, low, high string) string
	Exists(v string) string
	// In receives the left operand followed by the candidate list.
	In(values []string) string
	Like(a, b string) string
	IsNull(v string) string
	IsNotNull(v string) string

	// Sorting and limiting.
	Asc(v string) string
	Desc(v string) string
	Limit(size, offset string) string

	// Aggregate functions.
	Count(v string) string
	Sum(v string) string
	Min(v string) string
	Max(v string) string
	Avg(v string) string

	// ReturnColumns renders the RETURNING clause for already-rendered columns.
	ReturnColumns(columns []string) (string, error)
}

// ValueCodec marshals values between Go and a database driver.
// The compiler never calls it; the execution layer does when binding and scanning.
type ValueCodec interface {
	SerializeValue(v any, t DataType) (any, error)
	DeserializeValue(v any, t DataType) (any, error)
}

// Placeholder formats the positional parameter marker for a 1-based index.
type Placeholder interface {
	Placeholder(index int) string
}

// LimitOrderHandler is implemented by handlers whose Limit template writes the
// offset operand before the size.
type LimitOrderHandler interface {
	LimitOffsetFirst() bool
}

// LegacyOperatorHandler is implemented by handlers that render unknown
// operators as a conjunction instead of failing.
type LegacyOperatorHandler interface {
	LegacyOperatorFallback() bool
}
