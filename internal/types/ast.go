package types

// Command represents the kind of statement being compiled.
type Command string

const (
	Select Command = "SELECT"
	Insert Command = "INSERT"
	Update Command = "UPDATE"
	Delete Command = "DELETE"
)

// JoinKind represents the type of join between two collections.
type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	OuterJoin JoinKind = "OUTER"
)

// Lexeme returns the keyword rendered before "join".
// Unset and unknown kinds render as an inner join.
func (k JoinKind) Lexeme() string {
	switch k {
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case OuterJoin:
		return "outer"
	default:
		return "inner"
	}
}

// DataType is the declared type of a bound or scanned value.
type DataType string

const (
	TypeUnknown DataType = ""
	TypeBoolean DataType = "boolean"
	TypeNumber  DataType = "number"
	TypeBigInt  DataType = "bigint"
	TypeString  DataType = "string"
	TypeBinary  DataType = "binary"
	TypeDate    DataType = "date"
	TypeArray   DataType = "array"
	TypeJSON    DataType = "json"
)

// Node is any AST element that can be compiled to a SQL fragment.
type Node interface {
	Eval(h Handler) (string, []any, error)
}
