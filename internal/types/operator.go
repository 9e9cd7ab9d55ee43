package types

// Operator represents the operation an Expression applies to its children.
// The zero value means no explicit operator.
type Operator string

const (
	// Comparison operators.
	Equal            Operator = "="
	NotEqual         Operator = "!="
	LessThan         Operator = "<"
	LessThanEqual    Operator = "<="
	GreaterThan      Operator = ">"
	GreaterThanEqual Operator = ">="

	// Logical operators.
	And Operator = "AND"
	Or  Operator = "OR"
	Not Operator = "NOT"

	// Arithmetic operators.
	Plus     Operator = "+"
	Minus    Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"

	// Other constructs.
	Between   Operator = "BETWEEN"
	Exists    Operator = "EXISTS"
	In        Operator = "IN"
	Like      Operator = "LIKE"
	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"

	// Sorting and limiting.
	Asc   Operator = "ASC"
	Desc  Operator = "DESC"
	Limit Operator = "LIMIT"

	// Aggregate functions.
	Count Operator = "COUNT"
	Sum   Operator = "SUM"
	Min   Operator = "MIN"
	Max   Operator = "MAX"
	Avg   Operator = "AVG"
)

// Operators lists every supported operator in declaration order.
var Operators = []Operator{
	Equal, NotEqual, LessThan, LessThanEqual, GreaterThan, GreaterThanEqual,
	And, Or, Not,
	Plus, Minus, Multiply, Divide,
	Between, Exists, In, Like, IsNull, IsNotNull,
	Asc, Desc, Limit,
	Count, Sum, Min, Max, Avg,
}

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}
