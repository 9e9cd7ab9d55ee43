package types

import "fmt"

// Collection is a table reference, a derived table, or a join of two collections.
// Exactly one shape should be populated: Value (with optional ColumnAlias),
// Statement, or Left and Right. On optionally adds a join condition.
type Collection struct {
	Value       string
	ColumnAlias string
	Statement   *Statement
	Left        *Collection
	Right       *Collection
	Join        JoinKind
	On          *Expression
	Alias       string
}

// Eval renders the collection and returns its positional arguments.
// When several shapes are populated, Value wins over Statement, and Statement over a join.
func (c *Collection) Eval(h Handler) (string, []any, error) {
	if c == nil {
		return "", nil, ErrNoCollection
	}

	var sql string
	var args []any

	switch {
	case c.Value != "":
		if c.ColumnAlias != "" {
			sql = c.ColumnAlias + "." + c.Value
		} else {
			sql = c.Value
		}
	case c.Statement != nil:
		stmtSQL, stmtArgs, err := c.Statement.Eval(h)
		if err != nil {
			return "", nil, err
		}
		sql = "(" + stmtSQL + ")"
		args = stmtArgs
	case c.Left != nil && c.Right != nil:
		left, leftArgs, err := c.Left.Eval(h)
		if err != nil {
			return "", nil, err
		}
		right, rightArgs, err := c.Right.Eval(h)
		if err != nil {
			return "", nil, err
		}
		on, onArgs, err := c.On.Eval(h)
		if err != nil {
			return "", nil, err
		}
		if on != "" {
			sql = fmt.Sprintf("(%s %s join %s on %s)", left, c.Join.Lexeme(), right, on)
		} else {
			sql = fmt.Sprintf("(%s %s join %s)", left, c.Join.Lexeme(), right)
		}
		args = append(leftArgs, rightArgs...)
		args = append(args, onArgs...)
	default:
		return "", nil, ErrNoCollection
	}

	if c.Alias != "" {
		sql += " as " + c.Alias
	}
	return sql, args, nil
}
