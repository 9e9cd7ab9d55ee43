package dblink

import (
	"fmt"
	"strconv"

	"github.com/nitinet/dblink-core/internal/types"
)

// Operands accepted by the helpers below:
//   - *Expression is used as-is
//   - a column *Collection renders as its qualified name
//   - anything else is bound with P

// TryOperand converts v into an expression, returning an error for collections
// that are not column references.
func TryOperand(v any) (*Expression, error) {
	switch x := v.(type) {
	case *types.Expression:
		return x, nil
	case *types.Collection:
		return columnExpression(x)
	default:
		return P(v), nil
	}
}

func operand(v any) *Expression {
	e, err := TryOperand(v)
	if err != nil {
		panic(err)
	}
	return e
}

func operands(values []any) []*Expression {
	out := make([]*Expression, len(values))
	for i, v := range values {
		out[i] = operand(v)
	}
	return out
}

// toExpression accepts only tree nodes, never bound values.
func toExpression(n Node) (*Expression, error) {
	switch x := n.(type) {
	case *types.Expression:
		return x, nil
	case *types.Collection:
		return columnExpression(x)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidOperand, n)
	}
}

func columnExpression(c *Collection) (*Expression, error) {
	if c == nil || c.Value == "" {
		return nil, fmt.Errorf("%w: only column collections can be used as expressions; use SubExpr for statements", ErrInvalidOperand)
	}
	if c.ColumnAlias != "" {
		return &types.Expression{Value: c.ColumnAlias + "." + c.Value, Column: c.Value}, nil
	}
	return &types.Expression{Value: c.Value, Column: c.Value}, nil
}

// Op applies op to the given operands.
func Op(op Operator, values ...any) *Expression {
	return types.NewExpression("", op, operands(values)...)
}

// Plus creates "a + b".
func Plus(a, b any) *Expression { return Op(types.Plus, a, b) }

// Minus creates "a - b".
func Minus(a, b any) *Expression { return Op(types.Minus, a, b) }

// Mul creates "a * b".
func Mul(a, b any) *Expression { return Op(types.Multiply, a, b) }

// Div creates "a / b".
func Div(a, b any) *Expression { return Op(types.Divide, a, b) }

// Count creates a COUNT aggregate.
func Count(v any) *Expression { return Op(types.Count, v) }

// CountAll creates COUNT(*).
func CountAll() *Expression { return Op(types.Count, E("*")) }

// Sum creates a SUM aggregate.
func Sum(v any) *Expression { return Op(types.Sum, v) }

// Min creates a MIN aggregate.
func Min(v any) *Expression { return Op(types.Min, v) }

// Max creates a MAX aggregate.
func Max(v any) *Expression { return Op(types.Max, v) }

// Avg creates an AVG aggregate.
func Avg(v any) *Expression { return Op(types.Avg, v) }

// Asc creates an ascending sort key.
func Asc(v any) *Expression { return Op(types.Asc, v) }

// Desc creates a descending sort key.
func Desc(v any) *Expression { return Op(types.Desc, v) }

// LimitOf creates a limit expression with integer literals.
func LimitOf(size int, offset ...int) *Expression {
	children := []*Expression{{Value: strconv.Itoa(size)}}
	if len(offset) > 0 {
		children = append(children, &types.Expression{Value: strconv.Itoa(offset[0])})
	}
	return types.NewExpression("", types.Limit, children...)
}
