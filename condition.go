package dblink

import (
	"fmt"

	"github.com/nitinet/dblink-core/internal/types"
)

// Eq creates "a = b".
func Eq(a, b any) *Expression { return Op(types.Equal, a, b) }

// Ne creates "a != b".
func Ne(a, b any) *Expression { return Op(types.NotEqual, a, b) }

// Lt creates "a < b".
func Lt(a, b any) *Expression { return Op(types.LessThan, a, b) }

// Le creates "a <= b".
func Le(a, b any) *Expression { return Op(types.LessThanEqual, a, b) }

// Gt creates "a > b".
func Gt(a, b any) *Expression { return Op(types.GreaterThan, a, b) }

// Ge creates "a >= b".
func Ge(a, b any) *Expression { return Op(types.GreaterThanEqual, a, b) }

// Like creates "a like b".
func Like(a, b any) *Expression { return Op(types.Like, a, b) }

// Between creates "v between low and high".
func Between(v, low, high any) *Expression { return Op(types.Between, v, low, high) }

// In creates "v in (values...)".
func In(v any, values ...any) *Expression {
	return Op(types.In, append([]any{v}, values...)...)
}

// Null creates an IS NULL condition.
func Null(v any) *Expression { return Op(types.IsNull, v) }

// NotNull creates an IS NOT NULL condition.
func NotNull(v any) *Expression { return Op(types.IsNotNull, v) }

// Exists creates "exists (e)", usually over a SubExpr.
func Exists(e *Expression) *Expression {
	return types.NewExpression("", types.Exists, e)
}

// TryAnd creates an AND group, returning an error if no conditions are given.
func TryAnd(conditions ...*Expression) (*Expression, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("AND requires at least one condition")
	}
	return types.NewExpression("", types.And, conditions...), nil
}

// And creates an AND group.
func And(conditions ...*Expression) *Expression {
	g, err := TryAnd(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryOr creates an OR group, returning an error if no conditions are given.
func TryOr(conditions ...*Expression) (*Expression, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("OR requires at least one condition")
	}
	return types.NewExpression("", types.Or, conditions...), nil
}

// Or creates an OR group.
func Or(conditions ...*Expression) *Expression {
	g, err := TryOr(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}

// Not negates e.
func Not(e *Expression) *Expression {
	return types.NewExpression("", types.Not, e)
}

// TrySubExpr renders stmt with h into a leaf so it can be used inside an
// expression, for example with Exists or In. The leaf keeps "?" markers and
// the statement's arguments, so the enclosing Render still rebinds them.
func TrySubExpr(h Handler, stmt *Statement) (*Expression, error) {
	sql, args, err := stmt.Eval(h)
	if err != nil {
		return nil, fmt.Errorf("subquery: %w", err)
	}
	return &types.Expression{Value: sql, Args: args}, nil
}

// SubExpr renders stmt with h into a leaf.
func SubExpr(h Handler, stmt *Statement) *Expression {
	e, err := TrySubExpr(h, stmt)
	if err != nil {
		panic(err)
	}
	return e
}
