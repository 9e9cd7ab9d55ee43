package types

import "fmt"

// Expression is a recursive SQL value or operation.
//
// A non-empty Value makes the node a leaf; Operator and Children are ignored.
// Args are the bound values owned by a leaf, kept apart from the rendered text.
// Column names the schema column a leaf refers to; Eval ignores it.
type Expression struct {
	Value    string
	Operator Operator
	Children []*Expression
	Args     []any
	Column   string
}

// NewExpression creates an expression node.
func NewExpression(value string, op Operator, children ...*Expression) *Expression {
	return &Expression{
		Value:    value,
		Operator: op,
		Children: children,
	}
}

// Add appends sub-expressions.
// Nodes without an operator or with And absorb them in place. Any other
// operator is wrapped in a new And node so its own meaning is preserved.
func (e *Expression) Add(children ...*Expression) *Expression {
	if e.Operator == "" || e.Operator == And {
		e.Children = append(e.Children, children...)
		return e
	}
	wrapped := NewExpression("", And, e)
	wrapped.Children = append(wrapped.Children, children...)
	return wrapped
}

// And returns a new conjunction of e and operand.
func (e *Expression) And(operand *Expression) *Expression {
	return NewExpression("", And, e, operand)
}

// Or returns a new disjunction of e and operand.
func (e *Expression) Or(operand *Expression) *Expression {
	return NewExpression("", Or, e, operand)
}

// Not returns a new negation of e.
func (e *Expression) Not() *Expression {
	return NewExpression("", Not, e)
}

// IsEmpty reports whether the node renders nothing without consulting a handler.
func (e *Expression) IsEmpty() bool {
	return e == nil || (e.Value == "" && len(e.Children) == 0)
}

// Eval renders the expression and returns its positional arguments.
func (e *Expression) Eval(h Handler) (string, []any, error) {
	if e == nil {
		return "", nil, nil
	}
	if e.Value != "" {
		return e.Value, cloneArgs(e.Args), nil
	}

	values := make([]string, 0, len(e.Children))
	groups := make([][]any, 0, len(e.Children))
	for _, child := range e.Children {
		sql, childArgs, err := child.Eval(h)
		if err != nil {
			return "", nil, err
		}
		values = append(values, sql)
		groups = append(groups, childArgs)
	}

	op := e.Operator
	if op == "" {
		switch len(values) {
		case 0:
			return "", nil, nil
		case 1:
			return values[0], groups[0], nil
		default:
			op = And
		}
	}

	sql, err := dispatch(h, op, values)
	if err != nil {
		return "", nil, err
	}

	// args must follow the order the operands appear in the rendered text
	if op == Limit && len(groups) > 1 {
		if lh, ok := h.(LimitOrderHandler); ok && lh.LimitOffsetFirst() {
			groups[0], groups[1] = groups[1], groups[0]
		}
	}

	var args []any
	for _, g := range groups {
		args = append(args, g...)
	}
	return sql, args, nil
}

// dispatch maps an operator to its handler method.
func dispatch(h Handler, op Operator, values []string) (string, error) {
	v0, v1, v2 := operand(values, 0), operand(values, 1), operand(values, 2)

	switch op {
	case Equal:
		return h.Eq(v0, v1), nil
	case NotEqual:
		return h.Neq(v0, v1), nil
	case LessThan:
		return h.Lt(v0, v1), nil
	case LessThanEqual:
		return h.Lte(v0, v1), nil
	case GreaterThan:
		return h.Gt(v0, v1), nil
	case GreaterThanEqual:
		return h.Gte(v0, v1), nil
	case And:
		return h.And(values), nil
	case Or:
		return h.Or(values), nil
	case Not:
		return h.Not(v0), nil
	case Plus:
		return h.Plus(v0, v1), nil
	case Minus:
		return h.Minus(v0, v1), nil
	case Multiply:
		return h.Multiply(v0, v1), nil
	case Divide:
		return h.Divide(v0, v1), nil
	case Between:
		return h.Between(v0, v1, v2), nil
	case Exists:
		return h.Exists(v0), nil
	case In:
		return h.In(values), nil
	case Like:
		return h.Like(v0, v1), nil
	case IsNull:
		return h.IsNull(v0), nil
	case IsNotNull:
		return h.IsNotNull(v0), nil
	case Asc:
		return h.Asc(v0), nil
	case Desc:
		return h.Desc(v0), nil
	case Limit:
		return h.Limit(v0, v1), nil
	case Count:
		return h.Count(v0), nil
	case Sum:
		return h.Sum(v0), nil
	case Min:
		return h.Min(v0), nil
	case Max:
		return h.Max(v0), nil
	case Avg:
		return h.Avg(v0), nil
	}

	if legacy, ok := h.(LegacyOperatorHandler); ok && legacy.LegacyOperatorFallback() {
		return h.And(values), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
}

// operand returns the fragment at i, or "" when it is missing.
func operand(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func cloneArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	copy(out, args)
	return out
}
