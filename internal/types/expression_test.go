package types_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

func leaf(value string, args ...any) *types.Expression {
	return &types.Expression{Value: value, Args: args}
}

func eval(t *testing.T, n types.Node) (string, []any) {
	t.Helper()
	sql, args, err := n.Eval(render.Base{})
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	return sql, args
}

// =============================================================================
// Leaf Tests
// =============================================================================

func TestExpression_Leaf(t *testing.T) {
	e := leaf("column1")
	sql, args := eval(t, e)
	if sql != "column1" {
		t.Errorf("SQL = %q, want %q", sql, "column1")
	}
	if len(args) != 0 {
		t.Errorf("Args = %v, want none", args)
	}
}

func TestExpression_LeafIgnoresOperatorAndChildren(t *testing.T) {
	e := &types.Expression{
		Value:    "raw",
		Operator: types.Or,
		Children: []*types.Expression{leaf("a", 1), leaf("b", 2)},
		Args:     []any{"bound"},
	}

	handlers := []types.Handler{render.Base{}, render.Base{Dialect: "other", LegacyOperators: true}}
	for _, h := range handlers {
		sql, args, err := e.Eval(h)
		if err != nil {
			t.Fatalf("Eval() error = %v", err)
		}
		if sql != "raw" {
			t.Errorf("SQL = %q, want %q", sql, "raw")
		}
		if !reflect.DeepEqual(args, []any{"bound"}) {
			t.Errorf("Args = %v, want [bound]", args)
		}
	}
}

func TestExpression_LeafArgsAreCopied(t *testing.T) {
	e := leaf("?", 1)
	_, args := eval(t, e)
	args[0] = 99
	if e.Args[0] != 1 {
		t.Errorf("Eval leaked the node's argument slice")
	}
}

// =============================================================================
// Operator Tests
// =============================================================================

func TestExpression_Operators(t *testing.T) {
	a, b, c := leaf("a"), leaf("b"), leaf("c")

	tests := []struct {
		name     string
		expr     *types.Expression
		expected string
	}{
		{"equal", types.NewExpression("", types.Equal, leaf("column1"), leaf("?")), "column1 = ?"},
		{"not equal", types.NewExpression("", types.NotEqual, a, b), "a != b"},
		{"less than", types.NewExpression("", types.LessThan, a, b), "a < b"},
		{"less than equal", types.NewExpression("", types.LessThanEqual, a, b), "a <= b"},
		{"greater than", types.NewExpression("", types.GreaterThan, a, b), "a > b"},
		{"greater than equal", types.NewExpression("", types.GreaterThanEqual, a, b), "a >= b"},
		{"and", types.NewExpression("", types.And, leaf("col1 = ?"), leaf("col2 = ?")), "(col1 = ?) and (col2 = ?)"},
		{"or", types.NewExpression("", types.Or, leaf("col1 = ?"), leaf("col2 = ?")), "(col1 = ?) or (col2 = ?)"},
		{"not", types.NewExpression("", types.Not, leaf("col1 = ?")), "not (col1 = ?)"},
		{"plus", types.NewExpression("", types.Plus, a, b), "a + b"},
		{"minus", types.NewExpression("", types.Minus, a, b), "a - b"},
		{"multiply", types.NewExpression("", types.Multiply, a, b), "a * b"},
		{"divide", types.NewExpression("", types.Divide, a, b), "a / b"},
		{"between", types.NewExpression("", types.Between, a, b, c), "a between b and c"},
		{"exists", types.NewExpression("", types.Exists, leaf("select 1")), "exists (select 1)"},
		{"in", types.NewExpression("", types.In, a, b, c), "a in (b, c)"},
		{"like", types.NewExpression("", types.Like, a, b), "a like b"},
		{"is null", types.NewExpression("", types.IsNull, a), "a is null"},
		{"is not null", types.NewExpression("", types.IsNotNull, a), "a is not null"},
		{"asc", types.NewExpression("", types.Asc, a), "a asc"},
		{"desc", types.NewExpression("", types.Desc, a), "a desc"},
		{"limit", types.NewExpression("", types.Limit, leaf("10")), "limit 10"},
		{"limit offset", types.NewExpression("", types.Limit, leaf("10"), leaf("20")), "limit 10 offset 20"},
		{"count", types.NewExpression("", types.Count, a), "count(a)"},
		{"sum", types.NewExpression("", types.Sum, a), "sum(a)"},
		{"min", types.NewExpression("", types.Min, a), "min(a)"},
		{"max", types.NewExpression("", types.Max, a), "max(a)"},
		{"avg", types.NewExpression("", types.Avg, a), "avg(a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := eval(t, tt.expr)
			if sql != tt.expected {
				t.Errorf("SQL = %q, want %q", sql, tt.expected)
			}
		})
	}
}

func TestExpression_EveryOperatorDispatches(t *testing.T) {
	for _, op := range types.Operators {
		e := types.NewExpression("", op, leaf("a"), leaf("b"), leaf("c"))
		if _, _, err := e.Eval(render.Base{}); err != nil {
			t.Errorf("operator %q: Eval() error = %v", op, err)
		}
	}
}

func TestExpression_MissingOperandsAreEmpty(t *testing.T) {
	sql, _ := eval(t, types.NewExpression("", types.Equal, leaf("a")))
	if sql != "a = " {
		t.Errorf("SQL = %q, want %q", sql, "a = ")
	}

	sql, _ = eval(t, types.NewExpression("", types.Between, leaf("a")))
	if sql != "a between  and " {
		t.Errorf("SQL = %q, want %q", sql, "a between  and ")
	}
}

func TestExpression_Passthrough(t *testing.T) {
	inner := types.NewExpression("", types.Equal, leaf("a"), leaf("?", 7))
	outer := types.NewExpression("", "", inner)

	sql, args := eval(t, outer)
	if sql != "a = ?" {
		t.Errorf("SQL = %q, want %q", sql, "a = ?")
	}
	if !reflect.DeepEqual(args, []any{7}) {
		t.Errorf("Args = %v, want [7]", args)
	}
}

func TestExpression_ImplicitAnd(t *testing.T) {
	e := types.NewExpression("", "", leaf("col1 = ?"), leaf("col2 = ?"))
	sql, _ := eval(t, e)
	if sql != "(col1 = ?) and (col2 = ?)" {
		t.Errorf("SQL = %q", sql)
	}
}

func TestExpression_Empty(t *testing.T) {
	e := &types.Expression{}
	sql, args := eval(t, e)
	if sql != "" || args != nil {
		t.Errorf("Eval() = (%q, %v), want empty", sql, args)
	}
	if !e.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}

	var nilExpr *types.Expression
	sql, _ = eval(t, nilExpr)
	if sql != "" {
		t.Errorf("nil Eval() = %q, want empty", sql)
	}
}

func TestExpression_UnknownOperator(t *testing.T) {
	e := types.NewExpression("", types.Operator("XOR"), leaf("a"), leaf("b"))

	_, _, err := e.Eval(render.Base{})
	if !errors.Is(err, types.ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}

	sql, _, err := e.Eval(render.Base{LegacyOperators: true})
	if err != nil {
		t.Fatalf("legacy Eval() error = %v", err)
	}
	if sql != "(a) and (b)" {
		t.Errorf("legacy SQL = %q, want %q", sql, "(a) and (b)")
	}
}

func TestOperator_Valid(t *testing.T) {
	if len(types.Operators) != 27 {
		t.Errorf("len(Operators) = %d, want 27", len(types.Operators))
	}
	if !types.Avg.Valid() {
		t.Error("Avg should be valid")
	}
	if types.Operator("").Valid() || types.Operator("XOR").Valid() {
		t.Error("empty and unknown operators should be invalid")
	}
}

// =============================================================================
// Builder Tests
// =============================================================================

func TestExpression_AddToEmpty(t *testing.T) {
	e := &types.Expression{}
	got := e.Add(leaf("col1 = ?"), leaf("col2 = ?"))
	if got != e {
		t.Error("Add() on an operator-less node should return the receiver")
	}
	sql, _ := eval(t, got)
	if sql != "(col1 = ?) and (col2 = ?)" {
		t.Errorf("SQL = %q", sql)
	}
}

func TestExpression_AddToOr(t *testing.T) {
	or := types.NewExpression("", types.Or, leaf("col1 = ?"), leaf("col2 = ?"))
	got := or.Add(leaf("col3 = ?"))
	if got == or {
		t.Fatal("Add() on an OR node should return a new node")
	}
	sql, _ := eval(t, got)
	if sql != "((col1 = ?) or (col2 = ?)) and (col3 = ?)" {
		t.Errorf("SQL = %q", sql)
	}
	if len(or.Children) != 2 {
		t.Errorf("receiver OR node was modified: %d children", len(or.Children))
	}
}

func TestExpression_AndOrNot(t *testing.T) {
	a, b := leaf("a = ?", 1), leaf("b = ?", 2)

	sql, args := eval(t, a.And(b))
	if sql != "(a = ?) and (b = ?)" {
		t.Errorf("And SQL = %q", sql)
	}
	if !reflect.DeepEqual(args, []any{1, 2}) {
		t.Errorf("And Args = %v", args)
	}

	sql, _ = eval(t, a.Or(b))
	if sql != "(a = ?) or (b = ?)" {
		t.Errorf("Or SQL = %q", sql)
	}

	sql, _ = eval(t, a.Or(b).Not())
	if sql != "not ((a = ?) or (b = ?))" {
		t.Errorf("Not SQL = %q", sql)
	}
}

func TestExpression_NestedPrecedence(t *testing.T) {
	a, b, c := leaf("a"), leaf("b"), leaf("c")

	sql, _ := eval(t, types.NewExpression("", types.Not,
		types.NewExpression("", types.Or, leaf("a = 1"), leaf("b = 2"))))
	if sql != "not ((a = 1) or (b = 2))" {
		t.Errorf("Not(Or) SQL = %q", sql)
	}

	sql, _ = eval(t, types.NewExpression("", types.Multiply,
		types.NewExpression("", types.Plus, a, b), c))
	if sql != "(a + b) * c" {
		t.Errorf("Mul(Plus) SQL = %q", sql)
	}

	sql, _ = eval(t, types.NewExpression("", types.Minus,
		a, types.NewExpression("", types.Minus, b, c)))
	if sql != "a - (b - c)" {
		t.Errorf("Minus(Minus) SQL = %q", sql)
	}
}

// offsetFirst writes the offset operand before the size.
type offsetFirst struct {
	render.Base
}

func (offsetFirst) Limit(size, offset string) string {
	return "offset " + offset + " fetch " + size
}

func (offsetFirst) LimitOffsetFirst() bool { return true }

func TestExpression_LimitArgsFollowText(t *testing.T) {
	e := types.NewExpression("", types.Limit, leaf("?", 10), leaf("?", 5))

	sql, args, err := e.Eval(offsetFirst{})
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if sql != "offset ? fetch ?" {
		t.Errorf("SQL = %q", sql)
	}
	if !reflect.DeepEqual(args, []any{5, 10}) {
		t.Errorf("Args = %v, want [5 10]", args)
	}

	_, args = eval(t, e)
	if !reflect.DeepEqual(args, []any{10, 5}) {
		t.Errorf("default Args = %v, want [10 5]", args)
	}
}

// =============================================================================
// Argument Order Tests
// =============================================================================

func TestExpression_ArgumentOrder(t *testing.T) {
	where := types.NewExpression("", types.And,
		types.NewExpression("", types.Equal, leaf("a"), leaf("?", "valueForA")),
		types.NewExpression("", types.Equal, leaf("b"), leaf("?", "valueForB")),
	)

	sql, args := eval(t, where)
	if sql != "(a = ?) and (b = ?)" {
		t.Errorf("SQL = %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"valueForA", "valueForB"}) {
		t.Errorf("Args = %v, want [valueForA valueForB]", args)
	}
}

func TestExpression_Idempotent(t *testing.T) {
	e := types.NewExpression("", types.Or,
		types.NewExpression("", types.In, leaf("id"), leaf("?", 1), leaf("?", 2)),
		types.NewExpression("", types.IsNull, leaf("deleted_at")),
	)

	sql1, args1 := eval(t, e)
	sql2, args2 := eval(t, e)
	if sql1 != sql2 || !reflect.DeepEqual(args1, args2) {
		t.Errorf("Eval() not idempotent: (%q, %v) vs (%q, %v)", sql1, args1, sql2, args2)
	}
}
