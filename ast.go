package dblink

import "github.com/nitinet/dblink-core/internal/types"

// Node is any tree element that can be evaluated against a Handler.
type Node = types.Node

// Expression is a leaf fragment or an operator applied to child expressions.
type Expression = types.Expression

// Collection is a table, column reference, sub-statement or join.
type Collection = types.Collection

// Statement is a SELECT, INSERT, UPDATE or DELETE command.
type Statement = types.Statement

// NewStatement creates a statement with an empty collection, where and limit.
func NewStatement(cmd Command) *Statement {
	return types.NewStatement(cmd)
}

// NewExpression creates a non-leaf expression when value is empty.
func NewExpression(value string, op Operator, children ...*Expression) *Expression {
	return types.NewExpression(value, op, children...)
}
