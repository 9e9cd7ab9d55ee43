package dblink

import (
	"fmt"

	"github.com/nitinet/dblink-core/internal/types"
)

// Builder provides a fluent API for constructing statements.
// The first error is kept and returned by Build; later calls are no-ops.
type Builder struct {
	stmt   *types.Statement
	limit  *int
	offset *int
	err    error
}

func newBuilder(cmd types.Command, coll *Collection) *Builder {
	b := &Builder{stmt: types.NewStatement(cmd)}
	if coll == nil {
		b.err = fmt.Errorf("%w: %s requires a collection", ErrNoCollection, cmd)
		return b
	}
	b.stmt.Collection = coll
	return b
}

// Select creates a new SELECT statement builder.
func Select(coll *Collection) *Builder {
	return newBuilder(types.Select, coll)
}

// Insert creates a new INSERT statement builder.
func Insert(coll *Collection) *Builder {
	return newBuilder(types.Insert, coll)
}

// Update creates a new UPDATE statement builder.
func Update(coll *Collection) *Builder {
	return newBuilder(types.Update, coll)
}

// Delete creates a new DELETE statement builder.
func Delete(coll *Collection) *Builder {
	return newBuilder(types.Delete, coll)
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) require(clause string, cmds ...types.Command) bool {
	if b.err != nil {
		return false
	}
	for _, cmd := range cmds {
		if b.stmt.Command == cmd {
			return true
		}
	}
	b.err = fmt.Errorf("%s cannot be used with %s statements", clause, b.stmt.Command)
	return false
}

// Columns sets the projected columns of a SELECT or the target columns of an INSERT.
func (b *Builder) Columns(cols ...Node) *Builder {
	if !b.require("Columns()", types.Select, types.Insert) {
		return b
	}
	b.stmt.Columns = append(b.stmt.Columns, cols...)
	return b
}

// Values adds INSERT values. Each value is converted like an operand.
func (b *Builder) Values(values ...any) *Builder {
	if !b.require("Values()", types.Insert) {
		return b
	}
	for _, v := range values {
		e, err := TryOperand(v)
		if err != nil {
			b.err = err
			return b
		}
		b.stmt.Values = append(b.stmt.Values, e)
	}
	return b
}

// Set adds "column = value" to an UPDATE.
func (b *Builder) Set(column *Collection, value any) *Builder {
	if !b.require("Set()", types.Update) {
		return b
	}
	col, err := columnExpression(column)
	if err != nil {
		b.err = err
		return b
	}
	v, err := TryOperand(value)
	if err != nil {
		b.err = err
		return b
	}
	b.stmt.Columns = append(b.stmt.Columns, types.NewExpression("", types.Equal, col, v))
	return b
}

// Where adds a condition. Repeated calls are combined with AND.
func (b *Builder) Where(condition *Expression) *Builder {
	if !b.require("Where()", types.Select, types.Update, types.Delete) {
		return b
	}
	if condition == nil {
		return b
	}
	b.stmt.Where = b.stmt.Where.Add(condition)
	return b
}

// GroupBy adds grouping keys to a SELECT.
func (b *Builder) GroupBy(keys ...Node) *Builder {
	if !b.require("GroupBy()", types.Select) {
		return b
	}
	for _, k := range keys {
		e, err := toExpression(k)
		if err != nil {
			b.err = err
			return b
		}
		b.stmt.GroupBy = append(b.stmt.GroupBy, e)
	}
	return b
}

// OrderBy adds sort keys to a SELECT. Use Asc and Desc for an explicit direction.
func (b *Builder) OrderBy(keys ...Node) *Builder {
	if !b.require("OrderBy()", types.Select) {
		return b
	}
	for _, k := range keys {
		e, err := toExpression(k)
		if err != nil {
			b.err = err
			return b
		}
		b.stmt.OrderBy = append(b.stmt.OrderBy, e)
	}
	return b
}

// Limit sets the maximum number of rows of a SELECT.
func (b *Builder) Limit(limit int) *Builder {
	if !b.require("Limit()", types.Select) {
		return b
	}
	if limit < 0 {
		b.err = fmt.Errorf("limit must be non-negative, got %d", limit)
		return b
	}
	b.limit = &limit
	return b
}

// Offset sets the number of rows to skip. It requires Limit.
func (b *Builder) Offset(offset int) *Builder {
	if !b.require("Offset()", types.Select) {
		return b
	}
	if offset < 0 {
		b.err = fmt.Errorf("offset must be non-negative, got %d", offset)
		return b
	}
	b.offset = &offset
	return b
}

// Returning sets the columns an INSERT returns.
func (b *Builder) Returning(cols ...Node) *Builder {
	if !b.require("Returning()", types.Insert) {
		return b
	}
	b.stmt.ReturnColumns = append(b.stmt.ReturnColumns, cols...)
	return b
}

// Build validates and returns the statement.
func (b *Builder) Build() (*Statement, error) {
	if b.err != nil {
		return nil, b.err
	}

	switch b.stmt.Command {
	case types.Select:
		if len(b.stmt.Columns) == 0 {
			b.stmt.Columns = []types.Node{&types.Collection{Value: "*"}}
		}
		if b.offset != nil && b.limit == nil {
			return nil, fmt.Errorf("Offset() requires Limit()")
		}
		if b.limit != nil {
			if b.offset != nil {
				b.stmt.Limit = LimitOf(*b.limit, *b.offset)
			} else {
				b.stmt.Limit = LimitOf(*b.limit)
			}
		}
	case types.Insert:
		if len(b.stmt.Columns) == 0 {
			return nil, fmt.Errorf("INSERT requires at least one column")
		}
		if len(b.stmt.Values) != len(b.stmt.Columns) {
			return nil, fmt.Errorf("INSERT has %d columns but %d values", len(b.stmt.Columns), len(b.stmt.Values))
		}
	case types.Update:
		if len(b.stmt.Columns) == 0 {
			return nil, fmt.Errorf("UPDATE requires at least one Set()")
		}
	}

	return b.stmt, nil
}

// MustBuild returns the statement or panics on error.
func (b *Builder) MustBuild() *Statement {
	stmt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmt
}

// Render builds the statement and renders it with h.
func (b *Builder) Render(h Handler) (*QueryResult, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	return Render(h, stmt)
}

// MustRender renders the statement or panics on error.
func (b *Builder) MustRender(h Handler) *QueryResult {
	result, err := b.Render(h)
	if err != nil {
		panic(err)
	}
	return result
}
