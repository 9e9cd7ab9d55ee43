package types

import (
	"fmt"
	"strings"
)

// Statement assembles a SELECT, INSERT, UPDATE or DELETE command.
// Fields a command does not use are ignored.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Statement struct {
	Command       Command
	Columns       []Node        // projected, inserted or assigned columns
	Values        []*Expression // INSERT only
	ReturnColumns []Node        // INSERT only
	Collection    *Collection
	Where         *Expression
	GroupBy       []*Expression
	OrderBy       []*Expression
	Limit         *Expression
}

// NewStatement creates a statement with an empty collection, where and limit.
func NewStatement(cmd Command) *Statement {
	return &Statement{
		Command:    cmd,
		Collection: &Collection{},
		Where:      &Expression{},
		Limit:      &Expression{},
	}
}

// clause accumulates rendered text and arguments in emission order.
type clause struct {
	sql  strings.Builder
	args []any
}

func (c *clause) write(sql string, args []any) {
	c.sql.WriteString(sql)
	c.args = append(c.args, args...)
}

// Eval renders the statement and returns its positional arguments.
// Arguments are concatenated in the order their clauses appear in the text.
func (s *Statement) Eval(h Handler) (string, []any, error) {
	if s == nil {
		return "", nil, ErrInvalidStatement
	}

	switch s.Command {
	case Select:
		return s.selectQuery(h)
	case Insert:
		return s.insertQuery(h)
	case Update:
		return s.updateQuery(h)
	case Delete:
		return s.deleteQuery(h)
	default:
		return "", nil, fmt.Errorf("%w: unsupported command %q", ErrInvalidStatement, string(s.Command))
	}
}

func (s *Statement) selectQuery(h Handler) (string, []any, error) {
	var q clause

	cols, colArgs, err := evalList(h, s.Columns)
	if err != nil {
		return "", nil, err
	}
	q.write("select "+cols, colArgs)

	coll, collArgs, err := s.Collection.Eval(h)
	if err != nil {
		return "", nil, err
	}
	q.write(" from "+coll, collArgs)

	if err := s.writeWhere(h, &q); err != nil {
		return "", nil, err
	}

	groupBy, groupArgs, err := evalExpressions(h, s.GroupBy)
	if err != nil {
		return "", nil, err
	}
	if groupBy != "" {
		q.write(" group by "+groupBy, groupArgs)
	}

	orderBy, orderArgs, err := evalExpressions(h, s.OrderBy)
	if err != nil {
		return "", nil, err
	}
	if orderBy != "" {
		q.write(" order by "+orderBy, orderArgs)
	}

	limit, limitArgs, err := s.Limit.Eval(h)
	if err != nil {
		return "", nil, err
	}
	if limit != "" {
		q.write(" "+limit, limitArgs)
	}

	return q.sql.String(), q.args, nil
}

func (s *Statement) insertQuery(h Handler) (string, []any, error) {
	var q clause

	coll, collArgs, err := s.Collection.Eval(h)
	if err != nil {
		return "", nil, err
	}
	q.write("insert into "+coll, collArgs)

	cols, colArgs, err := evalList(h, s.Columns)
	if err != nil {
		return "", nil, err
	}
	q.write(" ("+cols+")", colArgs)

	vals, valArgs, err := evalExpressions(h, s.Values)
	if err != nil {
		return "", nil, err
	}
	q.write(" values ("+vals+")", valArgs)

	if len(s.ReturnColumns) > 0 {
		fragments, retArgs, err := evalFragments(h, s.ReturnColumns)
		if err != nil {
			return "", nil, err
		}
		returning, err := h.ReturnColumns(fragments)
		if err != nil {
			return "", nil, err
		}
		if returning != "" {
			q.write(" "+returning, retArgs)
		}
	}

	return q.sql.String(), q.args, nil
}

func (s *Statement) updateQuery(h Handler) (string, []any, error) {
	var q clause

	coll, collArgs, err := s.Collection.Eval(h)
	if err != nil {
		return "", nil, err
	}
	q.write("update "+coll, collArgs)

	cols, colArgs, err := evalList(h, s.Columns)
	if err != nil {
		return "", nil, err
	}
	q.write(" set "+cols, colArgs)

	if err := s.writeWhere(h, &q); err != nil {
		return "", nil, err
	}
	return q.sql.String(), q.args, nil
}

func (s *Statement) deleteQuery(h Handler) (string, []any, error) {
	var q clause

	coll, collArgs, err := s.Collection.Eval(h)
	if err != nil {
		return "", nil, err
	}
	q.write("delete from "+coll, collArgs)

	if err := s.writeWhere(h, &q); err != nil {
		return "", nil, err
	}
	return q.sql.String(), q.args, nil
}

// writeWhere emits the where clause only when the condition renders text.
func (s *Statement) writeWhere(h Handler, q *clause) error {
	where, whereArgs, err := s.Where.Eval(h)
	if err != nil {
		return err
	}
	if where != "" {
		q.write(" where "+where, whereArgs)
	}
	return nil
}

// EvalStatements compiles each statement independently and joins them with "; ",
// terminating the batch with ";".
func EvalStatements(h Handler, stmts []*Statement) (string, []any, error) {
	parts := make([]string, 0, len(stmts))
	var args []any
	for i, stmt := range stmts {
		if stmt == nil {
			return "", nil, fmt.Errorf("%w: statement %d is nil", ErrInvalidStatement, i)
		}
		sql, stmtArgs, err := stmt.Eval(h)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, stmtArgs...)
	}
	return strings.Join(parts, "; ") + ";", args, nil
}

func evalFragments(h Handler, nodes []Node) ([]string, []any, error) {
	fragments := make([]string, 0, len(nodes))
	var args []any
	for _, n := range nodes {
		if n == nil {
			continue
		}
		sql, nodeArgs, err := n.Eval(h)
		if err != nil {
			return nil, nil, err
		}
		fragments = append(fragments, sql)
		args = append(args, nodeArgs...)
	}
	return fragments, args, nil
}

func evalList(h Handler, nodes []Node) (string, []any, error) {
	fragments, args, err := evalFragments(h, nodes)
	if err != nil {
		return "", nil, err
	}
	return strings.Join(fragments, ", "), args, nil
}

func evalExpressions(h Handler, exprs []*Expression) (string, []any, error) {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			nodes = append(nodes, e)
		}
	}
	return evalList(h, nodes)
}
