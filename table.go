package dblink

import (
	"fmt"

	"github.com/nitinet/dblink-core/internal/types"
)

// TryT creates a table collection, returning an error if the name or alias is invalid.
func TryT(name string, alias ...string) (*Collection, error) {
	if !isValidQualifiedIdentifier(name) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, name)
	}
	t := &types.Collection{Value: name}
	if len(alias) > 0 {
		if len(alias) > 1 {
			return nil, fmt.Errorf("only one alias allowed")
		}
		if !isValidSQLIdentifier(alias[0]) {
			return nil, fmt.Errorf("%w: table alias %q", ErrInvalidIdentifier, alias[0])
		}
		t.Alias = alias[0]
	}
	return t, nil
}

// T creates a table collection.
func T(name string, alias ...string) *Collection {
	t, err := TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryC creates a column reference qualified by a table alias, returning an
// error if either part is invalid. An empty alias leaves the column unqualified;
// "*" selects every column.
func TryC(alias, column string) (*Collection, error) {
	if column != "*" && !isValidSQLIdentifier(column) {
		return nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, column)
	}
	if alias != "" && !isValidSQLIdentifier(alias) {
		return nil, fmt.Errorf("%w: column alias %q", ErrInvalidIdentifier, alias)
	}
	return &types.Collection{Value: column, ColumnAlias: alias}, nil
}

// C creates a column reference qualified by a table alias.
func C(alias, column string) *Collection {
	c, err := TryC(alias, column)
	if err != nil {
		panic(err)
	}
	return c
}

// Cols creates unqualified column references, typically for INSERT column lists.
func Cols(names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = C("", name)
	}
	return nodes
}

// As returns a copy of c rendered with " as alias".
func As(c *Collection, alias string) *Collection {
	if !isValidSQLIdentifier(alias) {
		panic(fmt.Errorf("%w: alias %q", ErrInvalidIdentifier, alias))
	}
	out := *c
	out.Alias = alias
	return &out
}

// Sub wraps a statement as a collection, rendered as "(statement) as alias".
func Sub(stmt *Statement, alias string) *Collection {
	c := &types.Collection{Statement: stmt}
	if alias != "" {
		c = As(c, alias)
	}
	return c
}

// Join pairs two collections. An empty kind renders as an inner join and an
// optional condition renders as " on cond".
func Join(kind JoinKind, left, right *Collection, on ...*Expression) *Collection {
	c := &types.Collection{Left: left, Right: right, Join: kind}
	if len(on) > 0 {
		c.On = And(on...)
		if len(on) == 1 {
			c.On = on[0]
		}
	}
	return c
}
