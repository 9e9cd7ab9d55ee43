package dblink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nitinet/dblink-core/internal/types"
	"github.com/zoobzio/dbml"
)

// ErrSchemaViolation is returned when a table or column is not part of the schema.
var ErrSchemaViolation = errors.New("schema violation")

// Schema validates table and column references against a DBML project.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewFromDBML creates a Schema from a DBML project.
func NewFromDBML(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// Project returns the underlying DBML project.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

func (s *Schema) validateTable(name string) error {
	if _, ok := s.tables[name]; !ok {
		return fmt.Errorf("%w: table '%s' not found", ErrSchemaViolation, name)
	}
	return nil
}

// validateField checks if a column exists in any table of the schema.
func (s *Schema) validateField(name string) error {
	if name == "*" {
		return nil
	}
	for _, tableFields := range s.fields {
		if _, ok := tableFields[name]; ok {
			return nil
		}
	}
	return fmt.Errorf("%w: field '%s' not found", ErrSchemaViolation, name)
}

// TryT creates a validated table collection, returning an error if invalid.
func (s *Schema) TryT(name string, alias ...string) (*Collection, error) {
	if err := s.validateTable(name); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	return TryT(name, alias...)
}

// T creates a validated table collection.
func (s *Schema) T(name string, alias ...string) *Collection {
	t, err := s.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryF creates a validated, unqualified column reference.
func (s *Schema) TryF(name string) (*Collection, error) {
	return s.TryC("", name)
}

// F creates a validated, unqualified column reference.
func (s *Schema) F(name string) *Collection {
	f, err := s.TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryC creates a validated column reference qualified by alias.
func (s *Schema) TryC(alias, column string) (*Collection, error) {
	if err := s.validateField(column); err != nil {
		return nil, fmt.Errorf("invalid field: %w", err)
	}
	return TryC(alias, column)
}

// C creates a validated column reference qualified by alias.
func (s *Schema) C(alias, column string) *Collection {
	c, err := s.TryC(alias, column)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate walks stmt and checks every table collection and column reference
// against the schema. Columns passed to the expression helpers are checked
// wherever they appear; raw expression text is not inspected.
func (s *Schema) Validate(stmt *Statement) error {
	if stmt == nil {
		return fmt.Errorf("%w: nil statement", ErrInvalidStatement)
	}
	if err := s.validateSource(stmt.Collection); err != nil {
		return err
	}
	for _, n := range stmt.Columns {
		if err := s.validateColumn(n); err != nil {
			return err
		}
	}
	for _, n := range stmt.ReturnColumns {
		if err := s.validateColumn(n); err != nil {
			return err
		}
	}
	exprs := []*Expression{stmt.Where, stmt.Limit}
	exprs = append(exprs, stmt.Values...)
	exprs = append(exprs, stmt.GroupBy...)
	exprs = append(exprs, stmt.OrderBy...)
	for _, e := range exprs {
		if err := s.validateExpression(e); err != nil {
			return err
		}
	}
	return nil
}

// validateExpression checks the column leaves of an expression tree.
func (s *Schema) validateExpression(e *Expression) error {
	if e == nil {
		return nil
	}
	if e.Column != "" {
		return s.validateField(e.Column)
	}
	for _, child := range e.Children {
		if err := s.validateExpression(child); err != nil {
			return err
		}
	}
	return nil
}

// validateSource checks a FROM/INTO/UPDATE target: values are table names.
func (s *Schema) validateSource(c *Collection) error {
	switch {
	case c == nil:
		return nil
	case c.Value != "":
		return s.validateTable(c.Value)
	case c.Statement != nil:
		return s.Validate(c.Statement)
	default:
		if err := s.validateSource(c.Left); err != nil {
			return err
		}
		if err := s.validateSource(c.Right); err != nil {
			return err
		}
		return s.validateExpression(c.On)
	}
}

// validateColumn checks a projected or assigned node.
func (s *Schema) validateColumn(n Node) error {
	if e, ok := n.(*types.Expression); ok {
		return s.validateExpression(e)
	}
	c, ok := n.(*types.Collection)
	if !ok {
		return nil
	}
	switch {
	case c.Value != "":
		// ignore computed projections such as "count(*)"
		if strings.ContainsAny(c.Value, "() ") {
			return nil
		}
		return s.validateField(c.Value)
	case c.Statement != nil:
		return s.Validate(c.Statement)
	default:
		return nil
	}
}
