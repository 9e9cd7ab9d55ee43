// Package dblink compiles a dialect-agnostic SQL syntax tree into
// parameterized SQL text plus an ordered argument list.
//
// A statement is assembled from three node kinds: Expression (predicates,
// arithmetic, aggregates, sort keys and limits), Collection (tables, column
// references, sub-statements and joins) and Statement (SELECT, INSERT, UPDATE
// and DELETE). Every lexical choice is deferred to a Handler, so the same tree
// renders for any dialect.
//
// # Basic Usage
//
//	import "github.com/nitinet/dblink-core/postgres"
//
//	users := dblink.T("users", "u")
//	query := dblink.Select(users).
//		Columns(dblink.C("u", "id"), dblink.C("u", "name")).
//		Where(dblink.Eq(dblink.C("u", "active"), true)).
//		OrderBy(dblink.Asc(dblink.C("u", "name"))).
//		Limit(10)
//
//	result, err := query.Render(postgres.New())
//	// result.SQL:  select u.id, u.name from users as u where u.active = $1 order by u.name asc limit 10
//	// result.Args: []any{true}
//
// # Arguments
//
// Values bound with P (or passed directly to the comparison helpers) render as
// "?" and their values are collected in text order. Render rewrites each marker
// to the dialect's placeholder ($1, @p1 or ?).
//
// # Dialects
//
// Handlers live in the postgres, mariadb, sqlite and mssql packages. Each one
// embeds the default templates and overrides what differs.
//
// # Schema-Validated Usage
//
//	schema, err := dblink.NewFromDBML(project)
//	users := schema.T("users")   // panics if the table is unknown
//	email := schema.F("email")   // panics if no table has the column
//	err = schema.Validate(stmt)  // checks tables and column references in a tree
package dblink

import (
	"errors"

	"github.com/nitinet/dblink-core/internal/render"
	"github.com/nitinet/dblink-core/internal/types"
)

// Handler renders operator fragments for a SQL dialect.
type Handler = types.Handler

// ValueCodec converts values between Go and a dialect's driver representation.
type ValueCodec = types.ValueCodec

// Placeholder yields a dialect's positional parameter marker.
type Placeholder = types.Placeholder

// LegacyOperatorHandler is implemented by handlers that render unknown operators as AND.
type LegacyOperatorHandler = types.LegacyOperatorHandler

// Capabilities describes the SQL and driver features supported by a dialect.
type Capabilities = render.Capabilities

// UnsupportedFeatureError indicates a clause the dialect cannot render.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// DataType tags a value for the codec.
type DataType = types.DataType

// Re-export data type constants for public API.
const (
	TypeUnknown = types.TypeUnknown
	TypeBoolean = types.TypeBoolean
	TypeNumber  = types.TypeNumber
	TypeBigInt  = types.TypeBigInt
	TypeString  = types.TypeString
	TypeBinary  = types.TypeBinary
	TypeDate    = types.TypeDate
	TypeArray   = types.TypeArray
	TypeJSON    = types.TypeJSON
)

// Re-export sentinel errors for errors.Is checks.
var (
	ErrInvalidStatement    = types.ErrInvalidStatement
	ErrNoCollection        = types.ErrNoCollection
	ErrUnknownOperator     = types.ErrUnknownOperator
	ErrPlaceholderMismatch = types.ErrPlaceholderMismatch
	ErrUnsupportedFeature  = render.ErrUnsupportedFeature
)

var (
	// ErrInvalidIdentifier is returned when a table, column or alias name is not a plain identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidOperand is returned when a collection that is not a column is used as an operand.
	ErrInvalidOperand = errors.New("invalid operand")
)
