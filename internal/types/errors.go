package types

import "errors"

var (
	// ErrInvalidStatement is returned for an unrecognized command or a
	// missing statement where one is required.
	ErrInvalidStatement = errors.New("invalid statement")

	// ErrNoCollection is returned when a collection has none of its shapes populated.
	ErrNoCollection = errors.New("no collection found")

	// ErrUnknownOperator is returned when an expression carries an operator
	// outside the supported set.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrPlaceholderMismatch is returned when the number of "?" markers in
	// rendered text differs from the number of bound arguments.
	ErrPlaceholderMismatch = errors.New("placeholder count does not match arguments")
)
