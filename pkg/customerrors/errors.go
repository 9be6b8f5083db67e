// Package customerrors defines the error values shared by the value model,
// the aggregate states and the group-by driver.
package customerrors

import (
	"errors"
)

var (
	// ErrTypeMismatch is returned when a value cannot be interpreted in the
	// domain an operation requires, e.g. a string fed to SUM or MEDIAN.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrResourceExhausted is returned when an accumulation collection or a
	// distinct set would grow past its configured limit.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidUsage is returned on calling-contract violations, such as
	// adding a value to an aggregate that has already been finalized.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrDivisionByZero is returned by value arithmetic. Aggregates never
	// surface it, they map a zero divisor to NULL.
	ErrDivisionByZero = errors.New("division by zero")

	ErrUnknownAggregate = errors.New("unknown aggregate function")
	ErrUnsupportedType  = errors.New("unsupported type")
)
