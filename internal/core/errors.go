package core

import (
	"errors"
	"fmt"
)

// Argument validation errors.
var (
	// ErrTypeMismatch indicates an argument of the wrong dynamic type.
	ErrTypeMismatch = errors.New("compsci: type mismatch")

	// ErrValueOutOfRange indicates an argument of the right type with an invalid value.
	ErrValueOutOfRange = errors.New("compsci: value out of range")

	// ErrLengthMismatch indicates vectors or arrays with disagreeing sizes.
	ErrLengthMismatch = errors.New("compsci: length mismatch")

	// ErrInvalidDimension is matched by every failure of a grid size argument,
	// in addition to the type or range sentinel describing it.
	ErrInvalidDimension = errors.New("compsci: invalid dimension")
)

// ArgError wraps a validation error with the operation and argument it came from.
type ArgError struct {
	Op        string
	Arg       string
	Value     any
	Err       error
	Dimension bool
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %v", e.Op, e.Arg, e.Value, e.Err)
}

func (e *ArgError) Unwrap() []error {
	if e.Dimension {
		return []error{e.Err, ErrInvalidDimension}
	}
	return []error{e.Err}
}

// TypeMismatch returns an ArgError wrapping ErrTypeMismatch.
func TypeMismatch(op, arg string, v any) error {
	return &ArgError{Op: op, Arg: arg, Value: v, Err: ErrTypeMismatch}
}

// OutOfRange returns an ArgError wrapping ErrValueOutOfRange.
func OutOfRange(op, arg string, v any) error {
	return &ArgError{Op: op, Arg: arg, Value: v, Err: ErrValueOutOfRange}
}

// LengthMismatch reports two sizes that should have been equal.
func LengthMismatch(op, arg string, got, want int) error {
	return &ArgError{Op: op, Arg: arg, Value: fmt.Sprintf("%d (want %d)", got, want), Err: ErrLengthMismatch}
}

// AsDimension marks err as a failure of a grid size argument.
func AsDimension(err error) error {
	var ae *ArgError
	if errors.As(err, &ae) {
		c := *ae
		c.Dimension = true
		return &c
	}
	return err
}
