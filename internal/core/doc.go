// Package core holds the pieces shared by every numerical routine in the lab:
// the argument error taxonomy, coercion of untyped inputs and a small
// parallel-for helper.
//
// # Errors
//
// Validation failures are reported as [*ArgError] values wrapping one of the
// sentinels below. Match them with [errors.Is]:
//
//   - [ErrTypeMismatch]: an argument has the wrong dynamic type
//   - [ErrValueOutOfRange]: right type, invalid value
//   - [ErrLengthMismatch]: vectors or arrays whose sizes do not agree
//   - [ErrInvalidDimension]: any failure of a grid size argument
//
// # Example
//
//	nx, err := core.Int("laplacian", "nx", params["nx"])
//	if errors.Is(err, core.ErrTypeMismatch) {
//	    // nx was not an integer
//	}
package core
