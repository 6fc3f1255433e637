package macro

import "errors"

// Sentinel errors
var (
	// ErrNoSetter is returned when writing a virtual property that has no setter.
	ErrNoSetter = errors.New("macro: property has no setter")
	// ErrInvalidExpression indicates that an expression macro failed to compile.
	ErrInvalidExpression = errors.New("macro: invalid expression")
)
