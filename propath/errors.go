package propath

import "errors"

// Sentinel errors
var (
	// ErrInvalidPath indicates that a path string could not be parsed.
	ErrInvalidPath = errors.New("propath: invalid path")
	// ErrNilContainer is returned when the container of an assignment resolves to nil.
	ErrNilContainer = errors.New("propath: cannot assign into nil container")
	// ErrFieldNotFound indicates a struct field was not found by name.
	ErrFieldNotFound = errors.New("propath: field not found in struct")
	// ErrNotAddressable indicates a struct container was reached by value and cannot be mutated.
	ErrNotAddressable = errors.New("propath: container is not addressable")
	// ErrIndexOutOfRange indicates a slice index segment outside the slice bounds.
	ErrIndexOutOfRange = errors.New("propath: index out of range")
	// ErrUnsupportedContainer indicates the container kind does not support assignment.
	ErrUnsupportedContainer = errors.New("propath: unsupported container")
	// ErrCannotAssignNil is returned when assigning nil to a non-nillable field.
	ErrCannotAssignNil = errors.New("propath: cannot assign nil to non-pointer type")
	// ErrCannotConvert indicates an unsupported value conversion.
	ErrCannotConvert = errors.New("propath: cannot convert type")
)
