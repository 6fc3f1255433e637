package propmacro

import "errors"

// Common errors used throughout the propmacro package
var (
	// ErrConfigValidation is returned when schema validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownMacro indicates a property refers to a macro name that does not exist.
	ErrUnknownMacro = errors.New("unknown macro")
	// ErrClassNotFound indicates a class name that is not present in the registry.
	ErrClassNotFound = errors.New("class not found")
	// ErrEmptyContent indicates the schema file was empty.
	ErrEmptyContent = errors.New("empty content")
)
