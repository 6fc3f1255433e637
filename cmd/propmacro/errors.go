package main

import "errors"

// Sentinel errors
var (
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrUnknownProperty = errors.New("property is not defined by the class")
	ErrDocumentNotMap  = errors.New("data document must be a mapping")
)
