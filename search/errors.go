package search

import "errors"

var (
	// ErrInterpreterRequired is returned when an Engine is constructed
	// without a query interpreter.
	ErrInterpreterRequired = errors.New("query interpreter is required")
)
