package core

import "errors"

// Common errors.
var (
	// ErrReadOnly is returned by mutating operations when the
	// repository is in read-only mode.
	ErrReadOnly = errors.New("repository is in read-only mode")

	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrEmptyID is returned when an operation is attempted without a document ID.
	ErrEmptyID = errors.New("document ID cannot be empty")
)
