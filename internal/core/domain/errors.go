package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested file or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates a line could not be decoded into a record.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrMissingField indicates a canonical record lacks a field the
	// shared table requires.
	ErrMissingField = errors.New("missing canonical field")

	// ErrUnsupportedSource indicates an unknown source tag.
	ErrUnsupportedSource = errors.New("unsupported source")
)
