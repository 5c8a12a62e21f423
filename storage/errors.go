package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an element or relationship is not found.
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownKind is returned when a kind is not declared by any
	// viewpoint. Kinds are interpolated into node labels and relationship
	// types, so unchecked values must never reach query construction.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrUnknownViewpoint is returned when a layout update names a
	// viewpoint id missing from the catalog.
	ErrUnknownViewpoint = errors.New("unknown viewpoint")
)
