package models

import "errors"

var (
	// ErrNotFound is returned when an item, line or option id does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when an option id belongs to a different menu item
	ErrInvalidReference = errors.New("invalid reference")
)
