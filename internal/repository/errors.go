package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrPinNotFound is returned when a like is toggled on a missing pin
	ErrPinNotFound = errors.New("pin not found")

	// ErrUsernameTaken is returned when the username unique index rejects an insert
	ErrUsernameTaken = errors.New("username already taken")
)
