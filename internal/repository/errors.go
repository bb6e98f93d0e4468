package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateReference is returned when a booking reference collides
	// with an existing one. Callers retry with a fresh reference.
	ErrDuplicateReference = errors.New("booking reference already exists")

	// ErrDuplicateEmail is returned when an admin user email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)
