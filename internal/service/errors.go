package service

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownVehicleClass is returned when a vehicle class id does not
	// match any registered class. This is a user input error, not a fault.
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")

	// ErrInvalidBookingID is returned when a booking id is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidReference is returned when a booking reference is empty.
	ErrInvalidReference = errors.New("invalid booking reference")

	// ErrInvalidStatus is returned when a status string is not recognised.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrReferenceExhausted is returned when reference generation keeps
	// colliding with stored references. It implies a broken RNG or
	// near-impossible bad luck and is logged as a system fault.
	ErrReferenceExhausted = errors.New("booking reference generation exhausted")

	// ErrQuoteUnavailable is returned when no price can be produced because
	// the trip distance is unknown.
	ErrQuoteUnavailable = errors.New("quote unavailable: distance unknown")

	// ErrInvalidAdminUserID is returned when an admin user id is empty.
	ErrInvalidAdminUserID = errors.New("invalid admin user id")
)

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated field constraint of a request,
// not just the first one found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records a violation.
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns the error if any violation was recorded, nil otherwise.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
