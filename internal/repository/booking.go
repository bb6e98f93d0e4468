package repository

import (
	"context"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// BookingListFilter selects a page of bookings. Status empty means all
// statuses. Cursor is the id of the last booking on the previous page;
// empty means start from the newest.
type BookingListFilter struct {
	Status domain.BookingStatus
	Limit  int
	Cursor string
}

// BookingRepository defines the persistence operations for bookings.
// The backing store enforces a uniqueness constraint on the reference column.
type BookingRepository interface {
	// Create persists a new booking. Returns ErrDuplicateReference when the
	// booking reference is already taken.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by its internal id.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByReference retrieves a booking by its customer-facing reference.
	// The match is case-sensitive and exact.
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)

	// List retrieves bookings ordered by creation time descending.
	List(ctx context.Context, filter BookingListFilter) ([]*domain.Booking, error)

	// UpdateStatus overwrites the status of a booking.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error

	// Delete removes a booking permanently.
	Delete(ctx context.Context, id string) error

	// CountByStatus counts bookings with the given status. An empty status
	// counts the whole collection.
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int, error)
}
