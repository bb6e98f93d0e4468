package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/repository"
)

// maxReferenceAttempts bounds the retry loop when a generated reference
// collides with a stored one.
const maxReferenceAttempts = 5

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// BookingService owns the booking lifecycle: creation, status transitions,
// queries, deletion and aggregate stats. Durable state lives in the
// repository; this service owns validation and the transition rules.
type BookingService struct {
	bookingRepo repository.BookingRepository
	refGen      *ReferenceGenerator
	notifier    Notifier
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	refGen *ReferenceGenerator,
	notifier Notifier,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		refGen:      refGen,
		notifier:    notifier,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
// Price is the breakdown snapshot produced by the fare calculator for these
// trip facts.
type CreateBookingRequest struct {
	Trip           domain.TripFacts
	Contact        domain.PassengerContact
	VehicleClassID string
	Price          domain.PriceBreakdown
}

// CreateBooking validates the request, attaches a unique reference and
// persists the booking in pending status. Validation happens before any
// persistence attempt; every violated field is reported, not just the first.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	class, ok := domain.GetVehicleClass(req.VehicleClassID)
	if !ok {
		return nil, ErrUnknownVehicleClass
	}

	verr := &ValidationError{}
	validateTripFacts(verr, class, req.Trip)
	validateContact(verr, req.Contact)
	validatePrice(verr, req.Price)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:             uuid.New().String(),
		VehicleClassID: req.VehicleClassID,
		Trip:           req.Trip,
		Contact:        req.Contact,
		Price:          req.Price,
		Status:         domain.BookingStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref, err := s.refGen.Generate()
		if err != nil {
			return nil, err
		}
		booking.Reference = ref

		err = s.bookingRepo.Create(ctx, booking)
		if errors.Is(err, repository.ErrDuplicateReference) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.notifyCreated(ctx, booking)
		return booking, nil
	}

	log.Printf("[FAULT] booking reference generation exhausted after %d attempts", maxReferenceAttempts)
	return nil, ErrReferenceExhausted
}

// GetByID retrieves a booking by its internal id.
func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, id)
}

// GetByReference retrieves a booking by its customer-facing reference. The
// match is case-sensitive and exact; callers normalize (uppercase, trim)
// before calling.
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if reference == "" {
		return nil, ErrInvalidReference
	}
	return s.bookingRepo.GetByReference(ctx, reference)
}

// ListBookingsRequest selects a page of bookings. Status empty means all.
type ListBookingsRequest struct {
	Status string
	Limit  int
	Cursor string
}

// ListBookingsResponse is one page of bookings plus the cursor for the next
// page. NextCursor is empty on the final page.
type ListBookingsResponse struct {
	Bookings   []*domain.Booking
	NextCursor string
}

// ListBookings returns bookings ordered by creation time descending,
// optionally filtered by status, cursor-paginated.
func (s *BookingService) ListBookings(ctx context.Context, req ListBookingsRequest) (*ListBookingsResponse, error) {
	var status domain.BookingStatus
	if req.Status != "" {
		parsed, ok := domain.ParseBookingStatus(req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status = parsed
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	// Fetch one extra row to know whether another page exists.
	bookings, err := s.bookingRepo.List(ctx, repository.BookingListFilter{
		Status: status,
		Limit:  limit + 1,
		Cursor: req.Cursor,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListBookingsResponse{Bookings: bookings}
	if len(bookings) > limit {
		resp.Bookings = bookings[:limit]
		resp.NextCursor = bookings[limit-1].ID
	}
	return resp, nil
}

// UpdateStatus overwrites the status of a booking, subject to the transition
// policy, and notifies the passenger.
func (s *BookingService) UpdateStatus(ctx context.Context, id, newStatus string) (*domain.Booking, error) {
	if id == "" {
		return nil, ErrInvalidBookingID
	}
	status, ok := domain.ParseBookingStatus(newStatus)
	if !ok {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(booking.Status, status) {
		return nil, ErrInvalidStatus
	}

	previous := booking.Status
	now := time.Now()
	if err := s.bookingRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.UpdatedAt = now

	if previous != status {
		s.notifyStatusChanged(ctx, booking, previous)
	}
	return booking, nil
}

// DeleteBooking removes a booking permanently. No notification is sent.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidBookingID
	}
	return s.bookingRepo.Delete(ctx, id)
}

// Stats derives per-status counts over the whole collection at query time.
// The sub-counts are independent reads; without snapshot isolation they may
// disagree briefly under concurrent writes, and callers tolerate that.
func (s *BookingService) Stats(ctx context.Context) (*domain.BookingStats, error) {
	total, err := s.bookingRepo.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	stats := &domain.BookingStats{Total: total}
	for _, status := range domain.AllBookingStatuses() {
		count, err := s.bookingRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		switch status {
		case domain.BookingStatusPending:
			stats.Pending = count
		case domain.BookingStatusConfirmed:
			stats.Confirmed = count
		case domain.BookingStatusCompleted:
			stats.Completed = count
		case domain.BookingStatusCancelled:
			stats.Cancelled = count
		}
	}
	return stats, nil
}

// transitionAllowed decides whether a booking may move between two statuses.
// Admin tooling relies on being able to correct a mis-set status, so every
// transition between recognised statuses is currently allowed. Tighten the
// table here if that changes; no call site needs touching.
func transitionAllowed(from, to domain.BookingStatus) bool {
	return true
}

func (s *BookingService) notifyCreated(ctx context.Context, booking *domain.Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BookingCreated(ctx, booking); err != nil {
		log.Printf("failed to send booking-created notification for %s: %v", booking.Reference, err)
	}
}

func (s *BookingService) notifyStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BookingStatusChanged(ctx, booking, previous); err != nil {
		log.Printf("failed to send status-changed notification for %s: %v", booking.Reference, err)
	}
}

// validateTripFacts checks the per-trip-type field requirements.
func validateTripFacts(verr *ValidationError, class domain.VehicleClass, trip domain.TripFacts) {
	if _, ok := domain.ParseTripType(string(trip.Type)); !ok {
		verr.add("trip_type", "must be one of one-way, round-trip, hourly")
		return
	}

	if strings.TrimSpace(trip.PickupLocation) == "" {
		verr.add("pickup_location", "is required")
	}
	if trip.PickupTime.IsZero() {
		verr.add("pickup_time", "is required")
	}
	if trip.DistanceMiles < 0 {
		verr.add("distance_miles", "must not be negative")
	}

	switch trip.Type {
	case domain.TripTypeOneWay, domain.TripTypeRoundTrip:
		if strings.TrimSpace(trip.DropoffLocation) == "" {
			verr.add("dropoff_location", "is required")
		}
		if trip.DurationHours != 0 {
			verr.add("duration_hours", "only applies to hourly trips")
		}
	case domain.TripTypeHourly:
		if trip.DurationHours < 1 {
			verr.add("duration_hours", "is required for hourly trips")
		}
	}

	if trip.Type == domain.TripTypeRoundTrip {
		if trip.ReturnTime.IsZero() {
			verr.add("return_time", "is required for round trips")
		} else if !trip.PickupTime.IsZero() && !trip.ReturnTime.After(trip.PickupTime) {
			verr.add("return_time", "must be after pickup time")
		}
	} else if !trip.ReturnTime.IsZero() {
		verr.add("return_time", "only applies to round trips")
	}

	if trip.Passengers < 1 {
		verr.add("passengers", "must be at least 1")
	} else if trip.Passengers > class.PassengerCapacity {
		verr.add("passengers", "exceeds vehicle capacity")
	}
	if trip.Luggage < 0 {
		verr.add("luggage", "must not be negative")
	} else if trip.Luggage > class.LuggageCapacity {
		verr.add("luggage", "exceeds vehicle capacity")
	}
}

// validateContact checks the lead passenger details.
func validateContact(verr *ValidationError, contact domain.PassengerContact) {
	if strings.TrimSpace(contact.FirstName) == "" {
		verr.add("first_name", "is required")
	}
	if strings.TrimSpace(contact.LastName) == "" {
		verr.add("last_name", "is required")
	}
	email := strings.TrimSpace(contact.Email)
	if email == "" {
		verr.add("email", "is required")
	} else if !strings.Contains(email, "@") {
		verr.add("email", "is not a valid email address")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		verr.add("phone", "is required")
	}
}

// validatePrice checks the breakdown invariants: non-negative components and
// a total equal to their sum.
func validatePrice(verr *ValidationError, price domain.PriceBreakdown) {
	if price.BaseFare < 0 || price.DistanceCharge < 0 || price.MeetAndGreetCharge < 0 ||
		price.AirportCharge < 0 || price.WaitingCharge < 0 {
		verr.add("price", "components must not be negative")
	}

	sum := round2(price.BaseFare + price.DistanceCharge + price.MeetAndGreetCharge +
		price.AirportCharge + price.WaitingCharge)
	if diff := price.Total - sum; diff > 0.005 || diff < -0.005 {
		verr.add("price_total", "does not match the sum of its components")
	}
}
