package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// AllBookingStatuses returns every recognised booking status.
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

// TripType represents the kind of journey being booked.
type TripType string

const (
	TripTypeOneWay    TripType = "one-way"
	TripTypeRoundTrip TripType = "round-trip"
	TripTypeHourly    TripType = "hourly"
)

// ParseTripType validates a raw trip type string.
func ParseTripType(s string) (TripType, bool) {
	switch TripType(s) {
	case TripTypeOneWay, TripTypeRoundTrip, TripTypeHourly:
		return TripType(s), true
	default:
		return "", false
	}
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// TripFacts captures everything about the journey itself. Which fields are
// required depends on Type: dropoff is required unless the trip is hourly,
// ReturnTime is required only for round trips and DurationHours only for
// hourly hires.
type TripFacts struct {
	Type            TripType
	PickupLocation  string
	PickupCoords    *Coordinates
	DropoffLocation string
	DropoffCoords   *Coordinates
	DistanceMiles   float64 // 0 means "not yet measured", not a zero-length trip
	PickupTime      time.Time
	ReturnTime      time.Time // round trips only
	DurationHours   int       // hourly hires only
	Passengers      int
	Luggage         int
	PickupIsAirport  bool
	DropoffIsAirport bool
	MeetAndGreet     bool
}

// PassengerContact holds the lead passenger's details.
type PassengerContact struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	FlightNumber string
	Notes        string
}

// PriceBreakdown is the itemised fare attached to a booking. Total is always
// the sum of the other components, rounded to two decimal places.
type PriceBreakdown struct {
	BaseFare           float64
	DistanceCharge     float64
	MeetAndGreetCharge float64
	AirportCharge      float64
	WaitingCharge      float64
	Total              float64
}

// Booking is a priced, status-tracked reservation. Reference and CreatedAt
// are immutable after creation; Status is only mutated through the booking
// service.
type Booking struct {
	ID             string
	Reference      string
	VehicleClassID string
	Trip           TripFacts
	Contact        PassengerContact
	Price          PriceBreakdown
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookingStats holds per-status counts over the whole booking collection.
type BookingStats struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Cancelled int
}
