package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 4. BOOKING CREATION
// ──────────────────────────────────────────────

// validCreateRequest returns a request that passes every validation rule.
func validCreateRequest() service.CreateBookingRequest {
	pickup := time.Now().Add(24 * time.Hour)
	return service.CreateBookingRequest{
		VehicleClassID: "saloon",
		Trip: domain.TripFacts{
			Type:            domain.TripTypeOneWay,
			PickupLocation:  "Heathrow Terminal 5",
			DropoffLocation: "The Savoy, London",
			DistanceMiles:   17.2,
			PickupTime:      pickup,
			Passengers:      2,
			Luggage:         2,
			PickupIsAirport: true,
		},
		Contact: domain.PassengerContact{
			FirstName: "Amelia",
			LastName:  "Hart",
			Email:     "amelia.hart@example.com",
			Phone:     "+447700900123",
		},
		Price: domain.PriceBreakdown{
			BaseFare:       35,
			DistanceCharge: 20.16,
			AirportCharge:  8,
			Total:          63.16,
		},
	}
}

func newBookingService(repo *MockBookingRepository, notifier *MockNotifier) *service.BookingService {
	return service.NewBookingService(repo, service.NewReferenceGenerator("LXC"), notifier)
}

func TestCreateBooking_Success_PendingWithReference(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	notifier := NewMockNotifier()
	svc := newBookingService(repo, notifier)

	booking, err := svc.CreateBooking(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if !referencePattern.MatchString(booking.Reference) {
		t.Errorf("reference %q does not match expected format", booking.Reference)
	}
	if booking.ID == "" {
		t.Error("expected a generated booking id")
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 stored booking, got %d", repo.Len())
	}
	if notifier.CreatedCallCount != 1 {
		t.Errorf("expected 1 created notification, got %d", notifier.CreatedCallCount)
	}
}

func TestCreateBooking_UnknownVehicleClass(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	req := validCreateRequest()
	req.VehicleClassID = "helicopter"

	_, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, service.ErrUnknownVehicleClass) {
		t.Errorf("expected ErrUnknownVehicleClass, got %v", err)
	}
}

func TestCreateBooking_ReportsEveryViolatedField(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockNotifier())

	req := validCreateRequest()
	req.Trip.DropoffLocation = "" // required for one-way
	req.Contact.Email = "not-an-email"
	req.Trip.Passengers = 5 // saloon seats 3

	_, err := svc.CreateBooking(context.Background(), req)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := make(map[string]bool)
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"dropoff_location", "email", "passengers"} {
		if !fields[want] {
			t.Errorf("expected violation for %s, got %v", want, verr.Fields)
		}
	}
	if repo.CreateCallCount != 0 {
		t.Error("validation failure must not reach the repository")
	}
}

func TestCreateBooking_RoundTripRequiresReturnAfterPickup(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	req := validCreateRequest()
	req.Trip.Type = domain.TripTypeRoundTrip
	req.Trip.ReturnTime = req.Trip.PickupTime.Add(-time.Hour)

	_, err := svc.CreateBooking(context.Background(), req)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "return_time") {
		t.Errorf("expected return_time violation, got %v", verr)
	}
}

func TestCreateBooking_HourlyRequiresDurationNotDropoff(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	req := validCreateRequest()
	req.Trip.Type = domain.TripTypeHourly
	req.Trip.DropoffLocation = ""
	req.Trip.DurationHours = 4
	req.Price = domain.PriceBreakdown{BaseFare: 155, Total: 155}

	booking, err := svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Trip.DurationHours != 4 {
		t.Errorf("expected duration 4 hours, got %d", booking.Trip.DurationHours)
	}
}

func TestCreateBooking_PriceTotalMustMatchComponents(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockNotifier())

	req := validCreateRequest()
	req.Price.Total = 99.99

	_, err := svc.CreateBooking(context.Background(), req)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "price_total") {
		t.Errorf("expected price_total violation, got %v", verr)
	}
}

func TestCreateBooking_RetriesOnDuplicateReference(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	repo.DuplicateFirstN = 2 // first two references collide
	svc := newBookingService(repo, NewMockNotifier())

	booking, err := svc.CreateBooking(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.CreateCallCount != 3 {
		t.Errorf("expected 3 create attempts, got %d", repo.CreateCallCount)
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 stored booking, got %d", repo.Len())
	}
	if booking.Reference == "" {
		t.Error("expected a reference on the stored booking")
	}
}

func TestCreateBooking_ExhaustsReferenceRetries(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	repo.DuplicateFirstN = 100 // every attempt collides
	notifier := NewMockNotifier()
	svc := newBookingService(repo, notifier)

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	if !errors.Is(err, service.ErrReferenceExhausted) {
		t.Errorf("expected ErrReferenceExhausted, got %v", err)
	}
	if repo.CreateCallCount != 5 {
		t.Errorf("expected 5 create attempts before giving up, got %d", repo.CreateCallCount)
	}
	if notifier.CreatedCallCount != 0 {
		t.Error("no notification should be sent when creation fails")
	}
}

func TestCreateBooking_StorageErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	repo.CreateError = errors.New("connection reset")
	notifier := NewMockNotifier()
	svc := newBookingService(repo, notifier)

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	if err == nil || err.Error() != "connection reset" {
		t.Errorf("expected storage error to propagate, got %v", err)
	}
	if notifier.CreatedCallCount != 0 {
		t.Error("no notification should be sent when persistence fails")
	}
}

func TestCreateBooking_NotifierFailureDoesNotFailCreation(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	notifier := NewMockNotifier()
	notifier.CreatedError = errors.New("smtp down")
	svc := newBookingService(repo, notifier)

	booking, err := svc.CreateBooking(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking == nil {
		t.Fatal("expected a booking despite notifier failure")
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 stored booking, got %d", repo.Len())
	}
}
