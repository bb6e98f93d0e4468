package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// BookingHandler handles the customer-facing booking endpoints.
type BookingHandler struct {
	bookingService *service.BookingService
	quoteService   *service.QuoteService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, quoteService *service.QuoteService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		quoteService:   quoteService,
	}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	VehicleClassID   string     `json:"vehicle_class_id"`
	TripType         string     `json:"trip_type"`
	PickupLocation   string     `json:"pickup_location"`
	PickupLat        *float64   `json:"pickup_lat,omitempty"`
	PickupLng        *float64   `json:"pickup_lng,omitempty"`
	DropoffLocation  string     `json:"dropoff_location,omitempty"`
	DropoffLat       *float64   `json:"dropoff_lat,omitempty"`
	DropoffLng       *float64   `json:"dropoff_lng,omitempty"`
	DistanceMiles    float64    `json:"distance_miles,omitempty"`
	PickupTime       time.Time  `json:"pickup_time"`
	ReturnTime       *time.Time `json:"return_time,omitempty"`
	DurationHours    int        `json:"duration_hours,omitempty"`
	Passengers       int        `json:"passengers"`
	Luggage          int        `json:"luggage"`
	PickupIsAirport  bool       `json:"pickup_is_airport,omitempty"`
	DropoffIsAirport bool       `json:"dropoff_is_airport,omitempty"`
	MeetAndGreet     bool       `json:"meet_and_greet,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	FlightNumber     string     `json:"flight_number,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID               string                 `json:"id"`
	Reference        string                 `json:"reference"`
	Status           string                 `json:"status"`
	VehicleClassID   string                 `json:"vehicle_class_id"`
	TripType         string                 `json:"trip_type"`
	PickupLocation   string                 `json:"pickup_location"`
	DropoffLocation  string                 `json:"dropoff_location,omitempty"`
	DistanceMiles    float64                `json:"distance_miles,omitempty"`
	PickupTime       time.Time              `json:"pickup_time"`
	ReturnTime       *time.Time             `json:"return_time,omitempty"`
	DurationHours    int                    `json:"duration_hours,omitempty"`
	Passengers       int                    `json:"passengers"`
	Luggage          int                    `json:"luggage"`
	PickupIsAirport  bool                   `json:"pickup_is_airport"`
	DropoffIsAirport bool                   `json:"dropoff_is_airport"`
	MeetAndGreet     bool                   `json:"meet_and_greet"`
	FirstName        string                 `json:"first_name"`
	LastName         string                 `json:"last_name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	FlightNumber     string                 `json:"flight_number,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	Price            PriceBreakdownResponse `json:"price"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// CreateBooking handles POST /v1/bookings
//
// The price snapshot is computed server-side from the submitted trip facts;
// the client never supplies its own total.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), service.QuoteRequest{
		VehicleClassID:   req.VehicleClassID,
		TripType:         req.TripType,
		PickupCoords:     coords(req.PickupLat, req.PickupLng),
		DropoffCoords:    coords(req.DropoffLat, req.DropoffLng),
		DistanceMiles:    req.DistanceMiles,
		DurationHours:    req.DurationHours,
		PickupIsAirport:  req.PickupIsAirport,
		DropoffIsAirport: req.DropoffIsAirport,
		MeetAndGreet:     req.MeetAndGreet,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	trip := domain.TripFacts{
		Type:             domain.TripType(req.TripType),
		PickupLocation:   req.PickupLocation,
		PickupCoords:     coords(req.PickupLat, req.PickupLng),
		DropoffLocation:  req.DropoffLocation,
		DropoffCoords:    coords(req.DropoffLat, req.DropoffLng),
		DistanceMiles:    quote.DistanceMiles,
		PickupTime:       req.PickupTime,
		DurationHours:    req.DurationHours,
		Passengers:       req.Passengers,
		Luggage:          req.Luggage,
		PickupIsAirport:  req.PickupIsAirport,
		DropoffIsAirport: req.DropoffIsAirport,
		MeetAndGreet:     req.MeetAndGreet,
	}
	if req.ReturnTime != nil {
		trip.ReturnTime = *req.ReturnTime
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		Trip: trip,
		Contact: domain.PassengerContact{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Phone:        req.Phone,
			FlightNumber: req.FlightNumber,
			Notes:        req.Notes,
		},
		VehicleClassID: req.VehicleClassID,
		Price:          quote.Breakdown,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, bookingResponse(booking))
}

// TrackBooking handles GET /v1/bookings/track/:reference
//
// References are normalized (trimmed, uppercased) before the exact-match
// lookup.
func (h *BookingHandler) TrackBooking(c *gin.Context) {
	reference := strings.ToUpper(strings.TrimSpace(c.Param("reference")))

	booking, err := h.bookingService.GetByReference(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

func bookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		Status:           string(b.Status),
		VehicleClassID:   b.VehicleClassID,
		TripType:         string(b.Trip.Type),
		PickupLocation:   b.Trip.PickupLocation,
		DropoffLocation:  b.Trip.DropoffLocation,
		DistanceMiles:    b.Trip.DistanceMiles,
		PickupTime:       b.Trip.PickupTime,
		DurationHours:    b.Trip.DurationHours,
		Passengers:       b.Trip.Passengers,
		Luggage:          b.Trip.Luggage,
		PickupIsAirport:  b.Trip.PickupIsAirport,
		DropoffIsAirport: b.Trip.DropoffIsAirport,
		MeetAndGreet:     b.Trip.MeetAndGreet,
		FirstName:        b.Contact.FirstName,
		LastName:         b.Contact.LastName,
		Email:            b.Contact.Email,
		Phone:            b.Contact.Phone,
		FlightNumber:     b.Contact.FlightNumber,
		Notes:            b.Contact.Notes,
		Price:            breakdownResponse(b.Price),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if !b.Trip.ReturnTime.IsZero() {
		t := b.Trip.ReturnTime
		resp.ReturnTime = &t
	}
	return resp
}
