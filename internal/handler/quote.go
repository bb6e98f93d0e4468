package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// QuoteHandler handles HTTP requests for fare quotes.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// QuoteRequest is the HTTP request body for requesting a quote.
type QuoteRequest struct {
	VehicleClassID   string   `json:"vehicle_class_id"`
	TripType         string   `json:"trip_type"`
	PickupLat        *float64 `json:"pickup_lat,omitempty"`
	PickupLng        *float64 `json:"pickup_lng,omitempty"`
	DropoffLat       *float64 `json:"dropoff_lat,omitempty"`
	DropoffLng       *float64 `json:"dropoff_lng,omitempty"`
	DistanceMiles    float64  `json:"distance_miles,omitempty"`
	DurationHours    int      `json:"duration_hours,omitempty"`
	PickupIsAirport  bool     `json:"pickup_is_airport,omitempty"`
	DropoffIsAirport bool     `json:"dropoff_is_airport,omitempty"`
	MeetAndGreet     bool     `json:"meet_and_greet,omitempty"`
	WaitingMinutes   float64  `json:"waiting_minutes,omitempty"`
}

// PriceBreakdownResponse is the HTTP representation of a price breakdown.
type PriceBreakdownResponse struct {
	BaseFare           float64 `json:"base_fare"`
	DistanceCharge     float64 `json:"distance_charge"`
	MeetAndGreetCharge float64 `json:"meet_and_greet_charge,omitempty"`
	AirportCharge      float64 `json:"airport_charge,omitempty"`
	WaitingCharge      float64 `json:"waiting_charge,omitempty"`
	Total              float64 `json:"total"`
}

// QuoteResponse is the HTTP response for a quote.
type QuoteResponse struct {
	VehicleClassID   string                 `json:"vehicle_class_id"`
	VehicleClassName string                 `json:"vehicle_class_name"`
	TripType         string                 `json:"trip_type"`
	DistanceMiles    float64                `json:"distance_miles,omitempty"`
	Breakdown        PriceBreakdownResponse `json:"breakdown"`
}

// GetQuote handles POST /v1/quotes
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	var req QuoteRequest
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
		WaitingMinutes:   req.WaitingMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, QuoteResponse{
		VehicleClassID:   quote.VehicleClassID,
		VehicleClassName: quote.VehicleClassName,
		TripType:         string(quote.TripType),
		DistanceMiles:    quote.DistanceMiles,
		Breakdown:        breakdownResponse(quote.Breakdown),
	})
}

// coords builds a coordinate pair when both halves are present.
func coords(lat, lng *float64) *domain.Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *lat, Lng: *lng}
}

func breakdownResponse(p domain.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BaseFare:           p.BaseFare,
		DistanceCharge:     p.DistanceCharge,
		MeetAndGreetCharge: p.MeetAndGreetCharge,
		AirportCharge:      p.AirportCharge,
		WaitingCharge:      p.WaitingCharge,
		Total:              p.Total,
	}
}
