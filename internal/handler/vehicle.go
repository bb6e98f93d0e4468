package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// VehicleHandler serves the static vehicle catalogue.
type VehicleHandler struct{}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler() *VehicleHandler {
	return &VehicleHandler{}
}

// VehicleClassResponse is the HTTP representation of a vehicle class.
type VehicleClassResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	PassengerCapacity  int             `json:"passenger_capacity"`
	LuggageCapacity    int             `json:"luggage_capacity"`
	FirstNMiles        float64         `json:"first_n_miles"`
	MinFareForFirstN   float64         `json:"min_fare_for_first_n"`
	PerMileAfterFirstN float64         `json:"per_mile_after_first_n"`
	MeetAndGreetFee    float64         `json:"meet_and_greet_fee"`
	HourlyRates        map[int]float64 `json:"hourly_rates"`
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	classes := domain.ListVehicleClasses()

	response := make([]VehicleClassResponse, 0, len(classes))
	for _, vc := range classes {
		rates := make(map[int]float64)
		for _, hours := range domain.HourlyDurations() {
			if rate, ok := domain.HourlyRate(vc.ID, hours); ok {
				rates[hours] = rate
			}
		}
		response = append(response, VehicleClassResponse{
			ID:                 vc.ID,
			Name:               vc.Name,
			PassengerCapacity:  vc.PassengerCapacity,
			LuggageCapacity:    vc.LuggageCapacity,
			FirstNMiles:        vc.FareRule.FirstNMiles,
			MinFareForFirstN:   vc.FareRule.MinFareForFirstN,
			PerMileAfterFirstN: vc.FareRule.PerMileAfterFirstN,
			MeetAndGreetFee:    vc.MeetAndGreetFee,
			HourlyRates:        rates,
		})
	}

	c.JSON(http.StatusOK, response)
}
