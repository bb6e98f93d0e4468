package service

import (
	"math"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// FareConfig holds the flat pricing constants shared across vehicle classes.
type FareConfig struct {
	AirportChargePerLeg float64 // added once per airport pickup/dropoff leg
	FreeWaitMinutes     float64 // waiting minutes included before billing starts
}

// DefaultFareConfig returns the standard pricing constants.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		AirportChargePerLeg: 8.00,
		FreeWaitMinutes:     30,
	}
}

// FareInput carries the trip facts that feed the calculation. Distance must
// already be validated as non-negative at the boundary.
type FareInput struct {
	DistanceMiles    float64
	PickupIsAirport  bool
	DropoffIsAirport bool
	MeetAndGreet     bool
	WaitingMinutes   float64
}

// FareCalculator computes price breakdowns from trip facts and a vehicle
// class fare rule. It holds no mutable state and is safe for concurrent use.
type FareCalculator struct {
	cfg FareConfig
}

// NewFareCalculator creates a new FareCalculator.
func NewFareCalculator(cfg FareConfig) *FareCalculator {
	return &FareCalculator{cfg: cfg}
}

// Calculate computes the itemised fare for a distance-based trip.
//
// The base fare covers the first N miles flat; only miles beyond that are
// billed per mile. Airport charges apply independently to each leg, so a
// journey between two airports is charged twice.
func (c *FareCalculator) Calculate(class domain.VehicleClass, in FareInput) domain.PriceBreakdown {
	rule := class.FareRule

	breakdown := domain.PriceBreakdown{
		BaseFare: rule.MinFareForFirstN,
	}

	if in.DistanceMiles > rule.FirstNMiles {
		breakdown.DistanceCharge = round2((in.DistanceMiles - rule.FirstNMiles) * rule.PerMileAfterFirstN)
	}

	if in.MeetAndGreet {
		breakdown.MeetAndGreetCharge = class.MeetAndGreetFee
	}

	airportLegs := 0
	if in.PickupIsAirport {
		airportLegs++
	}
	if in.DropoffIsAirport {
		airportLegs++
	}
	breakdown.AirportCharge = float64(airportLegs) * c.cfg.AirportChargePerLeg

	if class.WaitingRatePerMinute > 0 && in.WaitingMinutes > c.cfg.FreeWaitMinutes {
		breakdown.WaitingCharge = round2((in.WaitingMinutes - c.cfg.FreeWaitMinutes) * class.WaitingRatePerMinute)
	}

	breakdown.Total = round2(breakdown.BaseFare +
		breakdown.DistanceCharge +
		breakdown.MeetAndGreetCharge +
		breakdown.AirportCharge +
		breakdown.WaitingCharge)

	return breakdown
}

// CalculateHourly computes the flat fare for an hourly hire, plus any
// meet-and-greet fee. The second return is false when the class or duration
// has no published rate.
func (c *FareCalculator) CalculateHourly(class domain.VehicleClass, hours int, meetAndGreet bool) (domain.PriceBreakdown, bool) {
	rate, ok := domain.HourlyRate(class.ID, hours)
	if !ok {
		return domain.PriceBreakdown{}, false
	}

	breakdown := domain.PriceBreakdown{BaseFare: rate}
	if meetAndGreet {
		breakdown.MeetAndGreetCharge = class.MeetAndGreetFee
	}
	breakdown.Total = round2(breakdown.BaseFare + breakdown.MeetAndGreetCharge)
	return breakdown, true
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
