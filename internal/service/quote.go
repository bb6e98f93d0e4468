package service

import (
	"context"
	"fmt"
	"log"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/redis"
)

// QuoteService prices a prospective trip before a booking exists. It resolves
// the distance through the distance provider when the client has not measured
// one, and short-circuits through the quote cache.
type QuoteService struct {
	distance DistanceProvider
	fare     *FareCalculator
	cache    redis.QuoteCacheInterface
}

// NewQuoteService creates a new QuoteService. cache may be nil.
func NewQuoteService(distance DistanceProvider, fare *FareCalculator, cache redis.QuoteCacheInterface) *QuoteService {
	return &QuoteService{
		distance: distance,
		fare:     fare,
		cache:    cache,
	}
}

// QuoteRequest contains the parameters for pricing a trip.
type QuoteRequest struct {
	VehicleClassID   string
	TripType         string
	PickupCoords     *domain.Coordinates
	DropoffCoords    *domain.Coordinates
	DistanceMiles    float64 // optional pre-measured distance
	DurationHours    int     // hourly hires only
	PickupIsAirport  bool
	DropoffIsAirport bool
	MeetAndGreet     bool
	WaitingMinutes   float64
}

// Quote is a priced trip proposal.
type Quote struct {
	VehicleClassID   string
	VehicleClassName string
	TripType         domain.TripType
	DistanceMiles    float64
	Breakdown        domain.PriceBreakdown
}

// GetQuote prices the requested trip. It fails with ErrQuoteUnavailable when
// the distance cannot be determined; an unknown distance is never priced as a
// zero-length trip.
func (s *QuoteService) GetQuote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	class, ok := domain.GetVehicleClass(req.VehicleClassID)
	if !ok {
		return nil, ErrUnknownVehicleClass
	}

	tripType, ok := domain.ParseTripType(req.TripType)
	if !ok {
		verr := &ValidationError{}
		verr.add("trip_type", "must be one of one-way, round-trip, hourly")
		return nil, verr
	}

	if req.DistanceMiles < 0 {
		verr := &ValidationError{}
		verr.add("distance_miles", "must not be negative")
		return nil, verr
	}

	if tripType == domain.TripTypeHourly {
		breakdown, ok := s.fare.CalculateHourly(class, req.DurationHours, req.MeetAndGreet)
		if !ok {
			verr := &ValidationError{}
			verr.add("duration_hours", fmt.Sprintf("no hourly rate for %d hours", req.DurationHours))
			return nil, verr
		}
		return &Quote{
			VehicleClassID:   class.ID,
			VehicleClassName: class.Name,
			TripType:         tripType,
			Breakdown:        breakdown,
		}, nil
	}

	distance, err := s.resolveDistance(ctx, req)
	if err != nil {
		return nil, err
	}
	if distance <= 0 {
		return nil, ErrQuoteUnavailable
	}

	if quote := s.cachedQuote(ctx, class, tripType, distance, req); quote != nil {
		return quote, nil
	}

	breakdown := s.fare.Calculate(class, FareInput{
		DistanceMiles:    distance,
		PickupIsAirport:  req.PickupIsAirport,
		DropoffIsAirport: req.DropoffIsAirport,
		MeetAndGreet:     req.MeetAndGreet,
		WaitingMinutes:   req.WaitingMinutes,
	})

	quote := &Quote{
		VehicleClassID:   class.ID,
		VehicleClassName: class.Name,
		TripType:         tripType,
		DistanceMiles:    distance,
		Breakdown:        breakdown,
	}
	s.storeQuote(ctx, quote, req)
	return quote, nil
}

// resolveDistance prefers a pre-measured distance, falling back to the
// distance provider when both coordinate pairs are known.
func (s *QuoteService) resolveDistance(ctx context.Context, req QuoteRequest) (float64, error) {
	if req.DistanceMiles > 0 {
		return req.DistanceMiles, nil
	}
	if req.PickupCoords == nil || req.DropoffCoords == nil {
		return 0, nil
	}
	return s.distance.DistanceBetween(ctx, *req.PickupCoords, *req.DropoffCoords)
}

// quoteKey builds the cache key for a priced trip. Distance is rounded into
// the key by the %.2f verb so re-measured trips land on the same entry.
func quoteKey(classID string, tripType domain.TripType, distance float64, req QuoteRequest) string {
	return fmt.Sprintf("%s:%s:%.2f:%t:%t:%t:%.0f",
		classID, tripType, distance,
		req.PickupIsAirport, req.DropoffIsAirport, req.MeetAndGreet, req.WaitingMinutes)
}

func (s *QuoteService) cachedQuote(ctx context.Context, class domain.VehicleClass, tripType domain.TripType, distance float64, req QuoteRequest) *Quote {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, quoteKey(class.ID, tripType, distance, req))
	if err != nil || cached == nil {
		return nil
	}
	return &Quote{
		VehicleClassID:   class.ID,
		VehicleClassName: class.Name,
		TripType:         tripType,
		DistanceMiles:    cached.DistanceMiles,
		Breakdown:        cached.Breakdown,
	}
}

func (s *QuoteService) storeQuote(ctx context.Context, quote *Quote, req QuoteRequest) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, quoteKey(quote.VehicleClassID, quote.TripType, quote.DistanceMiles, req), &redis.CachedQuote{
		VehicleClassID: quote.VehicleClassID,
		DistanceMiles:  quote.DistanceMiles,
		Breakdown:      quote.Breakdown,
	})
	if err != nil {
		log.Printf("failed to cache quote: %v", err)
	}
}
