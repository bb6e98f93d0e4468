package service

import (
	"context"
	"log"
	"math"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/redis"
)

// DistanceProvider measures the road distance in miles between two points.
// Implementations return 0 when the distance cannot be determined; callers
// treat 0 as "unknown", never as a zero-length trip.
type DistanceProvider interface {
	DistanceBetween(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

// earthRadiusMiles is the mean Earth radius.
const earthRadiusMiles = 3958.8

// roadDistanceFactor scales great-circle distance up to an approximate road
// distance when no routing service is wired in.
const roadDistanceFactor = 1.25

// HaversineDistanceProvider estimates road distance from the great-circle
// distance between two coordinates. It stands in for an external routing
// service.
type HaversineDistanceProvider struct{}

// NewHaversineDistanceProvider creates a new HaversineDistanceProvider.
func NewHaversineDistanceProvider() *HaversineDistanceProvider {
	return &HaversineDistanceProvider{}
}

// DistanceBetween returns the estimated road distance in miles.
func (p *HaversineDistanceProvider) DistanceBetween(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c * roadDistanceFactor, nil
}

// CachedDistanceProvider wraps a DistanceProvider with a Redis cache.
// Cache failures fall through to the inner provider.
type CachedDistanceProvider struct {
	inner DistanceProvider
	cache redis.DistanceCacheInterface
}

// NewCachedDistanceProvider creates a caching wrapper around inner.
func NewCachedDistanceProvider(inner DistanceProvider, cache redis.DistanceCacheInterface) *CachedDistanceProvider {
	return &CachedDistanceProvider{inner: inner, cache: cache}
}

// DistanceBetween returns the cached distance when available, measuring and
// caching it otherwise.
func (p *CachedDistanceProvider) DistanceBetween(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	miles, hit, err := p.cache.Get(ctx, from.Lat, from.Lng, to.Lat, to.Lng)
	if err == nil && hit {
		return miles, nil
	}

	miles, err = p.inner.DistanceBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	if err := p.cache.Set(ctx, from.Lat, from.Lng, to.Lat, to.Lng, miles); err != nil {
		log.Printf("failed to cache distance: %v", err)
	}
	return miles, nil
}
