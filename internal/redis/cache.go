package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// Cache TTL constants
const (
	QuoteCacheTTL    = 60 * time.Second // fares are static but quotes carry live distance
	DistanceCacheTTL = 10 * time.Minute // measured road distance between two points
)

// Key prefixes
const (
	quoteCachePrefix    = "cache:quote:"
	distanceCachePrefix = "cache:distance:"
)

// CachedQuote represents a cached fare quote.
type CachedQuote struct {
	VehicleClassID string                `json:"vehicle_class_id"`
	DistanceMiles  float64               `json:"distance_miles"`
	Breakdown      domain.PriceBreakdown `json:"breakdown"`
}

// QuoteCache stores computed fare quotes in Redis.
type QuoteCache struct {
	client *redis.Client
}

// NewQuoteCache creates a new QuoteCache.
func NewQuoteCache(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

// Get retrieves a quote from cache. Returns (nil, nil) on a miss.
func (s *QuoteCache) Get(ctx context.Context, key string) (*CachedQuote, error) {
	data, err := s.client.Get(ctx, quoteCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var quote CachedQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Set stores a quote in cache.
func (s *QuoteCache) Set(ctx context.Context, key string, quote *CachedQuote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, quoteCachePrefix+key, data, QuoteCacheTTL).Err()
}

// DistanceCache stores measured distances between coordinate pairs.
type DistanceCache struct {
	client *redis.Client
}

// NewDistanceCache creates a new DistanceCache.
func NewDistanceCache(client *redis.Client) *DistanceCache {
	return &DistanceCache{client: client}
}

// distanceKey rounds coordinates to ~11m precision so nearby lookups share
// an entry.
func distanceKey(fromLat, fromLng, toLat, toLng float64) string {
	return fmt.Sprintf("%s%.4f,%.4f:%.4f,%.4f", distanceCachePrefix, fromLat, fromLng, toLat, toLng)
}

// Get retrieves a distance in miles. Returns (0, false, nil) on a miss.
func (s *DistanceCache) Get(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, bool, error) {
	miles, err := s.client.Get(ctx, distanceKey(fromLat, fromLng, toLat, toLng)).Float64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil // Cache miss
		}
		return 0, false, err
	}
	return miles, true, nil
}

// Set stores a distance in miles.
func (s *DistanceCache) Set(ctx context.Context, fromLat, fromLng, toLat, toLng, miles float64) error {
	return s.client.Set(ctx, distanceKey(fromLat, fromLng, toLat, toLng), miles, DistanceCacheTTL).Err()
}
