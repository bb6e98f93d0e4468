package redis

import "context"

// QuoteCacheInterface defines the interface for fare quote caching.
type QuoteCacheInterface interface {
	Get(ctx context.Context, key string) (*CachedQuote, error)
	Set(ctx context.Context, key string, quote *CachedQuote) error
}

// DistanceCacheInterface defines the interface for distance caching.
type DistanceCacheInterface interface {
	Get(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (float64, bool, error)
	Set(ctx context.Context, fromLat, fromLng, toLat, toLng, miles float64) error
}

// Ensure concrete types implement interfaces.
var (
	_ QuoteCacheInterface    = (*QuoteCache)(nil)
	_ DistanceCacheInterface = (*DistanceCache)(nil)
)
