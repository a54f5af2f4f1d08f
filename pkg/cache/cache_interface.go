package cache

import (
	"context"
	"time"
)

// Cache defines the contract of the cache layer.
// Implementations: Redis (infrastructure/cache), in-memory fakes in tests.
type Cache interface {
	// Get loads the value stored under key and unmarshals it into dest.
	// Returns found=false on a cache miss; dest is left untouched then.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (marshalled to JSON unless it is already a string) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error

	// Counters
	Increment(ctx context.Context, key string) (int64, error)
	IncrementBy(ctx context.Context, key string, delta int64) (int64, error)
	// GetDelInt atomically reads and removes an integer counter.
	// Returns ok=false when the key does not exist.
	GetDelInt(ctx context.Context, key string) (int64, bool, error)
	// Keys lists keys matching pattern (SCAN based, never KEYS).
	Keys(ctx context.Context, pattern string) ([]string, error)
}
