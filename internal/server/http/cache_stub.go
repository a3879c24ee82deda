package httpserver

import (
	"context"
	"time"
)

// Cache interface to decouple from concrete cache implementations.
type cacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// CacheInstance is wired from main once the cache driver is ready.
var CacheInstance cacheInterface

// DefaultCacheTTL applies to the ticker path.
var DefaultCacheTTL = 5 * time.Second
