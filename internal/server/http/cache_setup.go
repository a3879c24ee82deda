package httpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"marketd/internal/config"
	appcache "marketd/pkg/cache"
)

// SetupCache wires CacheInstance/DefaultCacheTTL from the cache config.
// Returns a cleanup function (no-op for the memory driver).
func SetupCache(cfg config.Cache) (func(), error) {
	DefaultCacheTTL = cfg.TTLDuration()

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "none", "off":
		CacheInstance = nil
		return func() {}, nil
	case "redis":
		cacheCfg := appcache.Config{
			Addr:       fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password:   cfg.Pass,
			DB:         cfg.Db,
			Prefix:     "marketd",
			DefaultTTL: int(DefaultCacheTTL.Seconds()),
		}

		r, err := appcache.Init(context.Background(), cacheCfg)
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}

		CacheInstance = &redisCacheAdapter{rdb: r.Client, prefix: cacheCfg.Prefix}
		return func() { _ = r.Close() }, nil
	default:
		// memory is the default driver
		CacheInstance = newMemoryCacheAdapter()
		return func() {}, nil
	}
}

type redisCacheAdapter struct {
	rdb    *redis.Client
	prefix string
}

func (a *redisCacheAdapter) key(key string) string {
	return a.prefix + ":" + key
}

func (a *redisCacheAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := a.rdb.Get(ctx, a.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (a *redisCacheAdapter) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return a.rdb.Set(ctx, a.key(key), data, ttl).Err()
}
