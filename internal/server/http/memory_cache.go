package httpserver

import (
	"context"
	"sync"
	"time"
)

// memoryCacheAdapter is a small in-memory TTL cache implementing cacheInterface.
// It's used when cache.driver=memory.
// Entries expire lazily: an expired key is deleted on the Get that observes
// it, there is no background sweeper and no size bound. That is fine for the
// low-cardinality key space here (one key per traded symbol).
// It is safe for concurrent use.

type memoryCacheAdapter struct {
	mu    sync.RWMutex
	items map[string]memItem
	now   func() time.Time // overridable in tests
}

type memItem struct {
	b          []byte
	insertedAt time.Time
	ttl        time.Duration
}

func newMemoryCacheAdapter() *memoryCacheAdapter {
	return &memoryCacheAdapter{items: make(map[string]memItem), now: time.Now}
}

// expired reports whether it is past its TTL at time t. An entry exactly at
// its TTL boundary is still live.
func (it memItem) expired(t time.Time) bool {
	if it.ttl <= 0 {
		return false
	}
	return t.Sub(it.insertedAt) > it.ttl
}

func (m *memoryCacheAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if it.expired(m.now()) {
		m.mu.Lock()
		// re-check under the write lock
		it2, ok2 := m.items[key]
		if ok2 && it2.expired(m.now()) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	// return a copy to avoid external mutation
	out := make([]byte, len(it.b))
	copy(out, it.b)
	return out, true, nil
}

func (m *memoryCacheAdapter) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_ = ctx
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	b := make([]byte, len(data))
	copy(b, data)
	m.mu.Lock()
	m.items[key] = memItem{b: b, insertedAt: m.now(), ttl: ttl}
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheAdapter) Clear() {
	m.mu.Lock()
	clear(m.items)
	m.mu.Unlock()
}
