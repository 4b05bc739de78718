package settings

import (
	"context"
	"sync"
	"time"

	"storefront-admin/internal/repository"
)

const DefaultTTL = 5 * time.Minute

type Cache interface {
	Get(ctx context.Context, key string) (repository.Record, bool)
	Set(ctx context.Context, key string, rec repository.Record)
	Delete(ctx context.Context, keys ...string)
	Clear(ctx context.Context)
}

type memoryEntry struct {
	rec       repository.Record
	expiresAt time.Time
}

// MemoryCache is a process-local Cache. The mutex only keeps the map
// consistent; it does not serialise population of a missing key.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{entries: make(map[string]memoryEntry), ttl: ttl, now: now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (repository.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.rec.Merge(nil), true
}

func (c *MemoryCache) Set(_ context.Context, key string, rec repository.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{rec: rec.Merge(nil), expiresAt: c.now().Add(c.ttl)}
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
}
