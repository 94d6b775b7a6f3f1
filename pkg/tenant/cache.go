package tenant

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/cache"
)

// Cache stores resolved tenants between requests so the middleware does not
// hit storage on every request.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize bounds the in-memory cache; one entry per tenant.
const DefaultCacheSize = 1000

type memoryEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache layers TTL expiry on top of the generic LRU cache. Eviction of
// cold tenants is handled by the LRU, expiry by the janitor goroutine.
type memoryCache struct {
	lru    *cache.LRUCache[string, memoryEntry]
	stop   chan struct{}
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemoryCache creates an in-memory tenant cache with the default size.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-memory tenant cache holding at most
// size entries. Non-positive sizes fall back to DefaultCacheSize.
func NewMemoryCacheWithSize(size int) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &memoryCache{
		lru:  cache.NewLRUCache[string, memoryEntry](size),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	c.lru.Put(key, memoryEntry{tenant: t, expiresAt: time.Now().Add(ttl)})
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.lru.Remove(key)
}

// janitor drops expired entries once a minute so tenants deactivated out of
// band do not linger until their LRU slot is reused.
func (c *memoryCache) janitor() {
	defer close(c.done)
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			for _, key := range c.lru.Keys() {
				if entry, ok := c.lru.Get(key); ok && now.After(entry.expiresAt) {
					c.lru.Remove(key)
				}
			}
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noopCache disables caching. Useful for tests and single-request tooling.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(ctx context.Context, key string) (*Tenant, bool) { return nil, false }

func (noopCache) Set(ctx context.Context, key string, t *Tenant, _ time.Duration) {}

func (noopCache) Delete(ctx context.Context, key string) {}

func (noopCache) Close() error { return nil }
