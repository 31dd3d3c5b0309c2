package tenant

import (
	"container/list"
	"context"
	"log"
	"sync"
	"time"

	"github.com/icecave/beeline/name"
)

// DefaultCacheTTL is the entry lifetime used when Cache.TTL is zero.
const DefaultCacheTTL = 15 * time.Second

// Cache wraps another locator to provide a bounded, time-expiring cache of
// successful resolutions.
//
// Entries are populated lazily on a lookup miss and evicted either by
// capacity pressure (least-recently-used first) or by expiry, whichever
// comes first. Failed resolutions are never cached.
type Cache struct {
	// The actual locator used to resolve tenants.
	Inner Locator

	// How long a resolved tenant configuration is cached for.
	TTL time.Duration

	// The maximum number of cached tenants. Zero means unbounded.
	MaxSize int

	// An optional logger for information about cache activity.
	Logger *log.Logger

	mutex   sync.Mutex
	entries map[string]*list.Element
	recency *list.List // front = most recently used
}

type cacheEntry struct {
	key       string
	config    *Config
	expiresAt time.Time
}

// Locate finds the tenant served under the given hostname.
func (cache *Cache) Locate(ctx context.Context, host name.Hostname) *Config {
	if config, ok := cache.fetch(host.Key); ok {
		return config
	}

	if cache.Logger != nil {
		cache.Logger.Printf("tenant: Cache miss for '%s'", host.Key)
	}

	// Concurrent misses for the same hostname may each resolve and store
	// redundantly. The resolutions are equivalent in value, so the last
	// write winning is benign and not worth serializing.
	config := cache.Inner.Locate(ctx, host)
	if config == nil {
		return nil
	}

	cache.store(host.Key, config)

	return config
}

func (cache *Cache) fetch(key string) (*Config, bool) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	element, ok := cache.entries[key]
	if !ok {
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if !entry.expiresAt.After(time.Now()) {
		cache.recency.Remove(element)
		delete(cache.entries, key)
		return nil, false
	}

	cache.recency.MoveToFront(element)

	return entry.config, true
}

func (cache *Cache) store(key string, config *Config) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if cache.entries == nil {
		cache.entries = map[string]*list.Element{}
		cache.recency = list.New()
	}

	entry := &cacheEntry{
		key:       key,
		config:    config,
		expiresAt: time.Now().Add(cache.ttl()),
	}

	if element, ok := cache.entries[key]; ok {
		element.Value = entry
		cache.recency.MoveToFront(element)
	} else {
		cache.entries[key] = cache.recency.PushFront(entry)
	}

	for cache.MaxSize > 0 && cache.recency.Len() > cache.MaxSize {
		oldest := cache.recency.Back()
		cache.recency.Remove(oldest)
		delete(cache.entries, oldest.Value.(*cacheEntry).key)

		if cache.Logger != nil {
			cache.Logger.Printf(
				"tenant: Evicted '%s' to stay within cache size limit of %d",
				oldest.Value.(*cacheEntry).key,
				cache.MaxSize,
			)
		}
	}
}

func (cache *Cache) ttl() time.Duration {
	if cache.TTL == 0 {
		return DefaultCacheTTL
	}

	return cache.TTL
}

// Clear removes all cached entries.
func (cache *Cache) Clear() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	cache.entries = nil
	cache.recency = nil
}
