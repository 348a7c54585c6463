package cache

import (
	"context"
	"path"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache returns a process-local Cache. Expired entries are dropped lazily.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithClock(time.Now)
}

func NewMemoryCacheWithClock(now func() time.Time) Cache {
	return &memoryCache{
		entries: map[string]memoryEntry{},
		now:     now,
	}
}

func (cache *memoryCache) Save(_ context.Context, key string, value any, duration int) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[key] = memoryEntry{
		value:   raw,
		expires: cache.expiry(duration),
	}

	return nil
}

func (cache *memoryCache) Get(_ context.Context, key string, value any) error {
	cache.mu.Lock()
	entry, ok := cache.lookup(key)
	cache.mu.Unlock()

	if !ok {
		return Nil
	}

	return decode(entry.value, value)
}

func (cache *memoryCache) Delete(_ context.Context, key string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.entries, key)

	return nil
}

func (cache *memoryCache) Clear(_ context.Context, pattern string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	for key := range cache.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(cache.entries, key)
		}
	}

	return nil
}

func (cache *memoryCache) Incr(_ context.Context, key string, duration int) (int64, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	var count int64

	entry, ok := cache.lookup(key)
	if ok {
		count, _ = strconv.ParseInt(string(entry.value), 10, 64)
	} else {
		entry.expires = cache.expiry(duration)
	}

	count++
	entry.value = []byte(strconv.FormatInt(count, 10))
	cache.entries[key] = entry

	return count, nil
}

// lookup must be called with mu held.
func (cache *memoryCache) lookup(key string) (memoryEntry, bool) {
	entry, ok := cache.entries[key]
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expires.IsZero() && !cache.now().Before(entry.expires) {
		delete(cache.entries, key)

		return memoryEntry{}, false
	}

	return entry, true
}

func (cache *memoryCache) expiry(duration int) time.Time {
	if duration <= 0 {
		return time.Time{}
	}

	return cache.now().Add(time.Second * time.Duration(duration))
}
