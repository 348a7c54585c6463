package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
)

// Nil is returned by Get when the key does not exist, whichever store backs the cache.
const Nil = redis.Nil

// Cache is a key-value store with expiry. Patterns passed to Clear use glob syntax
// where * matches any run of characters.
type Cache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string, duration int) (int64, error)
}
