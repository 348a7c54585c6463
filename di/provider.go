package di

import (
	"context"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/infras/pmsapi"
	"pmsconsole/infras/redis"
	"pmsconsole/shared/cache"
	"pmsconsole/shared/query"

	"github.com/rs/zerolog/log"
)

// provideCache backs the query store with redis when enabled, so replicas share
// cached reads, and with process memory otherwise.
func provideCache(cfg *config.Config, ot otel.Otel) cache.Cache {
	if !cfg.Cache.Redis.Enable {
		log.Info().Msg("Using in-memory query cache")

		return cache.NewMemoryCache()
	}

	return cache.NewRedisCache(redis.New(cfg), ot)
}

// provideBackend registers the 401 hook that drops the cached reads of a rejected session.
func provideBackend(cfg *config.Config, ot otel.Otel, store *query.Store) pmsapi.Client {
	client := pmsapi.New(cfg, ot)

	client.OnUnauthorized(func(ctx context.Context) {
		if scope := query.ScopeFrom(ctx); scope != "" {
			store.InvalidateScope(ctx, scope)
		}
	})

	return client
}
