package query

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"pmsconsole/config"
	"pmsconsole/infras/otel"
	"pmsconsole/shared/cache"
	"pmsconsole/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// entry is the stored form of a cached read.
type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

type invalidation struct {
	pattern string
	seq     uint64
}

// Store owns every cached read. Identical concurrent reads share one fetch, and
// invalidations win over fetches that started before them.
type Store struct {
	cache cache.Cache
	otel  otel.Otel
	group singleflight.Group
	now   func() time.Time

	fresh time.Duration
	evict int

	mu            sync.Mutex
	seq           uint64
	inflightKeys  map[string]int
	inflightSeqs  map[uint64]int
	invalidations []invalidation

	background sync.WaitGroup
}

func NewStore(cfg *config.Config, c cache.Cache, ot otel.Otel) *Store {
	return NewStoreWithClock(cfg, c, ot, time.Now)
}

func NewStoreWithClock(cfg *config.Config, c cache.Cache, ot otel.Otel, now func() time.Time) *Store {
	return &Store{
		cache:        c,
		otel:         ot,
		now:          now,
		fresh:        time.Duration(cfg.Cache.FreshSeconds) * time.Second,
		evict:        cfg.Cache.EvictSeconds,
		inflightKeys: map[string]int{},
		inflightSeqs: map[uint64]int{},
	}
}

type fetchFunc func(ctx context.Context) (any, error)

// read returns the raw JSON of key, from cache when possible.
func (s *Store) read(ctx context.Context, key string, fetch fetchFunc) (raw []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelQueryScopeName, constant.OtelQueryScopeName+".read")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("query.key", key)

	var cached entry

	err = s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		if s.now().Sub(cached.FetchedAt) < s.fresh {
			scope.AddEvent("fresh")

			return cached.Data, nil
		}

		scope.AddEvent("stale")
		s.refresh(ctx, key, fetch)

		return cached.Data, nil
	case !errors.Is(err, cache.Nil):
		log.Warn().Err(err).Str("key", key).Msg("query cache unavailable, fetching directly")
	}

	scope.AddEvent("miss")

	result, err, shared := s.group.Do(key, func() (any, error) {
		return s.load(ctx, key, fetch)
	})
	if err != nil {
		return nil, err
	}

	scope.SetAttribute("query.shared", shared)

	return result.([]byte), nil
}

// refresh starts one background fetch for key unless one is already in flight.
func (s *Store) refresh(ctx context.Context, key string, fetch fetchFunc) {
	ctx = context.WithoutCancel(ctx)

	s.background.Add(1)

	go func() {
		defer s.background.Done()

		if _, err, _ := s.group.Do(key, func() (any, error) {
			return s.load(ctx, key, fetch)
		}); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("background refetch failed, keeping stale value")
		}
	}()
}

// load runs fetch detached from the caller's cancellation and stores its result
// unless the key was invalidated while the fetch was running.
func (s *Store) load(ctx context.Context, key string, fetch fetchFunc) ([]byte, error) {
	ctx = context.WithoutCancel(ctx)
	started := s.track(key)
	defer s.untrack(key, started)

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if s.invalidatedSince(key, started) {
		return raw, nil
	}

	if err = s.cache.Save(ctx, key, entry{FetchedAt: s.now(), Data: raw}, s.evict); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to store query result")

		return raw, nil
	}

	// An invalidation may have cleared the store between the check above and the save.
	if s.invalidatedSince(key, started) {
		if err = s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to drop superseded query result")
		}
	}

	return raw, nil
}

// Invalidate drops cached reads selected by matches in every scope.
func (s *Store) Invalidate(ctx context.Context, matches ...Match) {
	for _, m := range matches {
		s.clear(ctx, m.pattern())
	}
}

// InvalidateScope drops every cached read of one session.
func (s *Store) InvalidateScope(ctx context.Context, scope string) {
	if scope == "" {
		return
	}

	s.clear(ctx, scopePattern(scope))
}

func (s *Store) clear(ctx context.Context, pattern string) {
	s.mu.Lock()
	s.seq++
	s.invalidations = append(s.invalidations, invalidation{pattern: pattern, seq: s.seq})

	for key := range s.inflightKeys {
		if matches(pattern, key) {
			s.group.Forget(key)
		}
	}
	s.mu.Unlock()

	if err := s.cache.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate queries")
	}

	log.Debug().Str("pattern", pattern).Msg("queries invalidated")
}

func (s *Store) track(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflightKeys[key]++
	s.inflightSeqs[s.seq]++

	return s.seq
}

func (s *Store) untrack(key string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflightKeys[key]--; s.inflightKeys[key] <= 0 {
		delete(s.inflightKeys, key)
	}

	if s.inflightSeqs[seq]--; s.inflightSeqs[seq] <= 0 {
		delete(s.inflightSeqs, seq)
	}

	// Invalidations no running fetch predates are no longer needed.
	oldest := s.seq
	for running := range s.inflightSeqs {
		oldest = min(oldest, running)
	}

	kept := s.invalidations[:0]
	for _, inv := range s.invalidations {
		if inv.seq > oldest {
			kept = append(kept, inv)
		}
	}

	s.invalidations = kept
}

func (s *Store) invalidatedSince(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invalidations {
		if inv.seq > seq && matches(inv.pattern, key) {
			return true
		}
	}

	return false
}

// Wait blocks until background refetches have finished.
func (s *Store) Wait() {
	s.background.Wait()
}
