// Package query caches backend reads per session and keeps them consistent with writes.
//
// A Query wraps one read endpoint: identical concurrent reads share one request,
// results stay fresh for a window after which the next read serves the cached value
// and refetches in the background, and entries are evicted after a longer period.
// A Mutation wraps one write endpoint and, on success, invalidates the reads it affects.
package query

import (
	"context"
	"encoding/json"
	"fmt"

	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"

	"github.com/rs/zerolog/log"
)

type Query[P, T any] struct {
	store  *Store
	entity string
	op     string
	params func(P) Params
	fetch  func(ctx context.Context, p P) (T, error)
}

// NewQuery builds a read hook. params derives the key parameters from the request.
func NewQuery[P, T any](store *Store, entity, op string, params func(P) Params, fetch func(ctx context.Context, p P) (T, error)) *Query[P, T] {
	return &Query[P, T]{
		store:  store,
		entity: entity,
		op:     op,
		params: params,
		fetch:  fetch,
	}
}

func (q *Query[P, T]) Key(ctx context.Context, p P) Key {
	var params Params
	if q.params != nil {
		params = q.params(p)
	}

	return Key{
		Scope:  ScopeFrom(ctx),
		Entity: q.entity,
		Op:     q.op,
		Params: params,
	}
}

// Get returns the value for p. Every caller decodes its own copy.
func (q *Query[P, T]) Get(ctx context.Context, p P) (res T, err error) {
	key := q.Key(ctx, p).String()

	raw, err := q.store.read(ctx, key, func(ctx context.Context) (any, error) {
		return q.fetch(ctx, p)
	})
	if err != nil {
		return res, err
	}

	if err = json.Unmarshal(raw, &res); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to decode cached query")

		return res, failure.InternalError(fmt.Errorf("decoding %s.%s: %w", q.entity, q.op, err))
	}

	return res, nil
}

// NoParams is the params function of reads without parameters.
func NoParams[P any](P) Params {
	return Params{}
}

type Mutation[P, T any] struct {
	store       *Store
	run         func(ctx context.Context, p P) (T, error)
	invalidates func(p P, res T) []Match
	message     func(p P, res T) string
}

// NewMutation builds a write hook. invalidates lists the reads made stale by a
// successful write and message is the notification shown for it.
func NewMutation[P, T any](store *Store, run func(ctx context.Context, p P) (T, error), invalidates func(p P, res T) []Match, message func(p P, res T) string) *Mutation[P, T] {
	return &Mutation[P, T]{
		store:       store,
		run:         run,
		invalidates: invalidates,
		message:     message,
	}
}

// Do runs the write. On failure the server message is raised as an error notification.
func (m *Mutation[P, T]) Do(ctx context.Context, p P) (T, error) {
	res, err := m.run(ctx, p)
	if err != nil {
		flash.Error(ctx, failure.GetMessage(err))

		return res, err
	}

	if m.invalidates != nil {
		m.store.Invalidate(ctx, m.invalidates(p, res)...)
	}

	if m.message != nil {
		flash.Success(ctx, m.message(p, res))
	}

	return res, nil
}
