package query_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pmsconsole/config"
	"pmsconsole/infras/otel/mocks"
	"pmsconsole/shared/cache"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type listParams struct {
	Page   int
	Status string
}

func (p listParams) cacheParams() query.Params {
	return query.Params{}.SetInt("page", int64(p.Page)).Set("status", p.Status)
}

type booking struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func newStore(t *testing.T) (*query.Store, *clock) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.FreshSeconds = 30
	cfg.Cache.EvictSeconds = 300

	clk := &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	mem := cache.NewMemoryCacheWithClock(clk.Now)

	store := query.NewStoreWithClock(cfg, mem, mocks.NewOtel(), clk.Now)
	t.Cleanup(store.Wait)

	return store, clk
}

func TestKey_String(t *testing.T) {
	key := query.Key{
		Scope:  "3f2a",
		Entity: "bookings",
		Op:     "list",
		Params: query.Params{"status": "confirmed", "page": "2"},
	}

	assert.Equal(t, "query:3f2a:bookings:list:page=2&status=confirmed", key.String())

	tricky := query.Key{Entity: "customers", Op: "list", Params: query.Params{"search": "a:b*"}}
	assert.Equal(t, "query:public:customers:list:search=a%3Ab%2A", tricky.String())
}

func TestQuery_DeduplicatesConcurrentReads(t *testing.T) {
	store, _ := newStore(t)

	var calls atomic.Int32
	release := make(chan struct{})

	list := query.NewQuery(store, "bookings", "list", listParams.cacheParams,
		func(_ context.Context, p listParams) ([]booking, error) {
			calls.Add(1)
			<-release

			return []booking{{ID: 1, Status: p.Status}}, nil
		})

	const readers = 8

	var wg sync.WaitGroup
	results := make([][]booking, readers)

	for i := range readers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := list.Get(context.Background(), listParams{Page: 1, Status: "confirmed"})
			assert.NoError(t, err)

			results[i] = res
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	for _, res := range results {
		assert.Equal(t, []booking{{ID: 1, Status: "confirmed"}}, res)
	}
}

func TestQuery_FreshThenStaleWhileRefetching(t *testing.T) {
	store, clk := newStore(t)

	var calls atomic.Int32

	get := query.NewQuery(store, "bookings", "get",
		func(id int64) query.Params { return query.Params{}.SetInt("id", id) },
		func(_ context.Context, id int64) (booking, error) {
			n := calls.Add(1)
			status := "pending"
			if n > 1 {
				status = "confirmed"
			}

			return booking{ID: id, Status: status}, nil
		})

	ctx := context.Background()

	first, err := get.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)

	clk.Advance(10 * time.Second)
	again, err := get.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", again.Status)
	assert.Equal(t, int32(1), calls.Load(), "fresh read must not hit the backend")

	clk.Advance(25 * time.Second)
	stale, err := get.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", stale.Status, "stale read serves the cached value")

	store.Wait()
	assert.Equal(t, int32(2), calls.Load())

	refreshed, err := get.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", refreshed.Status)
}

func TestQuery_EvictedAfterWindow(t *testing.T) {
	store, clk := newStore(t)

	var calls atomic.Int32

	overview := query.NewQuery(store, "analytics", "overview", query.NoParams[struct{}],
		func(_ context.Context, _ struct{}) (int, error) {
			return int(calls.Add(1)), nil
		})

	_, err := overview.Get(context.Background(), struct{}{})
	require.NoError(t, err)

	clk.Advance(301 * time.Second)

	got, err := overview.Get(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 2, got, "evicted entries are fetched synchronously")
}

func TestQuery_ErrorsAreNotCached(t *testing.T) {
	store, _ := newStore(t)

	var calls atomic.Int32

	get := query.NewQuery(store, "room-types", "get",
		func(id int64) query.Params { return query.Params{}.SetInt("id", id) },
		func(_ context.Context, _ int64) (booking, error) {
			calls.Add(1)

			return booking{}, failure.NotFound("Room type not found")
		})

	_, err := get.Get(context.Background(), 4)
	assert.Equal(t, 404, failure.GetCode(err))

	_, err = get.Get(context.Background(), 4)
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_ScopesAreIsolated(t *testing.T) {
	store, _ := newStore(t)

	var calls atomic.Int32

	me := query.NewQuery(store, "auth", "me", query.NoParams[struct{}],
		func(ctx context.Context, _ struct{}) (string, error) {
			calls.Add(1)

			return query.ScopeFrom(ctx), nil
		})

	alice := query.WithScope(context.Background(), "alice")
	bob := query.WithScope(context.Background(), "bob")

	a, err := me.Get(alice, struct{}{})
	require.NoError(t, err)
	b, err := me.Get(bob, struct{}{})
	require.NoError(t, err)

	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)
	assert.Equal(t, int32(2), calls.Load())

	store.InvalidateScope(context.Background(), "alice")

	_, err = me.Get(bob, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "other sessions keep their cache")

	_, err = me.Get(alice, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestStore_InvalidateMatches(t *testing.T) {
	store, _ := newStore(t)

	calls := map[string]int{}
	var mu sync.Mutex

	counter := func(name string) func(context.Context, int64) (int, error) {
		return func(_ context.Context, _ int64) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			calls[name]++

			return calls[name], nil
		}
	}
	byID := func(id int64) query.Params { return query.Params{}.SetInt("id", id) }

	bookingGet := query.NewQuery(store, "bookings", "get", byID, counter("bookings.get"))
	bookingList := query.NewQuery(store, "bookings", "list", byID, counter("bookings.list"))
	customerGet := query.NewQuery(store, "customers", "get", byID, counter("customers.get"))

	ctx := query.WithScope(context.Background(), "s1")
	warm := func() {
		for _, id := range []int64{1, 2} {
			_, _ = bookingGet.Get(ctx, id)
			_, _ = bookingList.Get(ctx, id)
			_, _ = customerGet.Get(ctx, id)
		}
	}

	warm()
	store.Invalidate(context.Background(), query.Exact("bookings", "get", byID(1)))
	warm()
	assert.Equal(t, 3, calls["bookings.get"])
	assert.Equal(t, 2, calls["bookings.list"])

	store.Invalidate(context.Background(), query.Op("bookings", "list"))
	warm()
	assert.Equal(t, 3, calls["bookings.get"])
	assert.Equal(t, 4, calls["bookings.list"])
	assert.Equal(t, 2, calls["customers.get"])

	store.Invalidate(context.Background(), query.Entity("bookings"))
	warm()
	assert.Equal(t, 5, calls["bookings.get"])
	assert.Equal(t, 6, calls["bookings.list"])
	assert.Equal(t, 2, calls["customers.get"])
}

func TestStore_InvalidationBeatsInFlightFetch(t *testing.T) {
	store, _ := newStore(t)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	list := query.NewQuery(store, "bookings", "list", listParams.cacheParams,
		func(_ context.Context, _ listParams) ([]booking, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-release

				return []booking{{ID: 1}}, nil
			}

			return []booking{{ID: 1}, {ID: 2}}, nil
		})

	ctx := context.Background()
	params := listParams{Page: 1}

	done := make(chan []booking)
	go func() {
		res, _ := list.Get(ctx, params)
		done <- res
	}()

	<-started
	store.Invalidate(ctx, query.Entity("bookings"))

	// A read after the invalidation must not join the older flight.
	fresh, err := list.Get(ctx, params)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	close(release)
	assert.Len(t, <-done, 1)

	// The superseded result was not written over the newer one.
	latest, err := list.Get(ctx, params)
	require.NoError(t, err)
	assert.Len(t, latest, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_CallerCancellationDoesNotFailFetch(t *testing.T) {
	store, _ := newStore(t)

	get := query.NewQuery(store, "customers", "get",
		func(id int64) query.Params { return query.Params{}.SetInt("id", id) },
		func(ctx context.Context, id int64) (int64, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}

			return id, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := get.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)
}

func TestMutation_Do(t *testing.T) {
	store, _ := newStore(t)

	var listCalls atomic.Int32

	list := query.NewQuery(store, "bookings", "list", listParams.cacheParams,
		func(_ context.Context, _ listParams) (int32, error) {
			return listCalls.Add(1), nil
		})

	create := query.NewMutation(store,
		func(_ context.Context, status string) (booking, error) {
			if status == "" {
				return booking{}, failure.FromStatus(409, "Not enough rooms available")
			}

			return booking{ID: 12, Status: status}, nil
		},
		func(_ string, _ booking) []query.Match {
			return []query.Match{query.Entity("bookings")}
		},
		func(_ string, res booking) string {
			return "Booking created"
		})

	box := &flash.Box{}
	ctx := flash.NewContext(context.Background(), box)

	_, err := list.Get(ctx, listParams{Page: 1})
	require.NoError(t, err)

	t.Run("success invalidates and notifies", func(t *testing.T) {
		res, err := create.Do(ctx, "confirmed")
		require.NoError(t, err)
		assert.Equal(t, int64(12), res.ID)

		messages := box.Drain()
		require.Len(t, messages, 1)
		assert.Equal(t, flash.KindSuccess, messages[0].Kind)

		got, err := list.Get(ctx, listParams{Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int32(2), got)
	})

	t.Run("failure notifies with the server message", func(t *testing.T) {
		_, err := create.Do(ctx, "")
		require.Error(t, err)

		var f *failure.Failure
		require.True(t, errors.As(err, &f))

		messages := box.Drain()
		require.Len(t, messages, 1)
		assert.Equal(t, flash.KindError, messages[0].Kind)
		assert.Equal(t, "Not enough rooms available", messages[0].Text)

		got, err := list.Get(ctx, listParams{Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int32(2), got, "failed writes invalidate nothing")
	})
}

func TestParams_Helpers(t *testing.T) {
	values := url.Values{"limit": {"20"}, "offset": {"0"}, "status_filter": {""}}

	assert.Equal(t, query.Params{"limit": "20", "offset": "0"}, query.FromValues(values))
	assert.Equal(t, query.Params{"id": "42"}, query.ByID(42))
	assert.Equal(t, query.Params{}, query.ByID(0))
}
