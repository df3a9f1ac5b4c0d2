package currency

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a snapshot is served before it is refreshed.
const DefaultTTL = 24 * time.Hour

// Fetcher retrieves current rates keyed by currency code, relative to the
// reference currency.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (map[string]float64, error)
}

// Cache serves exchange-rate snapshots, refreshing them once they are older
// than the TTL. Concurrent refreshes collapse into a single fetch and a new
// snapshot replaces the old one in a single atomic store.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	current atomic.Pointer[Snapshot]
	group   singleflight.Group
	fetches atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFetchTimeout bounds a single upstream fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// NewCache creates a cache. A nil fetcher means no rate service is
// configured and every refresh yields the degraded fallback snapshot.
func NewCache(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:      fetcher,
		ttl:          DefaultTTL,
		fetchTimeout: 10 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rates returns the current snapshot, refreshing it first if it is missing
// or expired. It never fails because of the upstream service; an error is
// returned only when ctx ends before any snapshot exists.
func (c *Cache) Rates(ctx context.Context) (*Snapshot, error) {
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}

	// The shared fetch must outlive any single caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("rates", func() (interface{}, error) {
		if snap := c.fresh(); snap != nil {
			return snap, nil
		}
		snap := c.refresh(fetchCtx)
		c.current.Store(snap)
		return snap, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*Snapshot), nil
	case <-ctx.Done():
		if snap := c.current.Load(); snap != nil {
			return snap, nil
		}
		return nil, ctx.Err()
	}
}

// Peek returns the stored snapshot without refreshing. It may be nil.
func (c *Cache) Peek() *Snapshot {
	return c.current.Load()
}

// Invalidate drops the stored snapshot so the next call refetches.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

// Fetches reports how many upstream fetches have been attempted.
func (c *Cache) Fetches() int64 {
	return c.fetches.Load()
}

func (c *Cache) fresh() *Snapshot {
	snap := c.current.Load()
	if snap == nil || snap.Age(c.now()) >= c.ttl {
		return nil
	}
	return snap
}

func (c *Cache) refresh(ctx context.Context) *Snapshot {
	if c.fetcher == nil {
		slog.Warn("no exchange rate service configured, using fallback rates")
		return FallbackSnapshot(c.now())
	}

	c.fetches.Add(1)
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	rates, err := c.fetcher.Fetch(ctx)
	if err != nil {
		slog.Warn("exchange rate fetch failed, using fallback rates", "source", c.fetcher.Name(), "error", err)
		return FallbackSnapshot(c.now())
	}

	slog.Info("exchange rates refreshed", "source", c.fetcher.Name(), "currencies", len(rates))
	return NewSnapshot(rates, c.now(), c.fetcher.Name(), false)
}
