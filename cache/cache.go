package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/hubcache/internal/singleflight"
	"github.com/IvanBrykalov/hubcache/internal/util"
	"github.com/IvanBrykalov/hubcache/policy/fifo"
)

var (
	// ErrNoLoader is returned by GetOrLoad when Options.Loader is nil.
	ErrNoLoader = errors.New("cache: no Loader provided")
	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)

type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	opt    Options[K, V]
	now    func() int64

	size   atomic.Int64
	closed atomic.Bool

	sf singleflight.Group[K, V]

	stop chan struct{}
	wg   sync.WaitGroup
}

// New constructs a cache; see Options for the defaults it applies.
// The caller owns the returned cache and should Close it when SweepInterval is set.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.MaxSize <= 0 {
		opt.MaxSize = DefaultMaxSize
	}
	switch {
	case opt.DefaultTTL == 0:
		opt.DefaultTTL = DefaultEntryTTL
	case opt.DefaultTTL < 0:
		opt.DefaultTTL = NoExpiration
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = fifo.New[K, V]()
	}

	c := &cache[K, V]{
		hash: util.HashKey[K],
		opt:  opt,
		now:  func() int64 { return time.Now().UnixNano() },
	}
	if opt.Clock != nil {
		c.now = opt.Clock.NowUnixNano
	}

	// Floor division keeps the global bound: shards*perShard <= MaxSize.
	n := util.ShardCount(opt.Shards, opt.MaxSize)
	perShard := opt.MaxSize / n
	c.shards = make([]*shard[K, V], n)
	for i := range c.shards {
		c.shards[i] = newShard(perShard, c)
	}

	if opt.SweepInterval > 0 {
		c.startSweeper(opt.SweepInterval)
	}
	return c
}

func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.shardFor(k).Get(k)
}

func (c *cache[K, V]) Has(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.shardFor(k).Has(k)
}

func (c *cache[K, V]) Set(k K, v V) {
	c.SetWithTTL(k, v, c.opt.DefaultTTL)
}

func (c *cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	if c.closed.Load() {
		return
	}
	c.shardFor(k).Set(k, v, c.deadline(ttl))
}

func (c *cache[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	return c.shardFor(k).Add(k, v, c.deadline(c.opt.DefaultTTL))
}

func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.shardFor(k).Remove(k)
}

func (c *cache[K, V]) Clear() {
	if c.closed.Load() {
		return
	}
	for _, s := range c.shards {
		s.Clear()
	}
}

func (c *cache[K, V]) Len() int { return int(c.size.Load()) }

func (c *cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.Len())
	for _, s := range c.shards {
		keys = s.appendKeys(keys)
	}
	return keys
}

func (c *cache[K, V]) RemoveExpired() int {
	removed := 0
	for _, s := range c.shards {
		removed += s.removeExpired()
	}
	return removed
}

func (c *cache[K, V]) Stats() Stats {
	st := Stats{Entries: c.Len()}
	for _, s := range c.shards {
		st.Hits += s.hits.Load()
		st.Misses += s.misses.Load()
		st.Evictions += s.evicts.Load()
	}
	return st
}

func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	var zero V
	if c.closed.Load() {
		return zero, ErrClosed
	}
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}

	// The load is shared by every waiter, so no single caller may cancel it.
	loadCtx := context.WithoutCancel(ctx)
	v, _, err := c.sf.Do(ctx, k, func() (V, error) {
		// Another flight may have stored k between our miss and joining.
		if v, ok := c.shardFor(k).peek(k); ok {
			return v, nil
		}
		start := time.Now()
		v, err := c.opt.Loader(loadCtx, k)
		c.opt.Metrics.Load(time.Since(start), err)
		if err != nil {
			return v, err
		}
		c.Set(k, v)
		return v, nil
	})
	return v, err
}

func (c *cache[K, V]) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.stop != nil {
		close(c.stop)
		c.wg.Wait()
	}
	for _, s := range c.shards {
		s.Clear()
	}
	return nil
}

// ---- helpers ----

func (c *cache[K, V]) shardFor(k K) *shard[K, V] {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}

// deadline converts a relative TTL into an absolute UnixNano deadline.
// Only NoExpiration yields noDeadline; a zero TTL is fresh at the insertion
// instant only and a negative one is stale on arrival.
func (c *cache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl == NoExpiration {
		return noDeadline
	}
	now := c.now()
	if ttl > 0 && int64(ttl) > noDeadline-now {
		return noDeadline
	}
	return now + int64(ttl)
}
