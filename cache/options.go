package cache

import (
	"context"
	"time"

	"github.com/IvanBrykalov/hubcache/policy"
)

const (
	// DefaultMaxSize is used when Options.MaxSize <= 0.
	DefaultMaxSize = 100
	// DefaultEntryTTL is used when Options.DefaultTTL == 0.
	DefaultEntryTTL = 5 * time.Minute
	// NoExpiration stores entries without a deadline, as Options.DefaultTTL
	// or as the SetWithTTL ttl. It is the only TTL with that meaning.
	NoExpiration time.Duration = -1
)

// EvictReason explains why an entry left the cache without an explicit Remove.
type EvictReason int

const (
	// EvictCapacity: the oldest entry made room for a new key.
	EvictCapacity EvictReason = iota
	// EvictTTL: the entry outlived its TTL and was dropped on access or by the sweeper.
	EvictTTL
	// EvictPolicy: the eviction policy rejected the entry (e.g. 2Q probation overflow).
	EvictPolicy
)

func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictTTL:
		return "ttl"
	case EvictPolicy:
		return "policy"
	default:
		return "unknown"
	}
}

// Metrics receives cache observability signals. Implementations must be safe
// for concurrent use. NoopMetrics is used when none is configured.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	// Size reports the resident entry count, stale entries included.
	Size(entries int)
	// Load reports one Loader call made by GetOrLoad.
	Load(d time.Duration, err error)
}

// Clock provides time in UnixNano; tests use it to step time deterministically.
type Clock interface{ NowUnixNano() int64 }

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) NowUnixNano() int64 { return f() }

// Options configures a cache. The zero value is usable; New applies:
//   - MaxSize <= 0    => DefaultMaxSize
//   - DefaultTTL == 0 => DefaultEntryTTL
//   - DefaultTTL < 0  => NoExpiration
//   - Shards 0 or 1   => a single shard with strict global insertion order
//   - nil Policy      => FIFO
//   - nil Metrics     => NoopMetrics
//   - nil Clock       => time.Now
type Options[K comparable, V any] struct {
	// MaxSize bounds the number of resident entries.
	MaxSize int

	// DefaultTTL applies to Set and Add.
	DefaultTTL time.Duration

	// Shards > 1 splits the cache into independently locked partitions,
	// rounded up to a power of two. Eviction order then holds per shard only.
	// A negative value picks a count from GOMAXPROCS.
	Shards int

	// Policy chooses the eviction order; nil means insertion order (FIFO).
	Policy policy.Policy[K, V]

	// SweepInterval > 0 starts a background goroutine that drops expired
	// entries at that interval. Expiry on read happens regardless.
	SweepInterval time.Duration

	// Loader fetches a value on a miss in GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for capacity, TTL and policy evictions, under the
	// shard lock. It must not call back into the cache.
	OnEvict func(k K, v V, reason EvictReason)

	Metrics Metrics
	Clock   Clock
}
