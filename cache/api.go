package cache

import (
	"context"
	"time"
)

// Cache is a bounded in-memory key/value cache with per-entry TTL.
// All methods are safe for concurrent use by multiple goroutines.
//
// Only GetOrLoad returns errors; every other miss is reported as a false flag.
type Cache[K comparable, V any] interface {
	// Get returns the value for k. A stale entry is removed and reported as a miss.
	Get(k K) (V, bool)

	// Has reports whether k holds a fresh entry, with the same expiry rule as
	// Get. It does not count as a use for the eviction policy or the metrics.
	Has(k K) bool

	// Set inserts or overwrites k with Options.DefaultTTL. Writing to a full
	// cache first evicts the entry at the back of the policy order (the oldest
	// one for FIFO), overwrites included. Overwriting restarts the entry's TTL
	// window; below capacity it keeps the entry's position.
	Set(k K, v V)

	// SetWithTTL is Set with a per-entry TTL. NoExpiration stores without a
	// deadline; any other ttl is measured from now, so 0 is fresh only at the
	// insertion instant and a negative ttl stores an already stale entry.
	SetWithTTL(k K, v V, ttl time.Duration)

	// Add inserts k only if it holds no fresh entry and reports whether it did.
	Add(k K, v V) bool

	// Remove deletes k and reports whether it was resident.
	Remove(k K) bool

	// Clear drops every entry. OnEvict is not called.
	Clear()

	// Len returns the number of resident entries. Stale entries that were not
	// read or swept yet are included.
	Len() int

	// Keys returns resident keys, oldest position first. With several shards
	// the order holds within each shard.
	Keys() []K

	// RemoveExpired drops every stale entry now and returns how many it dropped.
	RemoveExpired() int

	// Stats returns a snapshot of hit/miss/eviction counters.
	Stats() Stats

	// GetOrLoad returns the cached value for k or loads it with
	// Options.Loader and stores it. Concurrent loads of one key are coalesced.
	// It returns ErrNoLoader without a Loader and ErrClosed after Close.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Close stops the sweeper and drops every entry without calling OnEvict.
	// Later calls behave as on an empty cache, writes are dropped and Stats
	// keeps the hit/miss/eviction totals. Close is idempotent and always
	// returns nil.
	Close() error
}
