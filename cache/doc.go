// Package cache provides a bounded, generic in-memory key/value cache with
// per-entry TTL, meant as the memoization layer in front of slow remote
// lookups (client records, card galleries, directory listings).
//
// Design
//
//   - Bound: at most MaxSize entries (default 100). Writing a new key into a
//     full cache evicts exactly one entry first: the one at the back of the
//     eviction policy's order. With the default FIFO policy that is the
//     oldest inserted key. Overwrites count as writes; below capacity an
//     overwritten key keeps its place.
//
//   - TTL: every entry carries a deadline (insertion time + TTL). Expiry is
//     lazy: Get and Has drop a stale entry and report a miss. Len therefore
//     may count stale entries. Options.SweepInterval adds a background sweep;
//     RemoveExpired runs one on demand.
//
//   - Policies: policy/fifo (default), policy/lru and policy/twoq plug in
//     through the policy package hooks.
//
//   - Shards: one shard by default, which keeps a single global eviction
//     order. Options.Shards > 1 partitions keys by FNV-1a hash and splits
//     MaxSize evenly (rounded down) so the global bound still holds.
//
//   - Loading: GetOrLoad reads through Options.Loader and coalesces
//     concurrent loads of the same key.
//
//   - Observability: Options.Metrics (see metrics/prom for a Prometheus
//     adapter), Options.OnEvict and Stats.
//
// Ownership
//
// A cache is a plain value constructed by New and handed to whatever needs
// it; there is no package-level instance. Close ends its life.
//
// Basic usage
//
//	c := cache.New[string, Client](cache.Options[string, Client]{
//	    MaxSize:    500,
//	    DefaultTTL: 2 * time.Minute,
//	})
//	defer c.Close()
//	c.Set("client:42", client)
//	if v, ok := c.Get("client:42"); ok {
//	    _ = v
//	}
//
// Read-through
//
//	c := cache.New[string, []Card](cache.Options[string, []Card]{
//	    Loader: func(ctx context.Context, gallery string) ([]Card, error) {
//	        return api.ListCards(ctx, gallery)
//	    },
//	})
//	cards, err := c.GetOrLoad(ctx, "summer-sale")
//
// All methods are safe for concurrent use; operations are O(1) expected
// apart from Keys, Clear and RemoveExpired, which walk the entries.
package cache
