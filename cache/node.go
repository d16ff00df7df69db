package cache

import "math"

// noDeadline marks an entry that never expires.
const noDeadline = math.MaxInt64

// node is one resident entry, linked into its shard's ordered list.
// head is the newest position, tail the next capacity-eviction victim.
type node[K comparable, V any] struct {
	key K
	val V

	prev *node[K, V] // towards head
	next *node[K, V] // towards tail

	// exp is the absolute deadline in UnixNano (insertion time + TTL);
	// noDeadline = never.
	exp int64
}

func (n *node[K, V]) Key() K    { return n.key }
func (n *node[K, V]) Value() *V { return &n.val }

// expired reports whether the entry is stale at now. An entry is still fresh
// exactly at its deadline.
func (n *node[K, V]) expired(now int64) bool {
	return now > n.exp
}
