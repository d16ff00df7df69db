// Package lru implements recency-ordered eviction: reads and overwrites move
// an entry to the newest position, so the least recently used one is evicted.
package lru

import "github.com/IvanBrykalov/hubcache/policy"

type lru[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

type lruPolicy[K comparable, V any] struct{}

// New returns a Policy factory that constructs per-shard LRU instances.
func New[K comparable, V any]() policy.Policy[K, V] { return lruPolicy[K, V]{} }

func (lruPolicy[K, V]) New(h policy.Hooks[K, V]) policy.ShardPolicy[K, V] {
	return &lru[K, V]{h: h}
}

func (lruPolicy[K, V]) Name() string { return "lru" }

// OnAdd links the entry as most recent. Capacity eviction is the shard's job.
func (p *lru[K, V]) OnAdd(n policy.Node[K, V]) (evict policy.Node[K, V]) {
	p.h.PushFront(n)
	return nil
}

func (p *lru[K, V]) OnGet(n policy.Node[K, V]) { p.h.MoveToFront(n) }

// OnUpdate counts an overwrite as a use.
func (p *lru[K, V]) OnUpdate(n policy.Node[K, V]) { p.h.MoveToFront(n) }

func (p *lru[K, V]) OnRemove(policy.Node[K, V]) {}
