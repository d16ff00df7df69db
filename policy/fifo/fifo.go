// Package fifo implements insertion-order eviction: the entry written first
// (as a new key) is evicted first. Reads and overwrites never reorder entries.
package fifo

import "github.com/IvanBrykalov/hubcache/policy"

type fifo[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

type fifoPolicy[K comparable, V any] struct{}

// New returns a Policy factory that constructs per-shard FIFO instances.
func New[K comparable, V any]() policy.Policy[K, V] { return fifoPolicy[K, V]{} }

func (fifoPolicy[K, V]) New(h policy.Hooks[K, V]) policy.ShardPolicy[K, V] {
	return &fifo[K, V]{h: h}
}

func (fifoPolicy[K, V]) Name() string { return "fifo" }

// OnAdd links the new entry as the newest one; the shard evicts from the back.
func (p *fifo[K, V]) OnAdd(n policy.Node[K, V]) (evict policy.Node[K, V]) {
	p.h.PushFront(n)
	return nil
}

func (p *fifo[K, V]) OnGet(policy.Node[K, V])    {}
func (p *fifo[K, V]) OnUpdate(policy.Node[K, V]) {}
func (p *fifo[K, V]) OnRemove(policy.Node[K, V]) {}
