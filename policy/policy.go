// Package policy defines the contract between a cache shard and its eviction
// policy. Built-in policies live in policy/fifo, policy/lru and policy/twoq.
package policy

// Node is the view of a cache entry handed to a policy.
// Value returns a pointer so a policy could tag entries in place; the shard
// lock must be held for any access through it.
type Node[K comparable, V any] interface {
	Key() K
	Value() *V
}

// Hooks expose the shard's ordered entry list. Front is the newest position,
// Back is the next capacity-eviction victim.
//
// All hook calls happen under the shard lock. Hooks only touch the list;
// the shard owns the key->node map.
type Hooks[K comparable, V any] interface {
	// MoveToFront moves a resident node to the newest position.
	MoveToFront(Node[K, V])
	// PushFront links a freshly admitted node at the newest position.
	PushFront(Node[K, V])
	// Remove unlinks the node from the list.
	Remove(Node[K, V])
	// Back returns the eviction victim (nil if the shard is empty).
	Back() Node[K, V]
	// Len returns the number of resident nodes in the shard.
	Len() int
}

// ShardPolicy is a per-shard policy instance bound to shard hooks.
// All methods are invoked under the shard lock.
//
//   - OnAdd links the node and may return an extra eviction candidate
//     (e.g. the tail of a probation queue). The shard evicts it and then
//     calls OnRemove for it.
//   - OnGet runs on a successful read; OnUpdate on an overwrite of a resident key.
//   - OnRemove is a notification; the shard performs the actual unlinking.
type ShardPolicy[K comparable, V any] interface {
	OnAdd(Node[K, V]) (evict Node[K, V])
	OnGet(Node[K, V])
	OnUpdate(Node[K, V])
	OnRemove(Node[K, V])
}

// Policy is a factory that creates shard-local policy instances.
type Policy[K comparable, V any] interface {
	New(Hooks[K, V]) ShardPolicy[K, V]
	// Name is a short stable identifier ("fifo", "lru", "2q").
	Name() string
}
