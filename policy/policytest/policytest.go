// Package policytest provides test doubles for exercising policies without a shard.
package policytest

import "github.com/IvanBrykalov/hubcache/policy"

// Node is a minimal policy.Node.
type Node[K comparable, V any] struct {
	key K
	val V
}

func (n *Node[K, V]) Key() K    { return n.key }
func (n *Node[K, V]) Value() *V { return &n.val }

// NewNode returns a node holding k/v.
func NewNode[K comparable, V any](k K, v V) *Node[K, V] { return &Node[K, V]{key: k, val: v} }

// Hooks records every hook call. Back returns BackVal and Len returns LenVal.
type Hooks[K comparable, V any] struct {
	Pushes  []policy.Node[K, V]
	Moves   []policy.Node[K, V]
	Removes []policy.Node[K, V]

	BackVal policy.Node[K, V]
	LenVal  int
}

func (h *Hooks[K, V]) MoveToFront(n policy.Node[K, V]) { h.Moves = append(h.Moves, n) }
func (h *Hooks[K, V]) PushFront(n policy.Node[K, V])   { h.Pushes = append(h.Pushes, n) }
func (h *Hooks[K, V]) Remove(n policy.Node[K, V])      { h.Removes = append(h.Removes, n) }
func (h *Hooks[K, V]) Back() policy.Node[K, V]         { return h.BackVal }
func (h *Hooks[K, V]) Len() int                        { return h.LenVal }

// Calls returns the total number of list-mutating hook calls.
func (h *Hooks[K, V]) Calls() int { return len(h.Pushes) + len(h.Moves) + len(h.Removes) }

var _ policy.Hooks[string, int] = (*Hooks[string, int])(nil)
