// Package twoq implements the 2Q admission policy.
//
// First-time keys land in a probation queue (A1in). A read promotes an entry to
// the main queue (Am). Keys evicted from probation are remembered as ghosts
// (A1out, keys only); a ghost key written again skips probation.
// Scans of one-off keys therefore churn A1in without flushing Am.
package twoq

import (
	"container/list"

	"github.com/IvanBrykalov/hubcache/policy"
)

// twoQ is the shard-local state. Am ordering is the shard list itself;
// only A1in membership and ghosts are tracked here.
type twoQ[K comparable, V any] struct {
	h policy.Hooks[K, V]

	probationCap int
	ghostCap     int

	// A1in, newest at Front.
	probation *list.List
	inProb    map[policy.Node[K, V]]*list.Element

	// A1out, newest at Front. Element values are keys.
	ghosts  *list.List
	ghostOf map[K]*list.Element
}

type twoQPolicy[K comparable, V any] struct {
	probationCap int
	ghostCap     int
}

// New constructs a 2Q policy factory. Sizes are per shard: a probation queue of
// about 25% of shard capacity and 50-100% for ghosts are common choices.
// Sizes below one are raised to one.
func New[K comparable, V any](probationCap, ghostCap int) policy.Policy[K, V] {
	return twoQPolicy[K, V]{probationCap: max(probationCap, 1), ghostCap: max(ghostCap, 1)}
}

func (p twoQPolicy[K, V]) New(h policy.Hooks[K, V]) policy.ShardPolicy[K, V] {
	return &twoQ[K, V]{
		h:            h,
		probationCap: p.probationCap,
		ghostCap:     p.ghostCap,
		probation:    list.New(),
		inProb:       make(map[policy.Node[K, V]]*list.Element),
		ghosts:       list.New(),
		ghostOf:      make(map[K]*list.Element),
	}
}

func (twoQPolicy[K, V]) Name() string { return "2q" }

// OnAdd admits ghosts straight into Am; everything else goes to probation.
// When probation overflows its oldest member is returned for eviction.
func (q *twoQ[K, V]) OnAdd(n policy.Node[K, V]) (evict policy.Node[K, V]) {
	k := n.Key()
	if ge, ok := q.ghostOf[k]; ok {
		q.ghosts.Remove(ge)
		delete(q.ghostOf, k)
		q.h.PushFront(n)
		return nil
	}

	q.h.PushFront(n)
	q.inProb[n] = q.probation.PushFront(n)

	if q.probation.Len() > q.probationCap {
		if oldest := q.probation.Back(); oldest != nil {
			return oldest.Value.(policy.Node[K, V])
		}
	}
	return nil
}

// OnGet promotes a probation entry to Am and marks it most recent.
func (q *twoQ[K, V]) OnGet(n policy.Node[K, V]) {
	if el, ok := q.inProb[n]; ok {
		q.probation.Remove(el)
		delete(q.inProb, n)
	}
	q.h.MoveToFront(n)
}

func (q *twoQ[K, V]) OnUpdate(n policy.Node[K, V]) { q.OnGet(n) }

// OnRemove turns departing probation entries into ghosts. Am removals leave no trace.
func (q *twoQ[K, V]) OnRemove(n policy.Node[K, V]) {
	el, ok := q.inProb[n]
	if !ok {
		return
	}
	q.probation.Remove(el)
	delete(q.inProb, n)

	k := n.Key()
	if old := q.ghostOf[k]; old != nil {
		q.ghosts.Remove(old)
	}
	q.ghostOf[k] = q.ghosts.PushFront(k)

	for q.ghosts.Len() > q.ghostCap {
		tail := q.ghosts.Back()
		delete(q.ghostOf, tail.Value.(K))
		q.ghosts.Remove(tail)
	}
}
