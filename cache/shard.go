package cache

import (
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/hubcache/internal/util"
	"github.com/IvanBrykalov/hubcache/policy"
)

// shard is an independently locked partition: a key->node map plus the
// ordered list the policy manipulates through shardHooks.
type shard[K comparable, V any] struct {
	mu   sync.RWMutex
	m    map[K]*node[K, V]
	head *node[K, V] // newest
	tail *node[K, V] // next capacity victim
	len  int
	cap  int

	factory policy.Policy[K, V]
	pol     policy.ShardPolicy[K, V]

	now     func() int64
	total   *atomic.Int64 // resident entries across all shards
	metrics Metrics
	onEvict func(k K, v V, reason EvictReason)

	_      util.CacheLinePad
	hits   util.PaddedCounter
	misses util.PaddedCounter
	evicts util.PaddedCounter
}

func newShard[K comparable, V any](capacity int, c *cache[K, V]) *shard[K, V] {
	s := &shard[K, V]{
		m:       make(map[K]*node[K, V], capacity),
		cap:     capacity,
		factory: c.opt.Policy,
		now:     c.now,
		total:   &c.size,
		metrics: c.opt.Metrics,
		onEvict: c.opt.OnEvict,
	}
	s.pol = s.factory.New(shardHooks[K, V]{s: s})
	return s
}

func (s *shard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if ok && n.expired(s.now()) {
		s.evictLocked(n, EvictTTL)
		s.reportSizeLocked()
		ok = false
	}
	if !ok {
		s.misses.Add(1)
		s.metrics.Miss()
		var zero V
		return zero, false
	}

	s.pol.OnGet(n)
	s.hits.Add(1)
	s.metrics.Hit()
	return n.val, true
}

func (s *shard[K, V]) Has(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if !ok {
		return false
	}
	if n.expired(s.now()) {
		s.evictLocked(n, EvictTTL)
		s.reportSizeLocked()
		return false
	}
	return true
}

// peek returns a fresh value without touching policy order or counters.
func (s *shard[K, V]) peek(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, ok := s.m[k]; ok && !n.expired(s.now()) {
		return n.val, true
	}
	var zero V
	return zero, false
}

// Set inserts or overwrites k. exp is an absolute UnixNano deadline.
// A full shard sheds its back entry before every write, overwrites included;
// when that entry is k itself, k is admitted again as a new key.
func (s *shard[K, V]) Set(k K, v V, exp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if ok && s.len >= s.cap {
		victim := s.tail
		s.evictLocked(victim, EvictCapacity)
		ok = victim != n
	}
	if ok {
		n.val = v
		n.exp = exp
		s.pol.OnUpdate(n)
		s.reportSizeLocked()
		return
	}
	s.admitLocked(k, v, exp)
	s.reportSizeLocked()
}

// Add inserts k unless a fresh entry is resident. A stale one is replaced.
func (s *shard[K, V]) Add(k K, v V, exp int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.m[k]; ok {
		if !n.expired(s.now()) {
			return false
		}
		s.evictLocked(n, EvictTTL)
	}
	s.admitLocked(k, v, exp)
	s.reportSizeLocked()
	return true
}

func (s *shard[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if !ok {
		return false
	}
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, k)
	s.reportSizeLocked()
	return true
}

// Clear drops all entries and starts a fresh policy instance, so policy
// state such as 2Q ghosts does not outlive the entries.
func (s *shard[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.Add(int64(-s.len))
	clear(s.m)
	s.head, s.tail, s.len = nil, nil, 0
	s.pol = s.factory.New(shardHooks[K, V]{s: s})
	s.reportSizeLocked()
}

func (s *shard[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.len
}

// appendKeys appends resident keys from tail (oldest) to head.
func (s *shard[K, V]) appendKeys(dst []K) []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for n := s.tail; n != nil; n = n.prev {
		dst = append(dst, n.key)
	}
	return dst
}

// removeExpired evicts every stale entry and returns the count.
func (s *shard[K, V]) removeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for n := s.tail; n != nil; {
		prev := n.prev
		if n.expired(now) {
			s.evictLocked(n, EvictTTL)
			removed++
		}
		n = prev
	}
	if removed > 0 {
		s.reportSizeLocked()
	}
	return removed
}

// -------------------- internals (mu held) --------------------

// admitLocked makes room for one more entry, then hands the new node to the policy.
func (s *shard[K, V]) admitLocked(k K, v V, exp int64) {
	for s.len >= s.cap && s.tail != nil {
		s.evictLocked(s.tail, EvictCapacity)
	}

	n := &node[K, V]{key: k, val: v, exp: exp}
	s.m[k] = n
	if victim := s.pol.OnAdd(n); victim != nil {
		s.evictLocked(victim.(*node[K, V]), EvictPolicy)
	}
}

func (s *shard[K, V]) evictLocked(n *node[K, V], reason EvictReason) {
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, n.key)
	s.evicts.Add(1)
	s.metrics.Evict(reason)
	if s.onEvict != nil {
		s.onEvict(n.key, n.val, reason)
	}
}

func (s *shard[K, V]) reportSizeLocked() {
	s.metrics.Size(int(s.total.Load()))
}

func (s *shard[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.len++
	s.total.Add(1)
}

func (s *shard[K, V]) moveToFront(n *node[K, V]) {
	if n == s.head {
		return
	}
	s.detach(n)
	n.next = s.head
	s.head.prev = n
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

func (s *shard[K, V]) unlink(n *node[K, V]) {
	s.detach(n)
	n.prev, n.next = nil, nil
	s.len--
	s.total.Add(-1)
}

func (s *shard[K, V]) detach(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev = nil
}

// -------------------- policy hooks --------------------

type shardHooks[K comparable, V any] struct{ s *shard[K, V] }

func (h shardHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.s.moveToFront(x.(*node[K, V])) }
func (h shardHooks[K, V]) PushFront(x policy.Node[K, V])   { h.s.pushFront(x.(*node[K, V])) }
func (h shardHooks[K, V]) Remove(x policy.Node[K, V])      { h.s.unlink(x.(*node[K, V])) }
func (h shardHooks[K, V]) Len() int                        { return h.s.len }

func (h shardHooks[K, V]) Back() policy.Node[K, V] {
	if h.s.tail == nil {
		return nil // avoid a typed-nil interface
	}
	return h.s.tail
}
