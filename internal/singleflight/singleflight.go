// Package singleflight coalesces concurrent loads of the same cache key.
package singleflight

import (
	"context"
	"fmt"
	"sync"
)

// Group runs at most one fn per key at a time; callers arriving while a call
// is in flight wait for its result.
//
// Cancelling a caller's ctx releases only that caller, the leader included.
// fn runs on its own goroutine and still publishes its result to the
// remaining waiters; it should not depend on any single caller's ctx.
type Group[K comparable, V any] struct {
	mu    sync.Mutex
	calls map[K]*call[V]
}

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do executes fn for key unless a call for key is already in flight.
// shared reports whether the result was produced by another caller's fn.
// A panic in fn is converted into an error for every caller.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, shared bool, err error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[K]*call[V])
	}
	c, ok := g.calls[key]
	if !ok {
		c = &call[V]{done: make(chan struct{})}
		g.calls[key] = c
	}
	g.mu.Unlock()

	if !ok {
		go g.run(key, c, fn)
	}

	select {
	case <-c.done:
		return c.val, ok, c.err
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	}
}

// Inflight reports the number of keys currently being loaded.
func (g *Group[K, V]) Inflight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *Group[K, V]) run(key K, c *call[V], fn func() (V, error)) {
	defer func() {
		if r := recover(); r != nil {
			var zero V
			c.val, c.err = zero, fmt.Errorf("singleflight: load panicked: %v", r)
		}
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()

		// Results are written before close; readers after <-done see them.
		close(c.done)
	}()
	c.val, c.err = fn()
}
