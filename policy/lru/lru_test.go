package lru

import (
	"testing"

	"github.com/IvanBrykalov/hubcache/policy/policytest"
)

func TestLRU_OnAdd_PushFrontAndNoEvict(t *testing.T) {
	t.Parallel()

	h := &policytest.Hooks[string, int]{}
	p := New[string, int]().New(h)

	n := policytest.NewNode("k1", 1)
	if ev := p.OnAdd(n); ev != nil {
		t.Fatalf("OnAdd must not return an evict candidate, got %v", ev)
	}
	if len(h.Pushes) != 1 || h.Pushes[0] != n {
		t.Fatal("OnAdd must call PushFront exactly once with the node")
	}
	if len(h.Moves) != 0 || len(h.Removes) != 0 {
		t.Fatal("OnAdd must not call MoveToFront/Remove")
	}
}

func TestLRU_GetAndUpdatePromote(t *testing.T) {
	t.Parallel()

	h := &policytest.Hooks[string, int]{}
	p := New[string, int]().New(h)

	n := policytest.NewNode("k2", 2)
	p.OnGet(n)
	p.OnUpdate(n)

	if len(h.Moves) != 2 || h.Moves[0] != n || h.Moves[1] != n {
		t.Fatalf("OnGet and OnUpdate must each MoveToFront the node, got %d moves", len(h.Moves))
	}
	if len(h.Pushes) != 0 || len(h.Removes) != 0 {
		t.Fatal("promotion must not call PushFront/Remove")
	}
}

func TestLRU_OnRemove_NoOp(t *testing.T) {
	t.Parallel()

	h := &policytest.Hooks[string, int]{}
	p := New[string, int]().New(h)

	p.OnRemove(policytest.NewNode("k4", 4))

	if h.Calls() != 0 {
		t.Fatal("OnRemove for LRU must not call any hooks")
	}
}
