package fifo

import (
	"testing"

	"github.com/IvanBrykalov/hubcache/policy/policytest"
)

func TestFIFO_OnAddPushesWithoutEviction(t *testing.T) {
	t.Parallel()

	h := &policytest.Hooks[string, int]{}
	p := New[string, int]().New(h)

	n := policytest.NewNode("a", 1)
	if ev := p.OnAdd(n); ev != nil {
		t.Fatalf("OnAdd must not propose an eviction, got %v", ev)
	}
	if len(h.Pushes) != 1 || h.Pushes[0] != n {
		t.Fatalf("OnAdd must PushFront the node exactly once, got %d pushes", len(h.Pushes))
	}
}

// Reads, overwrites and removals must leave insertion order untouched.
func TestFIFO_AccessDoesNotReorder(t *testing.T) {
	t.Parallel()

	h := &policytest.Hooks[string, int]{}
	p := New[string, int]().New(h)

	n := policytest.NewNode("a", 1)
	p.OnGet(n)
	p.OnUpdate(n)
	p.OnRemove(n)

	if h.Calls() != 0 {
		t.Fatalf("FIFO must not touch the list outside OnAdd, got %d calls", h.Calls())
	}
}

func TestFIFO_Name(t *testing.T) {
	if got := New[string, int]().Name(); got != "fifo" {
		t.Fatalf("Name() = %q", got)
	}
}
