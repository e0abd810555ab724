package ecs

import (
	"testing"

	"github.com/milk9111/starblitz/ecs/component"
)

func newTestPool(t *testing.T, w *World, capacity int) *Pool {
	t.Helper()
	h := component.NewComponent[int]()
	p, err := NewPool(w, capacity, func(w *World, slot int) (Entity, error) {
		e := CreateEntity(w)
		return e, Add(w, e, h.Kind(), intPtr(slot))
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return p
}

func TestPoolCapacityBound(t *testing.T) {
	w := NewWorld()
	p := newTestPool(t, w, 3)

	if p.Capacity() != 3 || p.ActiveCount() != 0 {
		t.Fatalf("fresh pool: capacity %d active %d", p.Capacity(), p.ActiveCount())
	}

	var held []Entity
	for i := 0; i < 3; i++ {
		e, ok := p.Acquire()
		if !ok {
			t.Fatalf("acquire %d should succeed", i)
		}
		held = append(held, e)
	}

	// Exhaustion is reported, never grown past.
	if _, ok := p.Acquire(); ok {
		t.Fatal("acquire beyond capacity should fail")
	}
	if p.ActiveCount() != 3 {
		t.Fatalf("expected 3 active, got %d", p.ActiveCount())
	}

	if !p.Release(held[1]) {
		t.Fatal("release of active slot should succeed")
	}
	if p.Release(held[1]) {
		t.Fatal("double release should be a no-op")
	}
	if p.ActiveCount() != 2 {
		t.Fatalf("expected 2 active after release, got %d", p.ActiveCount())
	}

	// The freed slot cycles back.
	e, ok := p.Acquire()
	if !ok {
		t.Fatal("acquire after release should succeed")
	}
	if e != held[1] {
		t.Fatalf("expected recycled slot %v, got %v", held[1], e)
	}
}

func TestPoolMembership(t *testing.T) {
	w := NewWorld()
	p := newTestPool(t, w, 2)

	outsider := CreateEntity(w)
	if p.Contains(outsider) {
		t.Fatal("outsider should not be a member")
	}
	if p.Release(outsider) {
		t.Fatal("releasing an outsider should be a no-op")
	}

	e, _ := p.Acquire()
	if !p.Contains(e) {
		t.Fatal("acquired entity should be a member")
	}
}

func TestPoolRejectsBadArguments(t *testing.T) {
	w := NewWorld()
	if _, err := NewPool(w, 0, func(w *World, slot int) (Entity, error) { return CreateEntity(w), nil }); err == nil {
		t.Fatal("zero capacity should error")
	}
	if _, err := NewPool(w, 1, nil); err == nil {
		t.Fatal("nil builder should error")
	}
	if _, err := NewPool(nil, 1, func(w *World, slot int) (Entity, error) { return 0, nil }); err == nil {
		t.Fatal("nil world should error")
	}
}
