package ecs

import (
	"testing"

	"github.com/milk9111/starblitz/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	if err := Add(w, e1, h.Kind(), intPtr(7)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !DestroyEntity(w, e1) {
		t.Fatal("failed to destroy entity")
	}

	// The freed slot comes back with a bumped generation, so the old
	// handle must stay dead.
	e2 := CreateEntity(w)
	if e2.id() != e1.id() {
		t.Fatalf("expected slot reuse, got id %d vs %d", e2.id(), e1.id())
	}
	if e2 == e1 {
		t.Fatal("reused entity should not equal the destroyed handle")
	}
	if IsAlive(w, e1) {
		t.Fatal("stale handle should not be alive")
	}
	if _, ok := Get[int](w, e1, h.Kind()); ok {
		t.Fatal("stale handle should not resolve components")
	}
	if Has[int](w, e2, h.Kind()) {
		t.Fatal("reused slot should start without components")
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	if err := Add(w, e, h.Kind(), intPtr(10)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	v, ok := Get[int](w, e, h.Kind())
	if !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}

	// Add replaces in place.
	if err := Add(w, e, h.Kind(), intPtr(11)); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	v, _ = Get[int](w, e, h.Kind())
	if *v != 11 {
		t.Fatalf("expected replacement value 11, got %d", *v)
	}

	if !Remove[int](w, e, h.Kind()) {
		t.Fatal("remove should report true")
	}
	if Has[int](w, e, h.Kind()) {
		t.Fatal("component should be gone after remove")
	}
	if Remove[int](w, e, h.Kind()) {
		t.Fatal("second remove should report false")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	if err := Add(w, e, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, h.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	if _, ok := First(w, h.Kind()); ok {
		t.Fatal("expected no entity before any add")
	}

	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	got, ok := First(w, h.Kind())
	if !ok || got != e {
		t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
	}

	DestroyEntity(w, e)
	if _, ok := First(w, h.Kind()); ok {
		t.Fatal("expected no entity after destroy")
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ka, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, intPtr(3)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, intPtr(4)); err != nil {
		t.Fatal(err)
	}

	var both []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { both = append(both, e) })
	if len(both) != 1 || both[0] != e2 {
		t.Fatalf("expected only e2 in intersection, got %v", both)
	}

	var all []Entity
	ForEach(w, ka, func(e Entity, _ *int) { all = append(all, e) })
	if len(all) != 2 {
		t.Fatalf("expected 2 entities with ka, got %d", len(all))
	}
}

func TestForEachSafeDuringDestroy(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited == 0 {
		t.Fatal("expected visits despite destroys")
	}
	if remaining := len(Entities(w)); remaining != 0 {
		t.Fatalf("expected all destroyed, %d remain", remaining)
	}
}

type countingSystem struct {
	calls int
}

func (s *countingSystem) Update(w *World) { s.calls++ }

func TestWorldUpdateRunsSystemsThenDispatches(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	w.AddSystem(sys)

	var got []any
	unsub := w.Bus().Subscribe(func(evt any) { got = append(got, evt) })
	defer unsub()

	w.Bus().Publish("queued")
	w.Update()

	if sys.calls != 1 {
		t.Fatalf("expected 1 system call, got %d", sys.calls)
	}
	if len(got) != 1 || got[0] != "queued" {
		t.Fatalf("expected queued event dispatched after update, got %v", got)
	}
}
