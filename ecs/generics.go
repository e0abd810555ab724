package ecs

import "github.com/milk9111/starblitz/ecs/component"

// Add attaches a component value to an entity, replacing any existing one.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(int(e.id()), value)
	return nil
}

// Get returns the component pointer for an entity, if present.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return nil, false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return nil, false
	}
	v := store.Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether an entity carries a component of this kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(int(e.id()))
}

// Remove detaches a component from an entity and reports whether it existed.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return false
	}
	return store.Remove(int(e.id()))
}

// First returns any live entity carrying the component, typically used for
// singletons like the player tag or the session game state.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil || !kind.Valid() {
		return 0, false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return 0, false
	}
	for _, id := range store.Entities() {
		if gen, ok := w.entities.currentGen(entityID(id)); ok {
			return makeEntity(entityID(id), gen), true
		}
	}
	return 0, false
}

// ForEach visits every live entity carrying the component. The entity list
// is snapshotted so callbacks may add or destroy entities safely.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil || !kind.Valid() {
		return
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return
	}
	ids := append([]int(nil), store.Entities()...)
	for _, id := range ids {
		gen, ok := w.entities.currentGen(entityID(id))
		if !ok {
			continue
		}
		v := store.Get(id)
		if v == nil {
			continue
		}
		if cast, ok := v.(*T); ok {
			fn(makeEntity(entityID(id), gen), cast)
		}
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(e Entity, a *A, b *B, c *C)) {
	if fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// ForEach4 visits entities carrying all four components.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(e Entity, a *A, b *B, c *C, d *D)) {
	if fn == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}
