package ecs

import "fmt"

// Pool is a fixed-capacity arena of reusable entities for short-lived
// objects (bullets, mines, power-ups, coins). Slots are created once at
// session start; Acquire hands out a free slot or reports exhaustion, and
// Release returns a slot for reuse. The pool never grows, so steady-state
// play allocates nothing.
type Pool struct {
	slots  []Entity
	active []bool
	free   []int
	index  map[Entity]int
}

// NewPool builds capacity entities up front using build, which receives the
// slot index and must create the entity in its inactive state.
func NewPool(w *World, capacity int, build func(w *World, slot int) (Entity, error)) (*Pool, error) {
	if w == nil || build == nil {
		return nil, fmt.Errorf("pool: nil world or builder")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("pool: capacity must be positive, got %d", capacity)
	}
	p := &Pool{
		slots:  make([]Entity, 0, capacity),
		active: make([]bool, capacity),
		free:   make([]int, 0, capacity),
		index:  make(map[Entity]int, capacity),
	}
	for i := 0; i < capacity; i++ {
		e, err := build(w, i)
		if err != nil {
			return nil, fmt.Errorf("pool: build slot %d: %w", i, err)
		}
		p.slots = append(p.slots, e)
		p.index[e] = i
		p.free = append(p.free, i)
	}
	return p, nil
}

// Acquire returns a free slot's entity, or false when the pool is
// exhausted. Exhaustion is an expected steady-state condition; callers
// skip the spawn rather than treating it as an error.
func (p *Pool) Acquire() (Entity, bool) {
	if p == nil || len(p.free) == 0 {
		return 0, false
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.active[slot] = true
	return p.slots[slot], true
}

// Release returns an entity's slot to the free list. Releasing an entity
// that is not an active member of this pool is a no-op.
func (p *Pool) Release(e Entity) bool {
	if p == nil {
		return false
	}
	slot, ok := p.index[e]
	if !ok || !p.active[slot] {
		return false
	}
	p.active[slot] = false
	p.free = append(p.free, slot)
	return true
}

// ActiveCount returns the number of slots currently handed out.
func (p *Pool) ActiveCount() int {
	if p == nil {
		return 0
	}
	return len(p.slots) - len(p.free)
}

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Contains reports whether the entity belongs to this pool.
func (p *Pool) Contains(e Entity) bool {
	if p == nil {
		return false
	}
	_, ok := p.index[e]
	return ok
}
