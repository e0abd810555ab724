package ecs

// Bus is the session-scoped event channel between the simulation core and
// its consumers (game state ledger, HUD). Systems publish typed payload
// structs during their update; the world dispatches the queue to every
// subscriber after all systems have run, so handlers observe a consistent
// post-tick state. Subscriptions are explicitly scoped: Subscribe returns
// an unsubscribe func the session must call on teardown.
type Bus struct {
	nextID int
	subs   map[int]func(evt any)
	order  []int
	queue  []any
}

// Subscribe registers a handler for all dispatched events and returns its
// unsubscribe func.
func (b *Bus) Subscribe(fn func(evt any)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	if b.subs == nil {
		b.subs = make(map[int]func(evt any))
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.order = append(b.order, id)
	return func() {
		delete(b.subs, id)
	}
}

// Publish queues an event for dispatch at the end of the current tick.
func (b *Bus) Publish(evt any) {
	if b == nil || evt == nil {
		return
	}
	b.queue = append(b.queue, evt)
}

// DispatchQueued delivers queued events to subscribers in subscription
// order. Events published from inside a handler are delivered in the same
// flush.
func (b *Bus) DispatchQueued() {
	if b == nil {
		return
	}
	for len(b.queue) > 0 {
		evt := b.queue[0]
		b.queue = b.queue[1:]
		for _, id := range b.order {
			if fn, ok := b.subs[id]; ok {
				fn(evt)
			}
		}
	}
}

// Reset drops all subscribers and pending events.
func (b *Bus) Reset() {
	if b == nil {
		return
	}
	b.subs = nil
	b.order = nil
	b.queue = nil
	b.nextID = 0
}
