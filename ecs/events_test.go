package ecs

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	var b Bus
	var got []any

	unsub := b.Subscribe(func(evt any) { got = append(got, evt) })
	defer unsub()

	b.Publish(1)
	b.Publish(2)
	if len(got) != 0 {
		t.Fatal("publish must queue, not deliver")
	}

	b.DispatchQueued()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected FIFO delivery, got %v", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	var b Bus
	calls := 0
	unsub := b.Subscribe(func(evt any) { calls++ })

	b.Publish("a")
	b.DispatchQueued()
	unsub()
	b.Publish("b")
	b.DispatchQueued()

	if calls != 1 {
		t.Fatalf("expected 1 delivery after unsubscribe, got %d", calls)
	}
}

func TestBusPublishDuringDispatch(t *testing.T) {
	var b Bus
	var got []any

	unsub := b.Subscribe(func(evt any) {
		got = append(got, evt)
		if evt == "first" {
			b.Publish("second")
		}
	})
	defer unsub()

	b.Publish("first")
	b.DispatchQueued()

	// Events published from a handler flush in the same call.
	if len(got) != 2 || got[1] != "second" {
		t.Fatalf("expected chained event in same flush, got %v", got)
	}
}

func TestBusReset(t *testing.T) {
	var b Bus
	calls := 0
	b.Subscribe(func(evt any) { calls++ })
	b.Publish("pending")
	b.Reset()
	b.DispatchQueued()
	if calls != 0 {
		t.Fatalf("expected nothing after reset, got %d calls", calls)
	}
}
