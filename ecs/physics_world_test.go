package ecs

import "testing"

func TestCollectContactsReportsOverlaps(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	player := CreateEntity(w)
	enemy := CreateEntity(w)
	far := CreateEntity(w)

	pw.AddBox(player, BodyPlayer, 100, 100, 20, 20)
	pw.AddBox(enemy, BodyEnemy, 105, 102, 20, 20)
	pw.AddBox(far, BodyEnemy, 400, 400, 20, 20)

	contacts := pw.CollectContacts()
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.A != player || c.B != enemy || c.KindA != BodyPlayer || c.KindB != BodyEnemy {
		t.Fatalf("unexpected contact %+v", c)
	}
}

func TestCollectContactsIgnoresUnhandledPairs(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	// Two enemies overlapping: no handled pair starts from an enemy body.
	a := CreateEntity(w)
	b := CreateEntity(w)
	pw.AddBox(a, BodyEnemy, 50, 50, 20, 20)
	pw.AddBox(b, BodyEnemy, 52, 52, 20, 20)

	if contacts := pw.CollectContacts(); len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %v", contacts)
	}
}

func TestDeactivateSuppressesContacts(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	bullet := CreateEntity(w)
	enemy := CreateEntity(w)
	pw.AddCircle(bullet, BodyPlayerBullet, 10, 10, 4)
	pw.AddBox(enemy, BodyEnemy, 12, 10, 16, 16)

	if len(pw.CollectContacts()) != 1 {
		t.Fatal("expected contact before deactivate")
	}

	pw.Deactivate(bullet)
	if len(pw.CollectContacts()) != 0 {
		t.Fatal("expected no contact while deactivated")
	}

	pw.Activate(bullet, 12, 10)
	if len(pw.CollectContacts()) != 1 {
		t.Fatal("expected contact after reactivation")
	}
}

func TestSetPositionMovesBody(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	e := CreateEntity(w)
	pw.AddBox(e, BodyEnemy, 0, 0, 10, 10)
	pw.SetPosition(e, 33, 44)

	x, y, ok := pw.Position(e)
	if !ok || x != 33 || y != 44 {
		t.Fatalf("expected (33, 44), got (%v, %v) ok=%v", x, y, ok)
	}
}

func TestContactsTrackMovedBodies(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	player := CreateEntity(w)
	enemy := CreateEntity(w)
	pw.AddBox(player, BodyPlayer, 100, 100, 20, 20)
	pw.AddBox(enemy, BodyEnemy, 400, 400, 20, 20)

	if contacts := pw.CollectContacts(); len(contacts) != 0 {
		t.Fatalf("expected no contact while apart, got %v", contacts)
	}

	// The query pass must see positions set after registration.
	pw.SetPosition(enemy, 104, 98)
	if contacts := pw.CollectContacts(); len(contacts) != 1 {
		t.Fatalf("expected a contact after moving together, got %v", contacts)
	}

	pw.SetPosition(enemy, 400, 400)
	if contacts := pw.CollectContacts(); len(contacts) != 0 {
		t.Fatalf("expected no contact after moving apart, got %v", contacts)
	}
}
