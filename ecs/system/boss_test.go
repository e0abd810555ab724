package system

import (
	"testing"

	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

func spawnTestBoss(t *testing.T, f *fixture, key string) ecs.Entity {
	t.Helper()
	e, err := entity.NewBoss(f.w, f.reg, key, 0)
	if err != nil {
		t.Fatalf("NewBoss(%s): %v", key, err)
	}
	return e
}

func bossParts(t *testing.T, f *fixture, e ecs.Entity) (*component.Boss, *component.BossRuntime, *component.Transform, *component.Health) {
	t.Helper()
	boss, ok := ecs.Get[component.Boss](f.w, e, component.BossComponent.Kind())
	if !ok {
		t.Fatal("no boss component")
	}
	rt, ok := ecs.Get[component.BossRuntime](f.w, e, component.BossRuntimeComponent.Kind())
	if !ok {
		t.Fatal("no boss runtime component")
	}
	tr, ok := ecs.Get[component.Transform](f.w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("no boss transform")
	}
	health, ok := ecs.Get[component.Health](f.w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatal("no boss health")
	}
	return boss, rt, tr, health
}

func TestBossEntersThenPatrols(t *testing.T) {
	f := newFixture(t)
	s := NewBossSystem(f.reg, f.pools, f.rng)
	e := spawnTestBoss(t, f, "warden")

	boss, rt, tr, _ := bossParts(t, f, e)
	if rt.State != component.BossEntering {
		t.Fatalf("fresh boss should be entering, got %v", rt.State)
	}
	if tr.Y >= 0 {
		t.Fatalf("fresh boss should start above the screen, got y=%v", tr.Y)
	}

	for i := 0; i < 1000 && rt.State == component.BossEntering; i++ {
		s.Update(f.w)
	}
	if rt.State != component.BossPatrolling {
		t.Fatalf("boss never reached patrol, state %v at y=%v", rt.State, tr.Y)
	}
	if tr.Y != boss.TargetY {
		t.Fatalf("patrol should hold target y %v, got %v", boss.TargetY, tr.Y)
	}
}

func TestBossPatrolReversesAtRangeLimits(t *testing.T) {
	f := newFixture(t)
	s := NewBossSystem(f.reg, f.pools, f.rng)
	e := spawnTestBoss(t, f, "warden")

	boss, rt, tr, _ := bossParts(t, f, e)
	rt.State = component.BossPatrolling
	tr.Y = boss.TargetY

	seenLeft, seenRight := false, false
	for i := 0; i < 2000; i++ {
		s.Update(f.w)
		if tr.X <= boss.CenterX-boss.MovementRange {
			seenLeft = true
		}
		if tr.X >= boss.CenterX+boss.MovementRange {
			seenRight = true
		}
		if tr.X < boss.CenterX-boss.MovementRange || tr.X > boss.CenterX+boss.MovementRange {
			t.Fatalf("patrol left the range band at x=%v", tr.X)
		}
	}
	if !seenLeft || !seenRight {
		t.Fatalf("patrol should sweep both edges, left=%v right=%v", seenLeft, seenRight)
	}
}

func TestBossPhaseMonotonic(t *testing.T) {
	f := newFixture(t)
	s := NewBossSystem(f.reg, f.pools, f.rng)
	e := spawnTestBoss(t, f, "warden")

	_, rt, _, health := bossParts(t, f, e)
	if rt.Phase != 1 {
		t.Fatalf("fresh boss should be phase 1, got %d", rt.Phase)
	}

	// Warden: 300 max, phase 2 at ratio 0.66, phase 3 at 0.33.
	health.Current = 198
	s.Update(f.w)
	if rt.Phase != 2 {
		t.Fatalf("expected phase 2 at ratio 0.66, got %d", rt.Phase)
	}

	// Restoring health never reverts the phase.
	health.Current = health.Max
	s.Update(f.w)
	if rt.Phase != 2 {
		t.Fatalf("phase must not revert, got %d", rt.Phase)
	}

	health.Current = 99
	s.Update(f.w)
	if rt.Phase != 3 {
		t.Fatalf("expected phase 3 at ratio 0.33, got %d", rt.Phase)
	}
}

func TestBossDeathSettlesOnce(t *testing.T) {
	f := newFixture(t)
	s := NewBossSystem(f.reg, f.pools, f.rng)
	e := spawnTestBoss(t, f, "warden")
	got := f.captureEvents(t)

	boss, rt, _, health := bossParts(t, f, e)
	health.Current = 0
	f.setFrame(t, 100)

	s.Update(f.w)
	if !rt.Dying || rt.State != component.BossDying {
		t.Fatal("boss should enter the death sequence at zero health")
	}
	if rt.DeathFrame != 100+boss.DeathFrames {
		t.Fatalf("death frame should be %d, got %d", 100+boss.DeathFrames, rt.DeathFrame)
	}

	// The sequence plays out without settling until the death frame.
	f.setFrame(t, rt.DeathFrame-1)
	s.Update(f.w)
	if !ecs.IsAlive(f.w, e) {
		t.Fatal("boss should survive until the death frame")
	}

	f.setFrame(t, rt.DeathFrame)
	s.Update(f.w)
	s.Update(f.w)
	f.w.Bus().DispatchQueued()

	if ecs.IsAlive(f.w, e) {
		t.Fatal("boss should be destroyed after the death sequence")
	}
	defeats := 0
	for _, evt := range *got {
		if bd, ok := evt.(event.BossDefeated); ok {
			defeats++
			if bd.Type != "warden" || bd.Score != boss.Score {
				t.Fatalf("unexpected defeat event %+v", bd)
			}
		}
	}
	if defeats != 1 {
		t.Fatalf("expected exactly 1 BossDefeated, got %d", defeats)
	}
	if got := f.pools.PowerUps.ActiveCount(); got != 1 {
		t.Fatalf("defeat should drop one power-up, got %d active", got)
	}
}

func TestBossAttackHonorsPhaseGate(t *testing.T) {
	f := newFixture(t)
	s := NewBossSystem(f.reg, f.pools, f.rng)
	e := spawnTestBoss(t, f, "warden")
	got := f.captureEvents(t)

	boss, rt, tr, _ := bossParts(t, f, e)
	rt.State = component.BossPatrolling
	tr.Y = boss.TargetY

	// Make only the summon attack eligible by exhausting lower-priority
	// cooldowns and advancing far enough for summon's own.
	f.setFrame(t, 100000)
	for i := range boss.Attacks {
		if boss.Attacks[i].Kind != component.BossAttackSummon {
			rt.LastFired[i] = 100000
		}
	}

	s.Update(f.w)
	f.w.Bus().DispatchQueued()
	for _, evt := range *got {
		if _, ok := evt.(event.BossSummon); ok {
			t.Fatal("summon must not fire in phase 1")
		}
	}

	rt.Phase = 2
	s.Update(f.w)
	f.w.Bus().DispatchQueued()

	summons := 0
	for _, evt := range *got {
		if bs, ok := evt.(event.BossSummon); ok {
			summons++
			if bs.Count <= 0 || bs.EnemyType == "" {
				t.Fatalf("malformed summon event %+v", bs)
			}
		}
	}
	if summons != 1 {
		t.Fatalf("expected exactly 1 summon in phase 2, got %d", summons)
	}
}
