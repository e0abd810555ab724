package system

import (
	"testing"

	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

func TestBulletKillScoresAndReleases(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)
	got := f.captureEvents(t)

	// One-hit fighter with a player shot on top of it.
	enemy, err := entity.NewEnemy(f.w, f.reg, f.rng, "fighter", 200, 300, 1, 0)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	if _, ok := entity.FireBullet(f.w, f.pools.PlayerBullets, f.reg, "player_shot", 200, 300, 0, -8); !ok {
		t.Fatal("FireBullet failed")
	}

	s.Update(f.w)
	f.w.Bus().DispatchQueued()

	if ecs.IsAlive(f.w, enemy) {
		t.Fatal("enemy should be destroyed")
	}
	if f.pools.PlayerBullets.ActiveCount() != 0 {
		t.Fatal("spent bullet should return to its pool")
	}

	var score int
	kills := 0
	for _, evt := range *got {
		switch evt := evt.(type) {
		case event.Score:
			score += evt.Points
		case event.EnemyKilled:
			kills++
			if evt.Type != "fighter" {
				t.Fatalf("unexpected kill type %q", evt.Type)
			}
		}
	}
	if score != 100 || kills != 1 {
		t.Fatalf("expected score 100 and 1 kill, got %d and %d", score, kills)
	}
}

func TestBulletDamageLeavesSurvivor(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)

	// Striker takes two basic hits.
	enemy, err := entity.NewEnemy(f.w, f.reg, f.rng, "striker", 200, 300, 1, 0)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	if _, ok := entity.FireBullet(f.w, f.pools.PlayerBullets, f.reg, "player_shot", 200, 300, 0, -8); !ok {
		t.Fatal("FireBullet failed")
	}

	s.Update(f.w)
	f.w.Bus().Reset()

	if !ecs.IsAlive(f.w, enemy) {
		t.Fatal("striker should survive one hit")
	}
	health, ok := ecs.Get[component.Health](f.w, enemy, component.HealthComponent.Kind())
	if !ok || health.Current != 1 {
		t.Fatalf("expected 1 health left, got %+v ok=%v", health, ok)
	}
}

func TestInvulnerabilityBlocksDamage(t *testing.T) {
	f := newFixture(t)

	_ = ecs.Add(f.w, f.player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 30})
	DamagePlayer(f.w, 1, 60)

	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max {
		t.Fatalf("invulnerable player took damage, health %d/%d", health.Current, health.Max)
	}
}

func TestShieldBlocksDamage(t *testing.T) {
	f := newFixture(t)

	buff, _ := ecs.Get[component.Buff](f.w, f.player, component.BuffComponent.Kind())
	buff.ShieldFrames = 10
	DamagePlayer(f.w, 2, 60)

	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max {
		t.Fatalf("shielded player took damage, health %d/%d", health.Current, health.Max)
	}
}

func TestDamagePlayerGrantsInvulnWindow(t *testing.T) {
	f := newFixture(t)

	DamagePlayer(f.w, 1, 60)
	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max-1 {
		t.Fatalf("expected %d health, got %d", health.Max-1, health.Current)
	}
	inv, ok := ecs.Get[component.Invulnerable](f.w, f.player, component.InvulnerableComponent.Kind())
	if !ok || inv.Frames != 60 {
		t.Fatalf("expected a 60 frame window, got %+v ok=%v", inv, ok)
	}

	// The window absorbs the follow-up hit.
	DamagePlayer(f.w, 1, 60)
	health, _ = ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max-1 {
		t.Fatalf("window should absorb the second hit, health %d", health.Current)
	}
}

func TestLethalDamageCostsLifeAndRespawns(t *testing.T) {
	f := newFixture(t)
	got := f.captureEvents(t)

	DamagePlayer(f.w, f.reg.Tuning.PlayerHealth, 60)
	f.w.Bus().DispatchQueued()

	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max {
		t.Fatalf("respawn should restore full health, got %d/%d", health.Current, health.Max)
	}
	inv, ok := ecs.Get[component.Invulnerable](f.w, f.player, component.InvulnerableComponent.Kind())
	if !ok || inv.Frames != respawnInvulnFrames {
		t.Fatalf("expected the respawn window, got %+v ok=%v", inv, ok)
	}

	losses := 0
	for _, evt := range *got {
		if _, ok := evt.(event.LifeLost); ok {
			losses++
		}
	}
	if losses != 1 {
		t.Fatalf("expected 1 LifeLost, got %d", losses)
	}
}

func TestCoinCollectsOnce(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)
	got := f.captureEvents(t)

	// Drop the coin on the player.
	px, py, _ := playerPosition(f.w)
	if _, ok := entity.SpawnCoin(f.w, f.pools.Coins, 5, px, py); !ok {
		t.Fatal("SpawnCoin failed")
	}

	s.Update(f.w)
	s.Update(f.w)
	f.w.Bus().DispatchQueued()

	credits := 0
	for _, evt := range *got {
		if c, ok := evt.(event.Credits); ok {
			credits += c.Amount
		}
	}
	if credits != 5 {
		t.Fatalf("coin must pay out exactly once, got %d credits", credits)
	}
	if f.pools.Coins.ActiveCount() != 0 {
		t.Fatal("collected coin should return to its pool")
	}
}

func TestPowerUpHealClampsAtMax(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)

	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	health.Current = health.Max - 1

	px, py, _ := playerPosition(f.w)
	if _, ok := entity.SpawnPowerUp(f.w, f.pools.PowerUps, f.reg, "repair", px, py); !ok {
		t.Fatal("SpawnPowerUp failed")
	}

	s.Update(f.w)
	f.w.Bus().Reset()

	health, _ = ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max {
		t.Fatalf("heal should clamp at max, got %d/%d", health.Current, health.Max)
	}
	if f.pools.PowerUps.ActiveCount() != 0 {
		t.Fatal("collected power-up should return to its pool")
	}
}

func TestPowerUpWeaponUpgradePath(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)
	px, py, _ := playerPosition(f.w)

	collect := func(key string) {
		t.Helper()
		if _, ok := entity.SpawnPowerUp(f.w, f.pools.PowerUps, f.reg, key, px, py); !ok {
			t.Fatalf("SpawnPowerUp(%s) failed", key)
		}
		s.Update(f.w)
		f.w.Bus().Reset()
	}

	// A different weapon replaces the current one at level 0.
	collect("scatter_cache")
	weapon, _ := ecs.Get[component.Weapon](f.w, f.player, component.WeaponComponent.Kind())
	if weapon.Key != "scatter" || weapon.Level != 0 {
		t.Fatalf("expected scatter level 0, got %s level %d", weapon.Key, weapon.Level)
	}

	// The same weapon again levels it up, capped at the top level.
	cfg, _ := f.reg.Weapon("scatter")
	for i := 0; i < len(cfg.Levels)+2; i++ {
		collect("scatter_cache")
	}
	weapon, _ = ecs.Get[component.Weapon](f.w, f.player, component.WeaponComponent.Kind())
	if weapon.Level != len(cfg.Levels)-1 {
		t.Fatalf("expected capped level %d, got %d", len(cfg.Levels)-1, weapon.Level)
	}
}

func TestBulletHitLeavesNoGraceWindow(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)

	px, py, _ := playerPosition(f.w)
	if _, ok := entity.FireBullet(f.w, f.pools.EnemyBullets, f.reg, "enemy_shot", px, py, 0, 3); !ok {
		t.Fatal("FireBullet failed")
	}

	s.Update(f.w)
	f.w.Bus().Reset()

	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max-1 {
		t.Fatalf("bullet should cost its damage, health %d/%d", health.Current, health.Max)
	}
	if ecs.Has(f.w, f.player, component.InvulnerableComponent.Kind()) {
		t.Fatal("a survived bullet hit must not grant a grace window")
	}
	if f.pools.EnemyBullets.ActiveCount() != 0 {
		t.Fatal("the bullet should return to its pool")
	}
}

func TestBossContactAppliesConfiguredDamage(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)

	boss, err := entity.NewBoss(f.w, f.reg, "warden", 0)
	if err != nil {
		t.Fatalf("NewBoss: %v", err)
	}
	px, py, _ := playerPosition(f.w)
	f.w.PhysicsWorld().SetPosition(boss, px, py)

	s.Update(f.w)
	f.w.Bus().Reset()

	cfg, _ := f.reg.Boss("warden")
	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max-cfg.ContactDamage {
		t.Fatalf("boss contact should cost %d, health %d/%d", cfg.ContactDamage, health.Current, health.Max)
	}
	inv, ok := ecs.Get[component.Invulnerable](f.w, f.player, component.InvulnerableComponent.Kind())
	if !ok || inv.Frames != f.reg.Tuning.ContactInvuln {
		t.Fatalf("boss contact should grant the contact window, got %+v ok=%v", inv, ok)
	}
}

func TestRammingKillsWithoutLoot(t *testing.T) {
	f := newFixture(t)
	s := NewCollisionSystem(f.reg, f.pools, f.rng)
	got := f.captureEvents(t)

	px, py, _ := playerPosition(f.w)
	enemy, err := entity.NewEnemy(f.w, f.reg, f.rng, "fighter", px, py, 1, 0)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}

	s.Update(f.w)
	f.w.Bus().DispatchQueued()

	if ecs.IsAlive(f.w, enemy) {
		t.Fatal("rammed enemy should be destroyed")
	}
	health, _ := ecs.Get[component.Health](f.w, f.player, component.HealthComponent.Kind())
	if health.Current != health.Max-1 {
		t.Fatalf("ram should cost collision damage, health %d/%d", health.Current, health.Max)
	}
	if ecs.Has(f.w, f.player, component.InvulnerableComponent.Kind()) {
		t.Fatal("a survived ram must not grant a grace window")
	}
	if f.pools.PowerUps.ActiveCount() != 0 || f.pools.Coins.ActiveCount() != 0 {
		t.Fatal("ram kills must not drop loot")
	}
	kills := 0
	for _, evt := range *got {
		if _, ok := evt.(event.EnemyKilled); ok {
			kills++
		}
	}
	if kills != 1 {
		t.Fatalf("expected 1 kill event, got %d", kills)
	}
}
