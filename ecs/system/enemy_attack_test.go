package system

import (
	"testing"

	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

func TestBasicAttackFiresAlongProjectileDirection(t *testing.T) {
	f := newFixture(t)
	s := NewEnemyAttackSystem(f.reg, f.pools)

	if _, err := entity.NewEnemy(f.w, f.reg, f.rng, "fighter", 200, 100, 1, 0); err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	f.setFrame(t, 1000)

	s.Update(f.w)

	cfg, _ := f.reg.Enemy("fighter")
	proj, _ := f.reg.Projectile(cfg.Projectile)
	want := proj.Speed * float64(proj.Direction)

	found := false
	ecs.ForEach2(f.w, component.BulletComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, v *component.Velocity) {
		if !b.Active {
			return
		}
		found = true
		if v.X != 0 || v.Y != want {
			t.Fatalf("basic shot should travel (0, %v), got (%v, %v)", want, v.X, v.Y)
		}
	})
	if !found {
		t.Fatal("expected the fighter to fire")
	}
}

func TestEnemiesHoldFireAboveTheScreen(t *testing.T) {
	f := newFixture(t)
	s := NewEnemyAttackSystem(f.reg, f.pools)

	if _, err := entity.NewEnemy(f.w, f.reg, f.rng, "fighter", 200, -40, 1, 0); err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	f.setFrame(t, 1000)

	s.Update(f.w)

	if got := f.pools.EnemyBullets.ActiveCount(); got != 0 {
		t.Fatalf("offscreen enemy must not fire, got %d bullets", got)
	}
}
