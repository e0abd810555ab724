package system

import (
	"math"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

const burstSpreadRadians = 18 * math.Pi / 180

// EnemyAttackSystem fires enemy weapons on their per-instance intervals.
// Enemies hold fire until they are on screen.
type EnemyAttackSystem struct {
	registry *configs.Registry
	pools    *Pools
}

func NewEnemyAttackSystem(registry *configs.Registry, pools *Pools) *EnemyAttackSystem {
	return &EnemyAttackSystem{registry: registry, pools: pools}
}

func (s *EnemyAttackSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.pools == nil {
		return
	}
	now := currentFrame(w)
	px, py, hasPlayer := playerPosition(w)

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, t *component.Transform) {
		if enemy == nil || t == nil {
			return
		}
		if enemy.Attack == component.AttackNone || enemy.FireInterval <= 0 {
			return
		}
		if t.Y < 0 {
			return
		}
		if now-enemy.LastFired < enemy.FireInterval {
			return
		}

		proj, ok := s.registry.Projectile(enemy.Projectile)
		if !ok {
			return
		}
		speed := proj.Speed
		dir := float64(proj.Direction)
		muzzleY := t.Y + 16

		switch enemy.Attack {
		case component.AttackBasic:
			entity.FireBullet(w, s.pools.EnemyBullets, s.registry, enemy.Projectile, t.X, muzzleY, 0, speed*dir)
		case component.AttackAimed:
			vx, vy := aimAt(t.X, muzzleY, px, py, speed, dir, hasPlayer)
			entity.FireBullet(w, s.pools.EnemyBullets, s.registry, enemy.Projectile, t.X, muzzleY, vx, vy)
		case component.AttackBurst:
			n := enemy.BurstCount
			if n < 1 {
				n = 1
			}
			base := math.Pi / 2 * dir
			if hasPlayer {
				base = math.Atan2(py-muzzleY, px-t.X)
			}
			for i := 0; i < n; i++ {
				angle := base
				if n > 1 {
					angle += -burstSpreadRadians/2 + burstSpreadRadians*float64(i)/float64(n-1)
				}
				entity.FireBullet(w, s.pools.EnemyBullets, s.registry, enemy.Projectile, t.X, muzzleY, math.Cos(angle)*speed, math.Sin(angle)*speed)
			}
		}

		enemy.LastFired = now
		_ = ecs.Add(w, e, component.EnemyComponent.Kind(), enemy)
	})
}

// aimAt returns a velocity of the given speed pointing at the target, or
// straight along the projectile's travel direction when there is no target.
func aimAt(x, y, tx, ty, speed, dir float64, hasTarget bool) (float64, float64) {
	if !hasTarget {
		return 0, speed * dir
	}
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, speed * dir
	}
	return dx / dist * speed, dy / dist * speed
}
