package system

import (
	"math"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

const (
	offscreenPad = 60.0
	diveTriggerY = float64(common.BaseHeight) * 0.3
	diveSpeedup  = 1.9
)

// MovementSystem advances everything that moves on its own: velocity
// integration for bullets, mines, pickups, and fly-in enemies, pattern
// steering for enemies, and offscreen culling. Positions are mirrored into
// the physics world after every change.
type MovementSystem struct {
	pools *Pools
}

func NewMovementSystem(pools *Pools) *MovementSystem {
	return &MovementSystem{pools: pools}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := currentFrame(w)
	pw := w.PhysicsWorld()

	// Plain velocity integration. Enemies are handled separately below so
	// their pattern steering and fly-in velocities compose correctly.
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, v *component.Velocity, t *component.Transform) {
		if v == nil || t == nil {
			return
		}
		if ecs.Has(w, e, component.EnemyComponent.Kind()) {
			return
		}
		t.X += v.X
		t.Y += v.Y
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
		if pw != nil {
			pw.SetPosition(e, t.X, t.Y)
		}
	})

	s.moveEnemies(w, now, pw)
	s.cullBullets(w)
	s.cullPooled(w)
}

func (s *MovementSystem) moveEnemies(w *ecs.World, now int, pw *ecs.PhysicsWorld) {
	margin := 40.0
	px, py, hasPlayer := playerPosition(w)

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, t *component.Transform) {
		if enemy == nil || t == nil {
			return
		}

		if v, ok := ecs.Get[component.Velocity](w, e, component.VelocityComponent.Kind()); ok && v != nil {
			t.X += v.X
			t.Y += v.Y
			inside := t.X > margin && t.X < float64(common.BaseWidth)-margin && t.Y > margin
			if inside && !enemy.Diving {
				// Fly-in finished: anchor the pattern here and fall back
				// to regular steering next frame.
				enemy.BaseX = t.X
				_ = ecs.Remove(w, e, component.VelocityComponent.Kind())
				_ = ecs.Add(w, e, component.EnemyComponent.Kind(), enemy)
			}
		} else {
			age := float64(now - enemy.SpawnFrame)
			switch enemy.Movement {
			case component.MoveStraight:
				t.Y += enemy.Speed
			case component.MoveSine:
				t.Y += enemy.Speed
				t.X = enemy.BaseX + enemy.Amplitude*math.Sin(enemy.Frequency*age+enemy.Phase)
			case component.MoveZigzag:
				t.Y += enemy.Speed
				t.X = enemy.BaseX + enemy.Amplitude*triangle(enemy.Frequency*age+enemy.Phase)
			case component.MoveDive:
				t.Y += enemy.Speed
				if !enemy.Diving && t.Y >= diveTriggerY && hasPlayer {
					dx, dy := px-t.X, py-t.Y
					dist := math.Hypot(dx, dy)
					if dist > 0 {
						speed := enemy.Speed * diveSpeedup
						enemy.Diving = true
						_ = ecs.Add(w, e, component.EnemyComponent.Kind(), enemy)
						_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{
							X: dx / dist * speed,
							Y: dy / dist * speed,
						})
					}
				}
			}
		}

		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
		if pw != nil {
			pw.SetPosition(e, t.X, t.Y)
		}

		if t.Y > float64(common.BaseHeight)+offscreenPad ||
			t.X < -offscreenPad*2 || t.X > float64(common.BaseWidth)+offscreenPad*2 {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *MovementSystem) cullBullets(w *ecs.World) {
	if s.pools == nil {
		return
	}
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		if b == nil || t == nil || !b.Active {
			return
		}
		if t.X < -offscreenPad || t.X > float64(common.BaseWidth)+offscreenPad ||
			t.Y < -offscreenPad || t.Y > float64(common.BaseHeight)+offscreenPad {
			pool := s.pools.EnemyBullets
			if b.FromPlayer {
				pool = s.pools.PlayerBullets
			}
			entity.ReleaseBullet(w, pool, e)
		}
	})
}

func (s *MovementSystem) cullPooled(w *ecs.World) {
	if s.pools == nil {
		return
	}
	bottom := float64(common.BaseHeight) + offscreenPad
	ecs.ForEach2(w, component.MineComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mine, t *component.Transform) {
		if m != nil && m.Active && t != nil && t.Y > bottom {
			entity.ReleaseMine(w, s.pools.Mines, e)
		}
	})
	ecs.ForEach2(w, component.PowerUpComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.PowerUp, t *component.Transform) {
		if p != nil && p.Active && t != nil && t.Y > bottom {
			entity.ReleasePowerUp(w, s.pools.PowerUps, e)
		}
	})
	ecs.ForEach2(w, component.CoinComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Coin, t *component.Transform) {
		if c != nil && c.Active && t != nil && t.Y > bottom {
			entity.ReleaseCoin(w, s.pools.Coins, e)
		}
	})
}

// triangle maps the phase to a -1..1 triangle wave with the same period as
// sine, giving zigzag its hard direction flips.
func triangle(t float64) float64 {
	return 2 / math.Pi * math.Asin(math.Sin(t))
}
