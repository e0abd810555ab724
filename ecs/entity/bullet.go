package entity

import (
	"fmt"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// BulletSlotBuilder returns a pool builder for inactive bullet slots. The
// sprite and physics shape are assigned at fire time since projectile types
// differ per shot; a fresh slot carries only the dormant components.
func BulletSlotBuilder(fromPlayer bool) func(w *ecs.World, slot int) (ecs.Entity, error) {
	return func(w *ecs.World, slot int) (ecs.Entity, error) {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{
			FromPlayer: fromPlayer,
		}); err != nil {
			return 0, fmt.Errorf("bullet: add bullet: %w", err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X: -100, Y: -100, ScaleX: 1, ScaleY: 1,
		}); err != nil {
			return 0, fmt.Errorf("bullet: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("bullet: add velocity: %w", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Hidden: true}); err != nil {
			return 0, fmt.Errorf("bullet: add sprite: %w", err)
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 60}); err != nil {
			return 0, fmt.Errorf("bullet: add render layer: %w", err)
		}
		return e, nil
	}
}

// FireBullet acquires a slot and launches it as the given projectile type.
// Returns false when the pool is exhausted or the type is unknown; callers
// skip the shot in both cases.
func FireBullet(w *ecs.World, pool *ecs.Pool, reg *configs.Registry, projectileKey string, x, y, vx, vy float64) (ecs.Entity, bool) {
	cfg, ok := reg.Projectile(projectileKey)
	if !ok {
		return 0, false
	}
	e, ok := pool.Acquire()
	if !ok {
		return 0, false
	}

	bullet, ok := ecs.Get[component.Bullet](w, e, component.BulletComponent.Kind())
	if !ok {
		pool.Release(e)
		return 0, false
	}
	bullet.Active = true
	bullet.Damage = cfg.Damage
	bullet.Piercing = cfg.Piercing
	_ = ecs.Add(w, e, component.BulletComponent.Kind(), bullet)

	if t, ok := ecs.Get[component.Transform](w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	}
	if v, ok := ecs.Get[component.Velocity](w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = vx, vy
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), v)
	}

	img := assets.Orb(cfg.Radius, cfg.Tint)
	if s, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
		s.Image = img
		s.OriginX = float64(img.Bounds().Dx()) / 2
		s.OriginY = float64(img.Bounds().Dy()) / 2
		s.Hidden = false
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), s)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		kind := ecs.BodyEnemyBullet
		if bullet.FromPlayer {
			kind = ecs.BodyPlayerBullet
		}
		pw.AddCircle(e, kind, x, y, cfg.Radius)
	}
	return e, true
}

// ReleaseBullet deactivates a bullet slot and returns it to the pool.
func ReleaseBullet(w *ecs.World, pool *ecs.Pool, e ecs.Entity) {
	if bullet, ok := ecs.Get[component.Bullet](w, e, component.BulletComponent.Kind()); ok {
		bullet.Active = false
		_ = ecs.Add(w, e, component.BulletComponent.Kind(), bullet)
	}
	if s, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
		s.Hidden = true
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), s)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Deactivate(e)
	}
	pool.Release(e)
}
