package entity

import (
	"fmt"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const (
	powerUpSize  = 18.0
	powerUpSpeed = 1.2
)

// PowerUpSlotBuilder returns a pool builder for inactive power-up slots.
func PowerUpSlotBuilder() func(w *ecs.World, slot int) (ecs.Entity, error) {
	return func(w *ecs.World, slot int) (ecs.Entity, error) {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.PowerUpComponent.Kind(), &component.PowerUp{}); err != nil {
			return 0, fmt.Errorf("powerup: add powerup: %w", err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X: -100, Y: -100, ScaleX: 1, ScaleY: 1,
		}); err != nil {
			return 0, fmt.Errorf("powerup: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("powerup: add velocity: %w", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Hidden: true}); err != nil {
			return 0, fmt.Errorf("powerup: add sprite: %w", err)
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 40}); err != nil {
			return 0, fmt.Errorf("powerup: add render layer: %w", err)
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.AddBox(e, ecs.BodyPowerUp, -100, -100, powerUpSize, powerUpSize)
			pw.Deactivate(e)
		}
		return e, nil
	}
}

// SpawnPowerUp activates a power-up slot of the given config type at (x, y).
func SpawnPowerUp(w *ecs.World, pool *ecs.Pool, reg *configs.Registry, typeKey string, x, y float64) (ecs.Entity, bool) {
	cfg, ok := reg.PowerUp(typeKey)
	if !ok {
		return 0, false
	}
	e, ok := pool.Acquire()
	if !ok {
		return 0, false
	}

	if p, ok := ecs.Get[component.PowerUp](w, e, component.PowerUpComponent.Kind()); ok {
		p.Active = true
		p.Type = cfg.Key
		p.Effect = cfg.Effect
		p.Heal = cfg.Heal
		p.SpeedMult = cfg.SpeedMult
		p.Duration = cfg.Duration
		p.Weapon = cfg.Weapon
		_ = ecs.Add(w, e, component.PowerUpComponent.Kind(), p)
	}
	if t, ok := ecs.Get[component.Transform](w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	}
	if v, ok := ecs.Get[component.Velocity](w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = 0, powerUpSpeed
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), v)
	}

	img := assets.Crate(powerUpSize, cfg.Tint)
	if s, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
		s.Image = img
		s.OriginX = powerUpSize / 2
		s.OriginY = powerUpSize / 2
		s.Hidden = false
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), s)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Activate(e, x, y)
	}
	return e, true
}

// ReleasePowerUp deactivates a power-up slot and returns it to the pool.
func ReleasePowerUp(w *ecs.World, pool *ecs.Pool, e ecs.Entity) {
	if p, ok := ecs.Get[component.PowerUp](w, e, component.PowerUpComponent.Kind()); ok {
		p.Active = false
		_ = ecs.Add(w, e, component.PowerUpComponent.Kind(), p)
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
