package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const mineRadius = 11.0

// MineSlotBuilder returns a pool builder for inactive mine slots.
func MineSlotBuilder(reg *configs.Registry) func(w *ecs.World, slot int) (ecs.Entity, error) {
	tint := color.NRGBA{R: 0xff, G: 0x88, B: 0x33, A: 0xff}
	img := assets.Spiked(mineRadius, tint)
	return func(w *ecs.World, slot int) (ecs.Entity, error) {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.MineComponent.Kind(), &component.Mine{}); err != nil {
			return 0, fmt.Errorf("mine: add mine: %w", err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X: -100, Y: -100, ScaleX: 1, ScaleY: 1,
		}); err != nil {
			return 0, fmt.Errorf("mine: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("mine: add velocity: %w", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Image:   img,
			OriginX: float64(img.Bounds().Dx()) / 2,
			OriginY: float64(img.Bounds().Dy()) / 2,
			Hidden:  true,
		}); err != nil {
			return 0, fmt.Errorf("mine: add sprite: %w", err)
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 45}); err != nil {
			return 0, fmt.Errorf("mine: add render layer: %w", err)
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.AddCircle(e, ecs.BodyMine, -100, -100, mineRadius)
			pw.Deactivate(e)
		}
		return e, nil
	}
}

// SpawnMine activates a mine slot at (x, y) drifting slowly downward.
func SpawnMine(w *ecs.World, pool *ecs.Pool, reg *configs.Registry, x, y float64) (ecs.Entity, bool) {
	e, ok := pool.Acquire()
	if !ok {
		return 0, false
	}
	tuning := reg.Tuning

	if m, ok := ecs.Get[component.Mine](w, e, component.MineComponent.Kind()); ok {
		m.Active = true
		m.HitsLeft = tuning.MineHits
		m.Damage = tuning.MineDamage
		m.TriggerRadius = tuning.MineTriggerRadius
		m.BlastRadius = tuning.MineBlastRadius
		_ = ecs.Add(w, e, component.MineComponent.Kind(), m)
	}
	if t, ok := ecs.Get[component.Transform](w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	}
	if v, ok := ecs.Get[component.Velocity](w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = 0, tuning.MineSpeed
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), v)
	}
	if s, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
		s.Hidden = false
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), s)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Activate(e, x, y)
	}
	return e, true
}

// ReleaseMine deactivates a mine slot and returns it to the pool.
func ReleaseMine(w *ecs.World, pool *ecs.Pool, e ecs.Entity) {
	if m, ok := ecs.Get[component.Mine](w, e, component.MineComponent.Kind()); ok {
		m.Active = false
		_ = ecs.Add(w, e, component.MineComponent.Kind(), m)
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
