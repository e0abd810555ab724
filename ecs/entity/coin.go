package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const (
	coinRadius = 6.0
	coinSpeed  = 1.5
)

// CoinSlotBuilder returns a pool builder for inactive coin slots.
func CoinSlotBuilder() func(w *ecs.World, slot int) (ecs.Entity, error) {
	tint := color.NRGBA{R: 0xff, G: 0xd4, B: 0x40, A: 0xff}
	img := assets.Orb(coinRadius, tint)
	return func(w *ecs.World, slot int) (ecs.Entity, error) {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.CoinComponent.Kind(), &component.Coin{}); err != nil {
			return 0, fmt.Errorf("coin: add coin: %w", err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X: -100, Y: -100, ScaleX: 1, ScaleY: 1,
		}); err != nil {
			return 0, fmt.Errorf("coin: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("coin: add velocity: %w", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Image:   img,
			OriginX: float64(img.Bounds().Dx()) / 2,
			OriginY: float64(img.Bounds().Dy()) / 2,
			Hidden:  true,
		}); err != nil {
			return 0, fmt.Errorf("coin: add sprite: %w", err)
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 40}); err != nil {
			return 0, fmt.Errorf("coin: add render layer: %w", err)
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.AddCircle(e, ecs.BodyCoin, -100, -100, coinRadius)
			pw.Deactivate(e)
		}
		return e, nil
	}
}

// SpawnCoin activates a coin slot worth value credits at (x, y).
func SpawnCoin(w *ecs.World, pool *ecs.Pool, value int, x, y float64) (ecs.Entity, bool) {
	e, ok := pool.Acquire()
	if !ok {
		return 0, false
	}
	if c, ok := ecs.Get[component.Coin](w, e, component.CoinComponent.Kind()); ok {
		c.Active = true
		c.Value = value
		_ = ecs.Add(w, e, component.CoinComponent.Kind(), c)
	}
	if t, ok := ecs.Get[component.Transform](w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	}
	if v, ok := ecs.Get[component.Velocity](w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = 0, coinSpeed
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

// ReleaseCoin deactivates a coin slot and returns it to the pool.
func ReleaseCoin(w *ecs.World, pool *ecs.Pool, e ecs.Entity) {
	if c, ok := ecs.Get[component.Coin](w, e, component.CoinComponent.Kind()); ok {
		c.Active = false
		_ = ecs.Add(w, e, component.CoinComponent.Kind(), c)
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
