package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const explosionFrames = 22

// NewExplosion creates a short-lived blast flash. The TTL system destroys
// it once the frames run out.
func NewExplosion(w *ecs.World, x, y, size float64) (ecs.Entity, error) {
	if size <= 0 {
		size = 14
	}
	tint := color.NRGBA{R: 0xff, G: 0xa0, B: 0x30, A: 0xe0}
	img := assets.Orb(size, tint)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: explosionFrames}); err != nil {
		return 0, fmt.Errorf("explosion: add ttl: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x, Y: y, ScaleX: 1, ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("explosion: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(img.Bounds().Dx()) / 2,
		OriginY: float64(img.Bounds().Dy()) / 2,
	}); err != nil {
		return 0, fmt.Errorf("explosion: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 90}); err != nil {
		return 0, fmt.Errorf("explosion: add render layer: %w", err)
	}
	return e, nil
}
