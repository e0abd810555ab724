package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// RenderSystem draws every visible sprite in layer order. It is invoked
// from the game's Draw callback, not from the world update.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type drawItem struct {
	entity    ecs.Entity
	transform *component.Transform
	sprite    *component.Sprite
	layer     int
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	frame := currentFrame(w)

	var items []drawItem
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		if s == nil || t == nil || s.Hidden || s.Image == nil {
			return
		}
		layer := 0
		if rl, ok := ecs.Get[component.RenderLayer](w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		items = append(items, drawItem{entity: e, transform: t, sprite: s, layer: layer})
	})

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].entity) < uint64(items[j].entity)
	})

	for _, item := range items {
		// Invulnerability reads as a blink.
		if ecs.Has(w, item.entity, component.InvulnerableComponent.Kind()) && (frame/4)%2 == 0 {
			continue
		}

		t, s := item.transform, item.sprite
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)

		if s.Tint != nil {
			op.ColorScale.ScaleWithColor(s.Tint)
		}
		screen.DrawImage(s.Image, op)
	}
}
