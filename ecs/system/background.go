package system

import (
	"math/rand"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const starCount = 70

// starField marks a background star so the system can find its own
// entities when wrapping them.
type starField struct {
	Speed float64
}

var starFieldComponent = component.NewComponent[starField]()

// BackgroundSystem scrolls a simple starfield behind the playfield. Stars
// are plain sprite entities created on the first tick and wrapped from
// bottom to top forever.
type BackgroundSystem struct {
	rng     *rand.Rand
	started bool
}

func NewBackgroundSystem(rng *rand.Rand) *BackgroundSystem {
	return &BackgroundSystem{rng: rng}
}

func (s *BackgroundSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.rng == nil {
		return
	}
	if !s.started {
		s.started = true
		for i := 0; i < starCount; i++ {
			s.spawnStar(w, s.rng.Float64()*float64(common.BaseHeight))
		}
	}

	ecs.ForEach2(w, starFieldComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, star *starField, t *component.Transform) {
		if star == nil || t == nil {
			return
		}
		t.Y += star.Speed
		if t.Y > float64(common.BaseHeight)+2 {
			t.Y = -2
			t.X = s.rng.Float64() * float64(common.BaseWidth)
		}
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	})
}

func (s *BackgroundSystem) spawnStar(w *ecs.World, y float64) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, starFieldComponent.Kind(), &starField{Speed: 0.5 + s.rng.Float64()*1.8})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: s.rng.Float64() * float64(common.BaseWidth), Y: y, ScaleX: 1, ScaleY: 1,
	})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Image: assets.Star()})
	_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 0})
}
