package system

import (
	"math"
	"math/rand"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

// MineSystem drops proximity mines on the difficulty-scaled cadence and
// detonates them when the player drifts inside the trigger radius. The
// blast radius is larger than the trigger radius, so a detonation at the
// trigger distance still damages the player.
type MineSystem struct {
	registry *configs.Registry
	pools    *Pools
	rng      *rand.Rand
}

func NewMineSystem(registry *configs.Registry, pools *Pools, rng *rand.Rand) *MineSystem {
	return &MineSystem{registry: registry, pools: pools, rng: rng}
}

func (s *MineSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.pools == nil {
		return
	}
	s.spawn(w)
	s.trigger(w)
}

func (s *MineSystem) spawn(w *ecs.World) {
	director, ok := ecs.First(w, component.MineDirectorComponent.Kind())
	if !ok {
		return
	}
	md, ok := ecs.Get[component.MineDirector](w, director, component.MineDirectorComponent.Kind())
	if !ok {
		return
	}
	interval := s.registry.Tuning.MineInterval
	if d, ok := ecs.Get[component.Difficulty](w, director, component.DifficultyComponent.Kind()); ok && d.MineInterval > 0 {
		interval = d.MineInterval
	}
	if interval <= 0 {
		return
	}

	md.Timer++
	if md.Timer < interval {
		_ = ecs.Add(w, director, component.MineDirectorComponent.Kind(), md)
		return
	}
	md.Timer = 0
	_ = ecs.Add(w, director, component.MineDirectorComponent.Kind(), md)

	margin := s.registry.Tuning.ScreenMargin
	x := margin + s.rng.Float64()*(float64(common.BaseWidth)-2*margin)
	entity.SpawnMine(w, s.pools.Mines, s.registry, x, -30)
}

func (s *MineSystem) trigger(w *ecs.World) {
	px, py, hasPlayer := playerPosition(w)
	if !hasPlayer {
		return
	}

	ecs.ForEach2(w, component.MineComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mine, t *component.Transform) {
		if m == nil || t == nil || !m.Active {
			return
		}
		if math.Hypot(px-t.X, py-t.Y) > m.TriggerRadius {
			return
		}
		DetonateMine(w, s.pools, e, m, t, s.registry.Tuning.ContactInvuln)
	})
}

// DetonateMine explodes a mine: the player takes the mine's damage when
// inside the blast radius, and the slot returns to the pool. Shared with
// the collision resolver for contact and shot-down detonations.
func DetonateMine(w *ecs.World, pools *Pools, e ecs.Entity, m *component.Mine, t *component.Transform, invulnFrames int) {
	if w == nil || pools == nil || m == nil || t == nil || !m.Active {
		return
	}

	if bus := w.Bus(); bus != nil {
		bus.Publish(event.Explosion{X: t.X, Y: t.Y, Size: m.BlastRadius / 2})
	}

	px, py, hasPlayer := playerPosition(w)
	if hasPlayer && math.Hypot(px-t.X, py-t.Y) <= m.BlastRadius {
		DamagePlayer(w, m.Damage, invulnFrames)
	}

	entity.ReleaseMine(w, pools.Mines, e)
}
