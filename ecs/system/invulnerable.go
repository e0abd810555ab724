package system

import (
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// InvulnerableSystem counts down timed invulnerability windows and removes
// the component when they expire. Frames == 0 means indefinite.
type InvulnerableSystem struct{}

func NewInvulnerableSystem() *InvulnerableSystem {
	return &InvulnerableSystem{}
}

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv == nil || inv.Frames == 0 {
			return
		}
		inv.Frames--
		if inv.Frames <= 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
			return
		}
		_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), inv)
	})
}
