package system

import (
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/event"
)

// DifficultySystem raises the level on a fixed cadence. Each level-up grows
// the scaling multiplier and tightens the spawn and mine intervals toward
// their floors. The level never decreases.
type DifficultySystem struct {
	registry *configs.Registry
}

func NewDifficultySystem(registry *configs.Registry) *DifficultySystem {
	return &DifficultySystem{registry: registry}
}

func (s *DifficultySystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}
	director, ok := ecs.First(w, component.DifficultyComponent.Kind())
	if !ok {
		return
	}
	d, ok := ecs.Get[component.Difficulty](w, director, component.DifficultyComponent.Kind())
	if !ok || d.Interval <= 0 || d.Paused {
		return
	}

	d.Timer++
	if d.Timer < d.Interval {
		_ = ecs.Add(w, director, component.DifficultyComponent.Kind(), d)
		return
	}
	d.Timer = 0
	d.Level++
	d.Multiplier += s.registry.Tuning.DifficultyStep

	tuning := s.registry.Tuning
	d.MineInterval -= tuning.MineIntervalDecay
	if d.MineInterval < tuning.MineIntervalFloor {
		d.MineInterval = tuning.MineIntervalFloor
	}
	_ = ecs.Add(w, director, component.DifficultyComponent.Kind(), d)

	if sd, ok := ecs.Get[component.SpawnDirector](w, director, component.SpawnDirectorComponent.Kind()); ok {
		sd.MinInterval -= tuning.IntervalDecay
		if sd.MinInterval < tuning.MinIntervalFloor {
			sd.MinInterval = tuning.MinIntervalFloor
		}
		sd.MaxInterval -= tuning.IntervalDecay
		if sd.MaxInterval < tuning.MaxIntervalFloor {
			sd.MaxInterval = tuning.MaxIntervalFloor
		}
		if sd.MaxInterval < sd.MinInterval {
			sd.MaxInterval = sd.MinInterval
		}
		_ = ecs.Add(w, director, component.SpawnDirectorComponent.Kind(), sd)
	}

	if bus := w.Bus(); bus != nil {
		bus.Publish(event.LevelUp{Level: d.Level})
	}
}
