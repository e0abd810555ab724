package entity

import (
	"fmt"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// NewDirector creates the singleton director entity that carries the spawn,
// difficulty, mine, and boss scheduling state for the session.
func NewDirector(w *ecs.World, reg *configs.Registry) (ecs.Entity, error) {
	tuning := reg.Tuning

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.DirectorTagComponent.Kind(), &component.DirectorTag{}); err != nil {
		return 0, fmt.Errorf("director: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnDirectorComponent.Kind(), &component.SpawnDirector{
		NextInterval: tuning.MaxSpawnInterval,
		MinInterval:  tuning.MinSpawnInterval,
		MaxInterval:  tuning.MaxSpawnInterval,
	}); err != nil {
		return 0, fmt.Errorf("director: add spawn director: %w", err)
	}
	if err := ecs.Add(w, e, component.DifficultyComponent.Kind(), &component.Difficulty{
		Level:        1,
		Interval:     tuning.DifficultyInterval,
		Multiplier:   1,
		MineInterval: tuning.MineInterval,
	}); err != nil {
		return 0, fmt.Errorf("director: add difficulty: %w", err)
	}
	if err := ecs.Add(w, e, component.MineDirectorComponent.Kind(), &component.MineDirector{}); err != nil {
		return 0, fmt.Errorf("director: add mine director: %w", err)
	}
	if err := ecs.Add(w, e, component.BossDirectorComponent.Kind(), &component.BossDirector{
		NextSpawnFrame: tuning.BossFirstDelay,
		Order:          tuning.BossOrder,
	}); err != nil {
		return 0, fmt.Errorf("director: add boss director: %w", err)
	}
	return e, nil
}
