package entity

import (
	"fmt"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// NewGameState creates the singleton session ledger.
func NewGameState(w *ecs.World, reg *configs.Registry) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GameStateComponent.Kind(), &component.GameState{
		Lives: reg.Tuning.PlayerLives,
		Level: 1,
	}); err != nil {
		return 0, fmt.Errorf("game state: add state: %w", err)
	}
	return e, nil
}
