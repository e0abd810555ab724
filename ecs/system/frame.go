package system

import (
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// currentFrame reads the session frame counter from the game-state ledger.
func currentFrame(w *ecs.World) int {
	e, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return 0
	}
	gs, ok := ecs.Get[component.GameState](w, e, component.GameStateComponent.Kind())
	if !ok {
		return 0
	}
	return gs.Frame
}

// playerPosition returns the player ship's transform position.
func playerPosition(w *ecs.World) (float64, float64, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	t, ok := ecs.Get[component.Transform](w, player, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}
