package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const stickDeadzone = 0.2

// PlayerControllerSystem reads movement keys, moves the player ship inside
// the playfield, and mirrors the position into the physics body.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	stats, ok := ecs.Get[component.Player](w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get[component.Transform](w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy++
	}
	if pads := ebiten.GamepadIDs(); len(pads) > 0 {
		id := pads[0]
		ax := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ay := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(ax) > stickDeadzone {
			dx = ax
		}
		if math.Abs(ay) > stickDeadzone {
			dy = ay
		}
	}
	// Cap the direction at unit length so diagonals and full stick
	// deflection never outrun the ship's stat.
	if m := math.Hypot(dx, dy); m > 1 {
		dx /= m
		dy /= m
	}

	t.X = common.Clamp(t.X+dx*stats.MoveSpeed, stats.Width/2, float64(common.BaseWidth)-stats.Width/2)
	t.Y = common.Clamp(t.Y+dy*stats.MoveSpeed, stats.Height/2, float64(common.BaseHeight)-stats.Height/2)
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), t)

	if pw := w.PhysicsWorld(); pw != nil {
		pw.SetPosition(player, t.X, t.Y)
	}
}
