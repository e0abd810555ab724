package system

import (
	"image/color"

	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

var shieldTint = color.NRGBA{R: 0x66, G: 0xe0, B: 0xff, A: 0xff}

// BuffSystem counts down timed power-up effects and keeps the player's
// effective move speed in sync with the active speed buff.
type BuffSystem struct{}

func NewBuffSystem() *BuffSystem {
	return &BuffSystem{}
}

func (s *BuffSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BuffComponent.Kind(), component.PlayerComponent.Kind(), func(e ecs.Entity, buff *component.Buff, player *component.Player) {
		if buff == nil || player == nil {
			return
		}

		if buff.SpeedFrames > 0 {
			buff.SpeedFrames--
			if buff.SpeedFrames == 0 {
				buff.SpeedMult = 0
			}
		}
		if buff.ShieldFrames > 0 {
			buff.ShieldFrames--
		}

		speed := player.BaseSpeed
		if buff.SpeedFrames > 0 && buff.SpeedMult > 0 {
			speed *= buff.SpeedMult
		}
		player.MoveSpeed = speed

		// An active shield reads as a cyan hull tint.
		if sprite, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
			if buff.ShieldFrames > 0 {
				sprite.Tint = shieldTint
			} else if sprite.Tint == shieldTint {
				sprite.Tint = nil
			}
			_ = ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
		}

		_ = ecs.Add(w, e, component.BuffComponent.Kind(), buff)
		_ = ecs.Add(w, e, component.PlayerComponent.Kind(), player)
	})
}
