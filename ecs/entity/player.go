package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

const (
	playerWidth  = 32.0
	playerHeight = 36.0
)

// NewPlayer creates the player ship at the bottom center of the screen.
func NewPlayer(w *ecs.World, reg *configs.Registry) (ecs.Entity, error) {
	tuning := reg.Tuning

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: tuning.PlayerSpeed,
		BaseSpeed: tuning.PlayerSpeed,
		Width:     playerWidth,
		Height:    playerHeight,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: tuning.PlayerHealth,
		Max:     tuning.PlayerHealth,
	}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}
	if err := ecs.Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{
		Key: tuning.PlayerWeapon,
	}); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}
	if err := ecs.Add(w, e, component.BuffComponent.Kind(), &component.Buff{}); err != nil {
		return 0, fmt.Errorf("player: add buff: %w", err)
	}

	x := float64(common.BaseWidth) / 2
	y := float64(common.BaseHeight) - 80
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x, Y: y, ScaleX: 1, ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	tint := color.NRGBA{R: 0x66, G: 0xcc, B: 0xff, A: 0xff}
	img := assets.Ship(playerWidth, playerHeight, tint, true)
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: playerWidth / 2,
		OriginY: playerHeight / 2,
	}); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 70}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddBox(e, ecs.BodyPlayer, x, y, playerWidth*0.7, playerHeight*0.7)
	}
	return e, nil
}
