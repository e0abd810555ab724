package entity

import (
	"fmt"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// NewBoss creates a boss above the top edge in the Entering state. Attack
// cooldowns start counting from now so the boss never fires on its first
// frame.
func NewBoss(w *ecs.World, reg *configs.Registry, typeKey string, now int) (ecs.Entity, error) {
	cfg, ok := reg.Boss(typeKey)
	if !ok {
		return 0, fmt.Errorf("boss: unknown type %q", typeKey)
	}

	targetY := cfg.TargetY
	if targetY <= 0 {
		targetY = 120
	}
	centerX := float64(common.BaseWidth) / 2

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
		Type:            cfg.Key,
		Score:           cfg.Score,
		EntrySpeed:      cfg.EntrySpeed,
		PatrolSpeed:     cfg.PatrolSpeed,
		MovementRange:   cfg.MovementRange,
		CenterX:         centerX,
		TargetY:         targetY,
		Phase2Threshold: cfg.Phase2Threshold,
		Phase3Threshold: cfg.Phase3Threshold,
		Phase3SpeedMult: cfg.Phase3SpeedMult,
		ContactDamage:   cfg.ContactDamage,
		DeathFrames:     cfg.DeathFrames,
		Attacks:         cfg.Attacks,
		Summons:         cfg.Summons,
		PhaseTints:      cfg.Tints,
	}); err != nil {
		return 0, fmt.Errorf("boss: add boss: %w", err)
	}

	lastFired := make([]int, len(cfg.Attacks))
	for i := range lastFired {
		lastFired[i] = now
	}
	if err := ecs.Add(w, e, component.BossRuntimeComponent.Kind(), &component.BossRuntime{
		State:     component.BossEntering,
		Phase:     1,
		DirX:      1,
		LastFired: lastFired,
	}); err != nil {
		return 0, fmt.Errorf("boss: add runtime: %w", err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: cfg.Health,
		Max:     cfg.Health,
	}); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	x := centerX
	y := -cfg.Height
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x, Y: y, ScaleX: 1, ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	img := assets.Hull(cfg.Width, cfg.Height, cfg.Tints[0])
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: cfg.Width / 2,
		OriginY: cfg.Height / 2,
	}); err != nil {
		return 0, fmt.Errorf("boss: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 55}); err != nil {
		return 0, fmt.Errorf("boss: add render layer: %w", err)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddBox(e, ecs.BodyBoss, x, y, cfg.Width*0.9, cfg.Height*0.85)
	}
	return e, nil
}
