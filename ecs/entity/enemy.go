package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/starblitz/assets"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

// NewEnemy creates one enemy of the given config type at (x, y). The
// difficulty multiplier is applied here, once: speed scales up and the
// fire interval divides down (floored at the tuned minimum). Later
// multiplier changes never touch this instance.
func NewEnemy(w *ecs.World, reg *configs.Registry, rng *rand.Rand, typeKey string, x, y float64, mult float64, now int) (ecs.Entity, error) {
	cfg := reg.EnemyOrDefault(typeKey)
	if mult <= 0 {
		mult = 1
	}

	fireInterval := cfg.FireInterval
	if fireInterval > 0 {
		fireInterval = int(float64(fireInterval) / mult)
		if fireInterval < reg.Tuning.MinEnemyFireInterval {
			fireInterval = reg.Tuning.MinEnemyFireInterval
		}
	}

	phase := 0.0
	if rng != nil {
		phase = rng.Float64() * 2 * math.Pi
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		Type:            cfg.Key,
		Score:           cfg.Score,
		Speed:           cfg.Speed * mult,
		FireInterval:    fireInterval,
		CollisionDamage: cfg.CollisionDamage,
		Projectile:      cfg.Projectile,
		Movement:        cfg.Movement,
		Amplitude:       cfg.Amplitude,
		Frequency:       cfg.Frequency,
		BaseX:           x,
		Phase:           phase,
		Attack:          cfg.Attack,
		BurstCount:      cfg.BurstCount,
		LastFired:       now,
		SpawnFrame:      now,
		CreditsMin:      cfg.CreditsMin,
		CreditsMax:      cfg.CreditsMax,
		Drops:           cfg.Drops,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: cfg.Health,
		Max:     cfg.Health,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x, Y: y, ScaleX: 1, ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	img := assets.Ship(cfg.Width, cfg.Height, cfg.Tint, false)
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: cfg.Width / 2,
		OriginY: cfg.Height / 2,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 50}); err != nil {
		return 0, fmt.Errorf("enemy: add render layer: %w", err)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddBox(e, ecs.BodyEnemy, x, y, cfg.Width*0.85, cfg.Height*0.85)
	}
	return e, nil
}

// NewSummonedEnemy creates a boss reinforcement at a screen edge with an
// inward fly-in velocity. Once the movement system has steered it inside
// the margins the fly-in velocity is dropped and the enemy falls back to
// its configured pattern.
func NewSummonedEnemy(w *ecs.World, reg *configs.Registry, rng *rand.Rand, typeKey string, x, y, vx, vy float64, mult float64, now int) (ecs.Entity, error) {
	e, err := NewEnemy(w, reg, rng, typeKey, x, y, mult, now)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}); err != nil {
		return 0, fmt.Errorf("enemy: add fly-in velocity: %w", err)
	}
	return e, nil
}
