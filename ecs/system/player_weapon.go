package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

// PlayerWeaponSystem fires the player's weapon while the fire key is held.
// The upgrade level selects the bullet layout and scales the fire rate.
type PlayerWeaponSystem struct {
	registry *configs.Registry
	pools    *Pools
}

func NewPlayerWeaponSystem(registry *configs.Registry, pools *Pools) *PlayerWeaponSystem {
	return &PlayerWeaponSystem{registry: registry, pools: pools}
}

func (s *PlayerWeaponSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.pools == nil {
		return
	}
	fire := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ)
	if !fire {
		if pads := ebiten.GamepadIDs(); len(pads) > 0 {
			fire = ebiten.IsStandardGamepadButtonPressed(pads[0], ebiten.StandardGamepadButtonRightBottom)
		}
	}
	if !fire {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	weapon, ok := ecs.Get[component.Weapon](w, player, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get[component.Transform](w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cfg, ok := s.registry.Weapon(weapon.Key)
	if !ok {
		return
	}

	level := common.ClampInt(weapon.Level, 0, len(cfg.Levels)-1)
	lvl := cfg.Levels[level]

	interval := cfg.FireInterval
	if lvl.RateMult > 0 {
		interval = int(float64(interval) / lvl.RateMult)
	}
	if interval < 1 {
		interval = 1
	}

	now := currentFrame(w)
	if now-weapon.LastFired < interval {
		return
	}

	proj, ok := s.registry.Projectile(cfg.Projectile)
	if !ok {
		return
	}
	// The projectile's configured direction carries the travel axis, so a
	// player shot points up only because its entry says so.
	speed := proj.Speed
	dir := float64(proj.Direction)
	nose := t.Y + 20*dir

	switch lvl.Pattern {
	case configs.FireSingle:
		entity.FireBullet(w, s.pools.PlayerBullets, s.registry, cfg.Projectile, t.X, nose, 0, speed*dir)
	case configs.FireDual:
		offset := lvl.Offset
		if offset <= 0 {
			offset = 8
		}
		entity.FireBullet(w, s.pools.PlayerBullets, s.registry, cfg.Projectile, t.X-offset, nose, 0, speed*dir)
		entity.FireBullet(w, s.pools.PlayerBullets, s.registry, cfg.Projectile, t.X+offset, nose, 0, speed*dir)
	case configs.FireSpread:
		n := lvl.Bullets
		if n < 2 {
			n = 3
		}
		arc := lvl.SpreadDegrees * math.Pi / 180
		if arc <= 0 {
			arc = 30 * math.Pi / 180
		}
		for i := 0; i < n; i++ {
			angle := math.Pi/2*dir - arc/2 + arc*float64(i)/float64(n-1)
			entity.FireBullet(w, s.pools.PlayerBullets, s.registry, cfg.Projectile, t.X, nose, math.Cos(angle)*speed, math.Sin(angle)*speed)
		}
	case configs.FireBurst:
		// Shots stack along the travel axis so the volley reads as a stream.
		for i := 0; i < lvl.Bullets; i++ {
			entity.FireBullet(w, s.pools.PlayerBullets, s.registry, cfg.Projectile, t.X, nose+dir*float64(i)*12, 0, speed*dir)
		}
	}

	weapon.LastFired = now
	_ = ecs.Add(w, player, component.WeaponComponent.Kind(), weapon)
}
