package system

import (
	"math"
	"math/rand"
	"sort"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

// BossSystem drives boss encounters: the enter/patrol/die state machine,
// monotonic phase transitions from health thresholds, and attack selection.
// Attacks are pre-sorted by fixed priority; each tick the first eligible
// attack whose cooldown has elapsed fires, and phase 3 scales all cooldowns
// down by the boss's speed multiplier.
type BossSystem struct {
	registry *configs.Registry
	pools    *Pools
	rng      *rand.Rand
	scripts  map[string]*bossScript
}

func NewBossSystem(registry *configs.Registry, pools *Pools, rng *rand.Rand) *BossSystem {
	return &BossSystem{registry: registry, pools: pools, rng: rng}
}

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.pools == nil {
		return
	}
	now := currentFrame(w)

	ecs.ForEach3(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, t *component.Transform) {
		if boss == nil || rt == nil || t == nil {
			return
		}

		if rt.Dying {
			s.updateDeath(w, e, boss, rt, t, now)
			return
		}

		health, ok := ecs.Get[component.Health](w, e, component.HealthComponent.Kind())
		if !ok {
			return
		}
		if health.Current <= 0 {
			s.beginDeath(w, e, boss, rt, t, now)
			return
		}
		s.updatePhase(w, e, boss, rt, health)

		switch rt.State {
		case component.BossEntering:
			t.Y += boss.EntrySpeed
			if t.Y >= boss.TargetY {
				t.Y = boss.TargetY
				rt.State = component.BossPatrolling
			}
		case component.BossPatrolling:
			speed := boss.PatrolSpeed
			if rt.Phase >= 3 {
				// Phase 3 trades patrol speed for attack rate.
				speed *= boss.Phase3SpeedMult
			}
			t.X += speed * rt.DirX
			if t.X > boss.CenterX+boss.MovementRange {
				t.X = boss.CenterX + boss.MovementRange
				rt.DirX = -1
			} else if t.X < boss.CenterX-boss.MovementRange {
				t.X = boss.CenterX - boss.MovementRange
				rt.DirX = 1
			}
			s.selectAttack(w, boss, rt, t, now)
		}

		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
		_ = ecs.Add(w, e, component.BossRuntimeComponent.Kind(), rt)
		if pw := w.PhysicsWorld(); pw != nil {
			pw.SetPosition(e, t.X, t.Y)
		}
	})
}

// updatePhase recomputes the phase from the health ratio. The phase only
// ever moves forward, so healing past a threshold never reverts it.
func (s *BossSystem) updatePhase(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, health *component.Health) {
	if health.Max <= 0 {
		return
	}
	ratio := float64(health.Current) / float64(health.Max)
	want := 1
	if ratio <= boss.Phase2Threshold {
		want = 2
	}
	if ratio <= boss.Phase3Threshold {
		want = 3
	}
	if want <= rt.Phase {
		return
	}
	rt.Phase = want

	if sprite, ok := ecs.Get[component.Sprite](w, e, component.SpriteComponent.Kind()); ok {
		sprite.Tint = boss.PhaseTints[want-1]
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
	}
}

// selectAttack fires the first attack, in priority order, that the phase
// allows and whose cooldown has elapsed. At most one attack per tick.
func (s *BossSystem) selectAttack(w *ecs.World, boss *component.Boss, rt *component.BossRuntime, t *component.Transform, now int) {
	for i := range boss.Attacks {
		a := &boss.Attacks[i]
		if a.MinPhase > rt.Phase {
			continue
		}
		cooldown := a.Cooldown
		if rt.Phase >= 3 {
			cooldown = int(float64(cooldown) * boss.Phase3SpeedMult)
			if cooldown < 1 {
				cooldown = 1
			}
		}
		if i >= len(rt.LastFired) || now-rt.LastFired[i] < cooldown {
			continue
		}
		s.executeAttack(w, boss, rt, a, t, now)
		rt.LastFired[i] = now
		return
	}
}

func (s *BossSystem) executeAttack(w *ecs.World, boss *component.Boss, rt *component.BossRuntime, a *component.BossAttack, t *component.Transform, now int) {
	projectile := ""
	if cfg, ok := s.registry.Boss(boss.Type); ok {
		projectile = cfg.Projectile
	}
	proj, ok := s.registry.Projectile(projectile)
	if !ok && a.Kind != component.BossAttackSummon {
		return
	}
	muzzleY := t.Y + 24

	switch a.Kind {
	case component.BossAttackSpray:
		arc := a.ArcDegrees * math.Pi / 180
		if arc <= 0 {
			arc = math.Pi / 3
		}
		for i := 0; i < a.Bullets; i++ {
			angle := math.Pi / 2
			if a.Bullets > 1 {
				angle += -arc/2 + arc*float64(i)/float64(a.Bullets-1)
			}
			entity.FireBullet(w, s.pools.EnemyBullets, s.registry, projectile, t.X, muzzleY, math.Cos(angle)*proj.Speed, math.Sin(angle)*proj.Speed)
		}

	case component.BossAttackAimed:
		px, py, hasPlayer := playerPosition(w)
		for i := 0; i < a.Bullets; i++ {
			off := 0.0
			if a.Bullets > 1 && a.SpreadX > 0 {
				off = -a.SpreadX/2 + a.SpreadX*float64(i)/float64(a.Bullets-1)
			}
			vx, vy := aimAt(t.X+off, muzzleY, px, py, proj.Speed, float64(proj.Direction), hasPlayer)
			entity.FireBullet(w, s.pools.EnemyBullets, s.registry, projectile, t.X+off, muzzleY, vx, vy)
		}

	case component.BossAttackSummon:
		summonType := a.SummonType
		if summonType == "" && len(boss.Summons) > 0 {
			summonType = boss.Summons[s.rng.Intn(len(boss.Summons))]
		}
		if summonType == "" {
			return
		}
		if bus := w.Bus(); bus != nil {
			bus.Publish(event.BossSummon{EnemyType: summonType, Count: a.SummonCount})
		}

	case component.BossAttackRing:
		for i := 0; i < a.Bullets; i++ {
			angle := 2 * math.Pi * float64(i) / float64(a.Bullets)
			entity.FireBullet(w, s.pools.EnemyBullets, s.registry, projectile, t.X, t.Y, math.Cos(angle)*proj.Speed, math.Sin(angle)*proj.Speed)
		}

	case component.BossAttackScript:
		s.runScriptAttack(w, a, rt, t, projectile, now)
	}
}

func (s *BossSystem) beginDeath(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, t *component.Transform, now int) {
	rt.Dying = true
	rt.State = component.BossDying
	rt.DeathFrame = now + boss.DeathFrames
	_ = ecs.Add(w, e, component.BossRuntimeComponent.Kind(), rt)

	// The hull stops colliding the moment the death sequence starts.
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Deactivate(e)
	}
	if bus := w.Bus(); bus != nil {
		bus.Publish(event.Explosion{X: t.X, Y: t.Y, Size: 30})
	}
}

// updateDeath plays staggered blasts across the hull, then settles the
// encounter exactly once when the sequence completes.
func (s *BossSystem) updateDeath(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, t *component.Transform, now int) {
	if now < rt.DeathFrame {
		if (rt.DeathFrame-now)%8 == 0 {
			if bus := w.Bus(); bus != nil {
				bus.Publish(event.Explosion{
					X:    t.X + (s.rng.Float64()-0.5)*60,
					Y:    t.Y + (s.rng.Float64()-0.5)*40,
					Size: 10 + s.rng.Float64()*12,
				})
			}
		}
		return
	}

	if bus := w.Bus(); bus != nil {
		bus.Publish(event.Explosion{X: t.X, Y: t.Y, Size: 48})
		bus.Publish(event.BossDefeated{Type: boss.Type, Score: boss.Score})
	}
	s.dropReward(w, t.X, t.Y)
	ecs.DestroyEntity(w, e)
}

// dropReward spawns one random power-up where the hull went down.
func (s *BossSystem) dropReward(w *ecs.World, x, y float64) {
	keys := make([]string, 0, len(s.registry.PowerUps))
	for k := range s.registry.PowerUps {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)
	entity.SpawnPowerUp(w, s.pools.PowerUps, s.registry, keys[s.rng.Intn(len(keys))], x, y)
}
