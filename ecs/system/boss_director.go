package system

import (
	"math/rand"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

// BossDirectorSystem schedules encounters. It pauses the formation spawner
// while a boss is alive, rotates through the configured boss order, and
// resumes regular spawning only after a grace window once the boss dies.
// Summon requests from the boss arrive on the bus and turn into edge
// spawns here.
type BossDirectorSystem struct {
	registry *configs.Registry
	rng      *rand.Rand

	summons     []event.BossSummon
	unsubscribe func()
	summonSide  int
}

func NewBossDirectorSystem(registry *configs.Registry, rng *rand.Rand) *BossDirectorSystem {
	return &BossDirectorSystem{registry: registry, rng: rng}
}

// Close drops the system's bus subscription. The session calls it on
// teardown.
func (s *BossDirectorSystem) Close() {
	if s != nil && s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *BossDirectorSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}
	if s.unsubscribe == nil {
		if bus := w.Bus(); bus != nil {
			s.unsubscribe = bus.Subscribe(func(evt any) {
				if summon, ok := evt.(event.BossSummon); ok {
					s.summons = append(s.summons, summon)
				}
			})
		}
	}

	director, ok := ecs.First(w, component.BossDirectorComponent.Kind())
	if !ok {
		return
	}
	bd, ok := ecs.Get[component.BossDirector](w, director, component.BossDirectorComponent.Kind())
	if !ok {
		return
	}
	now := currentFrame(w)
	tuning := s.registry.Tuning

	if bd.Active {
		s.spawnSummons(w, now)
		if !ecs.IsAlive(w, ecs.Entity(bd.Boss)) {
			bd.Active = false
			bd.Boss = 0
			bd.Index++
			bd.NextSpawnFrame = now + tuning.BossInterval
			bd.ResumeFrame = now + tuning.BossGrace
			_ = ecs.Add(w, director, component.BossDirectorComponent.Kind(), bd)
		}
		return
	}
	s.summons = s.summons[:0]

	if bd.ResumeFrame > 0 && now >= bd.ResumeFrame {
		bd.ResumeFrame = 0
		_ = ecs.Add(w, director, component.BossDirectorComponent.Kind(), bd)
		s.setSpawnerPaused(w, director, false)
	}

	if len(bd.Order) == 0 || now < bd.NextSpawnFrame {
		return
	}

	key := bd.Order[bd.Index%len(bd.Order)]
	boss, err := entity.NewBoss(w, s.registry, key, now)
	if err != nil {
		// Skip a broken entry instead of re-trying it forever.
		bd.Index++
		bd.NextSpawnFrame = now + tuning.BossInterval
		_ = ecs.Add(w, director, component.BossDirectorComponent.Kind(), bd)
		return
	}

	bd.Active = true
	bd.Boss = uint64(boss)
	bd.ResumeFrame = 0
	_ = ecs.Add(w, director, component.BossDirectorComponent.Kind(), bd)
	s.setSpawnerPaused(w, director, true)

	if bus := w.Bus(); bus != nil {
		bus.Publish(event.BossSpawned{Type: key})
	}
}

// setSpawnerPaused gates both the formation spawner and the difficulty
// clock. The ramp holds for the whole encounter and resumes with regular
// spawning.
func (s *BossDirectorSystem) setSpawnerPaused(w *ecs.World, director ecs.Entity, paused bool) {
	if sd, ok := ecs.Get[component.SpawnDirector](w, director, component.SpawnDirectorComponent.Kind()); ok {
		sd.Paused = paused
		_ = ecs.Add(w, director, component.SpawnDirectorComponent.Kind(), sd)
	}
	if d, ok := ecs.Get[component.Difficulty](w, director, component.DifficultyComponent.Kind()); ok {
		d.Paused = paused
		_ = ecs.Add(w, director, component.DifficultyComponent.Kind(), d)
	}
}

// spawnSummons turns queued summon requests into enemies flying in from
// alternating screen edges.
func (s *BossDirectorSystem) spawnSummons(w *ecs.World, now int) {
	if len(s.summons) == 0 {
		return
	}
	mult := 1.0
	if director, ok := ecs.First(w, component.DifficultyComponent.Kind()); ok {
		if d, ok := ecs.Get[component.Difficulty](w, director, component.DifficultyComponent.Kind()); ok && d.Multiplier > 0 {
			mult = d.Multiplier
		}
	}

	for _, summon := range s.summons {
		for i := 0; i < summon.Count; i++ {
			x, vx := -30.0, 2.2
			if s.summonSide%2 == 1 {
				x, vx = float64(common.BaseWidth)+30, -2.2
			}
			s.summonSide++
			y := 80 + s.rng.Float64()*160
			_, _ = entity.NewSummonedEnemy(w, s.registry, s.rng, summon.EnemyType, x, y, vx, 0.8, mult, now)
		}
	}
	s.summons = s.summons[:0]
}
