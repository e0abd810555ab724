package main

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
	"github.com/milk9111/starblitz/ecs/system"
)

// Session is one run: a world, its fixed pools, and the bus subscriptions
// that live exactly as long as the run. Restarting tears the whole thing
// down and builds a fresh one.
type Session struct {
	World *ecs.World
	Pools *system.Pools

	registry *configs.Registry
	rng      *rand.Rand

	bossDirector *system.BossDirectorSystem
	gameState    *system.GameStateSystem
	unsubs       []func()
}

func NewSession(registry *configs.Registry, seed int64, reporter Reporter) (*Session, error) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		World:    w,
		registry: registry,
		rng:      rng,
	}

	tuning := registry.Tuning
	pools := &system.Pools{}
	var err error
	if pools.PlayerBullets, err = ecs.NewPool(w, tuning.PoolPlayerBullets, entity.BulletSlotBuilder(true)); err != nil {
		return nil, fmt.Errorf("session: player bullet pool: %w", err)
	}
	if pools.EnemyBullets, err = ecs.NewPool(w, tuning.PoolEnemyBullets, entity.BulletSlotBuilder(false)); err != nil {
		return nil, fmt.Errorf("session: enemy bullet pool: %w", err)
	}
	if pools.Mines, err = ecs.NewPool(w, tuning.PoolMines, entity.MineSlotBuilder(registry)); err != nil {
		return nil, fmt.Errorf("session: mine pool: %w", err)
	}
	if pools.PowerUps, err = ecs.NewPool(w, tuning.PoolPowerUps, entity.PowerUpSlotBuilder()); err != nil {
		return nil, fmt.Errorf("session: powerup pool: %w", err)
	}
	if pools.Coins, err = ecs.NewPool(w, tuning.PoolCoins, entity.CoinSlotBuilder()); err != nil {
		return nil, fmt.Errorf("session: coin pool: %w", err)
	}
	s.Pools = pools

	if _, err := entity.NewGameState(w, registry); err != nil {
		return nil, err
	}
	if _, err := entity.NewDirector(w, registry); err != nil {
		return nil, err
	}
	if _, err := entity.NewPlayer(w, registry); err != nil {
		return nil, err
	}

	s.gameState = system.NewGameStateSystem()
	s.bossDirector = system.NewBossDirectorSystem(registry, rng)

	w.AddSystem(s.gameState)
	w.AddSystem(system.NewBackgroundSystem(rng))
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewBuffSystem())
	w.AddSystem(system.NewInvulnerableSystem())
	w.AddSystem(system.NewPlayerWeaponSystem(registry, pools))
	w.AddSystem(system.NewSpawnSystem(registry, rng))
	w.AddSystem(s.bossDirector)
	w.AddSystem(system.NewBossSystem(registry, pools, rng))
	w.AddSystem(system.NewEnemyAttackSystem(registry, pools))
	w.AddSystem(system.NewDifficultySystem(registry))
	w.AddSystem(system.NewMineSystem(registry, pools, rng))
	w.AddSystem(system.NewMovementSystem(pools))
	w.AddSystem(system.NewCollisionSystem(registry, pools, rng))
	w.AddSystem(system.NewTTLSystem())

	s.unsubs = append(s.unsubs, w.Bus().Subscribe(func(evt any) {
		if ex, ok := evt.(event.Explosion); ok {
			_, _ = entity.NewExplosion(w, ex.X, ex.Y, ex.Size)
		}
	}))
	if reporter != nil {
		s.unsubs = append(s.unsubs, w.Bus().Subscribe(func(evt any) {
			s.report(reporter, evt)
		}))
	}

	return s, nil
}

func (s *Session) report(reporter Reporter, evt any) {
	switch evt := evt.(type) {
	case event.LevelUp:
		reporter.LevelUp(evt.Level)
	case event.BossSpawned:
		reporter.BossSpawned(evt.Type)
	case event.BossDefeated:
		reporter.BossDefeated(evt.Type, evt.Score)
	case event.GameOver:
		reporter.GameOver(s.Stats())
	}
}

// Stats snapshots the session ledger.
func (s *Session) Stats() Stats {
	gs, ok := s.State()
	if !ok {
		return Stats{}
	}
	return Stats{
		Score:           gs.Score,
		Kills:           gs.Kills,
		Credits:         gs.Credits,
		Level:           gs.Level,
		SurvivalSeconds: gs.SurvivalFrames / common.TPS,
	}
}

// State returns the session ledger component.
func (s *Session) State() (*component.GameState, bool) {
	if s == nil || s.World == nil {
		return nil, false
	}
	e, ok := ecs.First(s.World, component.GameStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get[component.GameState](s.World, e, component.GameStateComponent.Kind())
}

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool {
	gs, ok := s.State()
	return ok && gs.GameOver
}

// Close releases every bus subscription the session created.
func (s *Session) Close() {
	if s == nil {
		return
	}
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	if s.bossDirector != nil {
		s.bossDirector.Close()
	}
	if s.gameState != nil {
		s.gameState.Close()
	}
	if s.World != nil {
		s.World.Bus().Reset()
	}
}
