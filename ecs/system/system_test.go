package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

// fixture is a minimal session: world, physics, pools, and the three
// singleton entities every system expects to find.
type fixture struct {
	w      *ecs.World
	reg    *configs.Registry
	pools  *Pools
	rng    *rand.Rand
	player ecs.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg, err := configs.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	rng := rand.New(rand.NewSource(1))

	pools := &Pools{}
	if pools.PlayerBullets, err = ecs.NewPool(w, 8, entity.BulletSlotBuilder(true)); err != nil {
		t.Fatalf("player bullet pool: %v", err)
	}
	if pools.EnemyBullets, err = ecs.NewPool(w, 16, entity.BulletSlotBuilder(false)); err != nil {
		t.Fatalf("enemy bullet pool: %v", err)
	}
	if pools.Mines, err = ecs.NewPool(w, 4, entity.MineSlotBuilder(reg)); err != nil {
		t.Fatalf("mine pool: %v", err)
	}
	if pools.PowerUps, err = ecs.NewPool(w, 4, entity.PowerUpSlotBuilder()); err != nil {
		t.Fatalf("powerup pool: %v", err)
	}
	if pools.Coins, err = ecs.NewPool(w, 8, entity.CoinSlotBuilder()); err != nil {
		t.Fatalf("coin pool: %v", err)
	}

	if _, err := entity.NewGameState(w, reg); err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	if _, err := entity.NewDirector(w, reg); err != nil {
		t.Fatalf("NewDirector: %v", err)
	}
	player, err := entity.NewPlayer(w, reg)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	return &fixture{w: w, reg: reg, pools: pools, rng: rng, player: player}
}

func (f *fixture) setFrame(t *testing.T, frame int) {
	t.Helper()
	e, ok := ecs.First(f.w, component.GameStateComponent.Kind())
	if !ok {
		t.Fatal("no game state entity")
	}
	gs, ok := ecs.Get[component.GameState](f.w, e, component.GameStateComponent.Kind())
	if !ok {
		t.Fatal("no game state component")
	}
	gs.Frame = frame
}

func (f *fixture) gameState(t *testing.T) *component.GameState {
	t.Helper()
	e, ok := ecs.First(f.w, component.GameStateComponent.Kind())
	if !ok {
		t.Fatal("no game state entity")
	}
	gs, ok := ecs.Get[component.GameState](f.w, e, component.GameStateComponent.Kind())
	if !ok {
		t.Fatal("no game state component")
	}
	return gs
}

func (f *fixture) spawnDirector(t *testing.T) *component.SpawnDirector {
	t.Helper()
	e, ok := ecs.First(f.w, component.SpawnDirectorComponent.Kind())
	if !ok {
		t.Fatal("no director entity")
	}
	sd, ok := ecs.Get[component.SpawnDirector](f.w, e, component.SpawnDirectorComponent.Kind())
	if !ok {
		t.Fatal("no spawn director component")
	}
	return sd
}

func (f *fixture) difficulty(t *testing.T) *component.Difficulty {
	t.Helper()
	e, ok := ecs.First(f.w, component.DifficultyComponent.Kind())
	if !ok {
		t.Fatal("no director entity")
	}
	d, ok := ecs.Get[component.Difficulty](f.w, e, component.DifficultyComponent.Kind())
	if !ok {
		t.Fatal("no difficulty component")
	}
	return d
}

// captureEvents records everything the bus delivers until the test ends.
// Tests flush with DispatchQueued after driving the system under test.
func (f *fixture) captureEvents(t *testing.T) *[]any {
	t.Helper()
	var got []any
	unsub := f.w.Bus().Subscribe(func(evt any) { got = append(got, evt) })
	t.Cleanup(unsub)
	return &got
}

func (f *fixture) countEnemies() int {
	count := 0
	ecs.ForEach(f.w, component.EnemyComponent.Kind(), func(ecs.Entity, *component.Enemy) {
		count++
	})
	return count
}
