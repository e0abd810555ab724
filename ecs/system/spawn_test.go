package system

import (
	"testing"

	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
)

func TestSpawnWaitsForInterval(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	sd := f.spawnDirector(t)
	sd.NextInterval = 3

	s.Update(f.w)
	s.Update(f.w)
	if got := f.countEnemies(); got != 0 {
		t.Fatalf("expected no enemies before the interval elapses, got %d", got)
	}

	s.Update(f.w)
	if got := f.countEnemies(); got == 0 {
		t.Fatal("expected a formation after the interval elapses")
	}

	sd = f.spawnDirector(t)
	if sd.Timer != 0 {
		t.Fatalf("timer should reset after a spawn, got %d", sd.Timer)
	}
	if sd.NextInterval < sd.MinInterval || sd.NextInterval > sd.MaxInterval {
		t.Fatalf("re-rolled interval %d outside [%d, %d]", sd.NextInterval, sd.MinInterval, sd.MaxInterval)
	}
}

func TestSpawnPausedFreezesTimer(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	sd := f.spawnDirector(t)
	sd.NextInterval = 2
	sd.Paused = true

	for i := 0; i < 10; i++ {
		s.Update(f.w)
	}
	sd = f.spawnDirector(t)
	if sd.Timer != 0 {
		t.Fatalf("paused spawner should not accumulate, timer %d", sd.Timer)
	}
	if got := f.countEnemies(); got != 0 {
		t.Fatalf("paused spawner should not spawn, got %d enemies", got)
	}

	// Unpausing resumes from where the timer froze.
	sd.Paused = false
	s.Update(f.w)
	s.Update(f.w)
	if got := f.countEnemies(); got == 0 {
		t.Fatal("expected a spawn after unpausing")
	}
}

func TestSpawnWaveFillsCenteredRun(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	// Slots stack vertically so the spawned rows identify which were picked.
	formation := configs.FormationType{
		Key:      "stack",
		Slots:    [][2]float64{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
		MinShips: 3,
		MaxShips: 3,
	}
	s.spawnWave(f.w, formation)

	spacing := f.reg.Tuning.SlotSpacing
	want := map[float64]bool{
		-60 + 1*spacing: true,
		-60 + 2*spacing: true,
		-60 + 3*spacing: true,
	}
	got := map[float64]bool{}
	ecs.ForEach2(f.w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Enemy, tr *component.Transform) {
		got[tr.Y] = true
	})
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %v", len(want), got)
	}
	for y := range want {
		if !got[y] {
			t.Fatalf("middle run should fill row y=%v, got %v", y, got)
		}
	}
}

func TestSpawnWaveSkipsOffscreenSlots(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	// The outer slots land far past the margins wherever the anchor falls.
	formation := configs.FormationType{
		Key:      "wide",
		Slots:    [][2]float64{{-100, 0}, {0, 0}, {100, 0}},
		MinShips: 3,
		MaxShips: 3,
	}
	s.spawnWave(f.w, formation)

	if got := f.countEnemies(); got != 1 {
		t.Fatalf("expected only the center slot to spawn, got %d", got)
	}
}

func TestRollIntervalBounds(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	if got := s.rollInterval(5, 5); got != 5 {
		t.Fatalf("degenerate range should return lo, got %d", got)
	}
	if got := s.rollInterval(9, 4); got != 9 {
		t.Fatalf("inverted range should return lo, got %d", got)
	}
	for i := 0; i < 200; i++ {
		got := s.rollInterval(10, 20)
		if got < 10 || got > 20 {
			t.Fatalf("roll %d outside [10, 20]", got)
		}
	}
}

func TestWeightedTypeFallsBackToDefault(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	if got := s.weightedType(nil); got != f.reg.Tuning.DefaultEnemy {
		t.Fatalf("nil table should pick the default enemy, got %q", got)
	}
	if got := s.weightedType(map[string]float64{"fighter": 0}); got != f.reg.Tuning.DefaultEnemy {
		t.Fatalf("zero-weight table should pick the default enemy, got %q", got)
	}
	if got := s.weightedType(map[string]float64{"striker": 1}); got != "striker" {
		t.Fatalf("single-entry table should pick its entry, got %q", got)
	}
}

func TestWeightedTypeFrequencies(t *testing.T) {
	f := newFixture(t)
	s := NewSpawnSystem(f.reg, f.rng)

	table := map[string]float64{"fighter": 0.5, "striker": 0.3, "drone": 0.2}
	const samples = 20000
	counts := map[string]int{}
	for i := 0; i < samples; i++ {
		counts[s.weightedType(table)]++
	}

	for key, want := range table {
		got := float64(counts[key]) / samples
		if got < want-0.02 || got > want+0.02 {
			t.Errorf("%s: frequency %.3f outside %.2f±0.02", key, got, want)
		}
	}
}

func TestWeightedTypeDeterministicPerSeed(t *testing.T) {
	table := map[string]float64{"fighter": 0.5, "striker": 0.3, "drone": 0.2}

	draw := func() []string {
		f := newFixture(t)
		s := NewSpawnSystem(f.reg, f.rng)
		out := make([]string, 20)
		for i := range out {
			out[i] = s.weightedType(table)
		}
		return out
	}

	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("equal seeds diverged at draw %d: %q vs %q", i, a[i], b[i])
		}
	}
}
