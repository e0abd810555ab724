package system

import (
	"math/rand"
	"sort"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

// SpawnSystem runs the formation spawner. Each time the accumulated timer
// crosses the rolled interval it picks a formation, fills a random number
// of its slots with weighted enemy types, and re-rolls the next interval
// from the director's current bounds. Pausing freezes the timer in place.
type SpawnSystem struct {
	registry *configs.Registry
	rng      *rand.Rand
}

func NewSpawnSystem(registry *configs.Registry, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{registry: registry, rng: rng}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.rng == nil {
		return
	}
	director, ok := ecs.First(w, component.SpawnDirectorComponent.Kind())
	if !ok {
		return
	}
	sd, ok := ecs.Get[component.SpawnDirector](w, director, component.SpawnDirectorComponent.Kind())
	if !ok || sd.Paused {
		return
	}

	sd.Timer++
	if sd.Timer < sd.NextInterval {
		_ = ecs.Add(w, director, component.SpawnDirectorComponent.Kind(), sd)
		return
	}
	sd.Timer = 0
	sd.NextInterval = s.rollInterval(sd.MinInterval, sd.MaxInterval)
	_ = ecs.Add(w, director, component.SpawnDirectorComponent.Kind(), sd)

	s.spawnFormation(w)
}

func (s *SpawnSystem) rollInterval(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *SpawnSystem) spawnFormation(w *ecs.World) {
	keys := s.registry.FormationKeys
	if len(keys) == 0 {
		return
	}
	formation, ok := s.registry.Formation(keys[s.rng.Intn(len(keys))])
	if !ok {
		return
	}
	s.spawnWave(w, formation)
}

// spawnWave fills a centered contiguous run of the formation's slots. The
// anchor lands anywhere inside the screen margins; a slot whose offset
// still puts it past a margin is skipped without complaint.
func (s *SpawnSystem) spawnWave(w *ecs.World, formation configs.FormationType) {
	lo, hi := formation.MinShips, formation.MaxShips
	if hi <= 0 || hi > len(formation.Slots) {
		hi = len(formation.Slots)
	}
	if lo <= 0 {
		lo = hi
	}
	count := s.rollInterval(lo, hi)
	start := (len(formation.Slots) - count) / 2
	window := formation.Slots[start : start+count]

	tuning := s.registry.Tuning
	spacing := tuning.SlotSpacing
	margin := tuning.ScreenMargin
	loX := margin
	hiX := float64(common.BaseWidth) - margin
	cx := loX
	if hiX > loX {
		cx += s.rng.Float64() * (hiX - loX)
	}

	types := formation.Types
	if len(types) == 0 {
		types = tuning.DefaultTypes
	}

	mult := 1.0
	if director, ok := ecs.First(w, component.DifficultyComponent.Kind()); ok {
		if d, ok := ecs.Get[component.Difficulty](w, director, component.DifficultyComponent.Kind()); ok && d.Multiplier > 0 {
			mult = d.Multiplier
		}
	}

	now := currentFrame(w)
	for _, slot := range window {
		x := cx + slot[0]*spacing
		if x < margin || x > float64(common.BaseWidth)-margin {
			continue
		}
		y := -60 + slot[1]*spacing
		typeKey := s.weightedType(types)
		if _, err := entity.NewEnemy(w, s.registry, s.rng, typeKey, x, y, mult, now); err != nil {
			continue
		}
	}
}

// weightedType draws one enemy type from a weight table, iterating in
// sorted key order so equal seeds reproduce equal waves.
func (s *SpawnSystem) weightedType(types map[string]float64) string {
	keys := make([]string, 0, len(types))
	total := 0.0
	for k, weight := range types {
		if weight <= 0 {
			continue
		}
		keys = append(keys, k)
		total += weight
	}
	if len(keys) == 0 || total <= 0 {
		return s.registry.Tuning.DefaultEnemy
	}
	sort.Strings(keys)

	roll := s.rng.Float64() * total
	for _, k := range keys {
		roll -= types[k]
		if roll <= 0 {
			return k
		}
	}
	return keys[len(keys)-1]
}
