// Command balance validates the config tables and samples the tuned random
// rolls (loot, spawn intervals, difficulty ramp) so table edits can be
// sanity-checked without playing a run.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
)

func main() {
	samples := flag.Int("samples", 100000, "Monte Carlo samples per table")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	registry, err := configs.LoadRegistry()
	if err != nil {
		log.Printf("config validation failed: %v", err)
		os.Exit(1)
	}
	fmt.Println("config tables OK")
	fmt.Printf("  %d enemies, %d projectiles, %d weapons, %d formations, %d powerups, %d bosses\n",
		len(registry.Enemies), len(registry.Projectiles), len(registry.Weapons),
		len(registry.Formations), len(registry.PowerUps), len(registry.Bosses))

	rng := rand.New(rand.NewSource(*seed))
	reportLoot(registry, rng, *samples)
	reportSpawn(registry, rng, *samples)
	reportDifficulty(registry)
}

// reportLoot samples each enemy's drop table and prints the observed
// per-powerup drop rates against the gating drop chance.
func reportLoot(registry *configs.Registry, rng *rand.Rand, samples int) {
	fmt.Printf("\nloot rates (%d kills per enemy, drop chance %.2f)\n", samples, registry.Tuning.DropChance)

	keys := make([]string, 0, len(registry.Enemies))
	for k := range registry.Enemies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		enemy := registry.Enemies[key]
		drops := map[string]int{}
		coins, credits := 0, 0
		for i := 0; i < samples; i++ {
			credits += rollCredits(rng, enemy)
			if rng.Float64() >= registry.Tuning.DropChance {
				continue
			}
			if len(enemy.Drops) == 0 {
				coins++
				continue
			}
			drops[weightedDrop(rng, enemy)]++
		}
		fmt.Printf("  %-10s avg credits %.2f", key, float64(credits)/float64(samples))
		if len(enemy.Drops) == 0 {
			fmt.Printf("  coins %.3f\n", rate(coins, samples))
			continue
		}
		dropKeys := make([]string, 0, len(drops))
		for k := range drops {
			dropKeys = append(dropKeys, k)
		}
		sort.Strings(dropKeys)
		for _, k := range dropKeys {
			fmt.Printf("  %s %.3f", k, rate(drops[k], samples))
		}
		fmt.Println()
	}
}

func rollCredits(rng *rand.Rand, enemy configs.EnemyType) int {
	if enemy.CreditsMax <= 0 {
		return 0
	}
	if enemy.CreditsMax <= enemy.CreditsMin {
		return enemy.CreditsMin
	}
	return enemy.CreditsMin + rng.Intn(enemy.CreditsMax-enemy.CreditsMin+1)
}

func weightedDrop(rng *rand.Rand, enemy configs.EnemyType) string {
	total := 0.0
	for _, d := range enemy.Drops {
		if d.Weight > 0 {
			total += d.Weight
		}
	}
	roll := rng.Float64() * total
	for _, d := range enemy.Drops {
		if d.Weight <= 0 {
			continue
		}
		roll -= d.Weight
		if roll <= 0 {
			return d.PowerUp
		}
	}
	return enemy.Drops[len(enemy.Drops)-1].PowerUp
}

// reportSpawn samples the spawn interval roll at level 1 and at the
// interval floors.
func reportSpawn(registry *configs.Registry, rng *rand.Rand, samples int) {
	t := registry.Tuning
	fmt.Printf("\nspawn interval (frames, %d rolls)\n", samples)
	fmt.Printf("  level 1: %s\n", intervalStats(rng, t.MinSpawnInterval, t.MaxSpawnInterval, samples))
	fmt.Printf("  floors:  %s\n", intervalStats(rng, t.MinIntervalFloor, t.MaxIntervalFloor, samples))
}

func intervalStats(rng *rand.Rand, lo, hi, samples int) string {
	if hi <= lo {
		return fmt.Sprintf("fixed %d", lo)
	}
	sum, min, max := 0, hi, lo
	for i := 0; i < samples; i++ {
		v := lo + rng.Intn(hi-lo+1)
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("avg %.1f (%.2fs), range [%d, %d]",
		float64(sum)/float64(samples), float64(sum)/float64(samples)/common.TPS, min, max)
}

// reportDifficulty prints the deterministic ramp: multiplier and interval
// bounds per level until both bounds bottom out.
func reportDifficulty(registry *configs.Registry) {
	t := registry.Tuning
	fmt.Println("\ndifficulty ramp")
	mult := 1.0
	lo, hi := t.MinSpawnInterval, t.MaxSpawnInterval
	mine := t.MineInterval
	for level := 1; ; level++ {
		fmt.Printf("  level %2d  x%.2f  spawn [%d, %d]  mine %d\n", level, mult, lo, hi, mine)
		if lo <= t.MinIntervalFloor && hi <= t.MaxIntervalFloor && mine <= t.MineIntervalFloor {
			break
		}
		if level >= 30 {
			break
		}
		mult += t.DifficultyStep
		lo = maxInt(lo-t.IntervalDecay, t.MinIntervalFloor)
		hi = maxInt(hi-t.IntervalDecay, t.MaxIntervalFloor)
		if hi < lo {
			hi = lo
		}
		mine = maxInt(mine-t.MineIntervalDecay, t.MineIntervalFloor)
	}
}

func rate(n, total int) float64 {
	return float64(n) / float64(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
