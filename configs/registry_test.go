package configs

import (
	"testing"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs/component"
)

func TestLoadRegistry(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if len(r.Enemies) == 0 || len(r.Bosses) == 0 || len(r.Weapons) == 0 {
		t.Fatal("expected populated tables")
	}
	if _, ok := r.Enemies[r.Tuning.DefaultEnemy]; !ok {
		t.Fatalf("default enemy %q missing", r.Tuning.DefaultEnemy)
	}
	if _, ok := r.Weapons[r.Tuning.PlayerWeapon]; !ok {
		t.Fatalf("player weapon %q missing", r.Tuning.PlayerWeapon)
	}
	if r.Tuning.MinSpawnInterval <= 0 || r.Tuning.MaxSpawnInterval < r.Tuning.MinSpawnInterval {
		t.Fatalf("bad spawn interval bounds [%d, %d]", r.Tuning.MinSpawnInterval, r.Tuning.MaxSpawnInterval)
	}
}

func TestFrameResolution(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	// Seconds in the tables arrive as frames at the fixed tick rate.
	fighter := r.Enemies["fighter"]
	if want := common.SecondsToFrames(2.4); fighter.FireInterval != want {
		t.Fatalf("fighter fire interval: want %d frames, got %d", want, fighter.FireInterval)
	}
	if r.Tuning.DifficultyInterval != 30*common.TPS {
		t.Fatalf("difficulty interval: want %d, got %d", 30*common.TPS, r.Tuning.DifficultyInterval)
	}
}

func TestProjectileDirectionResolution(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := r.Projectiles["player_shot"].Direction; got != -1 {
		t.Fatalf("player_shot should travel up, direction %d", got)
	}
	if got := r.Projectiles["enemy_shot"].Direction; got != 1 {
		t.Fatalf("enemy_shot should travel down, direction %d", got)
	}
}

func TestBossContactDamageResolution(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := r.Bosses["warden"].ContactDamage; got != 2 {
		t.Fatalf("warden contact damage: want 2, got %d", got)
	}

	// An entry without contact damage falls back to one.
	b := resolveBoss("x", BossSpec{Health: 10, Phase2Threshold: 0.6, Phase3Threshold: 0.3})
	if b.ContactDamage != 1 {
		t.Fatalf("missing contact damage should default to 1, got %d", b.ContactDamage)
	}
}

func TestBossAttackPriorityOrder(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	for key, boss := range r.Bosses {
		for i := 1; i < len(boss.Attacks); i++ {
			if boss.Attacks[i-1].Kind > boss.Attacks[i].Kind {
				t.Fatalf("boss %s attacks out of priority order at %d: %v > %v",
					key, i, boss.Attacks[i-1].Kind, boss.Attacks[i].Kind)
			}
		}
		for _, a := range boss.Attacks {
			if a.Kind == component.BossAttackSummon && a.MinPhase < 2 {
				t.Fatalf("boss %s summon attack must be phase 2+, got %d", key, a.MinPhase)
			}
			if a.Cooldown <= 0 {
				t.Fatalf("boss %s attack %v has no cooldown", key, a.Kind)
			}
		}
		if boss.Phase3Threshold >= boss.Phase2Threshold {
			t.Fatalf("boss %s thresholds must decrease", key)
		}
	}
}

func TestEnemyOrDefaultFallback(t *testing.T) {
	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	got := r.EnemyOrDefault("no_such_enemy")
	if got.Key != r.Tuning.DefaultEnemy {
		t.Fatalf("expected fallback to %q, got %q", r.Tuning.DefaultEnemy, got.Key)
	}
	known := r.EnemyOrDefault("striker")
	if known.Key != "striker" {
		t.Fatalf("known key should resolve to itself, got %q", known.Key)
	}
}

func TestValidateCatchesBadReferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Registry)
	}{
		{"weapon_projectile", func(r *Registry) {
			w := r.Weapons["blaster"]
			w.Projectile = "missing"
			r.Weapons["blaster"] = w
		}},
		{"boss_summon", func(r *Registry) {
			b := r.Bosses["warden"]
			b.Summons = append([]string{}, "missing")
			r.Bosses["warden"] = b
		}},
		{"boss_order", func(r *Registry) {
			r.Tuning.BossOrder = []string{"missing"}
		}},
		{"formation_enemy", func(r *Registry) {
			f := r.Formations["vee"]
			f.Types = map[string]float64{"missing": 1}
			r.Formations["vee"] = f
		}},
		{"player_weapon", func(r *Registry) {
			r.Tuning.PlayerWeapon = "missing"
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := LoadRegistry()
			if err != nil {
				t.Fatal(err)
			}
			c.mutate(r)
			if err := r.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParserFallbacks(t *testing.T) {
	if got := parseMovement("x", "warp"); got != component.MoveStraight {
		t.Fatalf("unknown movement should fall back to straight, got %v", got)
	}
	if got := parseAttack("x", "laser"); got != component.AttackNone {
		t.Fatalf("unknown attack should fall back to none, got %v", got)
	}
	if got := parseBossAttackKind("x", "nova"); got != component.BossAttackSpray {
		t.Fatalf("unknown boss attack should fall back to spray, got %v", got)
	}
	if got := parseFirePattern("x", "helix"); got != FireSingle {
		t.Fatalf("unknown fire pattern should fall back to single, got %v", got)
	}
}
