package configs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpec unmarshals one config table into its spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("configs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("configs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type EnemySpec struct {
	Health          int        `yaml:"health"`
	Speed           float64    `yaml:"speed"`
	Score           int        `yaml:"score"`
	FireInterval    float64    `yaml:"fire_interval"` // seconds
	CollisionDamage int        `yaml:"collision_damage"`
	Movement        string     `yaml:"movement"`
	Amplitude       float64    `yaml:"amplitude"`
	Frequency       float64    `yaml:"frequency"`
	Attack          string     `yaml:"attack"`
	BurstCount      int        `yaml:"burst_count"`
	Projectile      string     `yaml:"projectile"`
	Size            []float64  `yaml:"size"`
	Tint            *YAMLColor `yaml:"tint"`
	Loot            LootSpec   `yaml:"loot"`
}

type LootSpec struct {
	Credits []int      `yaml:"credits"` // [min, max]
	Drops   []DropSpec `yaml:"drops"`
}

type DropSpec struct {
	PowerUp string  `yaml:"powerup"`
	Weight  float64 `yaml:"weight"`
}

type ProjectileSpec struct {
	Speed     float64    `yaml:"speed"`
	Direction int        `yaml:"direction"` // ±1 along Y
	Damage    int        `yaml:"damage"`
	Piercing  bool       `yaml:"piercing"`
	Radius    float64    `yaml:"radius"`
	Tint      *YAMLColor `yaml:"tint"`
}

type WeaponSpec struct {
	Projectile   string            `yaml:"projectile"`
	FireInterval float64           `yaml:"fire_interval"` // seconds
	Levels       []WeaponLevelSpec `yaml:"levels"`
}

type WeaponLevelSpec struct {
	Pattern  string  `yaml:"pattern"`
	Bullets  int     `yaml:"bullets"`
	RateMult float64 `yaml:"rate_mult"`
	Spread   float64 `yaml:"spread"` // degrees, spread pattern
	Offset   float64 `yaml:"offset"` // lateral spacing, dual pattern
}

type FormationSpec struct {
	Slots    [][]float64        `yaml:"slots"` // [x, y] in spacing units
	MinShips int                `yaml:"min_ships"`
	MaxShips int                `yaml:"max_ships"`
	Types    map[string]float64 `yaml:"types"`
}

type PowerUpSpec struct {
	Label  string            `yaml:"label"`
	Tint   *YAMLColor        `yaml:"tint"`
	Effect PowerUpEffectSpec `yaml:"effect"`
}

// PowerUpEffectSpec carries exactly one effect; Validate enforces that.
type PowerUpEffectSpec struct {
	Heal     int     `yaml:"heal"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"` // seconds, speed effect
	Shield   float64 `yaml:"shield"`   // seconds
	Weapon   string  `yaml:"weapon"`
}

type BossSpec struct {
	Health          int                `yaml:"health"`
	Score           int                `yaml:"score"`
	Speed           float64            `yaml:"speed"`
	EntrySpeed      float64            `yaml:"entry_speed"`
	MovementRange   float64            `yaml:"movement_range"`
	TargetY         float64            `yaml:"target_y"`
	DeathSeconds    float64            `yaml:"death_seconds"`
	Phase2Threshold float64            `yaml:"phase2_threshold"`
	Phase3Threshold float64            `yaml:"phase3_threshold"`
	Phase3SpeedMult float64            `yaml:"phase3_speed_mult"`
	ContactDamage   int                `yaml:"contact_damage"`
	Projectile      string             `yaml:"projectile"`
	Size            []float64          `yaml:"size"`
	Tints           []*YAMLColor       `yaml:"tints"` // one per phase
	Summons         []string           `yaml:"summons"`
	CooldownMults   map[string]float64 `yaml:"cooldown_mults"` // by attack kind
	Attacks         []BossAttackSpec   `yaml:"attacks"`
	Phase3Attacks   []BossAttackSpec   `yaml:"phase3_attacks"`
}

type BossAttackSpec struct {
	Kind     string  `yaml:"kind"`
	Bullets  int     `yaml:"bullets"`
	Arc      float64 `yaml:"arc"`      // degrees, spray
	Spread   float64 `yaml:"spread"`   // world units, aimed
	Cooldown float64 `yaml:"cooldown"` // seconds
	Script   string  `yaml:"script"`
	Type     string  `yaml:"type"` // summon enemy type
	Count    int     `yaml:"count"`
}

type TuningSpec struct {
	ScreenMargin float64 `yaml:"screen_margin"`

	Spawn struct {
		MinInterval  float64            `yaml:"min_interval"` // seconds
		MaxInterval  float64            `yaml:"max_interval"`
		Spacing      float64            `yaml:"spacing"` // formation slot unit
		DefaultTypes map[string]float64 `yaml:"default_types"`
	} `yaml:"spawn"`

	Difficulty struct {
		Interval            float64 `yaml:"interval"` // seconds per level
		Step                float64 `yaml:"step"`
		IntervalDecay       float64 `yaml:"interval_decay"` // seconds removed per level
		MinIntervalFloor    float64 `yaml:"min_interval_floor"`
		MaxIntervalFloor    float64 `yaml:"max_interval_floor"`
		MinEnemyFireSeconds float64 `yaml:"min_enemy_fire_interval"`
	} `yaml:"difficulty"`

	Mines struct {
		Interval      float64 `yaml:"interval"` // seconds
		IntervalDecay float64 `yaml:"interval_decay"`
		IntervalFloor float64 `yaml:"interval_floor"`
		Hits          int     `yaml:"hits"`
		Damage        int     `yaml:"damage"`
		TriggerRadius float64 `yaml:"trigger_radius"`
		BlastRadius   float64 `yaml:"blast_radius"`
		Speed         float64 `yaml:"speed"`
	} `yaml:"mines"`

	Boss struct {
		FirstDelay float64  `yaml:"first_delay"` // seconds
		Interval   float64  `yaml:"interval"`
		Grace      float64  `yaml:"grace"`
		Order      []string `yaml:"order"`
	} `yaml:"boss"`

	Player struct {
		Health        int     `yaml:"health"`
		Lives         int     `yaml:"lives"`
		Speed         float64 `yaml:"speed"`
		Weapon        string  `yaml:"weapon"`
		ContactInvuln float64 `yaml:"contact_invuln"` // seconds
	} `yaml:"player"`

	Drops struct {
		Chance    float64 `yaml:"chance"`
		CoinValue int     `yaml:"coin_value"`
	} `yaml:"drops"`

	Pools struct {
		PlayerBullets int `yaml:"player_bullets"`
		EnemyBullets  int `yaml:"enemy_bullets"`
		Mines         int `yaml:"mines"`
		PowerUps      int `yaml:"powerups"`
		Coins         int `yaml:"coins"`
	} `yaml:"pools"`

	DefaultEnemy string `yaml:"default_enemy"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
