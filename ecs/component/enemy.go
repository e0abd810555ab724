package component

// MovementPattern selects how an enemy steers while descending.
type MovementPattern uint8

const (
	MoveStraight MovementPattern = iota
	MoveSine
	MoveZigzag
	MoveDive
)

// AttackPattern selects how an enemy fires.
type AttackPattern uint8

const (
	AttackNone AttackPattern = iota
	AttackBasic
	AttackAimed
	AttackBurst
)

// DropEntry is one weighted row of an enemy's power-up drop table.
type DropEntry struct {
	PowerUp string
	Weight  float64
}

// Enemy carries the stats resolved from the enemy's config entry at
// creation time. Difficulty scaling is baked in here once; later
// multiplier changes never touch an already-spawned enemy.
type Enemy struct {
	Type            string
	Score           int
	Speed           float64
	FireInterval    int // frames, already difficulty-scaled and floored
	CollisionDamage int
	Projectile      string

	Movement  MovementPattern
	Amplitude float64
	Frequency float64
	BaseX     float64 // anchor for sine/zigzag lateral offsets
	Phase     float64 // per-instance movement phase offset
	Diving    bool

	Attack     AttackPattern
	BurstCount int
	LastFired  int
	SpawnFrame int

	CreditsMin int
	CreditsMax int
	Drops      []DropEntry
}

var EnemyComponent = NewComponent[Enemy]()
