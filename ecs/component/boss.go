package component

import "image/color"

// BossState is the encounter state machine position.
type BossState uint8

const (
	BossEntering BossState = iota
	BossPatrolling
	BossDying
)

// BossAttackKind identifies one attack strategy. The declaration order is
// also the fixed selection priority: spray, aimed, summon, ring, script.
type BossAttackKind uint8

const (
	BossAttackSpray BossAttackKind = iota
	BossAttackAimed
	BossAttackSummon
	BossAttackRing
	BossAttackScript
)

func (k BossAttackKind) String() string {
	switch k {
	case BossAttackSpray:
		return "spray"
	case BossAttackAimed:
		return "aimed"
	case BossAttackSummon:
		return "summon"
	case BossAttackRing:
		return "ring"
	case BossAttackScript:
		return "script"
	}
	return "unknown"
}

// BossAttack is one resolved attack entry. MinPhase gates eligibility
// (summons require phase 2, phase-3-only attacks carry MinPhase 3).
type BossAttack struct {
	Kind        BossAttackKind
	MinPhase    int
	Bullets     int
	ArcDegrees  float64 // spray fan width, centered downward
	SpreadX     float64 // aimed lateral spread in world units
	Cooldown    int     // base frames between uses
	Script      string  // tengo script name for scripted attacks
	SummonType  string
	SummonCount int
}

// Boss carries the stats resolved from the boss's config entry. Attacks
// are pre-sorted into selection priority order at resolution time.
type Boss struct {
	Type            string
	Score           int
	EntrySpeed      float64
	PatrolSpeed     float64
	MovementRange   float64
	CenterX         float64
	TargetY         float64
	Phase2Threshold float64 // health ratio at or below enters phase 2
	Phase3Threshold float64
	Phase3SpeedMult float64 // <1, cooldown scale while in phase 3
	ContactDamage   int
	DeathFrames     int
	Attacks         []BossAttack
	Summons         []string
	PhaseTints      [3]color.Color
}

// BossRuntime is the mutable encounter state. Phase is monotonically
// non-decreasing for the encounter's lifetime; Dying is terminal and
// suppresses further damage and attacks.
type BossRuntime struct {
	State      BossState
	Phase      int // 1..3
	DirX       float64
	LastFired  []int // parallel to Boss.Attacks, session frame of last use
	Dying      bool
	DeathFrame int // session frame at which the death sequence completes
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()
