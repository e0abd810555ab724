package component

// Mine is a pooled proximity mine. The blast radius is intentionally
// larger than the trigger radius: detonation is decided at the trigger
// distance but damage reaches the full blast distance.
type Mine struct {
	Active        bool
	HitsLeft      int
	Damage        int
	TriggerRadius float64
	BlastRadius   float64
}

var MineComponent = NewComponent[Mine]()
