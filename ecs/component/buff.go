package component

// Buff tracks timed power-up effects on the player. A zero frame count
// means the effect is inactive.
type Buff struct {
	SpeedFrames  int
	SpeedMult    float64
	ShieldFrames int
}

var BuffComponent = NewComponent[Buff]()
