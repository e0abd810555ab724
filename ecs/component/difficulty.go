package component

// Difficulty is the level counter and the multipliers derived from it.
// Level only ever increases.
type Difficulty struct {
	Level        int
	Timer        int
	Interval     int // frames between level-ups
	Multiplier   float64
	MineInterval int // frames between mine spawns at this level

	// Paused freezes the level timer without resetting it. The boss
	// director sets it for the duration of an encounter.
	Paused bool
}

var DifficultyComponent = NewComponent[Difficulty]()
