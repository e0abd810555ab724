package component

// MineDirector accumulates the mine spawn timer. The interval lives on
// Difficulty since it shrinks with level.
type MineDirector struct {
	Timer int
}

var MineDirectorComponent = NewComponent[MineDirector]()
