package component

// SpawnDirector is the formation spawner's state. Pausing gates spawning
// without resetting the accumulated timer. Intervals are frames.
type SpawnDirector struct {
	Paused       bool
	Timer        int
	NextInterval int
	MinInterval  int
	MaxInterval  int
}

var SpawnDirectorComponent = NewComponent[SpawnDirector]()
