package component

// GameState is the session ledger, held by a singleton entity and mutated
// only by the game-state system consuming resolver-issued events.
type GameState struct {
	Frame          int
	Score          int
	Lives          int
	Level          int
	Kills          int
	Credits        int
	SurvivalFrames int
	GameOver       bool
}

var GameStateComponent = NewComponent[GameState]()
