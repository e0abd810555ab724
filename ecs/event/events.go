// Package event defines the typed payloads carried on the session bus.
// The collision resolver and boss systems publish; the game-state ledger
// and the HUD subscribe. Publishing is the only coupling between the
// simulation core and its consumers.
package event

// Score adds points to the session score.
type Score struct {
	Points int
}

// EnemyKilled fires once per enemy death.
type EnemyKilled struct {
	Type string
	X    float64
	Y    float64
}

// Credits adds currency to the session total.
type Credits struct {
	Amount int
}

// LifeLost fires when player health reaches zero; the ledger decides what
// losing a life means (respawn vs game over).
type LifeLost struct{}

// LifeAwarded grants an extra life, e.g. as a boss defeat reward.
type LifeAwarded struct{}

// LevelUp fires when the difficulty level increases.
type LevelUp struct {
	Level int
}

// BossSpawned fires when an encounter begins.
type BossSpawned struct {
	Type string
}

// BossDefeated is the encounter's only externally visible completion
// signal, emitted exactly once after the death sequence finishes.
type BossDefeated struct {
	Type  string
	Score int
}

// BossSummon requests reinforcement spawns; the boss director relays it
// into concrete edge spawns.
type BossSummon struct {
	EnemyType string
	Count     int
}

// Explosion asks the visual collaborator to play an explosion. The core
// never consumes a result from it.
type Explosion struct {
	X    float64
	Y    float64
	Size float64
}

// GameOver fires when the last life is lost.
type GameOver struct{}
