package system

import "github.com/milk9111/starblitz/ecs"

// Pools bundles the session's fixed-capacity entity pools. One instance is
// shared by every system that spawns or releases pooled entities.
type Pools struct {
	PlayerBullets *ecs.Pool
	EnemyBullets  *ecs.Pool
	Mines         *ecs.Pool
	PowerUps      *ecs.Pool
	Coins         *ecs.Pool
}
