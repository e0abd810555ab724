package component

// Bullet is a pooled projectile slot. Inactive slots keep the component
// but are skipped by every system until re-acquired.
type Bullet struct {
	Active     bool
	FromPlayer bool
	Damage     int
	Piercing   bool
}

var BulletComponent = NewComponent[Bullet]()
