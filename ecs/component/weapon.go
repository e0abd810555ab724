package component

// Weapon is the player's current weapon selection and upgrade level.
// LastFired is the session frame of the most recent shot, compared with >=
// against the level's scaled fire interval.
type Weapon struct {
	Key       string
	Level     int
	LastFired int
}

var WeaponComponent = NewComponent[Weapon]()
