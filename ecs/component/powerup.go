package component

// PowerUpEffect discriminates what collecting a power-up does.
type PowerUpEffect uint8

const (
	EffectHeal PowerUpEffect = iota
	EffectSpeed
	EffectShield
	EffectWeapon
)

// PowerUp is a pooled collectible. Active doubles as the idempotence
// guard: collection flips it before applying the effect, so repeated
// overlap callbacks within one frame apply the effect exactly once.
type PowerUp struct {
	Active bool
	Type   string

	Effect    PowerUpEffect
	Heal      int
	SpeedMult float64
	Duration  int // frames, for speed and shield effects
	Weapon    string
}

var PowerUpComponent = NewComponent[PowerUp]()
