package component

// Player holds the player ship's movement stats. MoveSpeed is the
// effective per-frame speed after buffs; BaseSpeed is what buffs restore.
type Player struct {
	MoveSpeed float64
	BaseSpeed float64
	Width     float64
	Height    float64
}

var PlayerComponent = NewComponent[Player]()
