package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image   *ebiten.Image
	OriginX float64
	OriginY float64
	// Tint multiplies the image color; the zero value means no tint.
	Tint   color.Color
	Hidden bool
}

var SpriteComponent = NewComponent[Sprite]()
