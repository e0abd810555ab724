// Package assets builds the game's sprites procedurally: every entity is
// a tinted shape rendered once into a cached image. There is no binary
// asset pipeline; config tints drive the palette.
package assets

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var cache = map[string]*ebiten.Image{}

func cached(key string, build func() *ebiten.Image) *ebiten.Image {
	if img, ok := cache[key]; ok {
		return img
	}
	img := build()
	cache[key] = img
	return img
}

func rgba(c color.Color) (uint32, uint32, uint32, uint32) {
	if c == nil {
		c = color.White
	}
	r, g, b, a := c.RGBA()
	return r >> 8, g >> 8, b >> 8, a >> 8
}

func key(name string, w, h float64, c color.Color) string {
	r, g, b, a := rgba(c)
	return fmt.Sprintf("%s:%gx%g:%02x%02x%02x%02x", name, w, h, r, g, b, a)
}

// Ship renders a pointed hull: a filled body with a nose block. Up is the
// player orientation; enemies use Down.
func Ship(w, h float64, tint color.Color, up bool) *ebiten.Image {
	name := "ship_down"
	if up {
		name = "ship_up"
	}
	return cached(key(name, w, h, tint), func() *ebiten.Image {
		img := ebiten.NewImage(int(w), int(h))
		fw, fh := float32(w), float32(h)
		vector.DrawFilledRect(img, fw*0.125, fh*0.35, fw*0.75, fh*0.5, tint, false)
		if up {
			vector.DrawFilledRect(img, fw*0.375, 0, fw*0.25, fh*0.45, tint, false)
			vector.DrawFilledRect(img, 0, fh*0.6, fw, fh*0.25, tint, false)
		} else {
			vector.DrawFilledRect(img, fw*0.375, fh*0.55, fw*0.25, fh*0.45, tint, false)
			vector.DrawFilledRect(img, 0, fh*0.15, fw, fh*0.25, tint, false)
		}
		vector.StrokeRect(img, 0.5, 0.5, fw-1, fh-1, 1, dim(tint), false)
		return img
	})
}

// Hull renders a wide boss silhouette.
func Hull(w, h float64, tint color.Color) *ebiten.Image {
	return cached(key("hull", w, h, tint), func() *ebiten.Image {
		img := ebiten.NewImage(int(w), int(h))
		fw, fh := float32(w), float32(h)
		vector.DrawFilledRect(img, 0, fh*0.25, fw, fh*0.5, tint, false)
		vector.DrawFilledRect(img, fw*0.2, 0, fw*0.6, fh, tint, false)
		vector.DrawFilledCircle(img, fw*0.5, fh*0.55, fh*0.3, dim(tint), false)
		return img
	})
}

// Orb renders a filled circle, used for bullets and mines.
func Orb(radius float64, tint color.Color) *ebiten.Image {
	return cached(key("orb", radius, radius, tint), func() *ebiten.Image {
		size := int(radius*2) + 2
		img := ebiten.NewImage(size, size)
		c := float32(size) / 2
		vector.DrawFilledCircle(img, c, c, float32(radius), tint, true)
		return img
	})
}

// Spiked renders a circle with stub spikes, used for mines.
func Spiked(radius float64, tint color.Color) *ebiten.Image {
	return cached(key("spiked", radius, radius, tint), func() *ebiten.Image {
		size := int(radius*2) + 6
		img := ebiten.NewImage(size, size)
		c := float32(size) / 2
		r := float32(radius)
		vector.DrawFilledRect(img, c-1, 0, 2, float32(size), tint, false)
		vector.DrawFilledRect(img, 0, c-1, float32(size), 2, tint, false)
		vector.DrawFilledCircle(img, c, c, r, tint, true)
		vector.DrawFilledCircle(img, c, c, r*0.45, dim(tint), true)
		return img
	})
}

// Crate renders a square collectible with an outline.
func Crate(size float64, tint color.Color) *ebiten.Image {
	return cached(key("crate", size, size, tint), func() *ebiten.Image {
		img := ebiten.NewImage(int(size), int(size))
		s := float32(size)
		vector.DrawFilledRect(img, 0, 0, s, s, tint, false)
		vector.StrokeRect(img, 0.5, 0.5, s-1, s-1, 1.5, color.White, false)
		return img
	})
}

// Star renders the tiny background starfield dot.
func Star() *ebiten.Image {
	return cached("star", func() *ebiten.Image {
		img := ebiten.NewImage(2, 2)
		img.Fill(color.NRGBA{R: 200, G: 200, B: 220, A: 255})
		return img
	})
}

func dim(c color.Color) color.Color {
	r, g, b, a := rgba(c)
	return color.NRGBA{R: uint8(r / 2), G: uint8(g / 2), B: uint8(b / 2), A: uint8(a)}
}
