package animation

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// LerpColor interpolates from a to b in linear RGB and re-encodes to sRGB.
// Alpha is interpolated linearly. Equal endpoints return a unchanged.
func LerpColor(a, b Color, t float64) Color {
	if a == b || t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	c := ca.BlendLinearRgb(cb, t)
	return Color{R: c.R, G: c.G, B: c.B, A: a.A + (b.A-a.A)*t}
}

// Luminance returns the relative luminance of c.
func (c Color) Luminance() float64 {
	_, y, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Xyz()
	return y
}

// NRGBA converts c to 8-bit channels, multiplying alpha by opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A * opacity),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
