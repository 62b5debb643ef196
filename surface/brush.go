// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image/color"
	"math"

	"github.com/gogpu/gg-lottie/geom"
)

var black = color.NRGBA{A: 255}

// Brush is a paint source: a solid color or a gradient.
// Gradient geometry is given in user space.
type Brush interface {
	// ColorAt returns the straight-alpha color at the user space point p.
	ColorAt(p geom.Point) color.NRGBA

	isBrush()
}

// Solid paints a single color.
type Solid struct {
	Color color.NRGBA
}

// ColorAt implements Brush.
func (s Solid) ColorAt(geom.Point) color.NRGBA { return s.Color }

func (Solid) isBrush() {}

// GradientStop is a color at an offset in [0, 1] along a gradient.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient varies color along the line from Start to End.
// Colors are padded beyond both ends.
type LinearGradient struct {
	Start, End geom.Point
	Stops      []GradientStop
}

// ColorAt implements Brush.
func (g *LinearGradient) ColorAt(p geom.Point) color.NRGBA {
	d := g.End.Sub(g.Start)
	l2 := d.LengthSquared()
	if l2 == 0 {
		return stopColor(g.Stops, 1)
	}
	return stopColor(g.Stops, p.Sub(g.Start).Dot(d)/l2)
}

func (*LinearGradient) isBrush() {}

// RadialGradient varies color with the distance from Center, out to Radius.
// Focal moves the point where the gradient starts; it equals Center for a
// plain radial gradient.
type RadialGradient struct {
	Center geom.Point
	Focal  geom.Point
	Radius float64
	Stops  []GradientStop
}

// ColorAt implements Brush.
func (g *RadialGradient) ColorAt(p geom.Point) color.NRGBA {
	if g.Radius <= 0 {
		return stopColor(g.Stops, 1)
	}
	// Find the t for which p lies on the circle centered at
	// Focal + t*(Center-Focal) with radius t*Radius.
	d := p.Sub(g.Focal)
	e := g.Center.Sub(g.Focal)
	a := e.LengthSquared() - g.Radius*g.Radius
	b := d.Dot(e)
	c := d.LengthSquared()

	var t float64
	if math.Abs(a) < 1e-9 {
		if b == 0 {
			return stopColor(g.Stops, 1)
		}
		t = c / (2 * b)
	} else {
		disc := b*b - a*c
		if disc < 0 {
			return stopColor(g.Stops, 1)
		}
		sq := math.Sqrt(disc)
		t = math.Max((b+sq)/a, (b-sq)/a)
	}
	return stopColor(g.Stops, t)
}

func (*RadialGradient) isBrush() {}

// stopColor interpolates the stop list at t, padding at both ends.
func stopColor(stops []GradientStop, t float64) color.NRGBA {
	switch {
	case len(stops) == 0:
		return color.NRGBA{}
	case t <= stops[0].Offset:
		return stops[0].Color
	case t >= stops[len(stops)-1].Offset:
		return stops[len(stops)-1].Color
	}
	for i := 1; i < len(stops); i++ {
		s1 := stops[i]
		if t > s1.Offset {
			continue
		}
		s0 := stops[i-1]
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		f := (t - s0.Offset) / span
		return color.NRGBA{
			R: lerp8(s0.Color.R, s1.Color.R, f),
			G: lerp8(s0.Color.G, s1.Color.G, f),
			B: lerp8(s0.Color.B, s1.Color.B, f),
			A: lerp8(s0.Color.A, s1.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
