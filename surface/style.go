// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "github.com/gogpu/gg-lottie/geom"

// LineCap is the shape drawn at the ends of open contours.
type LineCap uint8

// Square caps extend the stroke by half its width.
const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape drawn where two stroked segments meet.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// FillStyle paints the interior of a path.
// A nil Brush paints nothing. Alpha multiplies the brush opacity.
type FillStyle struct {
	Brush Brush
	Rule  geom.FillRule
	Alpha float64
}

// StrokeStyle paints the outline of a path. Dash alternates dash and gap
// lengths starting at DashOffset; an empty Dash strokes solid. Miters
// longer than MiterLimit times the width become bevels.
type StrokeStyle struct {
	Brush      Brush
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
	Alpha      float64
}

// DefaultStrokeStyle is an opaque black hairline of width 1 with butt
// caps and miter joins limited at 4.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Brush: Solid{Color: black}, Width: 1, MiterLimit: 4, Alpha: 1}
}

func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

func (s StrokeStyle) WithCap(c LineCap) StrokeStyle {
	s.Cap = c
	return s
}

func (s StrokeStyle) WithJoin(j LineJoin) StrokeStyle {
	s.Join = j
	return s
}

func (s StrokeStyle) IsDashed() bool { return len(s.Dash) > 0 }

// WithDash sets the dash pattern and its phase.
func (s StrokeStyle) WithDash(pattern []float64, offset float64) StrokeStyle {
	s.Dash, s.DashOffset = pattern, offset
	return s
}
