// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"testing"

	"github.com/gogpu/gg-lottie/geom"
)

func TestStrokeOutlineArea(t *testing.T) {
	line := geom.NewPath()
	line.MoveTo(0, 0)
	line.LineTo(10, 0)

	corner := geom.NewPath()
	corner.MoveTo(0, 0)
	corner.LineTo(10, 0)
	corner.LineTo(10, 10)

	tests := []struct {
		name  string
		path  *geom.Path
		style StrokeStyle
		want  float64
	}{
		{"butt", line, DefaultStrokeStyle().WithWidth(2), 20},
		{"square caps", line, DefaultStrokeStyle().WithWidth(2).WithCap(LineCapSquare), 24},
		{"miter join", corner, DefaultStrokeStyle().WithWidth(2), 41},
		{"bevel join", corner, DefaultStrokeStyle().WithWidth(2).WithJoin(LineJoinBevel), 40.5},
		{"zero width", line, DefaultStrokeStyle().WithWidth(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strokeOutline(tt.path, tt.style, 0.1).Area()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrokeOutlineMiterLimit(t *testing.T) {
	// A very sharp turn exceeds the miter limit and falls back to a bevel.
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 0.5)

	miter := strokeOutline(p, DefaultStrokeStyle().WithWidth(2), 0.1).Area()
	bevel := strokeOutline(p, DefaultStrokeStyle().WithWidth(2).WithJoin(LineJoinBevel), 0.1).Area()
	if math.Abs(miter-bevel) > 1e-9 {
		t.Errorf("miter area %v != bevel area %v past the limit", miter, bevel)
	}
}

func TestStrokeOutlineOrientation(t *testing.T) {
	p := geom.Ellipse(geom.Pt(0, 0), geom.Pt(20, 20), false)
	style := DefaultStrokeStyle().WithWidth(3).WithJoin(LineJoinRound)
	out := strokeOutline(p, style, 0.1)

	// Every piece is positive, so nonzero filling never cancels overlaps.
	sub := geom.NewPath()
	for _, e := range out.Elements() {
		switch e := e.(type) {
		case geom.MoveTo:
			sub = geom.NewPath()
			sub.MoveTo(e.Point.X, e.Point.Y)
		case geom.LineTo:
			sub.LineTo(e.Point.X, e.Point.Y)
		case geom.Close:
			if a := sub.Area(); a <= 0 {
				t.Fatalf("piece area = %v, want > 0", a)
			}
		}
	}
}

func TestZeroLengthSubpathCaps(t *testing.T) {
	dot := geom.NewPath()
	dot.MoveTo(5, 5)
	dot.LineTo(5, 5)

	if got := strokeOutline(dot, DefaultStrokeStyle().WithWidth(2), 0.1); !got.IsEmpty() {
		t.Error("butt cap dot should draw nothing")
	}
	sq := strokeOutline(dot, DefaultStrokeStyle().WithWidth(2).WithCap(LineCapSquare), 0.1)
	if a := sq.Area(); math.Abs(a-4) > 1e-9 {
		t.Errorf("square dot area = %v, want 4", a)
	}
}

func TestGradientColorAt(t *testing.T) {
	stops := []GradientStop{{0, red}, {1, blue}}
	lin := &LinearGradient{Start: geom.Pt(0, 0), End: geom.Pt(10, 0), Stops: stops}
	if got := lin.ColorAt(geom.Pt(-5, 3)); got != red {
		t.Errorf("before start = %v, want %v", got, red)
	}
	if got := lin.ColorAt(geom.Pt(5, 0)); got.R != 128 || got.B != 128 {
		t.Errorf("midpoint = %v, want half red half blue", got)
	}

	rad := &RadialGradient{Center: geom.Pt(0, 0), Focal: geom.Pt(0, 0), Radius: 10, Stops: stops}
	if got := rad.ColorAt(geom.Pt(0, 0)); got != red {
		t.Errorf("center = %v, want %v", got, red)
	}
	if got := rad.ColorAt(geom.Pt(0, 20)); got != blue {
		t.Errorf("outside radius = %v, want %v", got, blue)
	}

	focal := &RadialGradient{Center: geom.Pt(0, 0), Focal: geom.Pt(5, 0), Radius: 10, Stops: stops}
	if got := focal.ColorAt(geom.Pt(5, 0)); got != red {
		t.Errorf("focal point = %v, want %v", got, red)
	}
}
