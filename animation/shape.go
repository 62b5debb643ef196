package animation

import (
	"slices"

	"github.com/gogpu/gg-lottie/geom"
)

// ShapeData is a multi-segment cubic path. Tangents are relative to their
// vertex: the segment from vertex i to i+1 has control points
// Vertices[i]+OutTangents[i] and Vertices[i+1]+InTangents[i+1].
type ShapeData struct {
	Closed      bool
	Vertices    []geom.Point
	InTangents  []geom.Point
	OutTangents []geom.Point
}

// Equal reports whether s and o describe the same path.
func (s ShapeData) Equal(o ShapeData) bool {
	return s.Closed == o.Closed &&
		slices.Equal(s.Vertices, o.Vertices) &&
		slices.Equal(s.InTangents, o.InTangents) &&
		slices.Equal(s.OutTangents, o.OutTangents)
}

func (s ShapeData) tangent(ts []geom.Point, i int) geom.Point {
	if i < len(ts) {
		return ts[i]
	}
	return geom.Point{}
}

// AppendTo adds the shape as one subpath of dst. Segments whose tangents
// are both zero become lines.
func (s ShapeData) AppendTo(dst *geom.Path) {
	n := len(s.Vertices)
	if n == 0 {
		return
	}
	v0 := s.Vertices[0]
	dst.MoveTo(v0.X, v0.Y)
	seg := func(i, j int) {
		a, b := s.Vertices[i], s.Vertices[j]
		out, in := s.tangent(s.OutTangents, i), s.tangent(s.InTangents, j)
		if out.IsZero() && in.IsZero() {
			dst.LineTo(b.X, b.Y)
			return
		}
		c1, c2 := a.Add(out), b.Add(in)
		dst.CubicTo(c1.X, c1.Y, c2.X, c2.Y, b.X, b.Y)
	}
	for i := 1; i < n; i++ {
		seg(i-1, i)
	}
	if s.Closed {
		if n > 1 {
			seg(n-1, 0)
		}
		dst.Close()
	}
}

// Path returns the shape as a new path.
func (s ShapeData) Path() *geom.Path {
	p := geom.NewPath()
	s.AppendTo(p)
	return p
}

// LerpShape interpolates vertices and tangents pointwise. Shapes with
// different vertex counts do not morph: a is returned until t reaches 1.
func LerpShape(a, b ShapeData, t float64) ShapeData {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	if len(a.Vertices) != len(b.Vertices) {
		return a
	}
	lerp := func(x, y []geom.Point) []geom.Point {
		out := make([]geom.Point, len(x))
		for i := range x {
			var q geom.Point
			if i < len(y) {
				q = y[i]
			}
			out[i] = x[i].Lerp(q, t)
		}
		return out
	}
	return ShapeData{
		Closed:      a.Closed,
		Vertices:    lerp(a.Vertices, b.Vertices),
		InTangents:  lerp(a.InTangents, b.InTangents),
		OutTangents: lerp(a.OutTangents, b.OutTangents),
	}
}
