// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/gg-lottie/geom"
)

// strokeOutline returns the area covered by stroking p with style, built
// from overlapping pieces of equal orientation. The result must be filled
// with the non-zero rule. Curves are flattened to tolerance.
func strokeOutline(p *geom.Path, style StrokeStyle, tolerance float64) *geom.Path {
	out := geom.NewPath()
	hw := style.Width / 2
	if hw <= 0 || p.IsEmpty() {
		return out
	}
	if style.IsDashed() {
		p = geom.Dash(p, style.Dash, style.DashOffset)
	}
	st := stroker{out: out, hw: hw, style: style, discSteps: discSteps(hw, tolerance)}
	for _, poly := range p.FlattenPolylines(tolerance) {
		st.polyline(dedupePoints(poly.Points), poly.Closed)
	}
	return out
}

type stroker struct {
	out       *geom.Path
	hw        float64
	style     StrokeStyle
	discSteps int
}

func (s *stroker) polyline(pts []geom.Point, closed bool) {
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	if n == 1 {
		// A zero-length subpath shows only its caps.
		switch s.style.Cap {
		case LineCapRound:
			s.disc(pts[0])
		case LineCapSquare:
			s.square(pts[0])
		}
		return
	}

	segs := n - 1
	if closed && n > 2 {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		nrm := b.Sub(a).Normalize().Perp().Mul(s.hw)
		s.polygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	if closed && n > 2 {
		for i := 0; i < n; i++ {
			s.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		s.join(pts[i-1], pts[i], pts[i+1])
	}
	s.cap(pts[0], pts[0].Sub(pts[1]).Normalize())
	s.cap(pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize())
}

// join fills the gap at v between segments prev→v and v→next.
func (s *stroker) join(prev, v, next geom.Point) {
	d0 := v.Sub(prev).Normalize()
	d1 := next.Sub(v).Normalize()
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-9 && d0.Dot(d1) > 0 {
		return
	}
	if s.style.Join == LineJoinRound {
		s.disc(v)
		return
	}

	side := 1.0
	if cross > 0 {
		side = -1
	}
	n0 := d0.Perp().Mul(s.hw * side)
	n1 := d1.Perp().Mul(s.hw * side)
	a, b := v.Add(n0), v.Add(n1)

	if s.style.Join == LineJoinMiter {
		cosHalf := math.Sqrt(math.Max(0, (1+d0.Dot(d1))/2))
		limit := s.style.MiterLimit
		if limit <= 0 {
			limit = 4
		}
		if cosHalf > 1e-6 && 1/cosHalf <= limit {
			tip := v.Add(n0.Add(n1).Normalize().Mul(s.hw / cosHalf))
			s.polygon(v, a, tip, b)
			return
		}
	}
	s.polygon(v, a, b)
}

// cap draws the end cap at p; dir points away from the line.
func (s *stroker) cap(p, dir geom.Point) {
	switch s.style.Cap {
	case LineCapRound:
		s.disc(p)
	case LineCapSquare:
		n := dir.Perp().Mul(s.hw)
		ext := dir.Mul(s.hw)
		s.polygon(p.Add(n), p.Add(n).Add(ext), p.Sub(n).Add(ext), p.Sub(n))
	}
}

func (s *stroker) square(p geom.Point) {
	h := s.hw
	s.polygon(geom.Pt(p.X-h, p.Y-h), geom.Pt(p.X+h, p.Y-h), geom.Pt(p.X+h, p.Y+h), geom.Pt(p.X-h, p.Y+h))
}

func (s *stroker) disc(c geom.Point) {
	pts := make([]geom.Point, s.discSteps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(s.discSteps)
		pts[i] = geom.Pt(c.X+s.hw*math.Cos(a), c.Y+s.hw*math.Sin(a))
	}
	s.polygon(pts...)
}

// polygon appends a closed polygon oriented with positive area.
func (s *stroker) polygon(pts ...geom.Point) {
	var area float64
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	s.out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.out.LineTo(p.X, p.Y)
	}
	s.out.Close()
}

// discSteps returns the number of sides for a disc of radius r whose
// sagitta stays within tolerance.
func discSteps(r, tolerance float64) int {
	if r <= tolerance {
		return 8
	}
	theta := 2 * math.Acos(1-tolerance/r)
	n := int(math.Ceil(2 * math.Pi / theta))
	return min(max(n, 8), 256)
}

func dedupePoints(pts []geom.Point) []geom.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i == 0 || !p.ApproxEqual(out[len(out)-1], 1e-12) {
			out = append(out, p)
		}
	}
	return out
}
