package geom

import (
	"math"
	"sort"
)

// Line is a straight segment.
type Line struct {
	P0, P1 Point
}

func (l Line) Eval(t float64) Point { return l.P0.Lerp(l.P1, t) }
func (l Line) Length() float64      { return l.P0.Distance(l.P1) }

// QuadBez is a quadratic Bezier segment. Paths keep quadratics only as
// input; every consumer works on the equivalent cubic.
type QuadBez struct {
	P0, P1, P2 Point
}

// Raise returns the cubic that traces exactly the same curve.
func (q QuadBez) Raise() CubicBez {
	const k = 2.0 / 3.0
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, k),
		P2: q.P2.Lerp(q.P1, k),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bezier segment from P0 to P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// casteljau returns the intermediate points of de Casteljau at t.
// The last one is the point on the curve.
func (c CubicBez) casteljau(t float64) (a, b, ab, bc, cd, on Point) {
	a = c.P0.Lerp(c.P1, t)
	m := c.P1.Lerp(c.P2, t)
	cd = c.P2.Lerp(c.P3, t)
	ab = a.Lerp(m, t)
	bc = m.Lerp(cd, t)
	on = ab.Lerp(bc, t)
	return a, m, ab, bc, cd, on
}

// Eval returns the point at t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	_, _, _, _, _, on := c.casteljau(t)
	return on
}

// SplitAt cuts the curve at t into two curves that meet there.
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	a, _, ab, bc, cd, on := c.casteljau(t)
	return CubicBez{c.P0, a, ab, on}, CubicBez{on, bc, cd, c.P3}
}

// Subdivide splits at the parameter midpoint.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) { return c.SplitAt(0.5) }

// Subsegment returns the piece of c between t0 and t1, reparameterized
// to [0, 1].
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	s := (t1 - t0) / 3
	p0, p3 := c.Eval(t0), c.Eval(t1)
	return CubicBez{
		P0: p0,
		P1: p0.Add(c.Deriv(t0).Mul(s)),
		P2: p3.Sub(c.Deriv(t1).Mul(s)),
		P3: p3,
	}
}

// Deriv returns dP/dt.
func (c CubicBez) Deriv(t float64) Point {
	q := QuadBez{c.P1.Sub(c.P0), c.P2.Sub(c.P1), c.P3.Sub(c.P2)}
	u := 1 - t
	return q.P0.Mul(3 * u * u).Add(q.P1.Mul(6 * u * t)).Add(q.P2.Mul(3 * t * t))
}

// Extrema returns the sorted parameters in [0, 1] where either coordinate
// of the curve has a zero derivative.
func (c CubicBez) Extrema() []float64 {
	d0, d1, d2 := c.P1.Sub(c.P0), c.P2.Sub(c.P1), c.P3.Sub(c.P2)
	ts := make([]float64, 0, 4)
	ts = unitRoots(ts, d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	ts = unitRoots(ts, d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)
	sort.Float64s(ts)
	return ts
}

// BoundingBox is the tight bounds of the curve, not of its hull.
func (c CubicBez) BoundingBox() Rect {
	r := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		r = r.Extend(c.Eval(t))
	}
	return r
}

// flatness bounds the squared distance between the curve and its chord,
// scaled by 16.
func (c CubicBez) flatness() float64 {
	u := c.P1.Mul(3).Sub(c.P0.Mul(2)).Sub(c.P3)
	v := c.P2.Mul(3).Sub(c.P0).Sub(c.P3.Mul(2))
	return math.Max(u.X*u.X, v.X*v.X) + math.Max(u.Y*u.Y, v.Y*v.Y)
}

// unitRoots appends the real roots of a*t^2 + b*t + c that lie in [0, 1].
// A vanishing leading coefficient degrades to the linear case.
func unitRoots(dst []float64, a, b, c float64) []float64 {
	in := func(t float64) {
		if t >= 0 && t <= 1 {
			dst = append(dst, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if b != 0 {
			in(-c / b)
		}
		return dst
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
	case disc == 0:
		in(-b / (2 * a))
	default:
		// q avoids cancellation between b and the root.
		q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
		in(q / a)
		if q != 0 {
			in(c / q)
		}
	}
	return dst
}
