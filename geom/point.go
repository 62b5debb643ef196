package geom

import "math"

// Point is a position or a displacement in the plane. Y grows downwards.
type Point struct {
	X, Y float64
}

// Pt returns Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length is the Euclidean norm.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) LengthSquared() float64 { return p.Dot(p) }

// Distance is the length of q-p.
func (p Point) Distance(q Point) float64 { return q.Sub(p).Length() }

// Normalize scales p to unit length. The zero vector stays zero.
func (p Point) Normalize() Point {
	if l := p.Length(); l != 0 {
		return p.Mul(1 / l)
	}
	return Point{}
}

// Perp turns p a quarter turn, clockwise on screen.
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

// Lerp returns p at t=0 and q at t=1.
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// ApproxEqual reports whether each coordinate is within eps.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) IsZero() bool { return p == Point{} }
