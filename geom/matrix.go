package geom

import "math"

// Matrix is a 2D affine transform stored as the top two rows of a 3x3
// matrix. A point (x, y) maps to
//
//	(A*x + B*y + C, D*x + E*y + F)
//
// The zero Matrix collapses everything onto the origin; use Identity.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// singular is the determinant magnitude below which a matrix has no inverse.
const singular = 1e-10

// Identity returns the transform that leaves points unchanged.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a transform that moves points by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, C: tx, E: 1, F: ty}
}

// Scale returns a transform that scales about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Rotate returns a rotation by rad radians. With Y pointing down, positive
// angles turn clockwise on screen.
func Rotate(rad float64) Matrix {
	s, c := math.Sincos(rad)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// RotateDegrees is Rotate in degrees. Quarter turns are exact so that
// axis-aligned content stays axis-aligned.
func RotateDegrees(deg float64) Matrix {
	switch math.Mod(deg, 360) {
	case 0:
		return Identity()
	case 90, -270:
		return Matrix{B: -1, D: 1}
	case 180, -180:
		return Matrix{A: -1, E: -1}
	case 270, -90:
		return Matrix{B: 1, D: -1}
	}
	return Rotate(deg * math.Pi / 180)
}

// Shear returns a transform that adds kx*y to x and ky*x to y.
func Shear(kx, ky float64) Matrix {
	return Matrix{A: 1, B: kx, D: ky, E: 1}
}

// Skew shears by angle degrees along the direction given by axis degrees.
// A zero axis skews horizontally.
func Skew(angle, axis float64) Matrix {
	if angle == 0 {
		return Identity()
	}
	r := axis * math.Pi / 180
	k := Shear(-math.Tan(angle*math.Pi/180), 0)
	return Rotate(r).Multiply(k).Multiply(Rotate(-r))
}

// Multiply returns m·n: the result applies n first and m second.
func (m Matrix) Multiply(n Matrix) Matrix {
	var r Matrix
	r.A = m.A*n.A + m.B*n.D
	r.B = m.A*n.B + m.B*n.E
	r.C = m.A*n.C + m.B*n.F + m.C
	r.D = m.D*n.A + m.E*n.D
	r.E = m.D*n.B + m.E*n.E
	r.F = m.D*n.C + m.E*n.F + m.F
	return r
}

// TransformPoint maps p through m.
func (m Matrix) TransformPoint(p Point) Point {
	v := m.TransformVector(p)
	return Point{X: v.X + m.C, Y: v.Y + m.F}
}

// TransformVector maps p through the linear part of m, ignoring translation.
func (m Matrix) TransformVector(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y, Y: m.D*p.X + m.E*p.Y}
}

// Determinant returns the signed area scale of m.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsInvertible reports whether Invert yields a true inverse.
func (m Matrix) IsInvertible() bool {
	return math.Abs(m.Determinant()) >= singular
}

// Invert returns the inverse of m, or Identity when m is singular.
func (m Matrix) Invert() Matrix {
	if !m.IsInvertible() {
		return Identity()
	}
	k := 1 / m.Determinant()
	return Matrix{
		A: m.E * k, B: -m.B * k, C: (m.B*m.F - m.C*m.E) * k,
		D: -m.D * k, E: m.A * k, F: (m.C*m.D - m.A*m.F) * k,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ScaleFactor is the geometric mean of the axis scales. Device-space
// tolerances divided by it become local-space tolerances.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}
