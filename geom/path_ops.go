package geom

// FillRule decides which winding numbers count as inside.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Inside applies the rule to a winding number.
func (r FillRule) Inside(winding int) bool {
	if r == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// Area returns the signed area of p, positive for clockwise contours on
// screen. Open contours are measured as if closed.
func (p *Path) Area() float64 {
	var sum float64
	for c := range p.Contours() {
		for _, s := range c.Segments {
			sum += segmentArea(s)
		}
		sum += segmentArea(lineSegment(c.End(), c.Start))
	}
	return sum
}

// segmentArea is the Green's theorem contribution of s.
func segmentArea(s Segment) float64 {
	a, b, c, d := s.Cubic.P0, s.Cubic.P1, s.Cubic.P2, s.Cubic.P3
	if s.Line {
		return a.Cross(d) / 2
	}
	return (a.X*(6*b.Y+3*c.Y+d.Y) +
		3*b.X*(-2*a.Y+c.Y+d.Y) +
		3*c.X*(-a.Y-b.Y+2*d.Y) +
		d.X*(-a.Y-3*b.Y-6*c.Y)) / 20
}

// windingTolerance is the flattening tolerance of hit testing.
const windingTolerance = 0.01

// Winding returns the winding number of p around pt.
func (p *Path) Winding(pt Point) int {
	w := 0
	for _, poly := range p.FlattenPolylines(windingTolerance) {
		prev := poly.Points[len(poly.Points)-1]
		for _, q := range poly.Points {
			w += crossing(prev, q, pt)
			prev = q
		}
	}
	return w
}

// crossing is the contribution of edge a->b to the winding number
// around pt.
func crossing(a, b, pt Point) int {
	side := b.Sub(a).Cross(pt.Sub(a))
	switch {
	case a.Y <= pt.Y && b.Y > pt.Y && side > 0:
		return 1
	case a.Y > pt.Y && b.Y <= pt.Y && side < 0:
		return -1
	}
	return 0
}

// Contains reports whether pt is inside p under rule.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	return rule.Inside(p.Winding(pt))
}

// BoundingBox returns the tight bounds of p, or the zero Rect for an
// empty path. Bare MoveTo points are included.
func (p *Path) BoundingBox() Rect {
	var box Rect
	first := true
	for c := range p.Contours() {
		if first {
			box, first = NewRect(c.Start, c.Start), false
		}
		box = box.Extend(c.Start)
		for _, s := range c.Segments {
			if s.Line {
				box = box.Extend(s.End())
			} else {
				box = box.Union(s.Cubic.BoundingBox())
			}
		}
	}
	return box
}

// Polyline is a flattened contour. A closed polyline does not repeat its
// first point.
type Polyline struct {
	Points []Point
	Closed bool
}

// FlattenPolylines approximates every contour with straight edges that
// stay within tolerance of the curves. Contours with fewer than two
// points are dropped.
func (p *Path) FlattenPolylines(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	limit := tolerance * tolerance * 16

	var out []Polyline
	for c := range p.Contours() {
		pts := []Point{c.Start}
		for _, s := range c.Segments {
			if s.Line {
				pts = append(pts, s.End())
				continue
			}
			pts = subdivide(pts, s.Cubic, limit, 0)
		}
		if n := len(pts); c.Closed && n > 1 && pts[n-1] == c.Start {
			pts = pts[:n-1]
		}
		if len(pts) > 1 {
			out = append(out, Polyline{Points: pts, Closed: c.Closed})
		}
	}
	return out
}

// maxSubdivision bounds the recursion of subdivide.
const maxSubdivision = 16

func subdivide(dst []Point, c CubicBez, limit float64, depth int) []Point {
	if depth >= maxSubdivision || c.flatness() <= limit {
		return append(dst, c.P3)
	}
	l, r := c.Subdivide()
	dst = subdivide(dst, l, limit, depth+1)
	return subdivide(dst, r, limit, depth+1)
}

// Reversed returns p with every contour traversed backwards. Contours
// keep their order and closedness.
func (p *Path) Reversed() *Path {
	out := NewPath()
	for c := range p.Contours() {
		end := c.End()
		out.MoveTo(end.X, end.Y)
		for i := len(c.Segments) - 1; i >= 0; i-- {
			s := c.Segments[i].Cubic
			if c.Segments[i].Line {
				out.LineTo(s.P0.X, s.P0.Y)
			} else {
				out.CubicTo(s.P2.X, s.P2.Y, s.P1.X, s.P1.Y, s.P0.X, s.P0.Y)
			}
		}
		if c.Closed {
			out.Close()
		}
	}
	return out
}

// Length returns the arc length of p, counting closing edges.
func (p *Path) Length() float64 {
	return NewPathMeasure(p).Length()
}
