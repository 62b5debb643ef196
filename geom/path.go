package geom

import "iter"

// PathElement is one verb of a Path: MoveTo, LineTo, QuadTo, CubicTo or
// Close.
type PathElement interface {
	isPathElement()
}

type MoveTo struct{ Point Point }

type LineTo struct{ Point Point }

type QuadTo struct {
	Control Point
	Point   Point
}

type CubicTo struct {
	Control1, Control2 Point
	Point              Point
}

// Close ends the subpath with a straight edge back to its start.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Path is a sequence of subpaths in absolute coordinates. The zero value
// is an empty path.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

func (p *Path) push(e PathElement, to Point) {
	p.elements = append(p.elements, e)
	p.current = to
}

func (p *Path) MoveTo(x, y float64) {
	p.start = Pt(x, y)
	p.push(MoveTo{p.start}, p.start)
}

// LineTo adds a straight edge. On an empty path it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.elements) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.push(LineTo{Pt(x, y)}, Pt(x, y))
}

func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.push(QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)}, Pt(x, y))
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.push(CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: Pt(x, y)}, Pt(x, y))
}

// Close ends the current subpath. Repeated closes collapse into one.
func (p *Path) Close() {
	n := len(p.elements)
	if n == 0 {
		return
	}
	if _, done := p.elements[n-1].(Close); done {
		return
	}
	p.push(Close{}, p.start)
}

// Clear empties p, keeping its storage.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start, p.current = Point{}, Point{}
}

// Elements exposes the verbs of p. Callers must not modify the slice.
func (p *Path) Elements() []PathElement { return p.elements }

func (p *Path) Len() int { return len(p.elements) }

func (p *Path) CurrentPoint() Point { return p.current }

// IsEmpty reports whether p has no drawing verbs. A nil path is empty.
func (p *Path) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, e := range p.elements {
		switch e.(type) {
		case MoveTo, Close:
		default:
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p *Path) Clone() *Path {
	c := *p
	c.elements = append(make([]PathElement, 0, len(p.elements)), p.elements...)
	return &c
}

// Append adds the subpaths of other to p unchanged.
func (p *Path) Append(other *Path) {
	if other == nil {
		return
	}
	p.elements = append(p.elements, other.elements...)
	p.start, p.current = other.start, other.current
}

// AppendTransformed adds the subpaths of other mapped through m.
func (p *Path) AppendTransformed(other *Path, m Matrix) {
	switch {
	case other == nil:
	case m.IsIdentity():
		p.Append(other)
	default:
		for _, e := range other.elements {
			p.appendMapped(e, m)
		}
	}
}

func (p *Path) appendMapped(e PathElement, m Matrix) {
	at := m.TransformPoint
	switch e := e.(type) {
	case MoveTo:
		q := at(e.Point)
		p.MoveTo(q.X, q.Y)
	case LineTo:
		q := at(e.Point)
		p.LineTo(q.X, q.Y)
	case QuadTo:
		c, q := at(e.Control), at(e.Point)
		p.QuadraticTo(c.X, c.Y, q.X, q.Y)
	case CubicTo:
		c1, c2, q := at(e.Control1), at(e.Control2), at(e.Point)
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, q.X, q.Y)
	case Close:
		p.Close()
	}
}

// Transform returns a copy of p mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, e := range p.elements {
		out.appendMapped(e, m)
	}
	return out
}

// Offset returns a copy of p moved by (dx, dy).
func (p *Path) Offset(dx, dy float64) *Path { return p.Transform(Translate(dx, dy)) }

// Rectangle adds a closed clockwise rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Segment is one edge of a contour. Straight edges have Line set and
// their Cubic has control points on the endpoints. Quadratics are raised.
type Segment struct {
	Cubic CubicBez
	Line  bool
}

func (s Segment) Start() Point { return s.Cubic.P0 }
func (s Segment) End() Point   { return s.Cubic.P3 }

func lineSegment(a, b Point) Segment {
	return Segment{Cubic: CubicBez{a, a, b, b}, Line: true}
}

// Contour is one subpath. The implicit closing edge of a closed contour
// is not part of Segments.
type Contour struct {
	Start    Point
	Segments []Segment
	Closed   bool
}

// End returns where the last segment stops.
func (c *Contour) End() Point {
	if n := len(c.Segments); n > 0 {
		return c.Segments[n-1].End()
	}
	return c.Start
}

// Contours yields the subpaths of p in order. Drawing verbs after a Close
// with no MoveTo start a new contour at the closed subpath's start.
func (p *Path) Contours() iter.Seq[Contour] {
	return func(yield func(Contour) bool) {
		var c Contour
		started := false
		for _, e := range p.elements {
			if _, ok := e.(MoveTo); !ok && !started {
				c, started = Contour{Start: c.Start}, true
			}
			switch e := e.(type) {
			case MoveTo:
				if started && !yield(c) {
					return
				}
				c, started = Contour{Start: e.Point}, true
			case LineTo:
				c.Segments = append(c.Segments, lineSegment(c.End(), e.Point))
			case QuadTo:
				c.Segments = append(c.Segments, Segment{Cubic: QuadBez{c.End(), e.Control, e.Point}.Raise()})
			case CubicTo:
				c.Segments = append(c.Segments, Segment{Cubic: CubicBez{c.End(), e.Control1, e.Control2, e.Point}})
			case Close:
				c.Closed = true
				if !yield(c) {
					return
				}
				started = false
			}
		}
		if started {
			yield(c)
		}
	}
}
