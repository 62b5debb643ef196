package geom

import "math"

// Rect is an axis-aligned box spanning Min to Max inclusive.
type Rect struct {
	Min, Max Point
}

// NewRect returns the box with corners a and b, in any order.
func NewRect(a, b Point) Rect {
	return Rect{Min: a, Max: a}.Extend(b)
}

// RectXYWH returns the box at (x, y) with size w by h.
func RectXYWH(x, y, w, h float64) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X && r.Max.Y > r.Min.Y)
}

// Extend grows r just enough to include p.
func (r Rect) Extend(p Point) Rect {
	r.Min = Pt(math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y))
	r.Max = Pt(math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y))
	return r
}

// Union returns the bounds of both boxes.
func (r Rect) Union(o Rect) Rect {
	return r.Extend(o.Min).Extend(o.Max)
}

// Intersect returns the common part of r and o. Disjoint boxes yield the
// zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	lo := Pt(math.Max(r.Min.X, o.Min.X), math.Max(r.Min.Y, o.Min.Y))
	hi := Pt(math.Min(r.Max.X, o.Max.X), math.Min(r.Max.Y, o.Max.Y))
	if out := (Rect{Min: lo, Max: hi}); !out.IsEmpty() {
		return out
	}
	return Rect{}
}

// Contains includes the edges.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X && r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// Transform maps the four corners through m and returns their bounds.
func (r Rect) Transform(m Matrix) Rect {
	out := NewRect(m.TransformPoint(r.Min), m.TransformPoint(r.Max))
	out = out.Extend(m.TransformPoint(Pt(r.Max.X, r.Min.Y)))
	return out.Extend(m.TransformPoint(Pt(r.Min.X, r.Max.Y)))
}

// Path returns r as a closed clockwise rectangle.
func (r Rect) Path() *Path {
	p := NewPath()
	p.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	return p
}
