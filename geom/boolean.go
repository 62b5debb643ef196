package geom

import (
	"math"
	"sort"
)

// BoolOp is a boolean operation between two filled regions.
type BoolOp uint8

const (
	// Union keeps area covered by either operand.
	Union BoolOp = iota
	// Intersect keeps area covered by both operands.
	Intersect
	// Difference keeps area of the first operand not covered by the second.
	Difference
	// Xor keeps area covered by exactly one operand.
	Xor
)

// String returns the operation name.
func (op BoolOp) String() string {
	switch op {
	case Union:
		return "Union"
	case Intersect:
		return "Intersect"
	case Difference:
		return "Difference"
	case Xor:
		return "Xor"
	}
	return "Unknown"
}

func (op BoolOp) apply(a, b bool) bool {
	switch op {
	case Union:
		return a || b
	case Intersect:
		return a && b
	case Difference:
		return a && !b
	case Xor:
		return a != b
	}
	return false
}

// BooleanTolerance is the flattening tolerance used for curved operands.
const BooleanTolerance = 0.05

// boolEps is the coordinate tolerance used by the slab decomposition.
const boolEps = 1e-9

// Boolean combines the filled regions of a and b with op. Both operands are
// interpreted with the non-zero rule. Curves are flattened, so the result
// consists of straight edges only. An empty result is an empty path.
func Boolean(a, b *Path, op BoolOp) *Path {
	return BooleanRules(a, NonZero, b, NonZero, op)
}

// BooleanRules is Boolean with an explicit fill rule per operand.
func BooleanRules(a *Path, ruleA FillRule, b *Path, ruleB FillRule, op BoolOp) *Path {
	var edges []boolEdge
	edges = appendEdges(edges, a, 0)
	edges = appendEdges(edges, b, 1)
	return sweep(edges, func(wa, wb int) bool {
		return op.apply(ruleA.Inside(wa), ruleB.Inside(wb))
	})
}

// Combine folds op over paths from left to right. With Difference, the
// first path minus all the others is returned.
func Combine(op BoolOp, paths ...*Path) *Path {
	if len(paths) == 0 {
		return NewPath()
	}
	result := paths[0]
	if len(paths) == 1 {
		return Simplify(result, NonZero)
	}
	for _, p := range paths[1:] {
		result = Boolean(result, p, op)
	}
	return result
}

// Simplify returns a path covering the same area as p under rule, built
// from non-overlapping pieces that fill correctly under either rule.
func Simplify(p *Path, rule FillRule) *Path {
	edges := appendEdges(nil, p, 0)
	return sweep(edges, func(wa, _ int) bool {
		return rule.Inside(wa)
	})
}

// boolEdge is a non-horizontal edge oriented top to bottom.
type boolEdge struct {
	x0, y0, x1, y1 float64
	dir            int // +1 if the original edge pointed down
	src            int // operand index
}

func (e *boolEdge) xAt(y float64) float64 {
	if y <= e.y0 {
		return e.x0
	}
	if y >= e.y1 {
		return e.x1
	}
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}

func appendEdges(edges []boolEdge, p *Path, src int) []boolEdge {
	if p == nil {
		return edges
	}
	for _, poly := range p.FlattenPolylines(BooleanTolerance) {
		n := len(poly.Points)
		for i := 0; i < n; i++ {
			a := poly.Points[i]
			b := poly.Points[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			if a.Y < b.Y {
				edges = append(edges, boolEdge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dir: 1, src: src})
			} else {
				edges = append(edges, boolEdge{x0: b.X, y0: b.Y, x1: a.X, y1: a.Y, dir: -1, src: src})
			}
		}
	}
	return edges
}

// sweep decomposes the plane into horizontal slabs bounded by edge
// endpoints and crossings. Within a slab no two edges cross, so the spans
// between consecutive edges can be classified with winding numbers.
// Spans bounded by the same pair of edges in consecutive slabs are joined
// into one polygon.
func sweep(edges []boolEdge, inside func(wa, wb int) bool) *Path {
	out := NewPath()
	if len(edges) == 0 {
		return out
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].y0 < edges[j].y0 })
	ys := make([]float64, 0, len(edges)*2)
	for i := range edges {
		ys = append(ys, edges[i].y0, edges[i].y1)
	}
	ys = appendCrossings(ys, edges)
	sort.Float64s(ys)
	ys = dedupe(ys)

	type spanKey struct{ left, right int }
	open := map[spanKey]*boolPolygon{}
	var done []*boolPolygon

	active := make([]int, 0, 16)
	next := 0
	for s := 0; s+1 < len(ys); s++ {
		top, bottom := ys[s], ys[s+1]
		mid := (top + bottom) / 2

		for next < len(edges) && edges[next].y0 <= mid {
			active = append(active, next)
			next++
		}
		live := active[:0]
		for _, idx := range active {
			if edges[idx].y1 > mid {
				live = append(live, idx)
			}
		}
		active = live

		order := make([]int, len(active))
		copy(order, active)
		sort.Slice(order, func(i, j int) bool {
			return edges[order[i]].xAt(mid) < edges[order[j]].xAt(mid)
		})

		cont := map[spanKey]*boolPolygon{}
		wa, wb := 0, 0
		in := false
		left := -1
		for _, idx := range order {
			e := &edges[idx]
			if e.src == 0 {
				wa += e.dir
			} else {
				wb += e.dir
			}
			now := inside(wa, wb)
			if now == in {
				continue
			}
			if now {
				left = idx
			} else {
				l, r := &edges[left], e
				if r.xAt(top)-l.xAt(top) > boolEps || r.xAt(bottom)-l.xAt(bottom) > boolEps {
					key := spanKey{left, idx}
					poly, ok := open[key]
					if ok {
						delete(open, key)
					} else {
						poly = &boolPolygon{}
						poly.left = append(poly.left, Pt(l.xAt(top), top))
						poly.right = append(poly.right, Pt(r.xAt(top), top))
					}
					poly.left = append(poly.left, Pt(l.xAt(bottom), bottom))
					poly.right = append(poly.right, Pt(r.xAt(bottom), bottom))
					cont[key] = poly
				}
			}
			in = now
		}
		for _, poly := range open {
			done = append(done, poly)
		}
		open = cont
	}
	for _, poly := range open {
		done = append(done, poly)
	}

	// Map iteration order is random; emit pieces top to bottom, left to right.
	sort.Slice(done, func(i, j int) bool {
		a, b := done[i].left[0], done[j].left[0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for _, poly := range done {
		poly.emit(out)
	}
	return out
}

type boolPolygon struct {
	left, right []Point
}

func (b *boolPolygon) emit(p *Path) {
	p.MoveTo(b.left[0].X, b.left[0].Y)
	for _, pt := range b.left[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	for i := len(b.right) - 1; i >= 0; i-- {
		pt := b.right[i]
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// appendCrossings adds the y coordinate of every proper crossing between
// two edges. Edges are sorted by y0.
func appendCrossings(ys []float64, edges []boolEdge) []float64 {
	for i := range edges {
		a := &edges[i]
		for j := i + 1; j < len(edges); j++ {
			b := &edges[j]
			if b.y0 >= a.y1 {
				break
			}
			if math.Max(a.x0, a.x1) < math.Min(b.x0, b.x1) || math.Max(b.x0, b.x1) < math.Min(a.x0, a.x1) {
				continue
			}
			if y, ok := crossingY(a, b); ok {
				ys = append(ys, y)
			}
		}
	}
	return ys
}

func crossingY(a, b *boolEdge) (float64, bool) {
	rx, ry := a.x1-a.x0, a.y1-a.y0
	sx, sy := b.x1-b.x0, b.y1-b.y0
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qx, qy := b.x0-a.x0, b.y0-a.y0
	t := (qx*sy - qy*sx) / denom
	u := (qx*ry - qy*rx) / denom
	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return 0, false
	}
	return a.y0 + t*ry, true
}

func dedupe(ys []float64) []float64 {
	out := ys[:0]
	for i, y := range ys {
		if i == 0 || y-out[len(out)-1] > boolEps {
			out = append(out, y)
		}
	}
	return out
}
