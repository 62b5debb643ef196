package geom

import (
	"math"
	"sort"
)

// lutSteps is the number of arc-length samples kept per cubic segment.
const lutSteps = 32

type segKind uint8

const (
	segLine segKind = iota
	segCubic
)

// measuredSeg is one drawing segment with its arc-length table.
type measuredSeg struct {
	kind   segKind
	line   Line
	cubic  CubicBez
	start  float64 // distance of the segment start within its contour
	length float64
	lut    [lutSteps + 1]float64
}

type measuredContour struct {
	segs   []measuredSeg
	length float64
	closed bool
}

// PathMeasure answers arc-length queries about a path.
// It is built once from a path and is immutable afterwards.
type PathMeasure struct {
	contours []measuredContour
	length   float64
}

// NewPathMeasure measures every subpath of p. Subpaths with zero length
// are skipped. The closing edge of a closed subpath counts towards its length.
func NewPathMeasure(p *Path) *PathMeasure {
	m := &PathMeasure{}
	if p == nil {
		return m
	}

	for c := range p.Contours() {
		var mc measuredContour
		for _, s := range c.Segments {
			mc.add(s)
		}
		if c.Closed && c.End() != c.Start {
			mc.add(lineSegment(c.End(), c.Start))
		}
		mc.closed = c.Closed
		if mc.length > 0 {
			m.contours = append(m.contours, mc)
			m.length += mc.length
		}
	}
	return m
}

func (mc *measuredContour) add(s Segment) {
	seg := measuredSeg{start: mc.length}
	if s.Line {
		seg.kind = segLine
		seg.line = Line{P0: s.Start(), P1: s.End()}
		seg.length = seg.line.Length()
	} else {
		c := s.Cubic
		seg.kind, seg.cubic = segCubic, c
		prev := c.P0
		for i := 1; i <= lutSteps; i++ {
			pt := c.Eval(float64(i) / lutSteps)
			seg.lut[i] = seg.lut[i-1] + prev.Distance(pt)
			prev = pt
		}
		seg.length = seg.lut[lutSteps]
	}
	mc.segs = append(mc.segs, seg)
	mc.length += seg.length
}

// Length returns the summed length of all subpaths.
func (m *PathMeasure) Length() float64 {
	return m.length
}

// ContourCount returns the number of measured subpaths.
func (m *PathMeasure) ContourCount() int {
	return len(m.contours)
}

// ContourLength returns the length of subpath i.
func (m *PathMeasure) ContourLength(i int) float64 {
	return m.contours[i].length
}

// ContourClosed reports whether subpath i was closed.
func (m *PathMeasure) ContourClosed(i int) bool {
	return m.contours[i].closed
}

// tAt maps a distance along the segment to its curve parameter.
func (s *measuredSeg) tAt(dist float64) float64 {
	if s.length <= 0 {
		return 0
	}
	if dist <= 0 {
		return 0
	}
	if dist >= s.length {
		return 1
	}
	if s.kind == segLine {
		return dist / s.length
	}
	i := sort.SearchFloat64s(s.lut[:], dist)
	if i == 0 {
		return 0
	}
	lo, hi := s.lut[i-1], s.lut[i]
	frac := 0.0
	if hi > lo {
		frac = (dist - lo) / (hi - lo)
	}
	return (float64(i-1) + frac) / lutSteps
}

func (s *measuredSeg) eval(t float64) Point {
	if s.kind == segLine {
		return s.line.Eval(t)
	}
	return s.cubic.Eval(t)
}

func (s *measuredSeg) tangent(t float64) Point {
	if s.kind == segLine {
		return s.line.P1.Sub(s.line.P0).Normalize()
	}
	d := s.cubic.Deriv(t)
	if d.LengthSquared() < 1e-18 {
		d = s.cubic.P3.Sub(s.cubic.P0)
	}
	return d.Normalize()
}

// AppendSegment appends the part of subpath i between the distances start
// and end to dst. When moveTo is false the segment continues the current
// subpath of dst with a line instead of starting a new one. Extracting the
// whole of a closed subpath yields a closed subpath.
func (m *PathMeasure) AppendSegment(i int, start, end float64, dst *Path, moveTo bool) {
	c := &m.contours[i]
	start = math.Max(start, 0)
	end = math.Min(end, c.length)
	if start >= end {
		return
	}

	first := true
	for k := range c.segs {
		seg := &c.segs[k]
		segEnd := seg.start + seg.length
		if segEnd <= start || seg.start >= end {
			continue
		}
		t0 := seg.tAt(start - seg.start)
		t1 := seg.tAt(end - seg.start)

		if first {
			p0 := seg.eval(t0)
			if moveTo || dst.Len() == 0 {
				dst.MoveTo(p0.X, p0.Y)
			} else {
				dst.LineTo(p0.X, p0.Y)
			}
			first = false
		}

		switch seg.kind {
		case segLine:
			p1 := seg.line.Eval(t1)
			dst.LineTo(p1.X, p1.Y)
		case segCubic:
			sub := seg.cubic
			if t0 != 0 || t1 != 1 {
				sub = seg.cubic.Subsegment(t0, t1)
			}
			dst.CubicTo(sub.P1.X, sub.P1.Y, sub.P2.X, sub.P2.Y, sub.P3.X, sub.P3.Y)
		}
	}

	if c.closed && start <= 0 && end >= c.length {
		dst.Close()
	}
}

// PosTan returns the position and unit tangent at distance dist along
// subpath i. The distance is clamped to the subpath.
func (m *PathMeasure) PosTan(i int, dist float64) (pos, tangent Point) {
	c := &m.contours[i]
	dist = math.Max(0, math.Min(dist, c.length))
	for k := range c.segs {
		seg := &c.segs[k]
		if dist <= seg.start+seg.length || k == len(c.segs)-1 {
			t := seg.tAt(dist - seg.start)
			return seg.eval(t), seg.tangent(t)
		}
	}
	return Point{}, Point{}
}
