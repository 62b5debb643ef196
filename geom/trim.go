package geom

import "math"

// Trim returns the part of p between the fractions start and end of its
// total length. Offset shifts both ends and is also a fraction of the length,
// so an offset of 1 is a full turn. The interval may wrap past the end of the
// path, in which case the wrapped remainder is taken from the beginning.
//
// The total length is the sum over all subpaths, and each subpath contributes
// the part of the interval that falls within its own range.
//
// A span covering the whole path returns a copy of p; an empty span returns
// an empty path.
func Trim(p *Path, start, end, offset float64) *Path {
	start = clamp01(start)
	end = clamp01(end)
	if math.Abs(end-start-1) < 0.01 || (start == 1 && end == 0) {
		return p.Clone()
	}

	m := NewPathMeasure(p)
	length := m.Length()
	if length == 0 {
		return p.Clone()
	}

	s := math.Min(start, end)*length + offset*length
	e := math.Max(start, end)*length + offset*length

	// A trim that rotated past the end is shifted back into range.
	if s >= length && e >= length {
		s = floorMod(s, length)
		e = floorMod(e, length)
	}
	if s < 0 {
		s = floorMod(s, length)
	}
	if e < 0 {
		e = floorMod(e, length)
	}
	out := NewPath()
	if s == e {
		return out
	}
	if s > e {
		s -= length
	}

	switch {
	case e > length:
		appendRange(m, out, s, length)
		appendRange(m, out, 0, e-length)
	case s < 0:
		appendRange(m, out, length+s, length)
		appendRange(m, out, 0, e)
	default:
		appendRange(m, out, s, e)
	}
	return out
}

// appendRange extracts the global distance range [a, b] from every subpath
// it overlaps.
func appendRange(m *PathMeasure, dst *Path, a, b float64) {
	offset := 0.0
	for i := 0; i < m.ContourCount(); i++ {
		l := m.ContourLength(i)
		lo := math.Max(a, offset)
		hi := math.Min(b, offset+l)
		if lo < hi {
			m.AppendSegment(i, lo-offset, hi-offset, dst, true)
		}
		offset += l
	}
}

func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
