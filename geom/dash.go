package geom

import "math"

// Dash applies a dash pattern to p and returns the dashed path.
//
// The pattern contains alternating dash and gap lengths; an odd-length
// pattern is repeated to make it even. Negative lengths are taken as their
// absolute value. A nil, empty or all-zero pattern returns p unchanged.
// The offset shifts the start of the pattern along each subpath.
func Dash(p *Path, pattern []float64, offset float64) *Path {
	arr := effectiveDashArray(pattern)
	if arr == nil {
		return p
	}
	var period float64
	for _, l := range arr {
		period += l
	}

	m := NewPathMeasure(p)
	out := NewPath()
	for i := 0; i < m.ContourCount(); i++ {
		length := m.ContourLength(i)

		// Find where in the pattern the subpath starts.
		phase := floorMod(offset, period)
		idx := 0
		for phase >= arr[idx] {
			phase -= arr[idx]
			idx = (idx + 1) % len(arr)
		}

		dist := 0.0
		remaining := arr[idx] - phase
		for dist < length {
			next := math.Min(dist+remaining, length)
			if idx%2 == 0 && next > dist {
				m.AppendSegment(i, dist, next, out, true)
			}
			dist = next
			idx = (idx + 1) % len(arr)
			remaining = arr[idx]
		}
	}
	return out
}

// effectiveDashArray normalizes a dash pattern. Returns nil when the
// pattern draws a solid line.
func effectiveDashArray(pattern []float64) []float64 {
	if len(pattern) == 0 {
		return nil
	}
	arr := make([]float64, 0, len(pattern)*2)
	var total float64
	for _, l := range pattern {
		l = math.Abs(l)
		arr = append(arr, l)
		total += l
	}
	if total <= 0 {
		return nil
	}
	if len(arr)%2 != 0 {
		arr = append(arr, arr...)
	}
	return arr
}
