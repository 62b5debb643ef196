package content

import (
	"math"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
)

// trimElement cuts the paths declared before it. Start and end are
// percentages, offset is in degrees where 360 is one full turn.
//
// In simultaneous mode every path is trimmed on its own. In individual
// mode the members are laid end to end in declared order and the window
// runs over the combined length, and only strokes are cut.
type trimElement struct {
	start, end, offset *animation.Value[float64]
	individually       bool
	members            []*pathElement
	version            uint64

	offsets []float64 // start of each member along the combined length
	lengths []float64
	total   float64
	layout  signature
	scratch []uint64
}

func newTrim(t *model.Trim) *trimElement {
	return &trimElement{
		start:        floatValue(t.Start, 0),
		end:          floatValue(t.End, 100),
		offset:       floatValue(t.Offset, 0),
		individually: t.Mode == model.TrimIndividually,
		version:      1,
	}
}

func (t *trimElement) addMember(e *pathElement) {
	// Members arrive bottom up; keep declared order.
	t.members = append([]*pathElement{e}, t.members...)
}

func (t *trimElement) setFrame(frame float64) bool {
	a := t.start.SetFrame(frame)
	b := t.end.SetFrame(frame)
	c := t.offset.SetFrame(frame)
	if a || b || c {
		t.version++
		return true
	}
	return false
}

func (t *trimElement) appendSignature(sig []uint64) []uint64 {
	sig = append(sig, t.version)
	if t.individually {
		for _, m := range t.members {
			sig = append(sig, m.rawVer)
		}
	}
	return sig
}

// window returns the trim as fractions with start <= end.
func (t *trimElement) window() (start, end, offset float64) {
	start = clamp01(t.start.Value() / 100)
	end = clamp01(t.end.Value() / 100)
	if start > end {
		start, end = end, start
	}
	return start, end, t.offset.Value() / 360
}

func (t *trimElement) apply(e *pathElement, p *geom.Path) *geom.Path {
	start, end, offset := t.window()
	if !t.individually {
		return geom.Trim(p, start, end, offset)
	}
	return t.applyIndividually(e, p, start, end, offset)
}

func (t *trimElement) measure() {
	sig := t.scratch[:0]
	for _, m := range t.members {
		sig = append(sig, m.rawVer)
	}
	t.scratch = sig
	if !t.layout.update(sig) {
		return
	}
	t.offsets = t.offsets[:0]
	t.lengths = t.lengths[:0]
	t.total = 0
	for _, m := range t.members {
		l := geom.NewPathMeasure(m.Raw()).Length()
		t.offsets = append(t.offsets, t.total)
		t.lengths = append(t.lengths, l)
		t.total += l
	}
}

func (t *trimElement) applyIndividually(e *pathElement, p *geom.Path, start, end, offset float64) *geom.Path {
	if end-start >= 1 {
		return p
	}
	if end == start {
		return geom.NewPath()
	}
	t.measure()
	idx := -1
	for i, m := range t.members {
		if m == e {
			idx = i
			break
		}
	}
	if idx < 0 || t.total == 0 || t.lengths[idx] == 0 {
		return p
	}

	a := floorMod(start+offset, 1) * t.total
	b := a + (end-start)*t.total
	lo, l := t.offsets[idx], t.lengths[idx]

	out := geom.NewPath()
	t.cut(out, p, a, math.Min(b, t.total), lo, l)
	if b > t.total {
		t.cut(out, p, 0, b-t.total, lo, l)
	}
	return out
}

// cut appends the part of p, a member spanning [lo, lo+l] of the combined
// length, that falls within [a, b].
func (t *trimElement) cut(dst, p *geom.Path, a, b, lo, l float64) {
	s := math.Max(a, lo)
	e := math.Min(b, lo+l)
	if s >= e {
		return
	}
	dst.Append(geom.Trim(p, (s-lo)/l, (e-lo)/l, 0))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
