package content

import (
	"math"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// maxCopies bounds the number of copies a repeater draws.
const maxCopies = 1000

// repeater draws the items declared before it once per copy. Copy i is
// transformed by the repeater transform applied i+offset times and its
// opacity runs from the start opacity to the end opacity.
type repeater struct {
	copies, offset           *animation.Value[float64]
	startOpacity, endOpacity *animation.Value[float64]
	anchor, position         *animation.Value[geom.Point]
	scale                    *animation.Value[geom.Point]
	rotation                 *animation.Value[float64]
	below                    bool
	limit                    int // copies for which sources were registered
	content                  *Group
	ver                      uint64
}

func newRepeater(r *model.Repeater) *repeater {
	t := r.Transform
	rp := &repeater{
		copies:       floatValue(r.Copies, 1),
		offset:       floatValue(r.Offset, 0),
		startOpacity: floatValue(r.StartOpacity, 100),
		endOpacity:   floatValue(r.EndOpacity, 100),
		anchor:       pointValue(t.Anchor, geom.Point{}),
		position:     pointValue(t.Position, geom.Point{}),
		scale:        pointValue(t.Scale, geom.Pt(100, 100)),
		rotation:     floatValue(t.Rotation, 0),
		below:        r.Composite == model.RepeaterBelow,
		ver:          1,
	}
	rp.limit = maxCount(rp.copies.Property())
	if rp.limit > maxCopies {
		logging.WarnOnce("lottie: repeater copies clamped", "copies", rp.limit, "max", maxCopies)
		rp.limit = maxCopies
	}
	return rp
}

// maxCount returns the largest copy count p takes in any keyframe.
func maxCount(p *animation.Property[float64]) int {
	m := p.StartValue()
	for _, k := range p.Keyframes() {
		m = math.Max(m, math.Max(k.StartValue, k.EndValue))
	}
	return max(0, int(math.Floor(m)))
}

func (r *repeater) setFrame(frame float64) bool {
	changed := false
	for _, v := range [...]*animation.Value[float64]{r.copies, r.offset, r.startOpacity, r.endOpacity, r.rotation} {
		if v.SetFrame(frame) {
			changed = true
		}
	}
	for _, v := range [...]*animation.Value[geom.Point]{r.anchor, r.position, r.scale} {
		if v.SetFrame(frame) {
			changed = true
		}
	}
	if changed {
		r.ver++
	}
	if r.content.SetFrame(frame) {
		changed = true
	}
	return changed
}

// count returns the number of copies drawn at the current frame.
func (r *repeater) count() int {
	return min(r.limit, max(0, int(math.Floor(r.copies.Value()))))
}

// copyMatrix returns the transform of copy i.
func (r *repeater) copyMatrix(i int) geom.Matrix {
	n := float64(i) + r.offset.Value()
	pos, anchor := r.position.Value(), r.anchor.Value()
	s := r.scale.Value()
	return geom.Translate(pos.X*n, pos.Y*n).
		Multiply(geom.Translate(anchor.X, anchor.Y)).
		Multiply(geom.RotateDegrees(r.rotation.Value() * n)).
		Multiply(geom.Scale(math.Pow(s.X/100, n), math.Pow(s.Y/100, n))).
		Multiply(geom.Translate(-anchor.X, -anchor.Y))
}

// copyOpacity returns the opacity of copy i out of n.
func (r *repeater) copyOpacity(i, n int) float64 {
	so, eo := r.startOpacity.Value(), r.endOpacity.Value()
	if n <= 1 {
		return clamp01(so / 100)
	}
	t := float64(i) / float64(n-1)
	return clamp01((so + (eo-so)*t) / 100)
}

func (r *repeater) draw(s surface.Surface, alpha float64) {
	n := r.count()
	for j := range n {
		i := j
		if r.below {
			i = n - 1 - j
		}
		s.Save()
		s.Concat(r.copyMatrix(i))
		r.content.Draw(s, alpha*r.copyOpacity(i, n))
		s.Restore()
	}
}

// copyLink places the content of one copy in the space of the repeater.
type copyLink struct {
	r *repeater
	i int
}

func (l copyLink) matrix() (geom.Matrix, bool) {
	if l.i >= l.r.count() {
		return geom.Matrix{}, false
	}
	return l.r.copyMatrix(l.i), true
}

func (l copyLink) version() uint64 { return l.r.ver }
