package content

import (
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
)

// mergeElement combines the geometry declared before it into one path.
// Boolean modes fold from the first declared input, so Subtract removes
// every later input from the first one.
type mergeElement struct {
	inputs  sourceSet
	op      geom.BoolOp
	concat  bool
	sig     signature
	path    *geom.Path
	version uint64
}

func newMerge(m *model.Merge, disabled bool) *mergeElement {
	e := &mergeElement{concat: disabled}
	switch m.Mode {
	case model.MergeAdd:
		e.op = geom.Union
	case model.MergeSubtract:
		e.op = geom.Difference
	case model.MergeIntersect:
		e.op = geom.Intersect
	case model.MergeExclude:
		e.op = geom.Xor
	default:
		e.concat = true
	}
	return e
}

func (m *mergeElement) setFrame(float64) bool { return false }

// Path returns the merged geometry.
func (m *mergeElement) Path() *geom.Path {
	if !m.sig.update(m.inputs.signature()) {
		return m.path
	}
	if m.concat {
		m.path = m.inputs.Path()
	} else {
		var paths []*geom.Path
		for _, src := range m.inputs.sources {
			mat, ok := src.matrix()
			if !ok {
				continue
			}
			paths = append(paths, src.geo.Path().Transform(mat))
		}
		m.path = geom.Combine(m.op, paths...)
	}
	m.version++
	return m.path
}

// Version changes whenever Path would return a different path.
func (m *mergeElement) Version() uint64 {
	m.Path()
	return m.version
}
