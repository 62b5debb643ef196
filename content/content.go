package content

import (
	"slices"
	"sync/atomic"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/surface"
)

// Options configures how a shape stack is built.
type Options struct {
	// DisableMerge turns merge items into plain concatenation of their
	// inputs instead of boolean operations.
	DisableMerge bool

	// Shaders caches gradient brushes. If nil, the stack gets its own cache.
	Shaders *ShaderCache
}

// node is any element that follows the frame.
type node interface {
	setFrame(frame float64) bool
}

// drawer is an element that emits drawing operations.
type drawer interface {
	node
	draw(s surface.Surface, alpha float64)
}

// geometry produces a path in its own coordinate space.
type geometry interface {
	Path() *geom.Path
	Version() uint64
}

// strokeGeometry is a geometry that strokes with a different outline than
// it fills.
type strokeGeometry interface {
	StrokePath() *geom.Path
	StrokeVersion() uint64
}

// link maps the coordinates of a nested group into the space of its parent.
type link interface {
	matrix() (geom.Matrix, bool)
	version() uint64
}

type groupLink struct {
	t *animation.Transform
}

func (l groupLink) matrix() (geom.Matrix, bool) { return l.t.Matrix(), true }
func (l groupLink) version() uint64             { return l.t.Version() }

// source is a geometry seen from the group of the paint that draws it.
// links run from the outermost group to the innermost.
type source struct {
	geo   geometry
	links []link
}

func (src source) path(stroke bool) *geom.Path {
	if sg, ok := src.geo.(strokeGeometry); ok && stroke {
		return sg.StrokePath()
	}
	return src.geo.Path()
}

func (src source) version(stroke bool) uint64 {
	if sg, ok := src.geo.(strokeGeometry); ok && stroke {
		return sg.StrokeVersion()
	}
	return src.geo.Version()
}

func (s source) matrix() (geom.Matrix, bool) {
	m := geom.Identity()
	for _, l := range s.links {
		lm, ok := l.matrix()
		if !ok {
			return m, false
		}
		m = m.Multiply(lm)
	}
	return m, true
}

// sourceSet combines its sources into one cached path.
type sourceSet struct {
	sources []source
	stroke  bool
	sig     signature
	scratch []uint64
	path    *geom.Path
	version uint64
}

func (s *sourceSet) add(src source) {
	// The reverse walk finds sources bottom up; keep declared order.
	s.sources = slices.Insert(s.sources, 0, src)
}

func (s *sourceSet) signature() []uint64 {
	sig := s.scratch[:0]
	for _, src := range s.sources {
		sig = append(sig, src.version(s.stroke))
		for _, l := range src.links {
			sig = append(sig, l.version())
		}
	}
	s.scratch = sig
	return sig
}

// Path returns the concatenation of every active source.
func (s *sourceSet) Path() *geom.Path {
	if !s.sig.update(s.signature()) {
		return s.path
	}
	out := geom.NewPath()
	for _, src := range s.sources {
		m, ok := src.matrix()
		if !ok {
			continue
		}
		if m.IsIdentity() {
			out.Append(src.path(s.stroke))
		} else {
			out.AppendTransformed(src.path(s.stroke), m)
		}
	}
	s.path = out
	s.version++
	return out
}

// Version changes whenever Path would return a different path.
func (s *sourceSet) Version() uint64 {
	s.Path()
	return s.version
}

// signature holds the input versions a cached value was built from.
type signature struct {
	vals  []uint64
	valid bool
}

// update stores next and reports whether the cached value is stale.
func (s *signature) update(next []uint64) bool {
	if s.valid && slices.Equal(s.vals, next) {
		return false
	}
	s.vals = append(s.vals[:0], next...)
	s.valid = true
	return true
}

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

func floatValue(p *animation.Property[float64], def float64) *animation.Value[float64] {
	if p == nil {
		p = animation.Static(def)
	}
	return animation.NewFloat(p)
}

func pointValue(p *animation.Property[geom.Point], def geom.Point) *animation.Value[geom.Point] {
	if p == nil {
		p = animation.Static(def)
	}
	return animation.NewPoint(p)
}

// setFrames updates every node and reports whether any of them changed.
func setFrames[N node](nodes []N, frame float64) bool {
	changed := false
	for _, n := range nodes {
		if n.setFrame(frame) {
			changed = true
		}
	}
	return changed
}
