package layer

import (
	"image/color"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// everywhere stands in for the unbounded plane when a mask starts from
// full coverage or is inverted.
var everywhere = geom.RectXYWH(-1e5, -1e5, 2e5, 2e5)

var opaque = surface.Solid{Color: color.NRGBA{A: 255}}

type mask struct {
	mode     model.MaskMode
	inverted bool
	shape    *animation.Value[animation.ShapeData]
	opacity  *animation.Value[float64]
	path     *geom.Path
	version  uint64
}

func newMask(m *model.Mask) *mask {
	op := m.Opacity
	if op == nil {
		op = animation.Static(100.0)
	}
	return &mask{
		mode:     m.Mode,
		inverted: m.Inverted,
		shape:    animation.NewShape(m.Path),
		opacity:  animation.NewFloat(op),
	}
}

func (m *mask) setFrame(frame float64) bool {
	a := m.shape.SetFrame(frame)
	b := m.opacity.SetFrame(frame)
	return a || b
}

// fill returns the area of the mask and the rule it is filled with.
func (m *mask) fill() (*geom.Path, geom.FillRule) {
	if m.path == nil || m.version != m.shape.Version() {
		m.path = m.shape.Value().Path()
		if m.inverted {
			inv := everywhere.Path()
			inv.Append(m.path)
			m.path = inv
		}
		m.version = m.shape.Version()
	}
	if m.inverted {
		return m.path, geom.EvenOdd
	}
	return m.path, geom.NonZero
}

func (m *mask) alpha() float64 {
	return max(0, min(1, m.opacity.Value()/100))
}

// drawMasks composites the combined mask coverage onto the content drawn
// so far in the current layer.
func drawMasks(s surface.Surface, masks []*mask) {
	s.PushLayer(surface.BlendDestinationIn, 1)
	if masks[0].mode != model.MaskAdd {
		s.FillPath(everywhere.Path(), surface.FillStyle{Brush: opaque, Alpha: 1})
	}
	for _, m := range masks {
		p, rule := m.fill()
		style := surface.FillStyle{Brush: opaque, Rule: rule, Alpha: 1}
		switch m.mode {
		case model.MaskAdd:
			style.Alpha = m.alpha()
			s.FillPath(p, style)
		case model.MaskSubtract:
			s.PushLayer(surface.BlendDestinationOut, m.alpha())
			s.FillPath(p, style)
			s.PopLayer()
		case model.MaskIntersect:
			s.PushLayer(surface.BlendDestinationIn, m.alpha())
			s.FillPath(p, style)
			s.PopLayer()
		}
	}
	s.PopLayer()
}
