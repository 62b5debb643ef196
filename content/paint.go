package content

import (
	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// paint is the part shared by fills and strokes: the geometry it draws.
type paint struct {
	sources sourceSet
}

func (p *paint) set() *sourceSet { return &p.sources }

func strokePaint() paint {
	return paint{sources: sourceSet{stroke: true}}
}

// painter is a drawer that accepts sources.
type painter interface {
	drawer
	set() *sourceSet
}

type fill struct {
	paint
	color   *animation.Value[animation.Color]
	opacity *animation.Value[float64]
	rule    geom.FillRule
}

func newFill(f *model.Fill) *fill {
	c := f.Color
	if c == nil {
		c = animation.Static(animation.RGB(0, 0, 0))
	}
	return &fill{
		color:   animation.NewColor(c),
		opacity: floatValue(f.Opacity, 100),
		rule:    f.Rule,
	}
}

func (f *fill) setFrame(frame float64) bool {
	a := f.color.SetFrame(frame)
	b := f.opacity.SetFrame(frame)
	return a || b
}

func (f *fill) draw(s surface.Surface, alpha float64) {
	opacity := clamp01(f.opacity.Value() / 100)
	if opacity == 0 || alpha <= 0 {
		return
	}
	p := f.sources.Path()
	if p.IsEmpty() {
		return
	}
	s.FillPath(p, surface.FillStyle{
		Brush: surface.Solid{Color: f.color.Value().NRGBA(opacity)},
		Rule:  f.rule,
		Alpha: alpha,
	})
}

// strokeParams evaluates the members shared by solid and gradient strokes.
type strokeParams struct {
	width   *animation.Value[float64]
	cap     surface.LineCap
	join    surface.LineJoin
	miter   float64
	dashes  []*animation.Value[float64]
	dashOff *animation.Value[float64]
	pattern []float64
}

func newStrokeParams(st model.StrokeStyle) strokeParams {
	p := strokeParams{
		width: floatValue(st.Width, 1),
		cap:   lineCap(st.Cap),
		join:  lineJoin(st.Join),
		miter: st.MiterLimit,
	}
	for _, d := range st.Dashes {
		if d.Kind == model.DashOffset {
			p.dashOff = floatValue(d.Value, 0)
			continue
		}
		p.dashes = append(p.dashes, floatValue(d.Value, 0))
	}
	return p
}

func (p *strokeParams) setFrame(frame float64) bool {
	changed := p.width.SetFrame(frame)
	for _, d := range p.dashes {
		if d.SetFrame(frame) {
			changed = true
		}
	}
	if p.dashOff != nil && p.dashOff.SetFrame(frame) {
		changed = true
	}
	return changed
}

func (p *strokeParams) style(brush surface.Brush, alpha float64) surface.StrokeStyle {
	st := surface.StrokeStyle{
		Brush:      brush,
		Width:      p.width.Value(),
		Cap:        p.cap,
		Join:       p.join,
		MiterLimit: p.miter,
		Alpha:      alpha,
	}
	if len(p.dashes) > 0 {
		p.pattern = p.pattern[:0]
		for _, d := range p.dashes {
			p.pattern = append(p.pattern, d.Value())
		}
		st.Dash = p.pattern
		if p.dashOff != nil {
			st.DashOffset = p.dashOff.Value()
		}
	}
	return st
}

func lineCap(c model.LineCap) surface.LineCap {
	switch c {
	case model.CapButt:
		return surface.LineCapButt
	case model.CapSquare:
		return surface.LineCapSquare
	}
	return surface.LineCapRound
}

func lineJoin(j model.LineJoin) surface.LineJoin {
	switch j {
	case model.JoinMiter:
		return surface.LineJoinMiter
	case model.JoinBevel:
		return surface.LineJoinBevel
	}
	return surface.LineJoinRound
}

type stroke struct {
	paint
	strokeParams
	color   *animation.Value[animation.Color]
	opacity *animation.Value[float64]
}

func newStroke(st *model.Stroke) *stroke {
	c := st.Color
	if c == nil {
		c = animation.Static(animation.RGB(0, 0, 0))
	}
	return &stroke{
		paint:        strokePaint(),
		strokeParams: newStrokeParams(st.StrokeStyle),
		color:        animation.NewColor(c),
		opacity:      floatValue(st.Opacity, 100),
	}
}

func (st *stroke) setFrame(frame float64) bool {
	a := st.strokeParams.setFrame(frame)
	b := st.color.SetFrame(frame)
	c := st.opacity.SetFrame(frame)
	return a || b || c
}

func (st *stroke) draw(s surface.Surface, alpha float64) {
	opacity := clamp01(st.opacity.Value() / 100)
	if opacity == 0 || alpha <= 0 || st.width.Value() <= 0 {
		return
	}
	p := st.sources.Path()
	if p.IsEmpty() {
		return
	}
	brush := surface.Solid{Color: st.color.Value().NRGBA(opacity)}
	s.StrokePath(p, st.style(brush, alpha))
}

type gradientFill struct {
	paint
	gradient *gradientPaint
	rule     geom.FillRule
}

func (f *gradientFill) setFrame(frame float64) bool {
	return f.gradient.setFrame(frame)
}

func (f *gradientFill) draw(s surface.Surface, alpha float64) {
	opacity := f.gradient.opacityValue()
	if opacity == 0 || alpha <= 0 {
		return
	}
	p := f.sources.Path()
	if p.IsEmpty() {
		return
	}
	s.FillPath(p, surface.FillStyle{
		Brush: f.gradient.brush(),
		Rule:  f.rule,
		Alpha: alpha * opacity,
	})
}

type gradientStroke struct {
	paint
	strokeParams
	gradient *gradientPaint
}

func (st *gradientStroke) setFrame(frame float64) bool {
	a := st.strokeParams.setFrame(frame)
	b := st.gradient.setFrame(frame)
	return a || b
}

func (st *gradientStroke) draw(s surface.Surface, alpha float64) {
	opacity := st.gradient.opacityValue()
	if opacity == 0 || alpha <= 0 || st.width.Value() <= 0 {
		return
	}
	p := st.sources.Path()
	if p.IsEmpty() {
		return
	}
	s.StrokePath(p, st.style(st.gradient.brush(), alpha*opacity))
}
