package content

import (
	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
)

// generator builds the untrimmed outline of a path item.
type generator interface {
	setFrame(frame float64) bool
	build() *geom.Path
}

// pathElement is a path-producing item with the trims that apply to it.
// Fills see only simultaneous trims; strokes see individual ones too.
type pathElement struct {
	gen     generator
	raw     *geom.Path
	rawVer  uint64
	trims   []*trimElement // nearest first
	scratch []uint64
	fill    trimmed
	stroke  trimmed
}

// trimmed caches one trimmed rendition of the raw outline.
type trimmed struct {
	sig     signature
	path    *geom.Path
	version uint64
}

func newPathElement(gen generator, trims []*trimElement) *pathElement {
	e := &pathElement{gen: gen, raw: gen.build(), rawVer: 1}
	// The walk collects trims bottom up, so the nearest one is last.
	for i := len(trims) - 1; i >= 0; i-- {
		e.trims = append(e.trims, trims[i])
		trims[i].addMember(e)
	}
	return e
}

func (e *pathElement) setFrame(frame float64) bool {
	if !e.gen.setFrame(frame) {
		return false
	}
	e.raw = e.gen.build()
	e.rawVer++
	return true
}

// Raw returns the outline before trimming.
func (e *pathElement) Raw() *geom.Path {
	return e.raw
}

// Path returns the outline cut by every simultaneous trim that applies to it.
func (e *pathElement) Path() *geom.Path {
	return e.trim(&e.fill, false)
}

// Version changes whenever Path would return a different path.
func (e *pathElement) Version() uint64 {
	e.Path()
	return e.fill.version
}

// StrokePath returns the outline cut by every trim that applies to it.
func (e *pathElement) StrokePath() *geom.Path {
	return e.trim(&e.stroke, true)
}

// StrokeVersion changes whenever StrokePath would return a different path.
func (e *pathElement) StrokeVersion() uint64 {
	e.StrokePath()
	return e.stroke.version
}

func (e *pathElement) trim(c *trimmed, individual bool) *geom.Path {
	sig := append(e.scratch[:0], e.rawVer)
	for _, t := range e.trims {
		if individual || !t.individually {
			sig = t.appendSignature(sig)
		}
	}
	e.scratch = sig
	if !c.sig.update(sig) {
		return c.path
	}
	p := e.raw
	for _, t := range e.trims {
		if individual || !t.individually {
			p = t.apply(e, p)
		}
	}
	c.path = p
	c.version++
	return p
}

type freeformPath struct {
	shape *animation.Value[animation.ShapeData]
}

func (g *freeformPath) setFrame(frame float64) bool {
	return g.shape.SetFrame(frame)
}

func (g *freeformPath) build() *geom.Path {
	return g.shape.Value().Path()
}

type rectPath struct {
	position, size *animation.Value[geom.Point]
	roundness      *animation.Value[float64]
	reversed       bool
}

func (g *rectPath) setFrame(frame float64) bool {
	a := g.position.SetFrame(frame)
	b := g.size.SetFrame(frame)
	c := g.roundness.SetFrame(frame)
	return a || b || c
}

func (g *rectPath) build() *geom.Path {
	return geom.RoundedRect(g.position.Value(), g.size.Value(), g.roundness.Value(), g.reversed)
}

type ellipsePath struct {
	position, size *animation.Value[geom.Point]
	reversed       bool
}

func (g *ellipsePath) setFrame(frame float64) bool {
	a := g.position.SetFrame(frame)
	b := g.size.SetFrame(frame)
	return a || b
}

func (g *ellipsePath) build() *geom.Path {
	return geom.Ellipse(g.position.Value(), g.size.Value(), g.reversed)
}

type starPath struct {
	polygon  bool
	reversed bool
	position *animation.Value[geom.Point]
	floats   [6]*animation.Value[float64] // points, rotation, ir, or, is, os
}

func (g *starPath) setFrame(frame float64) bool {
	changed := g.position.SetFrame(frame)
	for _, v := range g.floats {
		if v.SetFrame(frame) {
			changed = true
		}
	}
	return changed
}

func (g *starPath) build() *geom.Path {
	sp := geom.StarParams{
		Position:       g.position.Value(),
		Points:         g.floats[0].Value(),
		Rotation:       g.floats[1].Value(),
		InnerRadius:    g.floats[2].Value(),
		OuterRadius:    g.floats[3].Value(),
		InnerRoundness: g.floats[4].Value(),
		OuterRoundness: g.floats[5].Value(),
		Reversed:       g.reversed,
	}
	if g.polygon {
		return geom.Polygon(sp)
	}
	return geom.Star(sp)
}

// newGenerator returns the generator for a path-producing item, or nil.
func newGenerator(item model.ShapeItem) generator {
	switch it := item.(type) {
	case *model.Path:
		if it.Data == nil {
			return nil
		}
		return &freeformPath{shape: animation.NewShape(it.Data)}
	case *model.Rect:
		return &rectPath{
			position:  pointValue(it.Position, geom.Point{}),
			size:      pointValue(it.Size, geom.Point{}),
			roundness: floatValue(it.Roundness, 0),
			reversed:  it.Direction.Reversed(),
		}
	case *model.Ellipse:
		return &ellipsePath{
			position: pointValue(it.Position, geom.Point{}),
			size:     pointValue(it.Size, geom.Point{}),
			reversed: it.Direction.Reversed(),
		}
	case *model.Polystar:
		return &starPath{
			polygon:  it.Type == model.StarTypePolygon,
			reversed: it.Direction.Reversed(),
			position: pointValue(it.Position, geom.Point{}),
			floats: [6]*animation.Value[float64]{
				floatValue(it.Points, 5),
				floatValue(it.Rotation, 0),
				floatValue(it.InnerRadius, 0),
				floatValue(it.OuterRadius, 0),
				floatValue(it.InnerRoundness, 0),
				floatValue(it.OuterRoundness, 0),
			},
		}
	}
	return nil
}
