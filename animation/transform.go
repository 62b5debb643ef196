package animation

import (
	"math"

	"github.com/gogpu/gg-lottie/geom"
)

// TransformProps are the animatable members of a layer or group transform.
// Nil members take their identity value. Position is either a point or the
// split PositionX and PositionY pair. Scale and Opacity are percentages,
// angles are in degrees.
type TransformProps struct {
	Anchor     *Property[geom.Point]
	Position   *Property[geom.Point]
	PositionX  *Property[float64]
	PositionY  *Property[float64]
	Scale      *Property[geom.Point]
	Rotation   *Property[float64]
	Skew       *Property[float64]
	SkewAxis   *Property[float64]
	Opacity    *Property[float64]
	AutoOrient bool
}

// IsAnimated reports whether any member can change over time.
func (p *TransformProps) IsAnimated() bool {
	return animated(p.Anchor) || animated(p.Position) ||
		animated(p.PositionX) || animated(p.PositionY) ||
		animated(p.Scale) || animated(p.Rotation) ||
		animated(p.Skew) || animated(p.SkewAxis) || animated(p.Opacity)
}

func animated[T any](p *Property[T]) bool {
	return p != nil && p.IsAnimated()
}

var (
	zeroPoint    = Static(geom.Point{})
	hundredScale = Static(geom.Pt(100, 100))
	zeroFloat    = Static(0.0)
	fullOpacity  = Static(100.0)
)

func pointOr(p, def *Property[geom.Point]) *Value[geom.Point] {
	if p == nil {
		p = def
	}
	return NewPoint(p)
}

func floatOr(p, def *Property[float64]) *Value[float64] {
	if p == nil {
		p = def
	}
	return NewFloat(p)
}

// Transform evaluates TransformProps into a matrix and an opacity.
//
// The matrix maps local coordinates to parent coordinates:
// translate(position) * rotate * skew * scale * translate(-anchor).
type Transform struct {
	anchor   *Value[geom.Point]
	position *Value[geom.Point]
	posX     *Value[float64]
	posY     *Value[float64]
	split    bool
	scale    *Value[geom.Point]
	rotation *Value[float64]
	skew     *Value[float64]
	skewAxis *Value[float64]
	opacity  *Value[float64]

	autoOrient bool
	matrix     geom.Matrix
	version    uint64
}

// NewTransform creates the render state for props, positioned at the
// first frame of each member.
func NewTransform(props TransformProps) *Transform {
	t := &Transform{
		anchor:     pointOr(props.Anchor, zeroPoint),
		scale:      pointOr(props.Scale, hundredScale),
		rotation:   floatOr(props.Rotation, zeroFloat),
		skew:       floatOr(props.Skew, zeroFloat),
		skewAxis:   floatOr(props.SkewAxis, zeroFloat),
		opacity:    floatOr(props.Opacity, fullOpacity),
		autoOrient: props.AutoOrient,
		version:    1,
	}
	if props.Position == nil && (props.PositionX != nil || props.PositionY != nil) {
		t.split = true
		t.posX = floatOr(props.PositionX, zeroFloat)
		t.posY = floatOr(props.PositionY, zeroFloat)
	} else {
		t.position = pointOr(props.Position, zeroPoint)
	}
	t.matrix = t.compute()
	return t
}

// SetFrame updates every member and reports whether the matrix or the
// opacity changed.
func (t *Transform) SetFrame(frame float64) bool {
	changed := t.anchor.SetFrame(frame)
	changed = t.scale.SetFrame(frame) || changed
	changed = t.rotation.SetFrame(frame) || changed
	changed = t.skew.SetFrame(frame) || changed
	changed = t.skewAxis.SetFrame(frame) || changed
	changed = t.opacity.SetFrame(frame) || changed
	if t.split {
		changed = t.posX.SetFrame(frame) || changed
		changed = t.posY.SetFrame(frame) || changed
	} else {
		changed = t.position.SetFrame(frame) || changed
	}
	if !changed {
		return false
	}
	t.matrix = t.compute()
	t.version++
	return true
}

// Matrix returns the local-to-parent matrix.
func (t *Transform) Matrix() geom.Matrix {
	return t.matrix
}

// Opacity returns the opacity in [0, 1].
func (t *Transform) Opacity() float64 {
	return clamp01(t.opacity.Value() / 100)
}

// Version increases whenever SetFrame changes the transform.
func (t *Transform) Version() uint64 {
	return t.version
}

// Position returns the current position.
func (t *Transform) Position() geom.Point {
	if t.split {
		return geom.Pt(t.posX.Value(), t.posY.Value())
	}
	return t.position.Value()
}

// orientation returns the motion direction in degrees at the current frame.
func (t *Transform) orientation() float64 {
	if t.split || !t.position.IsAnimated() {
		return 0
	}
	f := t.position.Frame()
	a, b := t.position.ValueAt(f), t.position.ValueAt(f+velocityDelta)
	if a == b {
		a = t.position.ValueAt(f - velocityDelta)
		b = t.position.Value()
	}
	d := b.Sub(a)
	if d.IsZero() {
		return 0
	}
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

func (t *Transform) compute() geom.Matrix {
	anchor := t.anchor.Value()
	scale := t.scale.Value()
	rot := t.rotation.Value()
	if t.autoOrient {
		rot += t.orientation()
	}

	m := geom.Translate(-anchor.X, -anchor.Y)
	m = geom.Scale(scale.X/100, scale.Y/100).Multiply(m)
	if sk := t.skew.Value(); sk != 0 {
		m = geom.Skew(sk, t.skewAxis.Value()).Multiply(m)
	}
	if rot != 0 {
		m = geom.RotateDegrees(rot).Multiply(m)
	}
	pos := t.Position()
	return geom.Translate(pos.X, pos.Y).Multiply(m)
}
