package animation

import "github.com/gogpu/gg-lottie/geom"

func lerpFloat(k *Keyframe[float64], t float64) float64 {
	return k.StartValue + (k.EndValue-k.StartValue)*t
}

var floatArith = &Arith[float64]{
	Add:   func(a, b float64) float64 { return a + b },
	Sub:   func(a, b float64) float64 { return a - b },
	Scale: func(a, s float64) float64 { return a * s },
	FromFloats: func(v []float64) (float64, bool) {
		if len(v) != 1 {
			return 0, false
		}
		return v[0], true
	},
}

// NewFloat returns a scalar value.
func NewFloat(p *Property[float64]) *Value[float64] {
	return NewValue(p, lerpFloat, func(a, b float64) bool { return a == b }, floatArith)
}

// KeyframedPoints builds a point property and prepares the arc-length
// tables of keyframes that carry spatial tangents.
func KeyframedPoints(kfs []Keyframe[geom.Point]) (*Property[geom.Point], error) {
	prepared := make([]Keyframe[geom.Point], len(kfs))
	copy(prepared, kfs)
	for i := range prepared {
		k := &prepared[i]
		if k.Hold || (k.OutTangent.IsZero() && k.InTangent.IsZero()) {
			continue
		}
		c1 := k.StartValue.Add(k.OutTangent)
		c2 := k.EndValue.Add(k.InTangent)
		path := geom.NewPath()
		path.MoveTo(k.StartValue.X, k.StartValue.Y)
		path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, k.EndValue.X, k.EndValue.Y)
		if m := geom.NewPathMeasure(path); m.ContourCount() > 0 {
			k.spatial = m
		}
	}
	return Keyframed(prepared)
}

// lerpPoint walks spatial keyframes by arc-length fraction and
// interpolates the others linearly.
func lerpPoint(k *Keyframe[geom.Point], t float64) geom.Point {
	if k.spatial != nil {
		pos, _ := k.spatial.PosTan(0, t*k.spatial.Length())
		return pos
	}
	return k.StartValue.Lerp(k.EndValue, t)
}

var pointArith = &Arith[geom.Point]{
	Add:   geom.Point.Add,
	Sub:   geom.Point.Sub,
	Scale: geom.Point.Mul,
	FromFloats: func(v []float64) (geom.Point, bool) {
		if len(v) < 2 {
			return geom.Point{}, false
		}
		return geom.Pt(v[0], v[1]), true
	},
}

// NewPoint returns a 2D point or scale value.
func NewPoint(p *Property[geom.Point]) *Value[geom.Point] {
	return NewValue(p, lerpPoint, func(a, b geom.Point) bool { return a == b }, pointArith)
}

// NewColor returns a color value.
func NewColor(p *Property[Color]) *Value[Color] {
	return NewValue(p, func(k *Keyframe[Color], t float64) Color {
		return LerpColor(k.StartValue, k.EndValue, t)
	}, func(a, b Color) bool { return a == b }, nil)
}

// NewGradient returns a gradient value.
func NewGradient(p *Property[Gradient]) *Value[Gradient] {
	return NewValue(p, func(k *Keyframe[Gradient], t float64) Gradient {
		return LerpGradient(k.StartValue, k.EndValue, t)
	}, Gradient.Equal, nil)
}

// NewShape returns a path value.
func NewShape(p *Property[ShapeData]) *Value[ShapeData] {
	return NewValue(p, func(k *Keyframe[ShapeData], t float64) ShapeData {
		return LerpShape(k.StartValue, k.EndValue, t)
	}, ShapeData.Equal, nil)
}

// NewText returns a text value. Text keyframes hold their start document.
func NewText(p *Property[TextDocument]) *Value[TextDocument] {
	return NewValue(p, func(k *Keyframe[TextDocument], _ float64) TextDocument {
		return k.StartValue
	}, func(a, b TextDocument) bool { return a == b }, nil)
}
