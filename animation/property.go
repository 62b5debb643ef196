package animation

import (
	"errors"
	"slices"
)

// ErrNoKeyframes is returned when a keyframed property has no keyframes.
var ErrNoKeyframes = errors.New("animation: no keyframes")

// Interpolator resolves a value inside keyframe k at eased fraction t.
type Interpolator[T any] func(k *Keyframe[T], t float64) T

// Property is an immutable animatable value: either static or a sorted,
// contiguous list of keyframes.
//
// A Property is safe for concurrent use by multiple render trees. All
// per-render state lives in [Value].
type Property[T any] struct {
	static    T
	keyframes []Keyframe[T]
	expr      *Expression
}

// Static returns a property that never changes.
func Static[T any](v T) *Property[T] {
	return &Property[T]{static: v}
}

// Keyframed returns a property animated by kfs. The keyframes are sorted by
// start frame and each segment end is snapped to the next segment start so
// the list is contiguous.
func Keyframed[T any](kfs []Keyframe[T]) (*Property[T], error) {
	if len(kfs) == 0 {
		return nil, ErrNoKeyframes
	}
	sorted := slices.Clone(kfs)
	slices.SortStableFunc(sorted, func(a, b Keyframe[T]) int {
		switch {
		case a.StartFrame < b.StartFrame:
			return -1
		case a.StartFrame > b.StartFrame:
			return 1
		}
		return 0
	})
	for i := 0; i < len(sorted)-1; i++ {
		sorted[i].EndFrame = sorted[i+1].StartFrame
	}
	last := &sorted[len(sorted)-1]
	if last.EndFrame < last.StartFrame {
		last.EndFrame = last.StartFrame
	}
	return &Property[T]{static: sorted[0].StartValue, keyframes: sorted}, nil
}

// WithExpression returns a copy of p driven by expr.
func (p *Property[T]) WithExpression(expr *Expression) *Property[T] {
	cp := *p
	cp.expr = expr
	return &cp
}

// IsStatic reports whether the property has no keyframes.
func (p *Property[T]) IsStatic() bool {
	return len(p.keyframes) == 0
}

// IsAnimated reports whether the value can change over time.
func (p *Property[T]) IsAnimated() bool {
	return !p.IsStatic() || (p.expr != nil && p.expr.Kind == ExprEase)
}

// Keyframes returns the keyframes. The slice must not be modified.
func (p *Property[T]) Keyframes() []Keyframe[T] {
	return p.keyframes
}

// Expression returns the attached expression, or nil.
func (p *Property[T]) Expression() *Expression {
	return p.expr
}

// FirstFrame returns the start of the first keyframe.
func (p *Property[T]) FirstFrame() float64 {
	if p.IsStatic() {
		return 0
	}
	return p.keyframes[0].StartFrame
}

// LastFrame returns the end of the last keyframe.
func (p *Property[T]) LastFrame() float64 {
	if p.IsStatic() {
		return 0
	}
	return p.keyframes[len(p.keyframes)-1].EndFrame
}

// StartValue returns the value at or before the first keyframe.
func (p *Property[T]) StartValue() T {
	if p.IsStatic() {
		return p.static
	}
	return p.keyframes[0].StartValue
}

// EndValue returns the value at or after the last keyframe.
func (p *Property[T]) EndValue() T {
	if p.IsStatic() {
		return p.static
	}
	return p.keyframes[len(p.keyframes)-1].EndValue
}

// find returns the index of the keyframe containing frame, starting the
// search at hint. Frames outside every keyframe return -1.
func (p *Property[T]) find(frame float64, hint int) int {
	n := len(p.keyframes)
	if hint >= 0 && hint < n {
		if p.keyframes[hint].contains(frame) {
			return hint
		}
		if hint+1 < n && p.keyframes[hint+1].contains(frame) {
			return hint + 1
		}
	}
	for i := range p.keyframes {
		if p.keyframes[i].contains(frame) {
			return i
		}
	}
	return -1
}

// resolve evaluates the keyframes at frame without any expression.
func (p *Property[T]) resolve(frame float64, hint int, interp Interpolator[T]) (T, int) {
	if p.IsStatic() {
		return p.static, -1
	}
	first := &p.keyframes[0]
	if frame < first.StartFrame {
		return first.StartValue, 0
	}
	last := &p.keyframes[len(p.keyframes)-1]
	if frame >= last.EndFrame {
		return last.EndValue, len(p.keyframes) - 1
	}
	i := p.find(frame, hint)
	if i < 0 {
		return last.EndValue, len(p.keyframes) - 1
	}
	k := &p.keyframes[i]
	if k.Hold {
		return k.StartValue, i
	}
	return interp(k, k.fraction(frame)), i
}

// ValueAt evaluates the property at frame, applying its expression.
// It does not touch any render state.
func (p *Property[T]) ValueAt(frame float64, interp Interpolator[T], ops *Arith[T]) T {
	v, _ := p.evaluate(frame, -1, interp, ops)
	return v
}

func (p *Property[T]) evaluate(frame float64, hint int, interp Interpolator[T], ops *Arith[T]) (T, int) {
	if p.expr == nil || (p.IsStatic() && p.expr.Kind != ExprEase) {
		return p.resolve(frame, hint, interp)
	}
	return applyExpression(p.expr, p, frame, hint, interp, ops)
}
