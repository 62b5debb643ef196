package animation

// Value is the per-render evaluation state of a Property.
//
// The resolved value is memoized until the frame changes. Version starts at
// 1 and increases only when SetFrame resolves a different value, so callers
// can cache derived data keyed by version.
//
// Value is not safe for concurrent use.
type Value[T any] struct {
	prop   *Property[T]
	interp Interpolator[T]
	equal  func(a, b T) bool
	ops    *Arith[T]

	current T
	frame   float64
	hint    int
	version uint64
}

// NewValue creates a Value positioned at the property's first frame.
// A nil equal treats every evaluation as a change.
func NewValue[T any](p *Property[T], interp Interpolator[T], equal func(a, b T) bool, ops *Arith[T]) *Value[T] {
	v := &Value[T]{
		prop:    p,
		interp:  interp,
		equal:   equal,
		ops:     ops,
		frame:   p.FirstFrame(),
		version: 1,
	}
	v.current, v.hint = p.evaluate(v.frame, -1, interp, ops)
	return v
}

// SetFrame moves the value to frame and reports whether the resolved value
// changed.
func (v *Value[T]) SetFrame(frame float64) bool {
	if frame == v.frame || !v.prop.IsAnimated() {
		v.frame = frame
		return false
	}
	v.frame = frame
	next, hint := v.prop.evaluate(frame, v.hint, v.interp, v.ops)
	v.hint = hint
	if v.equal != nil && v.equal(next, v.current) {
		return false
	}
	v.current = next
	v.version++
	return true
}

// SetProgress moves the value to the frame at progress in timing.
func (v *Value[T]) SetProgress(progress float64, timing Timing) bool {
	return v.SetFrame(timing.FrameAt(progress))
}

// Value returns the memoized value. Slices inside the result are shared
// and must not be modified.
func (v *Value[T]) Value() T {
	return v.current
}

// ValueAt evaluates the property at frame without changing v.
func (v *Value[T]) ValueAt(frame float64) T {
	return v.prop.ValueAt(frame, v.interp, v.ops)
}

// Version returns the change counter.
func (v *Value[T]) Version() uint64 {
	return v.version
}

// Frame returns the frame last passed to SetFrame.
func (v *Value[T]) Frame() float64 {
	return v.frame
}

// IsAnimated reports whether the value can change.
func (v *Value[T]) IsAnimated() bool {
	return v.prop.IsAnimated()
}

// Property returns the underlying property.
func (v *Value[T]) Property() *Property[T] {
	return v.prop
}
