// Package animation evaluates time-varying values.
//
// A [Property] is the immutable, parsed form of an animatable value: either
// a static value or a sorted, contiguous list of keyframes. Properties are
// shared by every renderer of a composition.
//
// A [Value] is the per-renderer evaluation state of a Property. SetFrame
// resolves the value at a frame and bumps a version counter only when the
// resolved output changed, so dependents can cache derived data and compare
// versions instead of subscribing to change notifications.
//
// Values work in frames. [Timing] converts a normalized progress in [0, 1]
// to frames.
package animation
