package animation

import (
	"errors"
	"fmt"
	"slices"
)

// ErrStopCount is returned when the endpoints of gradient keyframes have
// different stop counts.
var ErrStopCount = errors.New("animation: gradient stop count mismatch")

// Gradient holds parallel stop positions and colors.
type Gradient struct {
	Positions []float64
	Colors    []Color
}

// Len returns the number of stops.
func (g Gradient) Len() int {
	return min(len(g.Positions), len(g.Colors))
}

// Truncate returns g with only its first n stops.
func (g Gradient) Truncate(n int) Gradient {
	if n >= g.Len() {
		return g
	}
	return Gradient{Positions: g.Positions[:n:n], Colors: g.Colors[:n:n]}
}

// Equal reports whether g and o have identical stops.
func (g Gradient) Equal(o Gradient) bool {
	return slices.Equal(g.Positions, o.Positions) && slices.Equal(g.Colors, o.Colors)
}

// LerpGradient interpolates stop positions linearly and stop colors with
// LerpColor. Both gradients must have the same stop count.
func LerpGradient(a, b Gradient, t float64) Gradient {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	n := min(a.Len(), b.Len())
	out := Gradient{
		Positions: make([]float64, n),
		Colors:    make([]Color, n),
	}
	for i := range n {
		out.Positions[i] = a.Positions[i] + (b.Positions[i]-a.Positions[i])*t
		out.Colors[i] = LerpColor(a.Colors[i], b.Colors[i], t)
	}
	return out
}

// KeyframedGradient builds a gradient property, rejecting keyframes whose
// endpoints disagree on the stop count.
func KeyframedGradient(kfs []Keyframe[Gradient]) (*Property[Gradient], error) {
	if len(kfs) > 0 {
		want := kfs[0].StartValue.Len()
		for i := range kfs {
			if s, e := kfs[i].StartValue.Len(), kfs[i].EndValue.Len(); s != want || e != want {
				return nil, fmt.Errorf("keyframe %d: %d and %d stops, want %d: %w", i, s, e, want, ErrStopCount)
			}
		}
	}
	return Keyframed(kfs)
}
