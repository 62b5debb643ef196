package animation

import (
	"math"

	"github.com/gogpu/gg-lottie/geom"
)

// Easing maps linear keyframe time to eased time.
//
// The zero Easing is linear. A cubic-bezier easing is defined like CSS
// cubic-bezier(): a curve from (0,0) to (1,1) with control points Out and
// In, where x is time and y is the eased fraction.
type Easing struct {
	Out, In geom.Point
	curved  bool
	samples [splineSamples]float64
}

const (
	splineSamples   = 11
	sampleStep      = 1.0 / (splineSamples - 1)
	newtonMinSlope  = 0.001
	newtonSteps     = 4
	subdivisionEps  = 1e-7
	subdivisionIter = 10
)

// Linear is the identity easing.
var Linear = Easing{}

// NewEasing returns a cubic-bezier easing. The x coordinates of the control
// points are clamped to [0, 1] so the curve is a function of time. Control
// points on the diagonal yield a linear easing.
func NewEasing(out, in geom.Point) Easing {
	out.X = clamp01(out.X)
	in.X = clamp01(in.X)
	e := Easing{Out: out, In: in}
	if out.X == out.Y && in.X == in.Y {
		return e
	}
	e.curved = true
	for i := range e.samples {
		e.samples[i] = bezierCoord(float64(i)*sampleStep, out.X, in.X)
	}
	return e
}

// IsLinear reports whether the easing is the identity.
func (e *Easing) IsLinear() bool {
	return !e.curved
}

// Apply returns the eased fraction for linear time t in [0, 1].
func (e *Easing) Apply(t float64) float64 {
	if !e.curved || t <= 0 || t >= 1 {
		return t
	}
	return bezierCoord(e.solveT(t), e.Out.Y, e.In.Y)
}

// bezierCoord evaluates one coordinate of the unit cubic with inner control
// coordinates a1 and a2.
func bezierCoord(t, a1, a2 float64) float64 {
	return ((1-3*a2+3*a1)*t+(3*a2-6*a1))*t*t + 3*a1*t
}

func bezierSlope(t, a1, a2 float64) float64 {
	return 3*(1-3*a2+3*a1)*t*t + 2*(3*a2-6*a1)*t + 3*a1
}

// solveT finds the curve parameter whose x coordinate is x.
func (e *Easing) solveT(x float64) float64 {
	x1, x2 := e.Out.X, e.In.X

	start := 0.0
	i := 1
	for ; i < splineSamples-1 && e.samples[i] <= x; i++ {
		start += sampleStep
	}
	i--
	dist := (x - e.samples[i]) / (e.samples[i+1] - e.samples[i])
	guess := start + dist*sampleStep

	slope := bezierSlope(guess, x1, x2)
	switch {
	case slope >= newtonMinSlope:
		for range newtonSteps {
			s := bezierSlope(guess, x1, x2)
			if s == 0 {
				break
			}
			guess -= (bezierCoord(guess, x1, x2) - x) / s
		}
		return guess
	case slope == 0:
		return guess
	}

	lo, hi := start, start+sampleStep
	for range subdivisionIter {
		guess = lo + (hi-lo)/2
		cur := bezierCoord(guess, x1, x2) - x
		if math.Abs(cur) <= subdivisionEps {
			break
		}
		if cur > 0 {
			hi = guess
		} else {
			lo = guess
		}
	}
	return guess
}
