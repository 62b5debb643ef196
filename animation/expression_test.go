package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/geom"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src   string
		kind  ExprKind
		loop  LoopMode
		count int
	}{
		{"loopOut()", ExprLoopOut, LoopCycle, 0},
		{"loopOut('pingpong')", ExprLoopOut, LoopPingPong, 0},
		{`loopIn("offset", 2)`, ExprLoopIn, LoopOffset, 2},
		{"var $bm_rt = loopOut('continue');", ExprLoopOut, LoopContinue, 0},
		{"$bm_rt = loopIn(\"cycle\")", ExprLoopIn, LoopCycle, 0},
		{"ease(time, 0, 1, 0, 100)", ExprEase, LoopCycle, 0},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpression(tt.src, 30)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.loop, e.Loop)
			assert.Equal(t, tt.count, e.Count)
		})
	}

	for _, bad := range []string{"wiggle(2, 30)", "loopOut('bounce')", "ease(time, 0, 1, [0, 0], 5)", "thisComp.layer(1)"} {
		_, err := ParseExpression(bad, 30)
		assert.ErrorIs(t, err, ErrUnsupportedExpression, bad)
	}
}

func rampProperty(t *testing.T, src string) *Property[float64] {
	t.Helper()
	p, err := Keyframed(BuildKeyframes([]Entry[float64]{
		{Time: 0, Start: ptr(0.0)},
		{Time: 10, Start: ptr(10.0)},
	}))
	require.NoError(t, err)
	e, err := ParseExpression(src, 10)
	require.NoError(t, err)
	return p.WithExpression(e)
}

func TestLoopOut(t *testing.T) {
	tests := []struct {
		src   string
		frame float64
		want  float64
	}{
		{"loopOut('cycle')", 13, 3},
		{"loopOut('cycle')", 25, 5},
		{"loopOut('pingpong')", 13, 7},
		{"loopOut('pingpong')", 23, 3},
		{"loopOut('offset')", 13, 13},
		{"loopOut('offset')", 25, 25},
		{"loopOut('continue')", 15, 15},
		{"loopOut('cycle')", 4, 4},
		{"loopIn('cycle')", -3, 7},
		{"loopIn('pingpong')", -3, 3},
		{"loopIn('offset')", -3, -3},
		{"loopIn('continue')", -5, -5},
	}
	for _, tt := range tests {
		v := NewFloat(rampProperty(t, tt.src))
		v.SetFrame(tt.frame)
		assert.InDelta(t, tt.want, v.Value(), 1e-6, "%s at %v", tt.src, tt.frame)
	}
}

func TestLoopWithoutArithmetic(t *testing.T) {
	p, err := Keyframed([]Keyframe[Color]{{StartValue: RGB(0, 0, 0), EndValue: RGB(1, 1, 1), EndFrame: 10}})
	require.NoError(t, err)
	e, err := ParseExpression("loopOut('offset')", 30)
	require.NoError(t, err)
	v := NewColor(p.WithExpression(e))

	v.SetFrame(10)
	end := v.Value()
	v.SetFrame(20)
	assert.Equal(t, RGB(0, 0, 0), v.Value(), "offset degrades to cycle")
	assert.Equal(t, RGB(1, 1, 1), end)
}

func TestEaseExpression(t *testing.T) {
	e, err := ParseExpression("ease(time, 1, 2, 0, 100)", 10)
	require.NoError(t, err)
	v := NewFloat(Static(42.0).WithExpression(e))
	require.True(t, v.IsAnimated())

	v.SetFrame(5)
	assert.Equal(t, 0.0, v.Value())
	v.SetFrame(15)
	assert.InDelta(t, 50, v.Value(), 1e-9)
	v.SetFrame(30)
	assert.Equal(t, 100.0, v.Value())

	pe, err := ParseExpression("easeOut(time, 0, 1, [0, 0], [10, 20])", 10)
	require.NoError(t, err)
	pv := NewPoint(Static(geom.Point{}).WithExpression(pe))
	pv.SetFrame(10)
	assert.Equal(t, geom.Pt(10, 20), pv.Value())
}
