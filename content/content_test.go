package content

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/recording"
	"github.com/gogpu/gg-lottie/surface"
)

func build(t *testing.T, shapes string, opts ...Options) *Group {
	t.Helper()
	data := `{"v":"5.7.4","w":100,"h":100,"ip":0,"op":60,"fr":30,"layers":[` +
		`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[` + shapes + `]}]}`
	c, err := model.Parse([]byte(data))
	require.NoError(t, err)
	require.Empty(t, c.Warnings)
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	g := New(c.Layers[0].Shapes, o)
	g.SetFrame(0)
	return g
}

func record(g *Group) *recording.Recording {
	r := recording.NewRecorder()
	g.Draw(r, 1)
	return r.FinishRecording()
}

func rect(x, y, w, h float64) string {
	return fmt.Sprintf(`{"ty":"rc","p":{"a":0,"k":[%g,%g]},"s":{"a":0,"k":[%g,%g]},"r":{"a":0,"k":0}}`, x, y, w, h)
}

const (
	redFill  = `{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":0,"k":100}}`
	blueFill = `{"ty":"fl","c":{"a":0,"k":[0,0,1,1]},"o":{"a":0,"k":100}}`
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func solid(t *testing.T, b surface.Brush) color.NRGBA {
	t.Helper()
	s, ok := b.(surface.Solid)
	require.True(t, ok, "brush %T is not solid", b)
	return s.Color
}

func TestSolidFill(t *testing.T) {
	rec := record(build(t, rect(50, 50, 40, 20)+`,`+redFill))

	fills := rec.Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, red, solid(t, fills[0].Style.Brush))
	assert.Equal(t, 1.0, fills[0].Style.Alpha)
	assert.Equal(t, geom.NonZero, fills[0].Style.Rule)
	assert.Equal(t, geom.NewRect(geom.Pt(30, 40), geom.Pt(70, 60)), fills[0].DevicePath().BoundingBox())
}

func TestStackingOrder(t *testing.T) {
	rec := record(build(t, rect(20, 20, 10, 10)+`,`+redFill+`,`+rect(60, 60, 10, 10)+`,`+blueFill))

	fills := rec.Fills()
	require.Len(t, fills, 2)

	// The fill declared last is drawn first and covers both shapes.
	assert.Equal(t, blue, solid(t, fills[0].Style.Brush))
	assert.Equal(t, geom.NewRect(geom.Pt(15, 15), geom.Pt(65, 65)), fills[0].Path.BoundingBox())

	assert.Equal(t, red, solid(t, fills[1].Style.Brush))
	assert.Equal(t, geom.NewRect(geom.Pt(15, 15), geom.Pt(25, 25)), fills[1].Path.BoundingBox())
}

func TestNestedGroupUsesOuterPaint(t *testing.T) {
	shapes := `{"ty":"gr","it":[` + rect(50, 50, 40, 20) + `,
		{"ty":"tr","p":{"a":0,"k":[10,0]},"a":{"a":0,"k":[0,0]},"s":{"a":0,"k":[100,100]},"r":{"a":0,"k":0},"o":{"a":0,"k":100}}
	]},` + redFill
	rec := record(build(t, shapes))

	fills := rec.Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, geom.NewRect(geom.Pt(40, 40), geom.Pt(80, 60)), fills[0].DevicePath().BoundingBox())
}

func TestGroupOpacity(t *testing.T) {
	shapes := `{"ty":"gr","it":[` + rect(50, 50, 40, 20) + `,` + redFill + `,
		{"ty":"tr","o":{"a":0,"k":50}}
	]}`
	rec := record(build(t, shapes))

	fills := rec.Fills()
	require.Len(t, fills, 1)
	assert.InDelta(t, 0.5, fills[0].Style.Alpha, 1e-9)
}

func trim(s, e, o float64, mode int) string {
	return fmt.Sprintf(`{"ty":"tm","s":{"a":0,"k":%g},"e":{"a":0,"k":%g},"o":{"a":0,"k":%g},"m":%d}`, s, e, o, mode)
}

const blackStroke = `{"ty":"st","c":{"a":0,"k":[0,0,0,1]},"o":{"a":0,"k":100},"w":{"a":0,"k":2},"lc":1,"lj":1,"ml":4}`

func TestTrim(t *testing.T) {
	full := record(build(t, rect(50, 50, 40, 20)+`,`+blackStroke)).Strokes()
	require.Len(t, full, 1)

	t.Run("whole path", func(t *testing.T) {
		got := record(build(t, rect(50, 50, 40, 20)+`,`+trim(0, 100, 0, 1)+`,`+blackStroke)).Strokes()
		require.Len(t, got, 1)
		assert.Equal(t, full[0].Path.Elements(), got[0].Path.Elements())
	})

	t.Run("empty window", func(t *testing.T) {
		got := record(build(t, rect(50, 50, 40, 20)+`,`+trim(50, 50, 0, 1)+`,`+blackStroke)).Strokes()
		assert.Empty(t, got)
	})

	t.Run("half", func(t *testing.T) {
		got := record(build(t, rect(50, 50, 40, 20)+`,`+trim(0, 50, 0, 1)+`,`+blackStroke)).Strokes()
		require.Len(t, got, 1)
		assert.InDelta(t, 60, got[0].Path.Length(), 0.5)
	})

	t.Run("individually", func(t *testing.T) {
		shapes := rect(20, 20, 40, 20) + `,` + rect(70, 70, 40, 20) + `,` + trim(0, 50, 0, 2) + `,` + blackStroke
		got := record(build(t, shapes)).Strokes()
		require.Len(t, got, 1)
		assert.InDelta(t, 120, got[0].Path.Length(), 0.5)
		assert.Equal(t, geom.NewRect(geom.Pt(0, 10), geom.Pt(40, 30)), got[0].Path.BoundingBox())
	})

	t.Run("individually leaves fills whole", func(t *testing.T) {
		rects := rect(20, 20, 40, 20) + `,` + rect(70, 70, 40, 20)
		whole := record(build(t, rects+`,`+redFill)).Fills()
		require.Len(t, whole, 1)

		rec := record(build(t, rects+`,`+trim(0, 50, 0, 2)+`,`+redFill+`,`+blackStroke))
		fills := rec.Fills()
		require.Len(t, fills, 1)
		assert.Equal(t, whole[0].Path.Elements(), fills[0].Path.Elements())
		strokes := rec.Strokes()
		require.Len(t, strokes, 1)
		assert.InDelta(t, 120, strokes[0].Path.Length(), 0.5)
	})

	t.Run("simultaneously cuts fills", func(t *testing.T) {
		fills := record(build(t, rect(50, 50, 40, 20)+`,`+trim(0, 50, 0, 1)+`,`+redFill)).Fills()
		require.Len(t, fills, 1)
		assert.InDelta(t, 60, fills[0].Path.Length(), 0.5)
	})
}

func merge(mode int) string {
	return fmt.Sprintf(`{"ty":"mm","mm":%d}`, mode)
}

func TestMerge(t *testing.T) {
	t.Run("add disjoint", func(t *testing.T) {
		rec := record(build(t, rect(20, 20, 10, 10)+`,`+rect(50, 20, 10, 10)+`,`+merge(2)+`,`+redFill))
		fills := rec.Fills()
		require.Len(t, fills, 1)
		assert.InDelta(t, 200, math.Abs(fills[0].Path.Area()), 1e-6)
	})

	t.Run("subtract self", func(t *testing.T) {
		rec := record(build(t, rect(20, 20, 10, 10)+`,`+rect(20, 20, 10, 10)+`,`+merge(3)+`,`+redFill))
		assert.Empty(t, rec.Fills())
	})

	t.Run("subtract keeps first minus rest", func(t *testing.T) {
		rec := record(build(t, rect(20, 20, 20, 20)+`,`+rect(30, 20, 20, 20)+`,`+merge(3)+`,`+redFill))
		fills := rec.Fills()
		require.Len(t, fills, 1)
		assert.InDelta(t, 200, math.Abs(fills[0].Path.Area()), 1e-6)
		assert.Equal(t, geom.NewRect(geom.Pt(10, 10), geom.Pt(20, 30)), fills[0].Path.BoundingBox())
	})

	t.Run("disabled concatenates", func(t *testing.T) {
		g := build(t, rect(20, 20, 10, 10)+`,`+rect(20, 20, 10, 10)+`,`+merge(3)+`,`+redFill, Options{DisableMerge: true})
		fills := record(g).Fills()
		require.Len(t, fills, 1)
		assert.InDelta(t, 200, math.Abs(fills[0].Path.Area()), 1e-6)
	})

	t.Run("paints above the merge are not fed", func(t *testing.T) {
		rec := record(build(t, rect(20, 20, 10, 10)+`,`+blueFill+`,`+rect(50, 20, 10, 10)+`,`+merge(2)+`,`+redFill))
		fills := rec.Fills()
		require.Len(t, fills, 2)
		assert.Equal(t, red, solid(t, fills[0].Style.Brush))
		assert.InDelta(t, 200, math.Abs(fills[0].Path.Area()), 1e-6)
		assert.Equal(t, blue, solid(t, fills[1].Style.Brush))
		assert.InDelta(t, 100, math.Abs(fills[1].Path.Area()), 1e-6)
	})
}

func repeaterItem(copies int) string {
	return fmt.Sprintf(`{"ty":"rp","c":{"a":0,"k":%d},"o":{"a":0,"k":0},"m":1,"tr":{"ty":"tr",
		"p":{"a":0,"k":[20,0]},"a":{"a":0,"k":[0,0]},"s":{"a":0,"k":[100,100]},"r":{"a":0,"k":0},
		"so":{"a":0,"k":100},"eo":{"a":0,"k":50}}}`, copies)
}

func TestRepeater(t *testing.T) {
	t.Run("copies draw their own paints", func(t *testing.T) {
		rec := record(build(t, rect(5, 5, 10, 10)+`,`+redFill+`,`+repeaterItem(3)))
		fills := rec.Fills()
		require.Len(t, fills, 3)
		for i, f := range fills {
			assert.Equal(t, geom.Translate(float64(20*i), 0), f.Transform, "copy %d", i)
			assert.InDelta(t, 1-0.25*float64(i), f.Style.Alpha, 1e-9, "copy %d", i)
		}
	})

	t.Run("paint below sees every copy", func(t *testing.T) {
		rec := record(build(t, rect(5, 5, 10, 10)+`,`+repeaterItem(3)+`,`+redFill))
		fills := rec.Fills()
		require.Len(t, fills, 1)
		assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(50, 10)), fills[0].Path.BoundingBox())
	})

	t.Run("zero copies", func(t *testing.T) {
		rec := record(build(t, rect(5, 5, 10, 10)+`,`+redFill+`,`+repeaterItem(0)))
		assert.Empty(t, rec.Fills())
	})
}

func TestStrokeStyle(t *testing.T) {
	stroke := `{"ty":"st","c":{"a":0,"k":[0,0,1,1]},"o":{"a":0,"k":50},"w":{"a":0,"k":4},"lc":1,"lj":3,"ml":10,
		"d":[{"n":"d","v":{"a":0,"k":5}},{"n":"g","v":{"a":0,"k":3}},{"n":"o","v":{"a":0,"k":2}}]}`
	strokes := record(build(t, rect(50, 50, 40, 20)+`,`+stroke)).Strokes()
	require.Len(t, strokes, 1)

	st := strokes[0].Style
	assert.Equal(t, color.NRGBA{B: 255, A: 128}, solid(t, st.Brush))
	assert.Equal(t, 4.0, st.Width)
	assert.Equal(t, surface.LineCapButt, st.Cap)
	assert.Equal(t, surface.LineJoinBevel, st.Join)
	assert.Equal(t, 10.0, st.MiterLimit)
	assert.Equal(t, []float64{5, 3}, st.Dash)
	assert.Equal(t, 2.0, st.DashOffset)
}

const animatedGradient = `{"ty":"gf","o":{"a":0,"k":100},"r":1,"t":1,
	"s":{"a":1,"k":[{"t":0,"s":[0,0],"i":{"x":[1],"y":[1]},"o":{"x":[0],"y":[0]}},{"t":60,"s":[100,0]}]},
	"e":{"a":0,"k":[100,100]},
	"g":{"p":2,"k":{"a":0,"k":[0,1,0,0,1,0,0,1]}}}`

func TestGradientShaderCache(t *testing.T) {
	shaders := NewShaderCache(64)
	g := build(t, rect(50, 50, 40, 20)+`,`+animatedGradient, Options{Shaders: shaders})

	brushAt := func(frame float64) *surface.LinearGradient {
		g.SetFrame(frame)
		fills := record(g).Fills()
		require.Len(t, fills, 1)
		lg, ok := fills[0].Style.Brush.(*surface.LinearGradient)
		require.True(t, ok)
		return lg
	}

	first := brushAt(0)
	assert.Equal(t, geom.Pt(0, 0), first.Start)
	assert.Equal(t, geom.Pt(100, 100), first.End)
	require.Len(t, first.Stops, 2)
	assert.Equal(t, red, first.Stops[0].Color)
	assert.Equal(t, blue, first.Stops[1].Color)

	// Frames in the same bucket reuse the brush.
	assert.Same(t, first, brushAt(0.1))

	mid := brushAt(30)
	assert.NotSame(t, first, mid)
	assert.InDelta(t, 50, mid.Start.X, 1e-9)

	assert.Same(t, first, brushAt(0))

	stats := shaders.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
}

func TestSetFrameReportsChange(t *testing.T) {
	fill := `{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":1,"k":[{"t":0,"s":[0],"i":{"x":[1],"y":[1]},"o":{"x":[0],"y":[0]}},{"t":60,"s":[100]}]}}`
	g := build(t, rect(50, 50, 40, 20)+`,`+fill)

	assert.False(t, g.SetFrame(0))
	assert.Empty(t, record(g).Fills(), "zero opacity draws nothing")

	assert.True(t, g.SetFrame(30))
	fills := record(g).Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, uint8(128), solid(t, fills[0].Style.Brush).A)
}
