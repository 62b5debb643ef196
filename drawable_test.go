package lottie

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/recording"
	"github.com/gogpu/gg-lottie/surface"
)

const linear = `"i":{"x":[1],"y":[1]},"o":{"x":[0],"y":[0]}`

// document wraps layers into a 100x100, 30 fps, 30 frame document.
func document(layers string, extra ...string) []byte {
	var b strings.Builder
	b.WriteString(`{"v":"5.7.4","nm":"scene","w":100,"h":100,"ip":0,"op":30,"fr":30,"layers":[`)
	b.WriteString(layers)
	b.WriteString(`]`)
	for _, e := range extra {
		b.WriteString("," + e)
	}
	b.WriteString(`}`)
	return []byte(b.String())
}

func shapeLayer(ks, shapes string) string {
	return `{"ty":4,"ind":1,"ip":0,"op":30,"st":0,"ks":` + ks + `,"shapes":[` + shapes + `]}`
}

const redRect = `{"ty":"rc","p":{"a":0,"k":[50,50]},"s":{"a":0,"k":[40,20]},"r":{"a":0,"k":0}},` +
	`{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":0,"k":100}}`

func newDrawable(t *testing.T, data []byte, opts ...Option) *Drawable {
	t.Helper()
	comp, err := LoadComposition(data)
	require.NoError(t, err)
	d, err := NewDrawable(comp, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func draw(d *Drawable) *recording.Recording {
	r := recording.NewRecorder()
	d.Draw(r, geom.Identity(), 1)
	return r.FinishRecording()
}

func TestRedRectangle(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	d.SetProgress(0.5)

	fills := draw(d).Fills()
	require.Len(t, fills, 1)
	f := fills[0]
	assert.Equal(t, 1.0, f.Style.Alpha)
	s, ok := f.Style.Brush.(surface.Solid)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xFF, A: 0xFF}, s.Color)
	assert.Equal(t, geom.NewRect(geom.Pt(30, 40), geom.Pt(70, 60)), f.DevicePath().BoundingBox())
}

const fadeIn = `{"o":{"a":1,"k":[{"t":0,"s":[0],` + linear + `},{"t":30,"s":[100]}]}}`

func TestOpacityKeyframes(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(fadeIn, redRect)))

	assert.Empty(t, draw(d).Fills(), "fully transparent at the start")

	d.SetProgress(0.5)
	fills := draw(d).Fills()
	require.Len(t, fills, 1)
	assert.InDelta(t, 0.5, fills[0].Style.Alpha, 1e-9)
}

func TestGradientStopsInterpolate(t *testing.T) {
	gradient := `{"ty":"rc","p":{"a":0,"k":[50,50]},"s":{"a":0,"k":[100,100]},"r":{"a":0,"k":0}},` +
		`{"ty":"gf","o":{"a":0,"k":100},"r":1,"t":1,"s":{"a":0,"k":[0,0]},"e":{"a":0,"k":[100,0]},` +
		`"g":{"p":2,"k":{"a":1,"k":[{"t":0,"s":[0,1,0,0,1,0,0,1],` + linear + `},{"t":30,"s":[0,0,0,1,1,1,0,0]}]}}}`
	d := newDrawable(t, document(shapeLayer(`{}`, gradient)))

	d.SetProgress(0.5)
	fills := draw(d).Fills()
	require.Len(t, fills, 1)
	lg, ok := fills[0].Style.Brush.(*surface.LinearGradient)
	require.True(t, ok)
	require.Len(t, lg.Stops, 2)
	for _, stop := range lg.Stops {
		assert.Equal(t, stop.Color.R, stop.Color.B, "red and blue meet halfway")
		assert.Greater(t, stop.Color.R, uint8(127))
		assert.Zero(t, stop.Color.G)
	}
	assert.Equal(t, 0.0, lg.Stops[0].Offset)
	assert.Equal(t, 1.0, lg.Stops[1].Offset)
}

func TestProgressAndFrame(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))

	assert.Equal(t, 30.0, d.FrameRate())
	assert.Equal(t, time.Second, d.Duration())
	assert.Equal(t, geom.RectXYWH(0, 0, 100, 100), d.Bounds())
	assert.False(t, d.HasMasks())
	assert.False(t, d.HasMattes())

	tests := []struct {
		progress  float64
		wantProg  float64
		wantFrame float64
	}{
		{-1, 0, 0},
		{0.5, 0.5, 15},
		{2, 1, 30},
	}
	for _, tt := range tests {
		d.SetProgress(tt.progress)
		assert.Equal(t, tt.wantProg, d.Progress())
		assert.Equal(t, tt.wantFrame, d.Frame())
	}

	d.SetFrame(6)
	assert.InDelta(t, 0.2, d.Progress(), 1e-12)
}

func TestSetProgressReportsChange(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(fadeIn, redRect)))
	assert.True(t, d.SetProgress(0.5))
	assert.False(t, d.SetProgress(0.5))

	static := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	assert.False(t, static.SetProgress(0.5))
}

func TestLastFrameIsVisible(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	d.SetProgress(1)
	assert.Len(t, draw(d).Fills(), 1)
}

func TestDrawTransformAndAlpha(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	r := recording.NewRecorder()
	d.Draw(r, geom.Scale(2, 2), 0.5)
	fills := r.FinishRecording().Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, 0.5, fills[0].Style.Alpha)
	assert.Equal(t, geom.NewRect(geom.Pt(60, 80), geom.Pt(140, 120)), fills[0].DevicePath().BoundingBox())
}

func TestClipToBounds(t *testing.T) {
	plain := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	assert.Zero(t, draw(plain).Count(recording.CmdClip))

	clipped := newDrawable(t, document(shapeLayer(`{}`, redRect)), WithClipToBounds(true))
	assert.Equal(t, 1, draw(clipped).Count(recording.CmdClip))
}

func TestMergePathsOption(t *testing.T) {
	shapes := `{"ty":"rc","p":{"a":0,"k":[10,10]},"s":{"a":0,"k":[20,20]},"r":{"a":0,"k":0}},` +
		`{"ty":"rc","p":{"a":0,"k":[20,10]},"s":{"a":0,"k":[20,20]},"r":{"a":0,"k":0}},` +
		`{"ty":"mm","mm":2},` +
		`{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":0,"k":100}}`

	merged := draw(newDrawable(t, document(shapeLayer(`{}`, shapes)))).Fills()
	require.Len(t, merged, 1)
	assert.InDelta(t, 600, math.Abs(merged[0].Path.Area()), 1e-6)

	concat := draw(newDrawable(t, document(shapeLayer(`{}`, shapes)), WithMergePaths(false))).Fills()
	require.Len(t, concat, 1)
	assert.InDelta(t, 800, math.Abs(concat[0].Path.Area()), 1e-6)
}

func TestAsyncUpdates(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(fadeIn, redRect)), WithAsyncUpdates(0))

	assert.True(t, d.SetProgress(0.5))
	fills := draw(d).Fills()
	require.Len(t, fills, 1, "Draw catches up when the state is out of tolerance")
	assert.InDelta(t, 0.5, fills[0].Style.Alpha, 1e-9)

	// Within tolerance the computed state is reused.
	d.SetProgress(0.5 + DefaultAsyncTolerance/2)
	fills = draw(d).Fills()
	require.Len(t, fills, 1)
	assert.InDelta(t, 0.5, fills[0].Style.Alpha, DefaultAsyncTolerance)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}

func TestMarker(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect), `"markers":[{"cm":"intro","tm":0,"dr":15}]`))
	start, end, ok := d.Marker("intro")
	require.True(t, ok)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 0.5, end)

	_, _, ok = d.Marker("outro")
	assert.False(t, ok)
}

func TestEmptyDrawable(t *testing.T) {
	d, err := NewDrawable(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, d.SetComposition(nil), ErrNoComposition)
	assert.Empty(t, draw(d).Commands())
	assert.False(t, d.SetProgress(0.5))
	assert.Zero(t, d.Duration())
	assert.Zero(t, d.Frame())
}

func TestSetCompositionRewinds(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	d.SetProgress(0.7)

	comp, err := LoadComposition(document(shapeLayer(fadeIn, redRect)))
	require.NoError(t, err)
	require.NoError(t, d.SetComposition(comp))
	assert.Same(t, comp, d.Composition())
	assert.Zero(t, d.Progress())
	assert.Empty(t, draw(d).Fills())
}

func TestLoadCompositionErrors(t *testing.T) {
	_, err := LoadComposition([]byte(`{"w":10,"h":10,"ip":0,"op":10,"fr":30,"layers":[]}`))
	assert.ErrorIs(t, err, model.ErrNoLayers)

	_, err = LoadCompositionReader(strings.NewReader(`{`))
	assert.Error(t, err)

	_, err = LoadCompositionFile("testdata/missing.json")
	assert.Error(t, err)
}

func TestRenderToImage(t *testing.T) {
	d := newDrawable(t, document(shapeLayer(`{}`, redRect)))
	s := surface.NewImageSurface(100, 100)
	d.Draw(s, geom.Identity(), 1)
	img := s.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(50, 50))
	assert.Zero(t, img.RGBAAt(10, 10).A)
}
