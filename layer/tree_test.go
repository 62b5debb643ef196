package layer

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/recording"
	"github.com/gogpu/gg-lottie/surface"
)

// doc wraps layers into a 100x100, 30 fps, 60 frame document.
func doc(layers string, extra ...string) []byte {
	var b strings.Builder
	b.WriteString(`{"v":"5.7.4","w":100,"h":100,"ip":0,"op":60,"fr":30,"layers":[`)
	b.WriteString(layers)
	b.WriteString(`]`)
	for _, e := range extra {
		b.WriteString(",")
		b.WriteString(e)
	}
	b.WriteString(`}`)
	return []byte(b.String())
}

func newTree(t *testing.T, data []byte, opts ...Options) *Tree {
	t.Helper()
	c, err := model.Parse(data)
	require.NoError(t, err)
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	tree, err := New(c, o)
	require.NoError(t, err)
	return tree
}

func record(tree *Tree) *recording.Recording {
	r := recording.NewRecorder()
	tree.Draw(r, 1)
	return r.FinishRecording()
}

func nullLayer(ind int, extra string) string {
	return fmt.Sprintf(`{"ty":3,"ind":%d,"ip":0,"op":60,"ks":{"p":{"a":0,"k":[10,0]}}%s}`, ind, extra)
}

func rectLayer(ind int, x, y, w, h float64, extra string) string {
	return fmt.Sprintf(`{"ty":4,"ind":%d,"ip":0,"op":60,"ks":{},"shapes":[`+
		`{"ty":"rc","p":{"a":0,"k":[%g,%g]},"s":{"a":0,"k":[%g,%g]},"r":{"a":0,"k":0}},`+
		`{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":0,"k":100}}]%s}`, ind, x, y, w, h, extra)
}

func TestParentWorld(t *testing.T) {
	tree := newTree(t, doc(
		nullLayer(1, "") + "," +
			`{"ty":3,"ind":2,"parent":1,"ip":0,"op":60,"ks":{"p":{"a":0,"k":[0,5]}}}` + "," +
			`{"ty":3,"ind":3,"parent":2,"ip":0,"op":60,"ks":{"s":{"a":0,"k":[200,200]}}}`,
	))
	layers := tree.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, geom.Translate(10, 0), layers[0].World())
	assert.Equal(t, geom.Translate(10, 5), layers[1].World())
	assert.Equal(t, geom.Translate(10, 5).Multiply(geom.Scale(2, 2)), layers[2].World())
}

func TestParentOfHiddenLayerStillMoves(t *testing.T) {
	tree := newTree(t, doc(
		`{"ty":3,"ind":1,"ip":0,"op":10,"ks":{"p":{"a":1,"k":[{"t":0,"s":[0,0]},{"t":20,"s":[20,0]}]}}},` +
			rectLayer(2, 5, 5, 10, 10, `,"parent":1`),
	))
	tree.SetFrame(15)
	layers := tree.Layers()
	assert.False(t, layers[0].Visible())
	assert.True(t, layers[1].Visible())
	assert.Equal(t, geom.Translate(15, 0), layers[1].World())
}

func TestParentCycle(t *testing.T) {
	c, err := model.Parse(doc(
		`{"ty":3,"ind":1,"parent":2,"ip":0,"op":60,"ks":{}},` +
			`{"ty":3,"ind":2,"parent":1,"ip":0,"op":60,"ks":{}}`,
	))
	require.NoError(t, err)
	_, err = New(c, Options{})
	assert.ErrorIs(t, err, ErrParentCycle)
}

func TestMissingParentIgnored(t *testing.T) {
	tree := newTree(t, doc(nullLayer(1, `,"parent":7`)))
	assert.Equal(t, geom.Translate(10, 0), tree.Layers()[0].World())
}

func TestVisibility(t *testing.T) {
	tree := newTree(t, doc(`{"ty":3,"ind":1,"ip":10,"op":20,"ks":{}}`))
	l := tree.Layers()[0]
	tests := []struct {
		frame float64
		want  bool
	}{
		{5, false},
		{10, true},
		{19.5, true},
		{20, false},
	}
	for _, tt := range tests {
		tree.SetFrame(tt.frame)
		assert.Equal(t, tt.want, l.Visible(), "frame %v", tt.frame)
	}
}

func TestHiddenLayerDrawsNothing(t *testing.T) {
	tree := newTree(t, doc(rectLayer(1, 50, 50, 10, 10, `,"hd":true`)))
	assert.Empty(t, record(tree).Fills())
}

func TestTimeStretch(t *testing.T) {
	tree := newTree(t, doc(`{"ty":3,"ind":1,"ip":0,"op":60,"st":10,"sr":2,"ks":{}}`))
	tree.SetFrame(30)
	assert.Equal(t, 30.0, tree.Frame())
	assert.Equal(t, 10.0, tree.Layers()[0].LocalFrame())
}

func TestDrawOrder(t *testing.T) {
	tree := newTree(t, doc(
		rectLayer(1, 50, 50, 10, 10, "") + "," + rectLayer(2, 50, 50, 80, 80, ""),
	))
	fills := record(tree).Fills()
	require.Len(t, fills, 2)
	assert.Equal(t, geom.NewRect(geom.Pt(10, 10), geom.Pt(90, 90)), fills[0].DevicePath().BoundingBox(), "last layer is drawn first")
	assert.Equal(t, geom.NewRect(geom.Pt(45, 45), geom.Pt(55, 55)), fills[1].DevicePath().BoundingBox())
}

func TestLayerOpacity(t *testing.T) {
	tree := newTree(t, doc(rectLayer(1, 50, 50, 10, 10, "")))
	fills := record(tree).Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, 1.0, fills[0].Style.Alpha)

	half := newTree(t, doc(strings.Replace(rectLayer(1, 50, 50, 10, 10, ""), `"ks":{}`, `"ks":{"o":{"a":0,"k":50}}`, 1)))
	fills = record(half).Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, 0.5, fills[0].Style.Alpha)
}

func TestSolidLayer(t *testing.T) {
	tree := newTree(t, doc(`{"ty":1,"ind":1,"ip":0,"op":60,"ks":{},"sc":"#ff0000","sw":50,"sh":40}`))
	fills := record(tree).Fills()
	require.Len(t, fills, 1)
	assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(50, 40)), fills[0].DevicePath().BoundingBox())
	s, ok := fills[0].Style.Brush.(surface.Solid)
	require.True(t, ok)
	assert.Equal(t, uint8(255), s.Color.R)
	assert.Equal(t, uint8(0), s.Color.G)
}

func TestBlendModeIsolatesLayer(t *testing.T) {
	tree := newTree(t, doc(rectLayer(1, 50, 50, 10, 10, `,"bm":1`)))
	rec := record(tree)
	require.Equal(t, 1, rec.Count(recording.CmdPushLayer))
	push, ok := rec.Commands()[0].(recording.PushLayerCommand)
	require.True(t, ok)
	assert.Equal(t, surface.BlendMultiply, push.Mode)
	assert.Equal(t, 1, rec.Fills()[0].Depth)
}

type stubImages struct{ img image.Image }

func (s stubImages) Image(*model.ImageAsset) (image.Image, error) { return s.img, nil }

func TestImageLayer(t *testing.T) {
	data := doc(`{"ty":2,"ind":1,"ip":0,"op":60,"ks":{},"refId":"img"}`,
		`"assets":[{"id":"img","w":4,"h":4,"u":"","p":"img.png"}]`)

	withoutProvider := newTree(t, data)
	assert.Zero(t, record(withoutProvider).Count(recording.CmdDrawImage))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tree := newTree(t, data, Options{Images: stubImages{img}})
	assert.Equal(t, 1, record(tree).Count(recording.CmdDrawImage))
}
