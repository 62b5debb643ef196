package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
)

// doc wraps layers into a minimal 100x100, 30 fps, 60 frame document.
func doc(layers string, extra ...string) []byte {
	var b strings.Builder
	b.WriteString(`{"v":"5.7.4","nm":"test","w":100,"h":100,"ip":0,"op":60,"fr":30,"layers":[`)
	b.WriteString(layers)
	b.WriteString(`]`)
	for _, e := range extra {
		b.WriteString(",")
		b.WriteString(e)
	}
	b.WriteString(`}`)
	return []byte(b.String())
}

const redRectLayer = `{"ty":4,"ind":1,"nm":"rect","ip":0,"op":60,"st":0,"ks":{},"shapes":[
	{"ty":"gr","nm":"group","it":[
		{"ty":"rc","p":{"a":0,"k":[50,50]},"s":{"a":0,"k":[40,20]},"r":{"a":0,"k":0}},
		{"ty":"fl","c":{"a":0,"k":[1,0,0,1]},"o":{"a":0,"k":100}},
		{"ty":"tr","p":{"a":0,"k":[0,0]},"a":{"a":0,"k":[0,0]},"s":{"a":0,"k":[100,100]},"r":{"a":0,"k":0},"o":{"a":0,"k":100}}
	]}
]}`

func TestParseComposition(t *testing.T) {
	c, err := Parse(doc(redRectLayer))
	require.NoError(t, err)

	assert.Equal(t, "test", c.Name)
	assert.Equal(t, "5.7.4", c.Version.String())
	assert.Equal(t, animation.Timing{StartFrame: 0, EndFrame: 60, FrameRate: 30}, c.Timing)
	assert.Equal(t, 2*time.Second, c.Duration())
	assert.Equal(t, geom.RectXYWH(0, 0, 100, 100), c.Bounds())
	assert.Empty(t, c.Warnings)
	assert.False(t, c.HasMasks())
	assert.False(t, c.HasMattes())

	require.Len(t, c.Layers, 1)
	l := c.Layers[0]
	assert.Equal(t, LayerShape, l.Type)
	assert.Equal(t, "shape", l.Type.String())
	got, ok := c.LayerByIndex(1)
	require.True(t, ok)
	assert.Same(t, l, got)

	require.Len(t, l.Shapes, 1)
	g, ok := l.Shapes[0].(*Group)
	require.True(t, ok)
	assert.Equal(t, "group", g.ItemName())
	require.Len(t, g.Items, 2, "transform item is not a child")

	r, ok := g.Items[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(40, 20), r.Size.StartValue())
	assert.False(t, r.Direction.Reversed())

	f, ok := g.Items[1].(*Fill)
	require.True(t, ok)
	assert.Equal(t, animation.RGB(1, 0, 0), f.Color.StartValue())
	assert.Equal(t, 100.0, f.Opacity.StartValue())
	assert.Equal(t, geom.NonZero, f.Rule)

	require.NotNil(t, g.Transform.Scale)
	assert.Equal(t, geom.Pt(100, 100), g.Transform.Scale.StartValue())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
		path string
	}{
		{"no layers", []byte(`{"v":"5.0.0","w":10,"h":10,"ip":0,"op":10,"fr":30,"layers":[]}`), ErrNoLayers, ""},
		{"missing transform", doc(`{"ty":3,"ind":1,"ip":0,"op":60}`), ErrStructure, "layers[0].ks"},
		{"short vertex", doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
			{"ty":"sh","ks":{"a":0,"k":{"c":true,"v":[[0,0],[5]],"i":[[0,0],[0,0]],"o":[[0,0],[0,0]]}}}]}`),
			ErrStructure, "layers[0].shapes[0].ks.k.v[1]"},
		{"short position", doc(`{"ty":3,"ind":1,"ip":0,"op":60,"ks":{"p":{"a":0,"k":[1]}}}`), ErrStructure, "layers[0].ks.p.k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			if tt.path != "" {
				var se *StructureError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.path, se.Path)
			}
		})
	}

	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	old := []byte(strings.Replace(string(doc(redRectLayer)), `"v":"5.7.4"`, `"v":"4.1.0"`, 1))

	c, err := Parse(old)
	require.NoError(t, err)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "older than 4.4.0")

	c, err = Parse(old, WithMinVersion("4.0.0"))
	require.NoError(t, err)
	assert.Empty(t, c.Warnings)

	_, err = Parse(old, WithStrict())
	assert.ErrorIs(t, err, ErrStrict)

	c, err = Parse(doc(redRectLayer), WithMinVersion("6.0.0"))
	require.NoError(t, err)
	assert.Len(t, c.Warnings, 1)
}

func TestParseUnsupported(t *testing.T) {
	data := doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
		{"ty":"zz","nm":"zigzag"},
		{"ty":"rd","r":{"a":0,"k":5}},
		{"ty":"el","p":{"a":0,"k":[0,0]},"s":{"a":0,"k":[10,10]},"d":3},
		{"ty":"el","hd":true,"s":{"a":0,"k":[10,10]}}
	]},{"ty":13,"ind":2,"ip":0,"op":60,"ks":{}}`)
	c, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, c.Layers, 1, "camera layer skipped")
	require.Len(t, c.Layers[0].Shapes, 1, "unsupported and hidden items skipped")
	e, ok := c.Layers[0].Shapes[0].(*Ellipse)
	require.True(t, ok)
	assert.True(t, e.Direction.Reversed())
	assert.Len(t, c.Warnings, 3)
}

func TestParseAnimatedOpacity(t *testing.T) {
	data := doc(`{"ty":3,"ind":1,"ip":0,"op":60,"ks":{"o":{"a":1,"k":[
		{"t":0,"s":[0],"o":{"x":[0],"y":[0]},"i":{"x":[1],"y":[1]}},
		{"t":30,"s":[100]}
	]}}}`)
	c, err := Parse(data)
	require.NoError(t, err)

	tr := animation.NewTransform(c.Layers[0].Transform)
	tr.SetFrame(c.Timing.FrameAt(0.25))
	assert.InDelta(t, 0.5, tr.Opacity(), 1e-9)
}

func TestParseLegacyKeyframes(t *testing.T) {
	data := doc(`{"ty":3,"ind":1,"ip":0,"op":60,"ks":{"r":{"a":1,"k":[
		{"t":0,"s":[0],"e":[90]},
		{"t":10,"s":[90],"e":[180],"h":1},
		{"t":20}
	]}}}`)
	c, err := Parse(data)
	require.NoError(t, err)

	kfs := c.Layers[0].Transform.Rotation.Keyframes()
	require.Len(t, kfs, 2)
	assert.Equal(t, 90.0, kfs[0].EndValue)
	assert.True(t, kfs[1].Hold)
	assert.Equal(t, 20.0, kfs[1].EndFrame)
}

func TestParseSplitPosition(t *testing.T) {
	data := doc(`{"ty":3,"ind":1,"ip":0,"op":60,"ks":{"p":{"s":true,"x":{"a":0,"k":12},"y":{"a":1,"k":[{"t":0,"s":[0]},{"t":10,"s":[10]}]}}}}`)
	c, err := Parse(data)
	require.NoError(t, err)

	tr := c.Layers[0].Transform
	assert.Nil(t, tr.Position)
	require.NotNil(t, tr.PositionX)
	assert.Equal(t, 12.0, tr.PositionX.StartValue())
	assert.False(t, tr.PositionY.IsStatic())
}

func TestParseGradient(t *testing.T) {
	data := doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
		{"ty":"gf","t":2,"r":2,"s":{"a":0,"k":[0,0]},"e":{"a":0,"k":[10,0]},"o":{"a":0,"k":100},
		 "g":{"p":2,"k":{"a":0,"k":[0,1,0,0, 1,0,0,1, 0,1, 1,0.5]}}}
	]}`)
	c, err := Parse(data)
	require.NoError(t, err)

	gf, ok := c.Layers[0].Shapes[0].(*GradientFill)
	require.True(t, ok)
	assert.Equal(t, GradientRadial, gf.Type)
	assert.Equal(t, geom.EvenOdd, gf.Rule)

	g := gf.Colors.StartValue()
	assert.Equal(t, []float64{0, 1}, g.Positions)
	assert.Equal(t, animation.Color{R: 1, A: 1}, g.Colors[0])
	assert.Equal(t, animation.Color{B: 1, A: 0.5}, g.Colors[1])
}

func TestParseGradientStopErrors(t *testing.T) {
	truncated := doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
		{"ty":"gf","t":1,"g":{"p":3,"k":{"a":0,"k":[0,1,0,0, 1,0,0,1]}}}]}`)
	c, err := Parse(truncated)
	require.NoError(t, err)
	assert.Len(t, c.Warnings, 1)
	gf := c.Layers[0].Shapes[0].(*GradientFill)
	assert.Equal(t, 2, gf.Colors.StartValue().Len())

	partly := doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
		{"ty":"gf","t":1,"g":{"p":3,"k":{"a":1,"k":[
			{"t":0,"s":[0,1,0,0, 0.5,0,1,0, 1,0,0,1]},
			{"t":10,"s":[0,1,0,0, 1,0,0,1]}
		]}}}]}`)
	c, err = Parse(partly)
	require.NoError(t, err)
	assert.Len(t, c.Warnings, 1)
	colors := c.Layers[0].Shapes[0].(*GradientFill).Colors
	first := colors.StartValue()
	assert.Equal(t, []float64{0, 0.5}, first.Positions)
	assert.Equal(t, []animation.Color{{R: 1, A: 1}, {G: 1, A: 1}}, first.Colors)
}

func TestParseShapeItems(t *testing.T) {
	data := doc(`{"ty":4,"ind":1,"ip":0,"op":60,"ks":{},"shapes":[
		{"ty":"sr","sy":2,"pt":{"a":0,"k":6},"or":{"a":0,"k":20},"os":{"a":0,"k":10},"p":{"a":0,"k":[5,5]},"r":{"a":0,"k":30}},
		{"ty":"st","c":{"a":0,"k":[0,0,1]},"o":{"a":0,"k":50},"w":{"a":0,"k":3},"lc":2,"lj":3,"ml":10,
		 "d":[{"n":"d","v":{"a":0,"k":4}},{"n":"g","v":{"a":0,"k":2}},{"n":"o","v":{"a":0,"k":1}}]},
		{"ty":"tm","s":{"a":0,"k":10},"e":{"a":0,"k":90},"o":{"a":0,"k":0},"m":2},
		{"ty":"mm","mm":3},
		{"ty":"rp","c":{"a":0,"k":3},"o":{"a":0,"k":0},"m":2,"tr":{"p":{"a":0,"k":[10,0]},"so":{"a":0,"k":100},"eo":{"a":0,"k":20}}},
		{"ty":"gs","t":1,"w":{"a":0,"k":2},"g":{"p":2,"k":{"a":0,"k":[0,0,0,0,1,1,1,1]}}}
	]}`)
	c, err := Parse(data)
	require.NoError(t, err)
	items := c.Layers[0].Shapes
	require.Len(t, items, 6)

	star := items[0].(*Polystar)
	assert.Equal(t, StarTypePolygon, star.Type)
	assert.Equal(t, 6.0, star.Points.StartValue())
	assert.Equal(t, 30.0, star.Rotation.StartValue())

	st := items[1].(*Stroke)
	assert.Equal(t, CapRound, st.Cap)
	assert.Equal(t, JoinBevel, st.Join)
	assert.Equal(t, 10.0, st.MiterLimit)
	require.Len(t, st.Dashes, 3)
	assert.Equal(t, DashGap, st.Dashes[1].Kind)
	assert.Equal(t, DashOffset, st.Dashes[2].Kind)

	tm := items[2].(*Trim)
	assert.Equal(t, TrimIndividually, tm.Mode)
	assert.Equal(t, 90.0, tm.End.StartValue())

	assert.Equal(t, MergeSubtract, items[3].(*Merge).Mode)

	rp := items[4].(*Repeater)
	assert.Equal(t, RepeaterBelow, rp.Composite)
	assert.Equal(t, 20.0, rp.EndOpacity.StartValue())
	assert.Equal(t, geom.Pt(10, 0), rp.Transform.Position.StartValue())

	gs := items[5].(*GradientStroke)
	assert.Equal(t, GradientLinear, gs.Type)
	assert.Equal(t, 2.0, gs.Width.StartValue())
	assert.Equal(t, JoinRound, gs.Join, "missing join defaults to round")
}

func TestParseLayers(t *testing.T) {
	layers := `
	{"ty":3,"ind":1,"nm":"parent","ip":0,"op":60,"ks":{}},
	{"ty":1,"ind":2,"parent":1,"ip":10,"op":50,"st":5,"sr":2,"ks":{},"sc":"#ff8000","sw":20,"sh":10,"td":1,"bm":1},
	{"ty":0,"ind":3,"refId":"comp_0","w":100,"h":100,"ip":0,"op":60,"ks":{},"tt":2,"tm":{"a":0,"k":0.5},
	 "masksProperties":[{"mode":"s","inv":true,"pt":{"a":0,"k":{"c":true,"v":[[0,0],[10,0],[10,10]],"i":[[0,0],[0,0],[0,0]],"o":[[0,0],[0,0],[0,0]]}},"o":{"a":0,"k":50}}]},
	{"ty":2,"ind":4,"refId":"image_0","ip":0,"op":60,"ks":{}},
	{"ty":5,"ind":5,"ip":0,"op":60,"ks":{},"t":{"d":{"k":[{"s":{"s":24,"f":"Sans","t":"Hi\rthere","j":2,"tr":10,"fc":[1,1,1]},"t":0}]},"a":[]}}`
	assets := `"assets":[
		{"id":"image_0","w":64,"h":32,"u":"images/","p":"img.png","e":0},
		{"id":"comp_0","layers":[{"ty":3,"ind":1,"ip":0,"op":60,"ks":{}}]}
	]`
	fonts := `"fonts":{"list":[{"fName":"Sans","fFamily":"Sans Family","fStyle":"Regular","ascent":72}]}`
	chars := `"chars":[{"ch":"H","size":24,"style":"Regular","fFamily":"Sans Family","w":60,"data":{"shapes":[
		{"ty":"gr","it":[{"ty":"sh","ks":{"a":0,"k":{"c":true,"v":[[0,0],[1,0],[1,1]],"i":[[0,0],[0,0],[0,0]],"o":[[0,0],[0,0],[0,0]]}}}]}]}}]`
	markers := `"markers":[{"cm":"intro","tm":0,"dr":20},{"cm":"loop","tm":20,"dr":40}]`

	c, err := Parse(doc(layers, assets, fonts, chars, markers))
	require.NoError(t, err)
	require.Len(t, c.Layers, 5)
	assert.True(t, c.HasMasks())
	assert.True(t, c.HasMattes())

	solid := c.Layers[1]
	require.NotNil(t, solid.Parent)
	assert.Equal(t, 1, *solid.Parent)
	assert.InDelta(t, 0.5, solid.SolidColor.G, 0.01)
	assert.Equal(t, 20.0, solid.Width)
	assert.True(t, solid.MatteSource)
	assert.Equal(t, BlendMultiply, solid.Blend)
	assert.Equal(t, 10.0, solid.LocalFrame(25))
	assert.True(t, solid.VisibleAt(10))
	assert.False(t, solid.VisibleAt(50))

	pre := c.Layers[2]
	assert.Equal(t, MatteAlphaInverted, pre.Matte)
	assert.True(t, pre.Matte.Inverted())
	require.NotNil(t, pre.TimeRemap)
	require.Len(t, pre.Masks, 1)
	assert.Equal(t, MaskSubtract, pre.Masks[0].Mode)
	assert.True(t, pre.Masks[0].Inverted)
	assert.Equal(t, 50.0, pre.Masks[0].Opacity.StartValue())
	require.Contains(t, c.Precomps, "comp_0")
	assert.Len(t, c.Precomps["comp_0"].Layers, 1)

	img := c.Images["image_0"]
	require.NotNil(t, img)
	assert.Equal(t, "images/", img.Dir)
	assert.False(t, img.Embedded)

	text := c.Layers[4].Text
	require.NotNil(t, text)
	d := text.Document.StartValue()
	assert.Equal(t, "Hi\nthere", d.Text)
	assert.Equal(t, animation.JustifyCenter, d.Justify)
	assert.Equal(t, 29.0, d.LineHeight)
	assert.Equal(t, animation.RGB(1, 1, 1), d.Fill)

	f := c.FontByName("Sans")
	require.NotNil(t, f)
	ch := c.Char("H", f.Family, f.Style)
	require.NotNil(t, ch)
	assert.Equal(t, 60.0, ch.Width)
	assert.Len(t, ch.Shapes, 1)
	assert.Nil(t, c.Char("X", f.Family, ""))

	m, ok := c.Marker("loop")
	require.True(t, ok)
	assert.Equal(t, 60.0, m.EndFrame())
	_, ok = c.Marker("missing")
	assert.False(t, ok)
}

func TestParseExpressions(t *testing.T) {
	data := doc(`{"ty":3,"ind":1,"ip":0,"op":60,"ks":{
		"r":{"a":1,"k":[{"t":0,"s":[0]},{"t":10,"s":[90]}],"x":"loopOut('cycle')"},
		"o":{"a":0,"k":100,"x":"wiggle(1, 5)"}}}`)
	c, err := Parse(data)
	require.NoError(t, err)

	rot := c.Layers[0].Transform.Rotation
	require.NotNil(t, rot.Expression())
	assert.Equal(t, animation.ExprLoopOut, rot.Expression().Kind)
	assert.Nil(t, c.Layers[0].Transform.Opacity.Expression())
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "unsupported expression")
}
