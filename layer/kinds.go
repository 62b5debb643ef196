package layer

import (
	"image"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/content"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

type shapeContent struct {
	group *content.Group
}

func (c *shapeContent) setFrame(frame float64) bool { return c.group.SetFrame(frame) }

func (c *shapeContent) draw(s surface.Surface, alpha float64) { c.group.Draw(s, alpha) }

type solidContent struct {
	rect  *geom.Path
	brush surface.Solid
}

func newSolid(ml *model.Layer) *solidContent {
	return &solidContent{
		rect:  geom.RectXYWH(0, 0, ml.Width, ml.Height).Path(),
		brush: surface.Solid{Color: ml.SolidColor.NRGBA(1)},
	}
}

func (c *solidContent) setFrame(float64) bool { return false }

func (c *solidContent) draw(s surface.Surface, alpha float64) {
	if c.brush.Color.A == 0 {
		return
	}
	s.FillPath(c.rect, surface.FillStyle{Brush: c.brush, Alpha: alpha})
}

type imageContent struct {
	img image.Image
}

func (c *imageContent) setFrame(float64) bool { return false }

func (c *imageContent) draw(s surface.Surface, alpha float64) { s.DrawImage(c.img, alpha) }

// precompContent draws a nested tree clipped to the layer size. With a
// time remap the nested frame is the remapped time in seconds times the
// frame rate; otherwise it is the layer's local frame.
type precompContent struct {
	tree      *Tree
	remap     *animation.Value[float64]
	frameRate float64
	clip      *geom.Path
}

func newPrecomp(tree *Tree, ml *model.Layer, frameRate float64) *precompContent {
	c := &precompContent{tree: tree, frameRate: frameRate}
	if ml.TimeRemap != nil {
		c.remap = animation.NewFloat(ml.TimeRemap)
	}
	if ml.Width > 0 && ml.Height > 0 {
		c.clip = geom.RectXYWH(0, 0, ml.Width, ml.Height).Path()
	}
	return c
}

func (c *precompContent) setFrame(frame float64) bool {
	if c.remap != nil {
		c.remap.SetFrame(frame)
		frame = c.remap.Value() * c.frameRate
	}
	return c.tree.SetFrame(frame)
}

func (c *precompContent) draw(s surface.Surface, alpha float64) {
	s.Save()
	if c.clip != nil {
		s.ClipPath(c.clip, geom.NonZero)
	}
	c.tree.Draw(s, alpha)
	s.Restore()
}
