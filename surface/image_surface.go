// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/internal/blend"
)

// ImageSurface is a CPU surface that renders into an *image.RGBA.
//
// Paths are rasterized with golang.org/x/image/vector, images are resampled
// with golang.org/x/image/draw, and layers are composited in software.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	s.Clear(color.White)
//	s.FillPath(path, surface.FillStyle{Brush: surface.Solid{Color: red}, Alpha: 1})
//	png.Encode(w, s.Image())
type ImageSurface struct {
	width  int
	height int

	// layers[0] is the base image; drawing goes to the last entry.
	layers []*layerBuffer

	state state
	saved []state

	raster *rasterizer
}

type state struct {
	ctm geom.Matrix
	// clip is nil when nothing is clipped.
	clip *image.Alpha
}

type layerBuffer struct {
	img   *image.RGBA
	mode  BlendMode
	alpha float64
}

// NewImageSurface creates a transparent surface of the given size.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return NewImageSurfaceFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewImageSurfaceFromImage creates a surface that draws into img.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		width:  b.Dx(),
		height: b.Dy(),
		layers: []*layerBuffer{{img: img, alpha: 1}},
		state:  state{ctm: geom.Identity()},
		raster: newRasterizer(b),
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.height }

// Image returns the base image. It is the surface's own buffer, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.layers[0].img
}

// Snapshot returns a copy of the base image.
func (s *ImageSurface) Snapshot() *image.RGBA {
	src := s.layers[0].img
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// Clear fills the current layer with c, ignoring the clip.
func (s *ImageSurface) Clear(c color.Color) {
	top := s.top().img
	draw.Draw(top, top.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Transform returns the current transformation matrix.
func (s *ImageSurface) Transform() geom.Matrix {
	return s.state.ctm
}

// Save implements Surface.
func (s *ImageSurface) Save() {
	s.saved = append(s.saved, s.state)
}

// Restore implements Surface.
func (s *ImageSurface) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.state = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Concat implements Surface.
func (s *ImageSurface) Concat(m geom.Matrix) {
	s.state.ctm = s.state.ctm.Multiply(m)
}

// ClipPath implements Surface.
func (s *ImageSurface) ClipPath(p *geom.Path, rule geom.FillRule) {
	var cov *image.Alpha
	if !p.IsEmpty() {
		cov = s.raster.coverage(p.Transform(s.state.ctm), rule)
	}
	if cov == nil {
		cov = image.NewAlpha(image.Rectangle{})
	}
	s.state.clip = intersectMasks(s.state.clip, cov)
}

// FillPath implements Surface.
func (s *ImageSurface) FillPath(p *geom.Path, style FillStyle) {
	if style.Brush == nil || style.Alpha <= 0 || p.IsEmpty() {
		return
	}
	cov := s.raster.coverage(p.Transform(s.state.ctm), style.Rule)
	s.paint(cov, style.Brush, style.Alpha)
}

// StrokePath implements Surface.
func (s *ImageSurface) StrokePath(p *geom.Path, style StrokeStyle) {
	if style.Brush == nil || style.Alpha <= 0 || p.IsEmpty() {
		return
	}
	scale := s.state.ctm.ScaleFactor()
	if scale <= 0 {
		return
	}
	outline := strokeOutline(p, style, flattenTolerance/scale)
	cov := s.raster.coverage(outline.Transform(s.state.ctm), geom.NonZero)
	s.paint(cov, style.Brush, style.Alpha)
}

// paint blends brush through the coverage mask and the clip.
func (s *ImageSurface) paint(cov *image.Alpha, brush Brush, alpha float64) {
	if cov == nil {
		return
	}
	clip := s.state.clip
	r := cov.Rect
	if clip != nil {
		r = r.Intersect(clip.Rect)
	}
	if r.Empty() {
		return
	}
	dst := s.top().img
	a := alpha
	if a > 1 {
		a = 1
	}

	solid, isSolid := brush.(Solid)
	var inv geom.Matrix
	if !isSolid {
		if !s.state.ctm.IsInvertible() {
			return
		}
		inv = s.state.ctm.Invert()
	}
	sr, sg, sb, sa := premultiply(solid.Color, a)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := cov.Pix[cov.PixOffset(x, y)]
			if clip != nil && c != 0 {
				c = uint8((uint32(c)*uint32(clip.Pix[clip.PixOffset(x, y)]) + 127) / 255)
			}
			if c == 0 {
				continue
			}
			if !isSolid {
				col := brush.ColorAt(inv.TransformPoint(geom.Pt(float64(x)+0.5, float64(y)+0.5)))
				sr, sg, sb, sa = premultiply(col, a)
			}
			blend.SourceOver(dst, dst.PixOffset(x, y), sr, sg, sb, sa, c)
		}
	}
}

func premultiply(c color.NRGBA, alpha float64) (r, g, b, a uint8) {
	af := float64(c.A) / 255 * alpha
	a = uint8(math.Round(af * 255))
	r = uint8(math.Round(float64(c.R) * af))
	g = uint8(math.Round(float64(c.G) * af))
	b = uint8(math.Round(float64(c.B) * af))
	return r, g, b, a
}

// DrawImage implements Surface. The image is resampled bilinearly.
func (s *ImageSurface) DrawImage(img image.Image, alpha float64) {
	if img == nil || alpha <= 0 {
		return
	}
	m := s.state.ctm
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}

	var opts *xdraw.Options
	if clip := s.state.clip; clip != nil || alpha < 1 {
		opts = &xdraw.Options{DstMask: s.imageMask(alpha)}
	}
	xdraw.BiLinear.Transform(s.top().img, s2d, img, img.Bounds(), xdraw.Over, opts)
}

// imageMask returns the clip scaled by alpha as a destination mask.
func (s *ImageSurface) imageMask(alpha float64) image.Image {
	a := uint8(math.Round(math.Min(alpha, 1) * 255))
	clip := s.state.clip
	if clip == nil {
		return image.NewUniform(color.Alpha{A: a})
	}
	if a == 255 {
		return clip
	}
	out := image.NewAlpha(clip.Rect)
	for i, c := range clip.Pix {
		out.Pix[i] = uint8((uint32(c)*uint32(a) + 127) / 255)
	}
	return out
}

// PushLayer implements Surface.
func (s *ImageSurface) PushLayer(mode BlendMode, alpha float64) {
	base := s.layers[0].img
	s.layers = append(s.layers, &layerBuffer{
		img:   image.NewRGBA(base.Rect),
		mode:  mode,
		alpha: math.Max(0, math.Min(alpha, 1)),
	})
}

// PopLayer implements Surface. The layer is composited through the
// current clip.
func (s *ImageSurface) PopLayer() {
	if len(s.layers) < 2 {
		return
	}
	top := s.top()
	s.layers = s.layers[:len(s.layers)-1]
	dst := s.top().img
	blend.Composite(dst, top.img, s.state.clip, dst.Rect, blend.Mode(top.mode), top.alpha)
}

// LayerDepth returns the number of open layers above the base image.
func (s *ImageSurface) LayerDepth() int {
	return len(s.layers) - 1
}

func (s *ImageSurface) top() *layerBuffer {
	return s.layers[len(s.layers)-1]
}

var _ Surface = (*ImageSurface)(nil)
