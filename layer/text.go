package layer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

type cachedGlyph struct {
	glyph Glyph
	ok    bool
}

type glyphKey struct {
	r      rune
	family string
	style  string
}

// glyphCache resolves characters to outlines, preferring the glyphs
// embedded in the document over the font provider.
type glyphCache struct {
	comp   *model.Composition
	fonts  FontProvider
	glyphs map[glyphKey]cachedGlyph
}

func newGlyphCache(comp *model.Composition, fonts FontProvider) *glyphCache {
	return &glyphCache{comp: comp, fonts: fonts, glyphs: make(map[glyphKey]cachedGlyph)}
}

func (c *glyphCache) glyph(r rune, family, style string) (Glyph, bool) {
	k := glyphKey{r, family, style}
	if cg, ok := c.glyphs[k]; ok {
		return cg.glyph, cg.ok
	}
	g, ok := c.lookup(r, family, style)
	if !ok {
		logging.WarnOnce("lottie: missing glyph", "family", family)
	}
	c.glyphs[k] = cachedGlyph{g, ok}
	return g, ok
}

// charUnits is the em size that embedded character outlines are drawn in.
const charUnits = 100

func (c *glyphCache) lookup(r rune, family, style string) (Glyph, bool) {
	if ch := c.comp.Char(string(r), family, style); ch != nil {
		// Character data is authored at size 100 whatever its size field says.
		p := shapesPath(ch.Shapes, geom.Identity())
		return Glyph{Path: p.Transform(geom.Scale(1.0/charUnits, 1.0/charUnits)), Advance: ch.Width / charUnits}, true
	}
	if c.fonts != nil {
		return c.fonts.Glyph(family, style, r)
	}
	return Glyph{}, false
}

// shapesPath flattens the static outlines of glyph shape items.
func shapesPath(items []model.ShapeItem, m geom.Matrix) *geom.Path {
	out := geom.NewPath()
	for _, item := range items {
		switch it := item.(type) {
		case *model.Group:
			t := animation.NewTransform(it.Transform)
			out.Append(shapesPath(it.Items, m.Multiply(t.Matrix())))
		case *model.Path:
			if it.Data != nil {
				out.AppendTransformed(it.Data.StartValue().Path(), m)
			}
		}
	}
	return out
}

// textContent lays out a text document with the glyph cache and draws it
// with the document's fill and stroke.
type textContent struct {
	doc     *animation.Value[animation.TextDocument]
	glyphs  *glyphCache
	path    *geom.Path
	version uint64
}

func newText(p *animation.Property[animation.TextDocument], glyphs *glyphCache) *textContent {
	return &textContent{doc: animation.NewText(p), glyphs: glyphs}
}

func (c *textContent) setFrame(frame float64) bool {
	return c.doc.SetFrame(frame)
}

func (c *textContent) outline() *geom.Path {
	if c.path == nil || c.version != c.doc.Version() {
		c.path = c.layout(c.doc.Value())
		c.version = c.doc.Version()
	}
	return c.path
}

type placed struct {
	glyph Glyph
	x     float64
}

func (c *textContent) layout(doc animation.TextDocument) *geom.Path {
	family, style := doc.Font, ""
	if f := c.glyphs.comp.FontByName(doc.Font); f != nil {
		family, style = f.Family, f.Style
	}
	size := doc.Size
	tracking := doc.Tracking * size / 1000

	out := geom.NewPath()
	y := -doc.BaselineShift
	var line []placed
	for _, text := range strings.Split(norm.NFC.String(doc.Text), "\n") {
		line = line[:0]
		x := 0.0
		for _, r := range text {
			g, ok := c.glyphs.glyph(r, family, style)
			if !ok {
				continue
			}
			line = append(line, placed{glyph: g, x: x})
			x += g.Advance*size + tracking
		}
		width := x
		if len(line) > 0 {
			width -= tracking
		}
		var shift float64
		switch doc.Justify {
		case animation.JustifyRight:
			shift = -width
		case animation.JustifyCenter:
			shift = -width / 2
		}
		for _, p := range line {
			m := geom.Translate(p.x+shift, y).Multiply(geom.Scale(size, size))
			out.AppendTransformed(p.glyph.Path, m)
		}
		y += doc.LineHeight
	}
	return out
}

func (c *textContent) draw(s surface.Surface, alpha float64) {
	p := c.outline()
	if p.IsEmpty() {
		return
	}
	doc := c.doc.Value()
	fill := func() {
		s.FillPath(p, surface.FillStyle{Brush: surface.Solid{Color: doc.Fill.NRGBA(1)}, Alpha: alpha})
	}
	if !doc.HasStroke || doc.StrokeWidth <= 0 {
		fill()
		return
	}
	stroke := func() {
		st := surface.StrokeStyle{
			Brush:      surface.Solid{Color: doc.Stroke.NRGBA(1)},
			Width:      doc.StrokeWidth,
			Cap:        surface.LineCapButt,
			Join:       surface.LineJoinMiter,
			MiterLimit: 4,
			Alpha:      alpha,
		}
		s.StrokePath(p, st)
	}
	if doc.StrokeOver {
		fill()
		stroke()
	} else {
		stroke()
		fill()
	}
}
