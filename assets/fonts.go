package assets

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/layer"
)

type faceKey struct {
	family string
	style  string
}

type runeKey struct {
	face *font.Face
	r    rune
}

// FontProvider maps font families to parsed fonts and converts their
// glyphs to outlines. Unknown families fall back to the Go Regular font.
//
// FontProvider is safe for concurrent use.
type FontProvider struct {
	mu       sync.Mutex
	faces    map[faceKey]*font.Face
	families map[string]*font.Face
	fallback *font.Face
	glyphs   map[runeKey]layer.Glyph
}

// NewFontProvider creates a provider with the fallback font loaded.
func NewFontProvider() (*FontProvider, error) {
	fallback, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("assets: fallback font: %w", err)
	}
	return &FontProvider{
		faces:    make(map[faceKey]*font.Face),
		families: make(map[string]*font.Face),
		fallback: fallback,
		glyphs:   make(map[runeKey]layer.Glyph),
	}, nil
}

// Register parses a TrueType or OpenType font and serves it for family
// and style. The first style registered for a family also serves
// requests for unknown styles of that family.
func (p *FontProvider) Register(family, style string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("assets: font %s %s: %w", family, style, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faces[faceKey{family, norm(style)}] = face
	if _, ok := p.families[family]; !ok {
		p.families[family] = face
	}
	return nil
}

// RegisterFile is Register with the font read from a file.
func (p *FontProvider) RegisterFile(family, style, name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	return p.Register(family, style, data)
}

func norm(style string) string {
	return strings.ToLower(strings.TrimSpace(style))
}

func (p *FontProvider) face(family, style string) *font.Face {
	if f, ok := p.faces[faceKey{family, norm(style)}]; ok {
		return f
	}
	if f, ok := p.families[family]; ok {
		return f
	}
	return p.fallback
}

// Glyph implements layer.FontProvider.
func (p *FontProvider) Glyph(family, style string, r rune) (layer.Glyph, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	face := p.face(family, style)
	k := runeKey{face, r}
	if g, ok := p.glyphs[k]; ok {
		return g, true
	}
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return layer.Glyph{}, false
	}
	g := outline(face, gid)
	p.glyphs[k] = g
	return g, true
}

// outline converts a glyph to em units with y growing downwards.
func outline(face *font.Face, gid font.GID) layer.Glyph {
	sc := 1 / float64(face.Upem())
	g := layer.Glyph{
		Path:    geom.NewPath(),
		Advance: float64(face.HorizontalAdvance(gid)) * sc,
	}
	data, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return g
	}
	pt := func(a opentype.SegmentPoint) (float64, float64) {
		return float64(a.X) * sc, -float64(a.Y) * sc
	}
	open := false
	for _, s := range data.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if open {
				g.Path.Close()
			}
			x, y := pt(s.Args[0])
			g.Path.MoveTo(x, y)
			open = true
		case opentype.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			g.Path.LineTo(x, y)
		case opentype.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			g.Path.QuadraticTo(cx, cy, x, y)
		case opentype.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			g.Path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		g.Path.Close()
	}
	return g
}

var _ layer.FontProvider = (*FontProvider)(nil)
