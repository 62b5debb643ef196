package model

import (
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
)

// Composition is the parsed document.
type Composition struct {
	Name    string
	Version *semver.Version
	Width   float64
	Height  float64
	Timing  animation.Timing

	Layers   []*Layer
	Precomps map[string]*Precomp
	Images   map[string]*ImageAsset
	Fonts    map[string]*Font
	Chars    []*Char
	Markers  []Marker

	// Warnings lists the recoverable anomalies found while parsing.
	Warnings []string

	layerByIndex map[int]*Layer
	hasMasks     bool
	hasMattes    bool
}

// Precomp is a named layer list that precomposition layers instantiate.
type Precomp struct {
	ID     string
	Name   string
	Layers []*Layer
	// FrameRate is set when the precomposition overrides the document rate.
	FrameRate float64
}

// Bounds returns the composition rectangle in pixels.
func (c *Composition) Bounds() geom.Rect {
	return geom.NewRect(geom.Point{}, geom.Pt(c.Width, c.Height))
}

// Duration returns the playback length.
func (c *Composition) Duration() time.Duration {
	return time.Duration(c.Timing.Seconds() * float64(time.Second))
}

// LayerByIndex returns the top-level layer with index ind.
func (c *Composition) LayerByIndex(ind int) (*Layer, bool) {
	l, ok := c.layerByIndex[ind]
	return l, ok
}

// HasMasks reports whether any layer, including precomposed ones, has a mask.
func (c *Composition) HasMasks() bool {
	return c.hasMasks
}

// HasMattes reports whether any layer, including precomposed ones, uses a
// track matte.
func (c *Composition) HasMattes() bool {
	return c.hasMattes
}

// Marker returns the marker with the given name.
func (c *Composition) Marker(name string) (Marker, bool) {
	for _, m := range c.Markers {
		if m.Name == name {
			return m, true
		}
	}
	return Marker{}, false
}

// Char returns the glyph for ch in the given font family and style.
func (c *Composition) Char(ch, family, style string) *Char {
	for _, g := range c.Chars {
		if g.Char == ch && g.Family == family && (style == "" || g.Style == style) {
			return g
		}
	}
	return nil
}

// FontByName returns the font declared with name.
func (c *Composition) FontByName(name string) *Font {
	return c.Fonts[name]
}

// Marker is a named frame range.
type Marker struct {
	Name     string
	Frame    float64
	Duration float64
}

// EndFrame returns the last frame of the marker.
func (m Marker) EndFrame() float64 {
	return m.Frame + m.Duration
}

// ImageAsset is an image referenced by image layers. Embedded assets carry
// a data URI in File.
type ImageAsset struct {
	ID       string
	Width    float64
	Height   float64
	Dir      string
	File     string
	Embedded bool
}

// Font is a font declared by the document.
type Font struct {
	Name   string
	Family string
	Style  string
	Ascent float64
	Path   string
	Origin int
}

// Char is a glyph drawn with shapes.
type Char struct {
	Char   string
	Family string
	Style  string
	Size   float64
	Width  float64
	Shapes []ShapeItem
}
