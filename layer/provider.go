package layer

import (
	"image"

	"github.com/gogpu/gg-lottie/content"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
)

// ImageProvider returns the raster image of an image asset.
type ImageProvider interface {
	Image(asset *model.ImageAsset) (image.Image, error)
}

// Glyph is the outline of one character in em units: a font size of 1,
// the baseline at y = 0 and y growing downwards.
type Glyph struct {
	Path    *geom.Path
	Advance float64
}

// FontProvider returns glyph outlines for text layers whose characters are
// not embedded in the document.
type FontProvider interface {
	Glyph(family, style string, r rune) (Glyph, bool)
}

// Options configures a Tree.
type Options struct {
	Images  ImageProvider
	Fonts   FontProvider
	Content content.Options
}
