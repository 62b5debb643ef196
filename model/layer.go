package model

import "github.com/gogpu/gg-lottie/animation"

// LayerType identifies the layer payload.
type LayerType int

const (
	LayerPrecomp LayerType = 0
	LayerSolid   LayerType = 1
	LayerImage   LayerType = 2
	LayerNull    LayerType = 3
	LayerShape   LayerType = 4
	LayerText    LayerType = 5
)

func (t LayerType) String() string {
	switch t {
	case LayerPrecomp:
		return "precomp"
	case LayerSolid:
		return "solid"
	case LayerImage:
		return "image"
	case LayerNull:
		return "null"
	case LayerShape:
		return "shape"
	case LayerText:
		return "text"
	}
	return "unknown"
}

// MatteType is how a layer uses the layer above it as a track matte.
type MatteType int

const (
	MatteNone MatteType = iota
	MatteAlpha
	MatteAlphaInverted
	MatteLuma
	MatteLumaInverted
)

// Inverted reports whether the matte keeps content outside the source.
func (m MatteType) Inverted() bool {
	return m == MatteAlphaInverted || m == MatteLumaInverted
}

// BlendMode is a layer blend mode as numbered by the document.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAdd
	BlendHardMix
)

// Layer is one node of the layer tree.
type Layer struct {
	Name   string
	Index  int
	Parent *int
	Type   LayerType
	Hidden bool

	InFrame     float64
	OutFrame    float64
	StartTime   float64
	TimeStretch float64

	Transform animation.TransformProps
	Blend     BlendMode

	Matte       MatteType
	MatteSource bool
	Masks       []*Mask

	// Shape layers.
	Shapes []ShapeItem

	// Precomposition and image layers.
	RefID     string
	Width     float64
	Height    float64
	TimeRemap *animation.Property[float64]

	// Solid layers.
	SolidColor animation.Color

	// Text layers.
	Text *Text
}

// LocalFrame converts a composition frame into the layer's own time.
func (l *Layer) LocalFrame(frame float64) float64 {
	sr := l.TimeStretch
	if sr == 0 {
		sr = 1
	}
	return (frame - l.StartTime) / sr
}

// VisibleAt reports whether frame lies in [InFrame, OutFrame).
func (l *Layer) VisibleAt(frame float64) bool {
	return frame >= l.InFrame && frame < l.OutFrame
}

// MaskMode is how a mask combines with the masks before it.
type MaskMode int

const (
	MaskAdd MaskMode = iota
	MaskSubtract
	MaskIntersect
	MaskNone
)

func (m MaskMode) String() string {
	switch m {
	case MaskAdd:
		return "add"
	case MaskSubtract:
		return "subtract"
	case MaskIntersect:
		return "intersect"
	}
	return "none"
}

// Mask is a layer mask.
type Mask struct {
	Name     string
	Mode     MaskMode
	Inverted bool
	Path     *animation.Property[animation.ShapeData]
	Opacity  *animation.Property[float64]
}

// Text is the payload of a text layer.
type Text struct {
	Document *animation.Property[animation.TextDocument]
}
