// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/gg-lottie/geom"
)

// Surface is the abstract 2D drawing target.
//
// Paths and images are given in user space and mapped to the device by the
// current transformation matrix. Save and Restore bracket changes to the
// matrix and the clip. PushLayer starts an offscreen layer that PopLayer
// composites onto the layer below with the blend mode and alpha given to
// PushLayer. Layers and saved states nest independently.
type Surface interface {
	// Save pushes the current matrix and clip.
	Save()

	// Restore pops the state pushed by the matching Save.
	// Restore without a matching Save is a no-op.
	Restore()

	// Concat pre-multiplies the current matrix by m, so m applies first.
	Concat(m geom.Matrix)

	// ClipPath intersects the clip with the area of p under rule.
	ClipPath(p *geom.Path, rule geom.FillRule)

	// FillPath fills p with style.
	FillPath(p *geom.Path, style FillStyle)

	// StrokePath strokes p with style.
	StrokePath(p *geom.Path, style StrokeStyle)

	// DrawImage draws img with its top-left corner at the user space origin,
	// one pixel per user unit.
	DrawImage(img image.Image, alpha float64)

	// PushLayer starts an offscreen layer.
	PushLayer(mode BlendMode, alpha float64)

	// PopLayer composites the top layer onto the one below it.
	// PopLayer without a matching PushLayer is a no-op.
	PopLayer()
}

// BlendMode specifies how a layer is combined with its backdrop.
type BlendMode uint8

// Blend modes. The separable and non-separable modes follow W3C
// Compositing and Blending Level 1.
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

	// BlendDestinationIn keeps the backdrop only where the layer is opaque.
	BlendDestinationIn
	// BlendDestinationOut keeps the backdrop only where the layer is transparent.
	BlendDestinationOut
)

var blendNames = [...]string{
	"Normal", "Multiply", "Screen", "Overlay", "Darken", "Lighten",
	"ColorDodge", "ColorBurn", "HardLight", "SoftLight", "Difference",
	"Exclusion", "Hue", "Saturation", "Color", "Luminosity", "Add",
	"HardMix", "DestinationIn", "DestinationOut",
}

// String returns the blend mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendNames) {
		return blendNames[m]
	}
	return "Unknown"
}
