// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the drawing target that animations render into.
//
// A [Surface] receives filled and stroked paths, images and offscreen
// layers. It keeps a current transformation matrix and a clip that are
// saved and restored as a stack, the way immediate-mode 2D canvases do.
//
// Two implementations ship with the module:
//
//   - [ImageSurface] rasterizes into an *image.RGBA with
//     golang.org/x/image/vector and composites layers in software.
//   - recording.Recorder records every call for later inspection or
//     playback onto another surface.
//
// Example:
//
//	s := surface.NewImageSurface(512, 512)
//	s.Concat(geom.Scale(2, 2))
//	s.FillPath(path, surface.FillStyle{Brush: surface.Solid{Color: red}, Alpha: 1})
//	img := s.Image()
//
// Surfaces are not safe for concurrent use.
package surface
