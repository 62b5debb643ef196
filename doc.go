// Package lottie evaluates Lottie (Bodymovin) JSON animations into vector
// drawing operations.
//
// # Overview
//
// A document is parsed once into an immutable [model.Composition] that can
// be shared by any number of renderers. Each [Drawable] owns the per-render
// state of one playback: the layer tree, the cached geometry and the
// gradient shaders.
//
// # Quick Start
//
//	comp, err := lottie.LoadCompositionFile("anim.json")
//	if err != nil {
//		return err
//	}
//	d, err := lottie.NewDrawable(comp)
//	if err != nil {
//		return err
//	}
//
//	s := surface.NewImageSurface(512, 512)
//	d.SetProgress(0.5)
//	d.Draw(s, geom.Scale(512/comp.Width, 512/comp.Height), 1)
//
// # Surfaces
//
// Drawing goes through the [surface.Surface] interface. The module ships a
// raster [surface.ImageSurface] and a [recording.Recorder] that captures the
// commands for inspection. Any other 2D backend can implement the interface.
//
// # Coordinate System
//
// Composition coordinates put the origin at the top-left, with X growing
// right and Y growing down. Rotations are in degrees, clockwise on screen.
//
// # Concurrency
//
// A Composition is safe for concurrent use. A Drawable is not, except in
// async mode where SetProgress may be called from any goroutine.
package lottie

// Version is the current version of the library.
const Version = "0.1.0"
