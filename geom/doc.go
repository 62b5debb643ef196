// Package geom provides the 2D geometry used by the animation renderer.
//
// It contains points, affine matrices, rectangles, Bezier curves and the
// Path type, plus the path algorithms the renderer depends on:
//
//   - area, winding, bounds, flattening and reversal (path_ops.go)
//   - arc-length measurement and sub-path extraction (measure.go)
//   - trim paths with wrap-around (trim.go)
//   - dash patterns (dash.go)
//   - boolean union, intersection, difference and xor (boolean.go)
//   - ellipse, rounded rectangle, star and polygon generators (shapes.go)
//
// Paths returned from caches elsewhere in the module are shared and must be
// treated as read-only. Use Clone before modifying one.
package geom
