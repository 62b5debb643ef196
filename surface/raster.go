// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/gg-lottie/geom"
)

// flattenTolerance is the maximum device space deviation, in pixels, of
// flattened curves.
const flattenTolerance = 0.2

// rasterizer turns device space paths into coverage masks.
type rasterizer struct {
	z      *vector.Rasterizer
	bounds image.Rectangle
}

func newRasterizer(bounds image.Rectangle) *rasterizer {
	return &rasterizer{bounds: bounds}
}

// coverage rasterizes p, already in device space, under rule and returns
// its anti-aliased coverage. The mask covers the intersection of the path
// bounds with the rasterizer bounds; nil means nothing is covered.
func (r *rasterizer) coverage(p *geom.Path, rule geom.FillRule) *image.Alpha {
	if p.IsEmpty() {
		return nil
	}
	bb := p.BoundingBox()
	area := image.Rect(
		int(math.Floor(bb.Min.X)), int(math.Floor(bb.Min.Y)),
		int(math.Ceil(bb.Max.X)), int(math.Ceil(bb.Max.Y)),
	).Intersect(r.bounds)
	if area.Empty() {
		return nil
	}

	// The vector rasterizer accumulates absolute winding, which matches the
	// non-zero rule only; even-odd input is first split into disjoint pieces.
	if rule == geom.EvenOdd {
		p = geom.Simplify(p, geom.EvenOdd)
	}

	w, h := area.Dx(), area.Dy()
	if r.z == nil {
		r.z = vector.NewRasterizer(w, h)
	} else {
		r.z.Reset(w, h)
	}
	r.z.DrawOp = draw.Src

	clip := geom.Rect{
		Min: geom.Pt(float64(area.Min.X-1), float64(area.Min.Y-1)),
		Max: geom.Pt(float64(area.Max.X+1), float64(area.Max.Y+1)),
	}
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	drawn := false
	for _, poly := range p.FlattenPolylines(flattenTolerance) {
		pts := clipPolygon(poly.Points, clip)
		if len(pts) < 3 {
			continue
		}
		r.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
		for _, pt := range pts[1:] {
			r.z.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		r.z.ClosePath()
		drawn = true
	}
	if !drawn {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = mask.Rect.Add(area.Min)
	return mask
}

// clipPolygon clips a closed polygon to rect (Sutherland-Hodgman). Winding
// numbers inside rect are preserved.
func clipPolygon(pts []geom.Point, rect geom.Rect) []geom.Point {
	inside := func(p geom.Point) bool { return rect.Contains(p) }
	if len(pts) == 0 {
		return nil
	}
	all := true
	for _, p := range pts {
		if !inside(p) {
			all = false
			break
		}
	}
	if all {
		return pts
	}

	type edge struct {
		in    func(geom.Point) bool
		cross func(a, b geom.Point) geom.Point
	}
	atX := func(a, b geom.Point, x float64) geom.Point {
		t := (x - a.X) / (b.X - a.X)
		return geom.Pt(x, a.Y+t*(b.Y-a.Y))
	}
	atY := func(a, b geom.Point, y float64) geom.Point {
		t := (y - a.Y) / (b.Y - a.Y)
		return geom.Pt(a.X+t*(b.X-a.X), y)
	}
	edges := []edge{
		{func(p geom.Point) bool { return p.X >= rect.Min.X }, func(a, b geom.Point) geom.Point { return atX(a, b, rect.Min.X) }},
		{func(p geom.Point) bool { return p.X <= rect.Max.X }, func(a, b geom.Point) geom.Point { return atX(a, b, rect.Max.X) }},
		{func(p geom.Point) bool { return p.Y >= rect.Min.Y }, func(a, b geom.Point) geom.Point { return atY(a, b, rect.Min.Y) }},
		{func(p geom.Point) bool { return p.Y <= rect.Max.Y }, func(a, b geom.Point) geom.Point { return atY(a, b, rect.Max.Y) }},
	}

	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]geom.Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.in(cur):
				if !e.in(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.in(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// intersectMasks returns the product of two coverage masks over the
// intersection of their bounds. A nil mask stands for full coverage.
func intersectMasks(a, b *image.Alpha) *image.Alpha {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	r := a.Rect.Intersect(b.Rect)
	out := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ca := uint32(a.Pix[a.PixOffset(x, y)])
			cb := uint32(b.Pix[b.PixOffset(x, y)])
			out.Pix[out.PixOffset(x, y)] = uint8((ca*cb + 127) / 255)
		}
	}
	return out
}
