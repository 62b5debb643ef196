package blend

import "image"

// Composite blends the pixels of src inside r onto dst with mode, after
// scaling src by opacity. Both images are premultiplied RGBA and are
// addressed in the same coordinate space.
//
// When mask is non-nil, each result is interpolated with the original
// destination pixel by the mask coverage, so pixels outside the mask are
// left untouched even for masking operators.
func Composite(dst, src *image.RGBA, mask *image.Alpha, r image.Rectangle, mode Mode, opacity float64) {
	r = r.Intersect(dst.Rect).Intersect(src.Rect)
	if mask != nil {
		r = r.Intersect(mask.Rect)
	}
	if r.Empty() {
		return
	}
	op := fromUnit(float32(opacity))
	fn := FuncFor(mode)
	// Masking operators read coverage from the source even when it is zero.
	masking := mode == DestinationIn || mode == DestinationOut

	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		mi := -1
		if mask != nil {
			mi = mask.PixOffset(r.Min.X, y)
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := byte(255)
			if mi >= 0 {
				cov = mask.Pix[mi]
				mi++
			}
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			si += 4
			di += 4
			if cov == 0 {
				continue
			}
			sr, sg, sb, sa := s[0], s[1], s[2], s[3]
			if op != 255 {
				sr, sg, sb, sa = mulDiv255(sr, op), mulDiv255(sg, op), mulDiv255(sb, op), mulDiv255(sa, op)
			}
			if sa == 0 && !masking {
				continue
			}
			or, og, ob, oa := fn(sr, sg, sb, sa, d[0], d[1], d[2], d[3])
			if cov != 255 {
				or, og, ob, oa = lerp(d[0], or, cov), lerp(d[1], og, cov), lerp(d[2], ob, cov), lerp(d[3], oa, cov)
			}
			d[0], d[1], d[2], d[3] = or, og, ob, oa
		}
	}
}

// SourceOver blends the premultiplied color (r, g, b, a), scaled by
// coverage, onto the pixel at offset i of dst.
func SourceOver(dst *image.RGBA, i int, r, g, b, a, coverage byte) {
	if coverage != 255 {
		r, g, b, a = mulDiv255(r, coverage), mulDiv255(g, coverage), mulDiv255(b, coverage), mulDiv255(a, coverage)
	}
	if a == 0 {
		return
	}
	d := dst.Pix[i : i+4 : i+4]
	d[0], d[1], d[2], d[3] = sourceOver(r, g, b, a, d[0], d[1], d[2], d[3])
}

// lerp moves from a towards b by t/255.
func lerp(a, b, t byte) byte {
	if b >= a {
		return a + mulDiv255(b-a, t)
	}
	return a - mulDiv255(a-b, t)
}
