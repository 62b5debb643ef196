package blend

// rgb is a straight color with channels in [0, 1].
type rgb struct{ r, g, b float32 }

func lum(c rgb) float32 {
	return 0.3*c.r + 0.59*c.g + 0.11*c.b
}

func sat(c rgb) float32 {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

// clipColor brings out-of-range channels back into [0, 1] while keeping
// the luminosity.
func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		s := l / (l - n)
		c = rgb{l + (c.r-l)*s, l + (c.g-l)*s, l + (c.b-l)*s}
	}
	if x > 1 {
		s := (1 - l) / (x - l)
		c = rgb{l + (c.r-l)*s, l + (c.g-l)*s, l + (c.b-l)*s}
	}
	return c
}

func setLum(c rgb, l float32) rgb {
	d := l - lum(c)
	return clipColor(rgb{c.r + d, c.g + d, c.b + d})
}

func setSat(c rgb, s float32) rgb {
	ch := [3]*float32{&c.r, &c.g, &c.b}
	// Sort pointers so that ch[0] <= ch[1] <= ch[2].
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := *ch[0], *ch[1], *ch[2]
	if hi > lo {
		*ch[1] = (mid - lo) * s / (hi - lo)
		*ch[2] = s
	} else {
		*ch[1], *ch[2] = 0, 0
	}
	*ch[0] = 0
	return c
}

// nonSeparableFunc is B(Cb, Cs) on whole straight colors.
type nonSeparableFunc func(cb, cs rgb) rgb

var nonSeparableFuncs = map[Mode]nonSeparableFunc{
	Hue: func(cb, cs rgb) rgb {
		return setLum(setSat(cs, sat(cb)), lum(cb))
	},
	Saturation: func(cb, cs rgb) rgb {
		return setLum(setSat(cb, sat(cs)), lum(cb))
	},
	Color: func(cb, cs rgb) rgb {
		return setLum(cs, lum(cb))
	},
	Luminosity: func(cb, cs rgb) rgb {
		return setLum(cb, lum(cs))
	},
}

func nonSeparable(sr, sg, sb, sa, dr, dg, db, da byte, fn nonSeparableFunc) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	as, ab := toUnit(sa), toUnit(da)
	cs := rgb{unpremultiply(sr, sa), unpremultiply(sg, sa), unpremultiply(sb, sa)}
	cb := rgb{unpremultiply(dr, da), unpremultiply(dg, da), unpremultiply(db, da)}
	bl := fn(cb, cs)
	mix := func(s, d byte, b float32) byte {
		return fromUnit(toUnit(s)*(1-ab) + toUnit(d)*(1-as) + as*ab*b)
	}
	return mix(sr, dr, bl.r), mix(sg, dg, bl.g), mix(sb, db, bl.b), fromUnit(as + ab - as*ab)
}
