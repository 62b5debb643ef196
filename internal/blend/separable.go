package blend

import "math"

// channelFunc is B(Cb, Cs) on straight (non-premultiplied) values.
type channelFunc func(cb, cs float32) float32

var channelFuncs = map[Mode]channelFunc{
	Multiply: func(cb, cs float32) float32 { return cb * cs },
	Screen:   screen,
	Overlay:  func(cb, cs float32) float32 { return hardLight(cs, cb) },
	Darken: func(cb, cs float32) float32 {
		return min(cb, cs)
	},
	Lighten: func(cb, cs float32) float32 {
		return max(cb, cs)
	},
	ColorDodge: func(cb, cs float32) float32 {
		switch {
		case cb == 0:
			return 0
		case cs >= 1:
			return 1
		}
		return min(1, cb/(1-cs))
	},
	ColorBurn: func(cb, cs float32) float32 {
		switch {
		case cb >= 1:
			return 1
		case cs <= 0:
			return 0
		}
		return 1 - min(1, (1-cb)/cs)
	},
	HardLight: hardLight,
	SoftLight: softLight,
	Difference: func(cb, cs float32) float32 {
		if cb > cs {
			return cb - cs
		}
		return cs - cb
	},
	Exclusion: func(cb, cs float32) float32 { return cb + cs - 2*cb*cs },
	HardMix: func(cb, cs float32) float32 {
		if cb+cs >= 1 {
			return 1
		}
		return 0
	},
}

func screen(cb, cs float32) float32 {
	return cb + cs - cb*cs
}

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = float32(math.Sqrt(float64(cb)))
	}
	return cb + (2*cs-1)*(d-cb)
}

// separable applies the general compositing formula
//
//	co = cs*(1-ab) + cb*(1-as) + as*ab*B(Cb, Cs)
//
// to each premultiplied channel.
func separable(sr, sg, sb, sa, dr, dg, db, da byte, fn channelFunc) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	as, ab := toUnit(sa), toUnit(da)
	mix := func(s, d byte) byte {
		cs := unpremultiply(s, sa)
		cb := unpremultiply(d, da)
		return fromUnit(toUnit(s)*(1-ab) + toUnit(d)*(1-as) + as*ab*fn(cb, cs))
	}
	return mix(sr, dr), mix(sg, dg), mix(sb, db), fromUnit(as + ab - as*ab)
}
