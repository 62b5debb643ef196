// Package blend implements the compositing operators used when a layer
// buffer is merged back into its parent.
//
// All pixel data is premultiplied alpha, 8 bits per channel, as stored by
// image.RGBA. Blend formulas follow W3C Compositing and Blending Level 1.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode is a compositing operator.
type Mode uint8

const (
	// Normal is source-over.
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
	// Add sums premultiplied channels, clamped.
	Add
	// HardMix thresholds the sum of source and backdrop.
	HardMix

	// DestinationIn keeps the backdrop where the source is opaque.
	DestinationIn
	// DestinationOut keeps the backdrop where the source is transparent.
	DestinationOut
)

var modeNames = [...]string{
	Normal:         "Normal",
	Multiply:       "Multiply",
	Screen:         "Screen",
	Overlay:        "Overlay",
	Darken:         "Darken",
	Lighten:        "Lighten",
	ColorDodge:     "ColorDodge",
	ColorBurn:      "ColorBurn",
	HardLight:      "HardLight",
	SoftLight:      "SoftLight",
	Difference:     "Difference",
	Exclusion:      "Exclusion",
	Hue:            "Hue",
	Saturation:     "Saturation",
	Color:          "Color",
	Luminosity:     "Luminosity",
	Add:            "Add",
	HardMix:        "HardMix",
	DestinationIn:  "DestinationIn",
	DestinationOut: "DestinationOut",
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}

// IsSeparable reports whether the mode blends each channel independently.
func (m Mode) IsSeparable() bool {
	return m >= Multiply && m <= Exclusion || m == HardMix
}

// IsNonSeparable reports whether the mode works on the whole RGB triplet.
func (m Mode) IsNonSeparable() bool {
	return m >= Hue && m <= Luminosity
}

// Func blends one premultiplied source pixel onto one premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// FuncFor returns the pixel function for mode.
// Unknown modes fall back to source-over.
func FuncFor(mode Mode) Func {
	switch {
	case mode == Normal:
		return sourceOver
	case mode == Add:
		return plus
	case mode == DestinationIn:
		return destinationIn
	case mode == DestinationOut:
		return destinationOut
	case mode.IsSeparable():
		ch := channelFuncs[mode]
		return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
			return separable(sr, sg, sb, sa, dr, dg, db, da, ch)
		}
	case mode.IsNonSeparable():
		fn := nonSeparableFuncs[mode]
		return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
			return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, fn)
		}
	}
	return sourceOver
}
