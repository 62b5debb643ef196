package blend

// mulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
// Uses Alvy Ray Smith's shift formula instead of a division.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + (t >> 8)) >> 8)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// toUnit converts a byte channel to [0, 1].
func toUnit(v byte) float32 {
	return float32(v) / 255
}

// fromUnit converts a [0, 1] value back to a byte, clamping and rounding.
func fromUnit(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

// unpremultiply returns the straight color of a premultiplied channel.
func unpremultiply(c, a byte) float32 {
	if a == 0 {
		return 0
	}
	v := float32(c) / float32(a)
	if v > 1 {
		return 1
	}
	return v
}
