package blend

import (
	"image"
	"testing"
)

func TestMulDiv255(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := (a*b + 127) / 255
			if got := mulDiv255(byte(a), byte(b)); int(got) != want {
				t.Fatalf("mulDiv255(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

type px struct{ r, g, b, a byte }

func TestPixelFuncs(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		src  px
		dst  px
		want px
	}{
		{"normal opaque", Normal, px{255, 0, 0, 255}, px{0, 0, 255, 255}, px{255, 0, 0, 255}},
		{"normal transparent", Normal, px{0, 0, 0, 0}, px{0, 0, 255, 255}, px{0, 0, 255, 255}},
		{"normal half", Normal, px{128, 0, 0, 128}, px{0, 0, 255, 255}, px{128, 0, 127, 255}},
		{"multiply white", Multiply, px{255, 255, 255, 255}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
		{"multiply black", Multiply, px{0, 0, 0, 255}, px{10, 20, 30, 255}, px{0, 0, 0, 255}},
		{"screen black", Screen, px{0, 0, 0, 255}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
		{"difference same", Difference, px{90, 90, 90, 255}, px{90, 90, 90, 255}, px{0, 0, 0, 255}},
		{"darken", Darken, px{100, 200, 50, 255}, px{150, 100, 50, 255}, px{100, 100, 50, 255}},
		{"lighten", Lighten, px{100, 200, 50, 255}, px{150, 100, 50, 255}, px{150, 200, 50, 255}},
		{"add", Add, px{200, 10, 0, 255}, px{100, 10, 0, 255}, px{255, 20, 0, 255}},
		{"separable over empty", Multiply, px{50, 60, 70, 255}, px{0, 0, 0, 0}, px{50, 60, 70, 255}},
		{"destination in opaque", DestinationIn, px{0, 0, 0, 255}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
		{"destination in clear", DestinationIn, px{0, 0, 0, 0}, px{10, 20, 30, 255}, px{0, 0, 0, 0}},
		{"destination out opaque", DestinationOut, px{0, 0, 0, 255}, px{10, 20, 30, 255}, px{0, 0, 0, 0}},
		{"destination out clear", DestinationOut, px{0, 0, 0, 0}, px{10, 20, 30, 255}, px{10, 20, 30, 255}},
		{"luminosity gray keeps gray", Luminosity, px{128, 128, 128, 255}, px{128, 128, 128, 255}, px{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := FuncFor(tt.mode)(tt.src.r, tt.src.g, tt.src.b, tt.src.a, tt.dst.r, tt.dst.g, tt.dst.b, tt.dst.a)
			if got := (px{r, g, b, a}); got != tt.want {
				t.Errorf("%v = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestSetSatGray(t *testing.T) {
	got := setSat(rgb{0.5, 0.5, 0.5}, 0.4)
	if got != (rgb{}) {
		t.Errorf("setSat(gray) = %v, want black", got)
	}
}

func TestClipColorInRange(t *testing.T) {
	got := clipColor(rgb{1.2, 0.5, -0.1})
	for _, v := range []float32{got.r, got.g, got.b} {
		if v < -1e-6 || v > 1+1e-6 {
			t.Fatalf("clipColor() = %v, channel out of range", got)
		}
	}
}

func TestModeString(t *testing.T) {
	if got := ColorDodge.String(); got != "ColorDodge" {
		t.Errorf("String() = %q, want %q", got, "ColorDodge")
	}
	if got := Mode(200).String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}

func fill(img *image.RGBA, r, g, b, a byte) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
}

func TestCompositeOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(src, 255, 0, 0, 255)

	Composite(dst, src, nil, dst.Rect, Normal, 0.5)
	got := dst.RGBAAt(1, 1)
	if got.R != 128 || got.A != 128 {
		t.Errorf("RGBAAt() = %v, want R=128 A=128", got)
	}
}

func TestCompositeDestinationInClearsUncovered(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(dst, 0, 255, 0, 255)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Pix[src.PixOffset(0, 0)+3] = 255

	Composite(dst, src, nil, dst.Rect, DestinationIn, 1)
	if got := dst.RGBAAt(0, 0).A; got != 255 {
		t.Errorf("covered alpha = %d, want 255", got)
	}
	if got := dst.RGBAAt(2, 2).A; got != 0 {
		t.Errorf("uncovered alpha = %d, want 0", got)
	}
}

func TestCompositeMaskLimitsDestinationOut(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	fill(dst, 200, 100, 50, 255)
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	fill(src, 0, 0, 0, 255)
	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.Pix[0] = 255

	Composite(dst, src, mask, dst.Rect, DestinationOut, 1)
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("RGBAAt(0,0) = %v, want cleared", got)
	}
	if got := dst.RGBAAt(1, 0); got.A != 255 || got.R != 200 {
		t.Errorf("RGBAAt(1,0) = %v, want unchanged", got)
	}
}

func TestSourceOverCoverage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	SourceOver(dst, 0, 255, 255, 255, 255, 0)
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("zero coverage wrote %v", got)
	}
	SourceOver(dst, 0, 255, 255, 255, 255, 255)
	if got := dst.RGBAAt(0, 0); got.A != 255 || got.R != 255 {
		t.Errorf("full coverage = %v, want opaque white", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct{ a, b, t, want byte }{
		{0, 255, 0, 0},
		{0, 255, 255, 255},
		{255, 0, 128, 127},
		{100, 100, 77, 100},
	}
	for _, tt := range tests {
		if got := lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("lerp(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
