package assets

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg-lottie/model"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t))
	p := NewImageProviderFS(nil)

	img, err := p.Image(&model.ImageAsset{ID: "img_0", File: uri, Embedded: true})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	r, _, _, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestImageDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "img_0.png"), encodePNG(t), 0o600))

	p := NewImageProvider(dir)
	asset := &model.ImageAsset{ID: "img_0", Dir: "images/", File: "img_0.png"}
	first, err := p.Image(asset)
	require.NoError(t, err)
	second, err := p.Image(asset)
	require.NoError(t, err)
	assert.Same(t, first, second, "decoded images are cached")
}

func TestImageErrors(t *testing.T) {
	fsys := fstest.MapFS{"junk.bin": &fstest.MapFile{Data: []byte("not an image at all")}}
	p := NewImageProviderFS(fsys)

	_, err := p.Image(&model.ImageAsset{ID: "a", File: "junk.bin"})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = p.Image(&model.ImageAsset{ID: "b", File: "missing.png"})
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = p.Image(&model.ImageAsset{ID: "c", File: "abc", Embedded: true})
	assert.Error(t, err)

	_, err = NewImageProviderFS(nil).Image(&model.ImageAsset{ID: "d", File: "x.png"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"data:text/plain;base64,aGVsbG8=", "hello", false},
		{"data:,hello%20world", "hello world", false},
		{"data:text/plain;base64,!!!", "", true},
		{"data:nocomma", "", true},
		{"http://example.com/a.png", "", true},
	}
	for _, tt := range tests {
		got, err := DecodeDataURI(tt.uri)
		if tt.wantErr {
			assert.Error(t, err, tt.uri)
			continue
		}
		require.NoError(t, err, tt.uri)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestFontProviderFallback(t *testing.T) {
	p, err := NewFontProvider()
	require.NoError(t, err)

	g, ok := p.Glyph("Unknown", "Regular", 'H')
	require.True(t, ok)
	require.False(t, g.Path.IsEmpty())
	assert.Greater(t, g.Advance, 0.3)
	assert.Less(t, g.Advance, 1.0)

	box := g.Path.BoundingBox()
	assert.InDelta(t, 0, box.Max.Y, 0.01, "glyph sits on the baseline")
	assert.Less(t, box.Min.Y, -0.5, "y grows downwards")

	space, ok := p.Glyph("Unknown", "", ' ')
	require.True(t, ok)
	assert.True(t, space.Path.IsEmpty())
	assert.Greater(t, space.Advance, 0.0)

	again, ok := p.Glyph("Unknown", "Regular", 'H')
	require.True(t, ok)
	assert.Same(t, g.Path, again.Path)
}

func TestFontProviderRegister(t *testing.T) {
	p, err := NewFontProvider()
	require.NoError(t, err)

	assert.Error(t, p.Register("Broken", "Regular", []byte("nope")))
	require.NoError(t, p.Register("Go", "Regular", goregular.TTF))

	g, ok := p.Glyph("Go", "regular ", 'a')
	require.True(t, ok)
	assert.False(t, g.Path.IsEmpty())

	_, ok = p.Glyph("Go", "Bold", 'a')
	assert.True(t, ok, "unknown styles use the family")

	assert.Error(t, p.RegisterFile("Go", "Italic", filepath.Join(t.TempDir(), "missing.ttf")))
}
