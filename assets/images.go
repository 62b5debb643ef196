package assets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/webp"

	"github.com/gogpu/gg-lottie/cache"
	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/layer"
	"github.com/gogpu/gg-lottie/model"
)

// ErrUnsupportedImage is returned for image data in a format that cannot
// be decoded.
var ErrUnsupportedImage = errors.New("assets: unsupported image format")

// DefaultImageCacheSize is the number of decoded images kept by an
// ImageProvider.
const DefaultImageCacheSize = 64

// ImageProvider decodes image assets. Embedded assets carry their bytes in
// a data URI; the others are read from a file system relative to the
// document.
//
// ImageProvider is safe for concurrent use.
type ImageProvider struct {
	fsys   fs.FS
	images *cache.Cache[string, image.Image]
}

// NewImageProvider reads non-embedded assets from the directory dir.
func NewImageProvider(dir string) *ImageProvider {
	return NewImageProviderFS(os.DirFS(dir))
}

// NewImageProviderFS reads non-embedded assets from fsys. A nil fsys only
// serves embedded assets.
func NewImageProviderFS(fsys fs.FS) *ImageProvider {
	return &ImageProvider{
		fsys:   fsys,
		images: cache.New[string, image.Image](DefaultImageCacheSize),
	}
}

// Image returns the decoded image of asset.
func (p *ImageProvider) Image(asset *model.ImageAsset) (image.Image, error) {
	key := asset.Dir + asset.File
	if img, ok := p.images.Get(key); ok {
		return img, nil
	}
	data, err := p.read(asset)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", asset.ID, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", asset.ID, err)
	}
	p.images.Set(key, img)
	logging.Logger().Debug("lottie: image decoded", "id", asset.ID, "bounds", img.Bounds())
	return img, nil
}

func (p *ImageProvider) read(asset *model.ImageAsset) ([]byte, error) {
	if strings.HasPrefix(asset.File, "data:") {
		return DecodeDataURI(asset.File)
	}
	if asset.Embedded {
		return nil, errors.New("embedded image is not a data URI")
	}
	if p.fsys == nil {
		return nil, fs.ErrNotExist
	}
	name := path.Clean(strings.TrimPrefix(path.Join(asset.Dir, asset.File), "/"))
	return fs.ReadFile(p.fsys, name)
}

// DecodeDataURI returns the payload of a data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("data URI without payload")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return []byte(s), nil
}

// Decode sniffs the format of data and decodes it. PNG, JPEG, GIF and
// WebP are supported.
func Decode(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)
	switch kind.Extension {
	case "png":
		return png.Decode(r)
	case "jpg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "webp":
		return webp.Decode(r)
	}
	if kind == filetype.Unknown {
		return nil, ErrUnsupportedImage
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind.MIME.Value)
}

var _ layer.ImageProvider = (*ImageProvider)(nil)
