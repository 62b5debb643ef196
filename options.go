package lottie

import (
	"log/slog"

	"github.com/gogpu/gg-lottie/layer"
)

// DefaultAsyncTolerance is the progress difference Draw accepts between the
// requested progress and the state computed in the background.
const DefaultAsyncTolerance = 1.0 / 60

// Option configures a Drawable.
//
// Example:
//
//	d, err := lottie.NewDrawable(comp,
//	    lottie.WithImageProvider(assets.NewImageProvider(dir)),
//	    lottie.WithClipToBounds(true),
//	)
type Option func(*options)

type options struct {
	images      layer.ImageProvider
	fonts       layer.FontProvider
	mergePaths  bool
	async       bool
	tolerance   float64
	clip        bool
	logger      *slog.Logger
	shaderCache int
}

func defaultOptions() options {
	return options{
		mergePaths: true,
		tolerance:  DefaultAsyncTolerance,
	}
}

// WithImageProvider sets the source of image layer pixels. Without one,
// image layers draw nothing.
func WithImageProvider(p layer.ImageProvider) Option {
	return func(o *options) {
		o.images = p
	}
}

// WithFontProvider sets the fallback for text whose glyphs are not
// embedded in the document.
func WithFontProvider(p layer.FontProvider) Option {
	return func(o *options) {
		o.fonts = p
	}
}

// WithMergePaths enables or disables boolean merge paths. When disabled,
// merged paths are concatenated.
func WithMergePaths(enabled bool) Option {
	return func(o *options) {
		o.mergePaths = enabled
	}
}

// WithAsyncUpdates evaluates SetProgress on a background goroutine. Draw
// uses the last computed state while it is within tolerance of the
// requested progress and evaluates synchronously otherwise. A tolerance
// of zero or less selects [DefaultAsyncTolerance].
//
// A Drawable in async mode must be closed.
func WithAsyncUpdates(tolerance float64) Option {
	return func(o *options) {
		o.async = true
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithClipToBounds clips drawing to the composition rectangle.
func WithClipToBounds(clip bool) Option {
	return func(o *options) {
		o.clip = clip
	}
}

// WithLogger installs l as the shared logger, as SetLogger does.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithShaderCacheSize bounds the number of cached gradient brushes.
func WithShaderCacheSize(n int) Option {
	return func(o *options) {
		o.shaderCache = n
	}
}
