package main

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	lottie "github.com/gogpu/gg-lottie"
	"github.com/gogpu/gg-lottie/assets"
	"github.com/gogpu/gg-lottie/cache"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/internal/config"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

type renderer struct {
	cfg   config.Config
	bg    color.NRGBA
	fonts *assets.FontProvider
	comps *cache.CompositionCache
}

func newRenderer(cfg config.Config) (*renderer, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	fonts, err := assets.NewFontProvider()
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.Fonts {
		if err := fonts.RegisterFile(f.Family, f.Style, f.Path); err != nil {
			return nil, err
		}
	}
	var opts []model.Option
	if cfg.Strict {
		opts = append(opts, model.WithStrict())
	}
	return &renderer{
		cfg:   cfg,
		bg:    bg,
		fonts: fonts,
		comps: cache.NewCompositionCache(nil, opts...),
	}, nil
}

// renderFile parses the document at path and writes every selected frame.
// It returns the number of files written.
func (r *renderer) renderFile(ctx context.Context, path string) (int, error) {
	comp, err := r.comps.LoadFile(path)
	if err != nil {
		return 0, err
	}
	dir := r.cfg.Assets
	if dir == "" {
		dir = filepath.Dir(path)
	}
	return r.render(ctx, comp, assets.NewImageProvider(dir))
}

// rerender drops the parsed document at path and renders it again.
func (r *renderer) rerender(ctx context.Context, path string) (int, error) {
	r.comps.Remove(filepath.Clean(path))
	return r.renderFile(ctx, path)
}

// frames lists the frames to render.
func (r *renderer) frames(t *model.Composition) []float64 {
	start, end := r.cfg.StartFrame, r.cfg.EndFrame
	if start < 0 {
		start = t.Timing.StartFrame
	}
	if end < 0 || end > t.Timing.EndFrame {
		end = t.Timing.EndFrame
	}
	var out []float64
	for f := start; f < end; f += r.cfg.Step {
		out = append(out, f)
	}
	return out
}

func (r *renderer) size(comp *model.Composition) (int, int) {
	w, h := r.cfg.Width, r.cfg.Height
	if w == 0 {
		w = int(math.Ceil(comp.Width * r.cfg.Scale))
	}
	if h == 0 {
		h = int(math.Ceil(comp.Height * r.cfg.Scale))
	}
	return max(w, 1), max(h, 1)
}

func (r *renderer) render(ctx context.Context, comp *model.Composition, images *assets.ImageProvider) (int, error) {
	frames := r.frames(comp)
	w, h := r.size(comp)
	m := geom.Scale(float64(w)/comp.Width, float64(h)/comp.Height)

	// A Drawable serves one goroutine at a time.
	pool := make(chan *lottie.Drawable, r.cfg.Workers)
	for range r.cfg.Workers {
		d, err := lottie.NewDrawable(comp,
			lottie.WithImageProvider(images),
			lottie.WithFontProvider(r.fonts),
			lottie.WithMergePaths(r.cfg.MergePaths),
			lottie.WithClipToBounds(r.cfg.Clip),
		)
		if err != nil {
			return 0, err
		}
		pool <- d
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, frame := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d := <-pool
			defer func() { pool <- d }()

			d.SetFrame(frame)
			s := surface.NewImageSurface(w, h)
			if r.bg.A != 0 {
				s.Clear(r.bg)
			}
			d.Draw(s, m, 1)
			return writePNG(r.cfg.OutputPath(i), s)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(frames), nil
}

func writePNG(name string, s *surface.ImageSurface) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
