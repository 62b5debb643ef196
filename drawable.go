package lottie

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gg-lottie/cache"
	"github.com/gogpu/gg-lottie/content"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/layer"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// ErrNoComposition is returned when a nil composition is set.
var ErrNoComposition = errors.New("lottie: no composition")

// Drawable plays one composition. It owns the layer tree and every cache
// derived from the animation state; the composition itself is shared.
//
// SetProgress is the only method that changes the animation state. Draw
// never does, except to catch up in async mode.
type Drawable struct {
	opts    options
	shaders *content.ShaderCache

	reqMu     sync.Mutex
	requested float64

	// mu serializes evaluation with drawing.
	mu       sync.Mutex
	comp     *model.Composition
	tree     *layer.Tree
	computed float64

	kick      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDrawable creates a drawable for comp. A nil comp is allowed; call
// SetComposition before drawing.
func NewDrawable(comp *model.Composition, opts ...Option) (*Drawable, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	d := &Drawable{
		opts:    o,
		shaders: content.NewShaderCache(o.shaderCache),
	}
	if comp != nil {
		if err := d.SetComposition(comp); err != nil {
			return nil, err
		}
	}
	if o.async {
		d.kick = make(chan struct{}, 1)
		d.done = make(chan struct{})
		d.wg.Add(1)
		go d.worker()
	}
	return d, nil
}

// SetComposition replaces the composition and rewinds to progress 0.
func (d *Drawable) SetComposition(comp *model.Composition) error {
	if comp == nil {
		return ErrNoComposition
	}
	tree, err := layer.New(comp, layer.Options{
		Images: d.opts.images,
		Fonts:  d.opts.fonts,
		Content: content.Options{
			DisableMerge: !d.opts.mergePaths,
			Shaders:      d.shaders,
		},
	})
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.comp = comp
	d.tree = tree
	d.computed = 0
	d.mu.Unlock()

	d.reqMu.Lock()
	d.requested = 0
	d.reqMu.Unlock()

	Logger().Debug("lottie: composition set", "name", comp.Name, "layers", len(comp.Layers))
	return nil
}

// Composition returns the current composition, or nil.
func (d *Drawable) Composition() *model.Composition {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.comp
}

// SetProgress moves playback to progress in [0, 1]; values outside are
// clamped. It reports whether the drawn output may have changed. In async
// mode the evaluation happens in the background and the result is true
// whenever the progress moved.
func (d *Drawable) SetProgress(progress float64) bool {
	progress = clamp01(progress)
	d.reqMu.Lock()
	moved := progress != d.requested
	d.requested = progress
	d.reqMu.Unlock()

	if d.opts.async {
		select {
		case d.kick <- struct{}{}:
		default:
		}
		return moved
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.update()
}

// SetFrame moves playback to frame, clamped to the composition range.
func (d *Drawable) SetFrame(frame float64) bool {
	comp := d.Composition()
	if comp == nil {
		return false
	}
	return d.SetProgress(comp.Timing.ProgressAt(frame))
}

// Progress returns the last requested progress.
func (d *Drawable) Progress() float64 {
	d.reqMu.Lock()
	defer d.reqMu.Unlock()
	return d.requested
}

// Frame returns the frame of the last requested progress.
func (d *Drawable) Frame() float64 {
	comp := d.Composition()
	if comp == nil {
		return 0
	}
	return comp.Timing.FrameAt(d.Progress())
}

// FrameRate returns the composition frame rate.
func (d *Drawable) FrameRate() float64 {
	comp := d.Composition()
	if comp == nil {
		return 0
	}
	return comp.Timing.FrameRate
}

// Duration returns the playback length.
func (d *Drawable) Duration() time.Duration {
	comp := d.Composition()
	if comp == nil {
		return 0
	}
	return comp.Duration()
}

// Bounds returns the composition rectangle.
func (d *Drawable) Bounds() geom.Rect {
	comp := d.Composition()
	if comp == nil {
		return geom.Rect{}
	}
	return comp.Bounds()
}

// HasMasks reports whether any layer uses a mask.
func (d *Drawable) HasMasks() bool {
	comp := d.Composition()
	return comp != nil && comp.HasMasks()
}

// HasMattes reports whether any layer uses a track matte.
func (d *Drawable) HasMattes() bool {
	comp := d.Composition()
	return comp != nil && comp.HasMattes()
}

// Marker returns the progress range of the named marker.
func (d *Drawable) Marker(name string) (start, end float64, ok bool) {
	comp := d.Composition()
	if comp == nil {
		return 0, 0, false
	}
	m, ok := comp.Marker(name)
	if !ok {
		return 0, 0, false
	}
	return comp.Timing.ProgressAt(m.Frame), comp.Timing.ProgressAt(m.EndFrame()), true
}

// ShaderStats returns the gradient brush cache counters.
func (d *Drawable) ShaderStats() cache.Stats {
	return d.shaders.Stats()
}

// Draw draws the current frame onto s. transform maps composition
// coordinates to the surface and alpha scales the opacity of everything
// drawn.
func (d *Drawable) Draw(s surface.Surface, transform geom.Matrix, alpha float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tree == nil || alpha <= 0 {
		return
	}
	if d.opts.async && math.Abs(d.Progress()-d.computed) > d.opts.tolerance {
		d.update()
	}

	s.Save()
	s.Concat(transform)
	if d.opts.clip {
		s.ClipPath(d.comp.Bounds().Path(), geom.NonZero)
	}
	d.tree.Draw(s, min(alpha, 1))
	s.Restore()
}

// Close stops the background evaluation of an async drawable. It is a
// no-op otherwise.
func (d *Drawable) Close() error {
	if d.done == nil {
		return nil
	}
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
	return nil
}

func (d *Drawable) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case <-d.kick:
			d.mu.Lock()
			d.update()
			d.mu.Unlock()
		}
	}
}

// update evaluates the tree at the requested progress. d.mu must be held.
func (d *Drawable) update() bool {
	if d.tree == nil {
		return false
	}
	p := d.Progress()
	if p == d.computed && d.tree.Frame() == d.frameAt(p) {
		return false
	}
	d.computed = p
	return d.tree.SetFrame(d.frameAt(p))
}

// frameAt maps progress to a tree frame. The out frame of a layer is
// exclusive, so the end of the composition evaluates just below it.
func (d *Drawable) frameAt(p float64) float64 {
	t := d.comp.Timing
	f := t.FrameAt(p)
	if f >= t.EndFrame && t.EndFrame > t.StartFrame {
		f = math.Nextafter(t.EndFrame, t.StartFrame)
	}
	return f
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0, min(1, x))
}
