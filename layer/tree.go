package layer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg-lottie/content"
	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

var (
	// ErrParentCycle is returned when layer parents form a cycle.
	ErrParentCycle = errors.New("layer: parent cycle")

	// ErrPrecompCycle is returned when a precomposition contains itself.
	ErrPrecompCycle = errors.New("layer: precomposition cycle")
)

// Tree is the compositing tree of one layer list.
//
// A Tree holds per-render state. SetFrame and Draw must not run
// concurrently on the same Tree.
type Tree struct {
	layers []*Layer
	frame  float64
	gen    uint64
}

// New builds the tree of the root layers of comp.
func New(comp *model.Composition, opts Options) (*Tree, error) {
	if opts.Content.Shaders == nil {
		opts.Content.Shaders = content.NewShaderCache(0)
	}
	b := &builder{
		comp:   comp,
		opts:   opts,
		glyphs: newGlyphCache(comp, opts.Fonts),
		active: make(map[string]bool),
	}
	t, err := b.tree(comp.Layers, comp.Timing.FrameRate)
	if err != nil {
		return nil, err
	}
	t.SetFrame(comp.Timing.StartFrame)
	return t, nil
}

// Layers returns the layers in document order.
func (t *Tree) Layers() []*Layer {
	return t.layers
}

// Frame returns the frame set by the last SetFrame.
func (t *Tree) Frame() float64 {
	return t.frame
}

// SetFrame evaluates every layer at frame and reports whether anything
// visible may have changed.
func (t *Tree) SetFrame(frame float64) bool {
	t.frame = frame
	t.gen++
	changed := false
	for _, l := range t.layers {
		if l.setFrame(frame) {
			changed = true
		}
	}
	for _, l := range t.layers {
		t.resolveWorld(l)
	}
	return changed
}

// resolveWorld computes the world matrix of l once per SetFrame.
func (t *Tree) resolveWorld(l *Layer) {
	if l.worldGen == t.gen {
		return
	}
	l.world = l.transform.Matrix()
	if l.parent >= 0 {
		p := t.layers[l.parent]
		t.resolveWorld(p)
		l.world = p.world.Multiply(l.world)
	}
	l.worldGen = t.gen
}

// Draw draws the tree onto s. The caller sets the surface transform.
func (t *Tree) Draw(s surface.Surface, alpha float64) {
	for i := len(t.layers) - 1; i >= 0; i-- {
		l := t.layers[i]
		if l.isMatte {
			continue
		}
		l.draw(s, alpha)
	}
}

type builder struct {
	comp   *model.Composition
	opts   Options
	glyphs *glyphCache
	active map[string]bool // precomps being built
}

func (b *builder) tree(layers []*model.Layer, frameRate float64) (*Tree, error) {
	t := &Tree{layers: make([]*Layer, len(layers))}
	byIndex := make(map[int]int, len(layers))
	for i, ml := range layers {
		byIndex[ml.Index] = i
	}
	for i, ml := range layers {
		l, err := b.layer(ml, frameRate)
		if err != nil {
			return nil, err
		}
		l.parent = -1
		if ml.Parent != nil {
			if p, ok := byIndex[*ml.Parent]; ok && p != i {
				l.parent = p
			} else {
				logging.Logger().Warn("lottie: layer parent not found", "layer", ml.Name, "parent", *ml.Parent)
			}
		}
		t.layers[i] = l
	}
	if err := checkParents(t.layers); err != nil {
		return nil, err
	}
	pairMattes(t.layers)
	return t, nil
}

// checkParents fails if following parent links from any layer revisits it.
func checkParents(layers []*Layer) error {
	for _, l := range layers {
		steps := 0
		for p := l.parent; p >= 0; p = layers[p].parent {
			steps++
			if steps > len(layers) {
				return fmt.Errorf("%w: layer %q", ErrParentCycle, l.name)
			}
		}
	}
	return nil
}

// pairMattes attaches every matte source to the layer below it. A layer
// above a matted one is its source whether or not it is flagged as one.
func pairMattes(layers []*Layer) {
	for i, l := range layers {
		if l.matteType == model.MatteNone {
			continue
		}
		if i == 0 {
			logging.Logger().Warn("lottie: matte source missing", "layer", l.name)
			l.matteType = model.MatteNone
			continue
		}
		if src := layers[i-1]; !src.isMatte {
			logging.Logger().Debug("lottie: unflagged matte source", "layer", src.name)
			src.isMatte = true
		}
		if l.matteType == model.MatteLuma || l.matteType == model.MatteLumaInverted {
			logging.WarnOnce("lottie: luma matte drawn as alpha matte")
		}
		l.matte = layers[i-1]
	}
}

func (b *builder) layer(ml *model.Layer, frameRate float64) (*Layer, error) {
	l := newLayer(ml)
	switch ml.Type {
	case model.LayerShape:
		l.content = &shapeContent{group: content.New(ml.Shapes, b.opts.Content)}
	case model.LayerSolid:
		l.content = newSolid(ml)
	case model.LayerImage:
		l.content = b.image(ml)
	case model.LayerPrecomp:
		pc, err := b.precomp(ml, frameRate)
		if err != nil {
			return nil, err
		}
		if pc != nil {
			l.content = pc
		}
	case model.LayerText:
		if ml.Text != nil && ml.Text.Document != nil {
			l.content = newText(ml.Text.Document, b.glyphs)
		}
	}
	logging.Logger().Debug("lottie: layer built", "layer", ml.Name, "type", ml.Type.String())
	return l, nil
}

func (b *builder) precomp(ml *model.Layer, frameRate float64) (*precompContent, error) {
	pc, ok := b.comp.Precomps[ml.RefID]
	if !ok {
		logging.Logger().Warn("lottie: precomposition not found", "layer", ml.Name, "ref", ml.RefID)
		return nil, nil
	}
	if b.active[pc.ID] {
		return nil, fmt.Errorf("%w: %q", ErrPrecompCycle, pc.ID)
	}
	b.active[pc.ID] = true
	defer delete(b.active, pc.ID)

	fr := frameRate
	if pc.FrameRate > 0 {
		fr = pc.FrameRate
	}
	sub, err := b.tree(pc.Layers, fr)
	if err != nil {
		return nil, err
	}
	return newPrecomp(sub, ml, fr), nil
}

func (b *builder) image(ml *model.Layer) renderer {
	asset, ok := b.comp.Images[ml.RefID]
	if !ok {
		logging.Logger().Warn("lottie: image asset not found", "layer", ml.Name, "ref", ml.RefID)
		return nil
	}
	if b.opts.Images == nil {
		logging.WarnOnce("lottie: image layer without image provider")
		return nil
	}
	img, err := b.opts.Images.Image(asset)
	if err != nil {
		logging.Logger().Warn("lottie: image asset unavailable", "ref", ml.RefID, "err", err)
		return nil
	}
	return &imageContent{img: img}
}
