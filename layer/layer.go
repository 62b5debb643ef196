package layer

import (
	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// renderer draws the content of a layer in layer space.
type renderer interface {
	setFrame(frame float64) bool
	draw(s surface.Surface, alpha float64)
}

// Layer is one node of a Tree.
type Layer struct {
	name      string
	model     *model.Layer
	parent    int // arena index, or -1
	transform *animation.Transform
	content   renderer
	blend     surface.BlendMode
	masks     []*mask

	isMatte   bool
	matteType model.MatteType
	matte     *Layer

	visible  bool
	local    float64
	world    geom.Matrix
	worldGen uint64
}

func newLayer(ml *model.Layer) *Layer {
	l := &Layer{
		name:      ml.Name,
		model:     ml,
		transform: animation.NewTransform(ml.Transform),
		blend:     blendMode(ml.Blend),
		isMatte:   ml.MatteSource,
		matteType: ml.Matte,
		world:     geom.Identity(),
	}
	for _, m := range ml.Masks {
		if m.Mode == model.MaskNone || m.Path == nil {
			continue
		}
		l.masks = append(l.masks, newMask(m))
	}
	return l
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer is inside its in and out frames at the
// current frame.
func (l *Layer) Visible() bool { return l.visible }

// LocalFrame returns the current frame in layer time.
func (l *Layer) LocalFrame() float64 { return l.local }

// World returns the matrix from layer space to the space of the tree.
func (l *Layer) World() geom.Matrix { return l.world }

func (l *Layer) setFrame(frame float64) bool {
	visible := !l.model.Hidden && l.model.VisibleAt(frame)
	changed := visible != l.visible
	l.visible = visible
	l.local = l.model.LocalFrame(frame)

	// Invisible layers still parent other layers.
	if l.transform.SetFrame(l.local) {
		changed = true
	}
	if !visible {
		return changed
	}
	for _, m := range l.masks {
		if m.setFrame(l.local) {
			changed = true
		}
	}
	if l.content != nil && l.content.setFrame(l.local) {
		changed = true
	}
	return changed
}

func (l *Layer) draw(s surface.Surface, alpha float64) {
	if !l.visible || l.content == nil {
		return
	}
	alpha *= l.transform.Opacity()
	if alpha <= 0 {
		return
	}
	isolated := l.blend != surface.BlendNormal || len(l.masks) > 0 || l.matte != nil
	if isolated {
		s.PushLayer(l.blend, alpha)
		alpha = 1
	}

	s.Save()
	s.Concat(l.world)
	l.content.draw(s, alpha)
	if len(l.masks) > 0 {
		drawMasks(s, l.masks)
	}
	s.Restore()

	if l.matte != nil {
		mode := surface.BlendDestinationIn
		if l.matteType.Inverted() {
			mode = surface.BlendDestinationOut
		}
		s.PushLayer(mode, 1)
		l.matte.draw(s, 1)
		s.PopLayer()
	}
	if isolated {
		s.PopLayer()
	}
}

func blendMode(m model.BlendMode) surface.BlendMode {
	if m < model.BlendNormal || m > model.BlendHardMix {
		return surface.BlendNormal
	}
	return surface.BlendMode(m)
}
