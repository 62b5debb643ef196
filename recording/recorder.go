package recording

import (
	"image"

	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/surface"
)

// Recorder is a surface.Surface that records drawing commands.
//
// Recorder tracks the current matrix itself so that every drawing command
// carries the matrix it was issued under.
type Recorder struct {
	commands  []Command
	resources *ResourcePool

	transform geom.Matrix
	saved     []geom.Matrix
	depth     int
}

// NewRecorder creates an empty recorder with an identity matrix.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
		transform: geom.Identity(),
	}
}

// FinishRecording returns the recorded commands. The Recorder must not be
// used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{commands: r.commands, resources: r.resources}
}

// Reset discards every recorded command so the recorder can be reused.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.resources = NewResourcePool()
	r.transform = geom.Identity()
	r.saved = r.saved[:0]
	r.depth = 0
}

// Transform returns the current matrix.
func (r *Recorder) Transform() geom.Matrix {
	return r.transform
}

// Save implements surface.Surface.
func (r *Recorder) Save() {
	r.saved = append(r.saved, r.transform)
	r.commands = append(r.commands, SaveCommand{})
}

// Restore implements surface.Surface.
func (r *Recorder) Restore() {
	if len(r.saved) == 0 {
		return
	}
	r.transform = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
	r.commands = append(r.commands, RestoreCommand{})
}

// Concat implements surface.Surface.
func (r *Recorder) Concat(m geom.Matrix) {
	r.transform = r.transform.Multiply(m)
	r.commands = append(r.commands, ConcatCommand{Matrix: m})
}

// ClipPath implements surface.Surface.
func (r *Recorder) ClipPath(p *geom.Path, rule geom.FillRule) {
	r.commands = append(r.commands, ClipCommand{
		Path:      r.resources.AddPath(p),
		Rule:      rule,
		Transform: r.transform,
	})
}

// FillPath implements surface.Surface.
func (r *Recorder) FillPath(p *geom.Path, style surface.FillStyle) {
	r.commands = append(r.commands, FillPathCommand{
		Path:      r.resources.AddPath(p),
		Style:     style,
		Transform: r.transform,
		Depth:     r.depth,
	})
}

// StrokePath implements surface.Surface.
func (r *Recorder) StrokePath(p *geom.Path, style surface.StrokeStyle) {
	if len(style.Dash) > 0 {
		style.Dash = append([]float64(nil), style.Dash...)
	}
	r.commands = append(r.commands, StrokePathCommand{
		Path:      r.resources.AddPath(p),
		Style:     style,
		Transform: r.transform,
		Depth:     r.depth,
	})
}

// DrawImage implements surface.Surface.
func (r *Recorder) DrawImage(img image.Image, alpha float64) {
	r.commands = append(r.commands, DrawImageCommand{
		Image:     r.resources.AddImage(img),
		Alpha:     alpha,
		Transform: r.transform,
		Depth:     r.depth,
	})
}

// PushLayer implements surface.Surface.
func (r *Recorder) PushLayer(mode surface.BlendMode, alpha float64) {
	r.depth++
	r.commands = append(r.commands, PushLayerCommand{Mode: mode, Alpha: alpha})
}

// PopLayer implements surface.Surface.
func (r *Recorder) PopLayer() {
	if r.depth == 0 {
		return
	}
	r.depth--
	r.commands = append(r.commands, PopLayerCommand{})
}

var _ surface.Surface = (*Recorder)(nil)
