package recording

import (
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/surface"
)

// Recording is an immutable list of recorded commands.
type Recording struct {
	commands  []Command
	resources *ResourcePool
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Count returns the number of commands of type t.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Fill is a resolved FillPath command.
type Fill struct {
	// Path is in user space; Transform maps it to the device.
	Path      *geom.Path
	Style     surface.FillStyle
	Transform geom.Matrix
	Depth     int
}

// DevicePath returns the filled path in device space.
func (f Fill) DevicePath() *geom.Path {
	return f.Path.Transform(f.Transform)
}

// Fills returns every FillPath command in order, with paths resolved.
func (r *Recording) Fills() []Fill {
	var out []Fill
	for _, c := range r.commands {
		if f, ok := c.(FillPathCommand); ok {
			out = append(out, Fill{
				Path:      r.resources.Path(f.Path),
				Style:     f.Style,
				Transform: f.Transform,
				Depth:     f.Depth,
			})
		}
	}
	return out
}

// Stroke is a resolved StrokePath command.
type Stroke struct {
	Path      *geom.Path
	Style     surface.StrokeStyle
	Transform geom.Matrix
	Depth     int
}

// Strokes returns every StrokePath command in order, with paths resolved.
func (r *Recording) Strokes() []Stroke {
	var out []Stroke
	for _, c := range r.commands {
		if s, ok := c.(StrokePathCommand); ok {
			out = append(out, Stroke{
				Path:      r.resources.Path(s.Path),
				Style:     s.Style,
				Transform: s.Transform,
				Depth:     s.Depth,
			})
		}
	}
	return out
}

// Playback replays the recording onto dst.
func (r *Recording) Playback(dst surface.Surface) {
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			dst.Save()
		case RestoreCommand:
			dst.Restore()
		case ConcatCommand:
			dst.Concat(c.Matrix)
		case ClipCommand:
			dst.ClipPath(r.resources.Path(c.Path), c.Rule)
		case FillPathCommand:
			dst.FillPath(r.resources.Path(c.Path), c.Style)
		case StrokePathCommand:
			dst.StrokePath(r.resources.Path(c.Path), c.Style)
		case DrawImageCommand:
			dst.DrawImage(r.resources.Image(c.Image), c.Alpha)
		case PushLayerCommand:
			dst.PushLayer(c.Mode, c.Alpha)
		case PopLayerCommand:
			dst.PopLayer()
		}
	}
}
