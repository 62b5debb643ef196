package recording

import (
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/surface"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave    CommandType = iota // Save current state
	CmdRestore                    // Restore previous state
	CmdConcat                     // Concatenate a matrix
	CmdClip                       // Intersect the clip with a path

	// Drawing commands
	CmdFillPath   // Fill a path
	CmdStrokePath // Stroke a path
	CmdDrawImage  // Draw an image

	// Layer commands
	CmdPushLayer // Start an offscreen layer
	CmdPopLayer  // Composite the top layer
)

var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdConcat:     "Concat",
	CmdClip:       "Clip",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdDrawImage:  "DrawImage",
	CmdPushLayer:  "PushLayer",
	CmdPopLayer:   "PopLayer",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// SaveCommand saves the matrix and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the matrix and clip.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// ConcatCommand concatenates Matrix onto the current matrix.
type ConcatCommand struct {
	Matrix geom.Matrix
}

// Type implements Command.
func (ConcatCommand) Type() CommandType { return CmdConcat }

// ClipCommand intersects the clip with a path.
type ClipCommand struct {
	Path PathRef
	Rule geom.FillRule
	// Transform is the matrix in effect when the clip was set.
	Transform geom.Matrix
}

// Type implements Command.
func (ClipCommand) Type() CommandType { return CmdClip }

// FillPathCommand fills a path.
type FillPathCommand struct {
	Path      PathRef
	Style     surface.FillStyle
	Transform geom.Matrix
	// Depth is the number of open layers at the time of the call.
	Depth int
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path.
type StrokePathCommand struct {
	Path      PathRef
	Style     surface.StrokeStyle
	Transform geom.Matrix
	Depth     int
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// DrawImageCommand draws an image at the user space origin.
type DrawImageCommand struct {
	Image     ImageRef
	Alpha     float64
	Transform geom.Matrix
	Depth     int
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// PushLayerCommand starts an offscreen layer.
type PushLayerCommand struct {
	Mode  surface.BlendMode
	Alpha float64
}

// Type implements Command.
func (PushLayerCommand) Type() CommandType { return CmdPushLayer }

// PopLayerCommand composites the top layer.
type PopLayerCommand struct{}

// Type implements Command.
func (PopLayerCommand) Type() CommandType { return CmdPopLayer }
