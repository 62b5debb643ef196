package model

import (
	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
)

// ShapeItem is one entry of a shape list. The concrete types are
// *Group, *Path, *Rect, *Ellipse, *Polystar, *Fill, *GradientFill,
// *Stroke, *GradientStroke, *Trim, *Merge and *Repeater.
type ShapeItem interface {
	ItemName() string
	isShapeItem()
}

// Item holds the members common to every shape item.
type Item struct {
	Name string
}

// ItemName returns the item name.
func (i *Item) ItemName() string { return i.Name }

func (*Item) isShapeItem() {}

// Direction is the winding of generated shapes.
type Direction int

const (
	DirectionClockwise        Direction = 1
	DirectionCounterClockwise Direction = 3
)

// Reversed reports whether the generated path runs counter-clockwise.
func (d Direction) Reversed() bool {
	return d == DirectionCounterClockwise
}

// Group is a nested shape list with its own transform.
type Group struct {
	Item
	Items     []ShapeItem
	Transform animation.TransformProps
}

// Path is a free-form bezier path.
type Path struct {
	Item
	Direction Direction
	Data      *animation.Property[animation.ShapeData]
}

// Rect is a rectangle centered on Position.
type Rect struct {
	Item
	Direction Direction
	Position  *animation.Property[geom.Point]
	Size      *animation.Property[geom.Point]
	Roundness *animation.Property[float64]
}

// Ellipse is an ellipse centered on Position.
type Ellipse struct {
	Item
	Direction Direction
	Position  *animation.Property[geom.Point]
	Size      *animation.Property[geom.Point]
}

// StarType selects between stars and polygons.
type StarType int

const (
	StarTypeStar    StarType = 1
	StarTypePolygon StarType = 2
)

// Polystar is a star or regular polygon. Inner members are only used by
// stars. Roundness values are percentages.
type Polystar struct {
	Item
	Direction      Direction
	Type           StarType
	Position       *animation.Property[geom.Point]
	Points         *animation.Property[float64]
	Rotation       *animation.Property[float64]
	InnerRadius    *animation.Property[float64]
	OuterRadius    *animation.Property[float64]
	InnerRoundness *animation.Property[float64]
	OuterRoundness *animation.Property[float64]
}

// Fill paints the accumulated paths with a solid color.
type Fill struct {
	Item
	Color   *animation.Property[animation.Color]
	Opacity *animation.Property[float64]
	Rule    geom.FillRule
}

// GradientType selects linear or radial gradients.
type GradientType int

const (
	GradientLinear GradientType = 1
	GradientRadial GradientType = 2
)

// Gradient holds the members shared by gradient fills and strokes.
type Gradient struct {
	Type  GradientType
	Start *animation.Property[geom.Point]
	End   *animation.Property[geom.Point]
	// Highlight length and angle of radial gradients, in percent and degrees.
	HighlightLength *animation.Property[float64]
	HighlightAngle  *animation.Property[float64]
	Colors          *animation.Property[animation.Gradient]
	Opacity         *animation.Property[float64]
}

// GradientFill paints the accumulated paths with a gradient.
type GradientFill struct {
	Item
	Gradient
	Rule geom.FillRule
}

// LineCap is a stroke cap as numbered by the document.
type LineCap int

const (
	CapButt   LineCap = 1
	CapRound  LineCap = 2
	CapSquare LineCap = 3
)

// LineJoin is a stroke join as numbered by the document.
type LineJoin int

const (
	JoinMiter LineJoin = 1
	JoinRound LineJoin = 2
	JoinBevel LineJoin = 3
)

// DashKind is the role of a dash entry.
type DashKind int

const (
	DashLength DashKind = iota
	DashGap
	DashOffset
)

// Dash is one entry of a stroke dash pattern.
type Dash struct {
	Kind  DashKind
	Value *animation.Property[float64]
}

// StrokeStyle holds the members shared by solid and gradient strokes.
type StrokeStyle struct {
	Width      *animation.Property[float64]
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dashes     []Dash
}

// Stroke outlines the accumulated paths with a solid color.
type Stroke struct {
	Item
	StrokeStyle
	Color   *animation.Property[animation.Color]
	Opacity *animation.Property[float64]
}

// GradientStroke outlines the accumulated paths with a gradient.
type GradientStroke struct {
	Item
	StrokeStyle
	Gradient
}

// TrimMode selects how a trim applies to several paths.
type TrimMode int

const (
	// TrimSimultaneous trims every path by the same fraction.
	TrimSimultaneous TrimMode = 1
	// TrimIndividually treats all paths as one continuous length.
	TrimIndividually TrimMode = 2
)

// Trim keeps a fraction of the accumulated paths. Start and End are
// percentages, Offset is in degrees.
type Trim struct {
	Item
	Start  *animation.Property[float64]
	End    *animation.Property[float64]
	Offset *animation.Property[float64]
	Mode   TrimMode
}

// MergeMode is the boolean operation of a merge item.
type MergeMode int

const (
	MergeConcat    MergeMode = 1
	MergeAdd       MergeMode = 2
	MergeSubtract  MergeMode = 3
	MergeIntersect MergeMode = 4
	MergeExclude   MergeMode = 5
)

// Merge combines the paths declared before it.
type Merge struct {
	Item
	Mode MergeMode
}

// RepeaterComposite selects whether later copies draw above or below.
type RepeaterComposite int

const (
	RepeaterAbove RepeaterComposite = 1
	RepeaterBelow RepeaterComposite = 2
)

// Repeater draws the items declared before it several times.
type Repeater struct {
	Item
	Copies       *animation.Property[float64]
	Offset       *animation.Property[float64]
	Composite    RepeaterComposite
	Transform    animation.TransformProps
	StartOpacity *animation.Property[float64]
	EndOpacity   *animation.Property[float64]
}
