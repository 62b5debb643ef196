package animation

// Justify is the horizontal alignment of a text document.
type Justify uint8

const (
	JustifyLeft Justify = iota
	JustifyRight
	JustifyCenter
)

// TextDocument is a styled block of text. Text values do not interpolate:
// each keyframe holds its start document.
type TextDocument struct {
	Text          string
	Font          string
	Size          float64
	LineHeight    float64
	Tracking      float64
	BaselineShift float64
	Justify       Justify

	Fill        Color
	Stroke      Color
	StrokeWidth float64
	HasStroke   bool
	StrokeOver  bool
}
