package model

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
)

// rawShape holds the union of shape item members.
type rawShape struct {
	Ty string            `json:"ty"`
	Nm string            `json:"nm"`
	Hd bool              `json:"hd"`
	D  json.RawMessage   `json:"d"`
	It []json.RawMessage `json:"it"`

	Ks json.RawMessage `json:"ks"`
	P  json.RawMessage `json:"p"`
	S  json.RawMessage `json:"s"`
	E  json.RawMessage `json:"e"`
	R  json.RawMessage `json:"r"`

	Sy int             `json:"sy"`
	Pt json.RawMessage `json:"pt"`
	Ir json.RawMessage `json:"ir"`
	Or json.RawMessage `json:"or"`
	Is json.RawMessage `json:"is"`
	Os json.RawMessage `json:"os"`

	C  json.RawMessage `json:"c"`
	O  json.RawMessage `json:"o"`
	W  json.RawMessage `json:"w"`
	Lc int             `json:"lc"`
	Lj int             `json:"lj"`
	Ml float64         `json:"ml"`

	T json.RawMessage `json:"t"`
	H json.RawMessage `json:"h"`
	A json.RawMessage `json:"a"`
	G *rawGradient    `json:"g"`

	M  int             `json:"m"`
	Mm int             `json:"mm"`
	Tr json.RawMessage `json:"tr"`
}

type rawGradient struct {
	P int             `json:"p"`
	K json.RawMessage `json:"k"`
}

type rawDash struct {
	N string          `json:"n"`
	V json.RawMessage `json:"v"`
}

func (p *parser) shapes(path string, raws []json.RawMessage) ([]ShapeItem, error) {
	items := make([]ShapeItem, 0, len(raws))
	for i, raw := range raws {
		spath := fmt.Sprintf("%s[%d]", path, i)
		var rs rawShape
		if err := json.Unmarshal(raw, &rs); err != nil {
			return nil, structuralf(spath, "%v", err)
		}
		if rs.Hd {
			continue
		}
		item, err := p.shapeItem(spath, &rs)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func direction(raw json.RawMessage) Direction {
	if f, ok := firstNumber(raw); ok && Direction(f) == DirectionCounterClockwise {
		return DirectionCounterClockwise
	}
	return DirectionClockwise
}

func fillRule(r json.RawMessage) geom.FillRule {
	if f, ok := firstNumber(r); ok && f == 2 {
		return geom.EvenOdd
	}
	return geom.NonZero
}

func (p *parser) shapeItem(path string, rs *rawShape) (ShapeItem, error) {
	item := Item{Name: rs.Nm}
	var err error
	switch rs.Ty {
	case "gr":
		g := &Group{Item: item}
		var trRaw json.RawMessage
		var children []json.RawMessage
		for _, it := range rs.It {
			var probe struct {
				Ty string `json:"ty"`
			}
			if json.Unmarshal(it, &probe) == nil && probe.Ty == "tr" {
				trRaw = it
				continue
			}
			children = append(children, it)
		}
		if g.Items, err = p.shapes(path+".it", children); err != nil {
			return nil, err
		}
		if trRaw != nil {
			if g.Transform, err = p.transform(path+".tr", trRaw); err != nil {
				return nil, err
			}
		}
		return g, nil

	case "sh":
		s := &Path{Item: item, Direction: direction(rs.D)}
		if s.Data, err = p.shape(path+".ks", rs.Ks); err != nil {
			return nil, err
		}
		if s.Data == nil {
			p.warnf(path+".ks", "path without data")
			return nil, nil
		}
		return s, nil

	case "rc":
		r := &Rect{Item: item, Direction: direction(rs.D)}
		if r.Position, err = p.pointOr(path+".p", rs.P, geom.Point{}); err != nil {
			return nil, err
		}
		if r.Size, err = p.pointOr(path+".s", rs.S, geom.Point{}); err != nil {
			return nil, err
		}
		if r.Roundness, err = p.floatOr(path+".r", rs.R, 0); err != nil {
			return nil, err
		}
		return r, nil

	case "el":
		e := &Ellipse{Item: item, Direction: direction(rs.D)}
		if e.Position, err = p.pointOr(path+".p", rs.P, geom.Point{}); err != nil {
			return nil, err
		}
		if e.Size, err = p.pointOr(path+".s", rs.S, geom.Point{}); err != nil {
			return nil, err
		}
		return e, nil

	case "sr":
		return p.polystar(path, item, rs)

	case "fl":
		f := &Fill{Item: item, Rule: fillRule(rs.R)}
		if f.Color, err = p.color(path+".c", rs.C); err != nil {
			return nil, err
		}
		if f.Color == nil {
			f.Color = animation.Static(animation.RGB(0, 0, 0))
		}
		if f.Opacity, err = p.floatOr(path+".o", rs.O, 100); err != nil {
			return nil, err
		}
		return f, nil

	case "gf":
		f := &GradientFill{Item: item, Rule: fillRule(rs.R)}
		if f.Gradient, err = p.gradientMembers(path, rs); err != nil {
			return nil, err
		}
		return f, nil

	case "st":
		s := &Stroke{Item: item}
		if s.StrokeStyle, err = p.strokeStyle(path, rs); err != nil {
			return nil, err
		}
		if s.Color, err = p.color(path+".c", rs.C); err != nil {
			return nil, err
		}
		if s.Color == nil {
			s.Color = animation.Static(animation.RGB(0, 0, 0))
		}
		if s.Opacity, err = p.floatOr(path+".o", rs.O, 100); err != nil {
			return nil, err
		}
		return s, nil

	case "gs":
		s := &GradientStroke{Item: item}
		if s.StrokeStyle, err = p.strokeStyle(path, rs); err != nil {
			return nil, err
		}
		if s.Gradient, err = p.gradientMembers(path, rs); err != nil {
			return nil, err
		}
		return s, nil

	case "tm":
		t := &Trim{Item: item, Mode: TrimSimultaneous}
		if rs.M == int(TrimIndividually) {
			t.Mode = TrimIndividually
		}
		if t.Start, err = p.floatOr(path+".s", rs.S, 0); err != nil {
			return nil, err
		}
		if t.End, err = p.floatOr(path+".e", rs.E, 100); err != nil {
			return nil, err
		}
		if t.Offset, err = p.floatOr(path+".o", rs.O, 0); err != nil {
			return nil, err
		}
		return t, nil

	case "mm":
		mode := MergeMode(rs.Mm)
		if mode < MergeConcat || mode > MergeExclude {
			p.warnf(path+".mm", "unknown merge mode %d", rs.Mm)
			mode = MergeConcat
		}
		return &Merge{Item: item, Mode: mode}, nil

	case "rp":
		return p.repeater(path, item, rs)

	case "rd":
		p.unsupported(path, "rounded corners")
		return nil, nil

	case "tr":
		// Only meaningful inside a group; handled there.
		return nil, nil
	}
	p.unsupported(path, fmt.Sprintf("shape type %q", rs.Ty))
	return nil, nil
}

func (p *parser) polystar(path string, item Item, rs *rawShape) (ShapeItem, error) {
	s := &Polystar{Item: item, Direction: direction(rs.D), Type: StarTypeStar}
	if rs.Sy == int(StarTypePolygon) {
		s.Type = StarTypePolygon
	}
	var err error
	if s.Position, err = p.pointOr(path+".p", rs.P, geom.Point{}); err != nil {
		return nil, err
	}
	if s.Points, err = p.floatOr(path+".pt", rs.Pt, 5); err != nil {
		return nil, err
	}
	if s.Rotation, err = p.floatOr(path+".r", rs.R, 0); err != nil {
		return nil, err
	}
	if s.OuterRadius, err = p.floatOr(path+".or", rs.Or, 0); err != nil {
		return nil, err
	}
	if s.OuterRoundness, err = p.floatOr(path+".os", rs.Os, 0); err != nil {
		return nil, err
	}
	if s.InnerRadius, err = p.floatOr(path+".ir", rs.Ir, 0); err != nil {
		return nil, err
	}
	if s.InnerRoundness, err = p.floatOr(path+".is", rs.Is, 0); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) gradientMembers(path string, rs *rawShape) (Gradient, error) {
	g := Gradient{Type: GradientLinear}
	if f, ok := firstNumber(rs.T); ok && GradientType(f) == GradientRadial {
		g.Type = GradientRadial
	}
	var err error
	if g.Start, err = p.pointOr(path+".s", rs.S, geom.Point{}); err != nil {
		return g, err
	}
	if g.End, err = p.pointOr(path+".e", rs.E, geom.Point{}); err != nil {
		return g, err
	}
	if g.HighlightLength, err = p.floatOr(path+".h", rs.H, 0); err != nil {
		return g, err
	}
	if g.HighlightAngle, err = p.floatOr(path+".a", rs.A, 0); err != nil {
		return g, err
	}
	if g.Opacity, err = p.floatOr(path+".o", rs.O, 100); err != nil {
		return g, err
	}
	if rs.G == nil {
		p.warnf(path+".g", "gradient without colors")
		g.Colors = animation.Static(animation.Gradient{})
		return g, nil
	}
	if g.Colors, err = p.gradient(path+".g", rs.G.K, rs.G.P); err != nil {
		return g, err
	}
	if g.Colors == nil {
		g.Colors = animation.Static(animation.Gradient{})
	}
	return g, nil
}

func (p *parser) strokeStyle(path string, rs *rawShape) (StrokeStyle, error) {
	s := StrokeStyle{
		Cap:        LineCap(rs.Lc),
		Join:       LineJoin(rs.Lj),
		MiterLimit: rs.Ml,
	}
	if s.Cap < CapButt || s.Cap > CapSquare {
		s.Cap = CapRound
	}
	if s.Join < JoinMiter || s.Join > JoinBevel {
		s.Join = JoinRound
	}
	if s.MiterLimit <= 0 {
		s.MiterLimit = 4
	}
	var err error
	if s.Width, err = p.floatOr(path+".w", rs.W, 1); err != nil {
		return s, err
	}

	if firstByte(rs.D) == '[' {
		var dashes []rawDash
		if err := json.Unmarshal(rs.D, &dashes); err != nil {
			p.warnf(path+".d", "invalid dash list")
			return s, nil
		}
		for i, d := range dashes {
			dpath := fmt.Sprintf("%s.d[%d]", path, i)
			kind := DashLength
			switch d.N {
			case "g":
				kind = DashGap
			case "o":
				kind = DashOffset
			}
			v, err := p.floatOr(dpath+".v", d.V, 0)
			if err != nil {
				return s, err
			}
			s.Dashes = append(s.Dashes, Dash{Kind: kind, Value: v})
		}
	}
	return s, nil
}

func (p *parser) repeater(path string, item Item, rs *rawShape) (ShapeItem, error) {
	r := &Repeater{Item: item, Composite: RepeaterAbove}
	if rs.M == int(RepeaterBelow) {
		r.Composite = RepeaterBelow
	}
	var err error
	if r.Copies, err = p.floatOr(path+".c", rs.C, 1); err != nil {
		return nil, err
	}
	if r.Offset, err = p.floatOr(path+".o", rs.O, 0); err != nil {
		return nil, err
	}
	if isNull(rs.Tr) {
		r.StartOpacity = animation.Static(100.0)
		r.EndOpacity = animation.Static(100.0)
		return r, nil
	}
	if r.Transform, err = p.transform(path+".tr", rs.Tr); err != nil {
		return nil, err
	}
	var rt rawTransform
	_ = json.Unmarshal(rs.Tr, &rt)
	if r.StartOpacity, err = p.floatOr(path+".tr.so", rt.So, 100); err != nil {
		return nil, err
	}
	if r.EndOpacity, err = p.floatOr(path+".tr.eo", rt.Eo, 100); err != nil {
		return nil, err
	}
	return r, nil
}
