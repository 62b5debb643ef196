package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/geom"
)

// rawProperty is an animatable value: k holds either a static value or a
// list of keyframe objects, x an optional expression.
type rawProperty struct {
	K json.RawMessage `json:"k"`
	X json.RawMessage `json:"x"`
}

type rawEasing struct {
	X json.RawMessage `json:"x"`
	Y json.RawMessage `json:"y"`
}

type rawKeyframe struct {
	T  float64         `json:"t"`
	S  json.RawMessage `json:"s"`
	E  json.RawMessage `json:"e"`
	H  json.RawMessage `json:"h"`
	O  *rawEasing      `json:"o"`
	I  *rawEasing      `json:"i"`
	TO []float64       `json:"to"`
	TI []float64       `json:"ti"`
}

// converter turns one raw JSON value into T.
type converter[T any] func(p *parser, path string, raw json.RawMessage) (T, error)

// builder turns synthesized keyframes into a property.
type builder[T any] func(kfs []animation.Keyframe[T]) (*animation.Property[T], error)

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func firstByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

// keyframeList returns the keyframe objects of k, or nil if k is static.
func keyframeList(k json.RawMessage) []rawKeyframe {
	if firstByte(k) != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(k, &items); err != nil || len(items) == 0 {
		return nil
	}
	if firstByte(items[0]) != '{' {
		return nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &probe); err != nil {
		return nil
	}
	if _, ok := probe["t"]; !ok {
		return nil
	}
	kfs := make([]rawKeyframe, 0, len(items))
	for _, it := range items {
		var kf rawKeyframe
		if err := json.Unmarshal(it, &kf); err == nil {
			kfs = append(kfs, kf)
		}
	}
	return kfs
}

// firstNumber reads a number or the first element of a number array.
func firstNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var fs []float64
	if err := json.Unmarshal(raw, &fs); err == nil && len(fs) > 0 {
		return fs[0], true
	}
	return 0, false
}

// truthy reads a bool or a number flag.
func truthy(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	f, _ := firstNumber(raw)
	return f != 0
}

func (e *rawEasing) point() *geom.Point {
	if e == nil {
		return nil
	}
	x, okx := firstNumber(e.X)
	y, oky := firstNumber(e.Y)
	if !okx || !oky {
		return nil
	}
	return &geom.Point{X: x, Y: y}
}

func tangent(v []float64) geom.Point {
	if len(v) < 2 {
		return geom.Point{}
	}
	return geom.Pt(v[0], v[1])
}

func entries[T any](p *parser, path string, raw []rawKeyframe, conv converter[T]) ([]animation.Entry[T], error) {
	list := make([]animation.Entry[T], 0, len(raw))
	for i, kf := range raw {
		kpath := fmt.Sprintf("%s.k[%d]", path, i)
		e := animation.Entry[T]{
			Time:       kf.T,
			Hold:       truthy(kf.H),
			OutTangent: tangent(kf.TO),
			InTangent:  tangent(kf.TI),
		}
		if !isNull(kf.S) {
			v, err := conv(p, kpath+".s", kf.S)
			if err != nil {
				return nil, err
			}
			e.Start = &v
		}
		if !isNull(kf.E) {
			v, err := conv(p, kpath+".e", kf.E)
			if err != nil {
				return nil, err
			}
			e.End = &v
		}
		if o, in := kf.O.point(), kf.I.point(); o != nil && in != nil {
			e.Out, e.In = o, in
		}
		list = append(list, e)
	}
	return list, nil
}

// parseProperty decodes an animatable value. A missing value yields nil.
func parseProperty[T any](p *parser, path string, raw json.RawMessage, conv converter[T], build builder[T]) (*animation.Property[T], error) {
	if isNull(raw) {
		return nil, nil
	}
	var rp rawProperty
	if firstByte(raw) == '{' {
		if err := json.Unmarshal(raw, &rp); err != nil {
			return nil, structuralf(path, "%v", err)
		}
		if isNull(rp.K) {
			return nil, nil
		}
	} else {
		rp.K = raw
	}

	var prop *animation.Property[T]
	if kfs := keyframeList(rp.K); kfs != nil {
		list, err := entries(p, path, kfs, conv)
		if err != nil {
			return nil, err
		}
		built := animation.BuildKeyframes(list)
		if len(built) == 0 {
			p.warnf(path, "keyframes without values")
			return nil, nil
		}
		prop, err = build(built)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		v, err := conv(p, path+".k", rp.K)
		if err != nil {
			return nil, err
		}
		prop = animation.Static(v)
	}

	if firstByte(rp.X) == '"' {
		var src string
		if err := json.Unmarshal(rp.X, &src); err == nil && strings.TrimSpace(src) != "" {
			expr, err := animation.ParseExpression(src, p.frameRate)
			if err != nil {
				p.unsupported(path, "expression")
			} else {
				prop = prop.WithExpression(expr)
			}
		}
	}
	return prop, nil
}

func (p *parser) float(path string, raw json.RawMessage) (*animation.Property[float64], error) {
	return parseProperty[float64](p, path, raw, convFloat, animation.Keyframed[float64])
}

func (p *parser) point(path string, raw json.RawMessage) (*animation.Property[geom.Point], error) {
	return parseProperty[geom.Point](p, path, raw, convPoint, animation.KeyframedPoints)
}

func (p *parser) color(path string, raw json.RawMessage) (*animation.Property[animation.Color], error) {
	return parseProperty[animation.Color](p, path, raw, convColor, animation.Keyframed[animation.Color])
}

func (p *parser) shape(path string, raw json.RawMessage) (*animation.Property[animation.ShapeData], error) {
	return parseProperty[animation.ShapeData](p, path, raw, convShape, animation.Keyframed[animation.ShapeData])
}

func (p *parser) gradient(path string, raw json.RawMessage, stops int) (*animation.Property[animation.Gradient], error) {
	return parseProperty[animation.Gradient](p, path, raw, gradientConverter(stops), keyframedGradient)
}

// keyframedGradient cuts every keyframe down to the fewest stops any of
// them has, so a keyframe truncated by gradientConverter does not fail
// the whole property.
func keyframedGradient(kfs []animation.Keyframe[animation.Gradient]) (*animation.Property[animation.Gradient], error) {
	if len(kfs) == 0 {
		return animation.KeyframedGradient(kfs)
	}
	n := kfs[0].StartValue.Len()
	for _, kf := range kfs {
		n = min(n, kf.StartValue.Len(), kf.EndValue.Len())
	}
	for i := range kfs {
		kfs[i].StartValue = kfs[i].StartValue.Truncate(n)
		kfs[i].EndValue = kfs[i].EndValue.Truncate(n)
	}
	return animation.KeyframedGradient(kfs)
}

// floatOr decodes a float property, defaulting to a static def.
func (p *parser) floatOr(path string, raw json.RawMessage, def float64) (*animation.Property[float64], error) {
	prop, err := p.float(path, raw)
	if prop == nil && err == nil {
		prop = animation.Static(def)
	}
	return prop, err
}

// pointOr decodes a point property, defaulting to a static def.
func (p *parser) pointOr(path string, raw json.RawMessage, def geom.Point) (*animation.Property[geom.Point], error) {
	prop, err := p.point(path, raw)
	if prop == nil && err == nil {
		prop = animation.Static(def)
	}
	return prop, err
}

func convFloat(p *parser, path string, raw json.RawMessage) (float64, error) {
	f, ok := firstNumber(raw)
	if !ok {
		p.warnf(path, "expected a number")
	}
	return f, nil
}

func convPoint(_ *parser, path string, raw json.RawMessage) (geom.Point, error) {
	var fs []float64
	if err := json.Unmarshal(raw, &fs); err != nil || len(fs) < 2 {
		return geom.Point{}, structuralf(path, "point needs at least 2 coordinates")
	}
	return geom.Pt(fs[0], fs[1]), nil
}

// convColor accepts [r, g, b(, a)] in 0..1 or 0..255 and "#rrggbb".
func convColor(p *parser, path string, raw json.RawMessage) (animation.Color, error) {
	if firstByte(raw) == '"' {
		var s string
		_ = json.Unmarshal(raw, &s)
		c, err := colorful.Hex(s)
		if err != nil {
			p.warnf(path, "invalid color %q", s)
			return animation.RGB(0, 0, 0), nil
		}
		return animation.RGB(c.R, c.G, c.B), nil
	}
	var fs []float64
	if err := json.Unmarshal(raw, &fs); err != nil || len(fs) < 3 {
		p.warnf(path, "invalid color")
		return animation.RGB(0, 0, 0), nil
	}
	c := animation.Color{R: fs[0], G: fs[1], B: fs[2], A: 1}
	if len(fs) > 3 {
		c.A = fs[3]
	}
	if c.R > 1 || c.G > 1 || c.B > 1 {
		c.R, c.G, c.B = c.R/255, c.G/255, c.B/255
		if c.A > 1 {
			c.A /= 255
		}
	}
	return c, nil
}

type rawShapeData struct {
	C json.RawMessage   `json:"c"`
	V []json.RawMessage `json:"v"`
	I []json.RawMessage `json:"i"`
	O []json.RawMessage `json:"o"`
}

// convShape accepts a shape object or a one-element array holding one.
func convShape(p *parser, path string, raw json.RawMessage) (animation.ShapeData, error) {
	if firstByte(raw) == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return animation.ShapeData{}, structuralf(path, "empty shape")
		}
		raw = list[0]
	}
	var rs rawShapeData
	if err := json.Unmarshal(raw, &rs); err != nil {
		return animation.ShapeData{}, structuralf(path, "shape: %v", err)
	}
	points := func(name string, list []json.RawMessage, n int) ([]geom.Point, error) {
		pts := make([]geom.Point, n)
		for i := range min(n, len(list)) {
			pt, err := convPoint(p, fmt.Sprintf("%s.%s[%d]", path, name, i), list[i])
			if err != nil {
				return nil, err
			}
			pts[i] = pt
		}
		return pts, nil
	}
	n := len(rs.V)
	v, err := points("v", rs.V, n)
	if err != nil {
		return animation.ShapeData{}, err
	}
	if len(rs.I) != n || len(rs.O) != n {
		p.warnf(path, "tangent count does not match %d vertices", n)
	}
	in, err := points("i", rs.I, n)
	if err != nil {
		return animation.ShapeData{}, err
	}
	out, err := points("o", rs.O, n)
	if err != nil {
		return animation.ShapeData{}, err
	}
	return animation.ShapeData{Closed: truthy(rs.C), Vertices: v, InTangents: in, OutTangents: out}, nil
}

// gradientConverter decodes the flat stop list: stops entries of
// [position, r, g, b] followed by optional [position, alpha] pairs.
func gradientConverter(stops int) converter[animation.Gradient] {
	return func(p *parser, path string, raw json.RawMessage) (animation.Gradient, error) {
		var fs []float64
		if err := json.Unmarshal(raw, &fs); err != nil {
			p.warnf(path, "invalid gradient")
			return animation.Gradient{}, nil
		}
		n := stops
		if len(fs) < 4*n {
			p.warnf(path, "gradient declares %d stops but has data for %d", n, len(fs)/4)
			n = len(fs) / 4
		}
		g := animation.Gradient{
			Positions: make([]float64, n),
			Colors:    make([]animation.Color, n),
		}
		for i := range n {
			g.Positions[i] = fs[4*i]
			g.Colors[i] = animation.Color{R: fs[4*i+1], G: fs[4*i+2], B: fs[4*i+3], A: 1}
		}
		alpha := fs[4*n:]
		if len(alpha) >= 2 {
			for i := range n {
				g.Colors[i].A = alphaAt(alpha, g.Positions[i])
			}
		}
		return g, nil
	}
}

// alphaAt interpolates [position, alpha] pairs at pos.
func alphaAt(pairs []float64, pos float64) float64 {
	n := len(pairs) / 2
	if pos <= pairs[0] {
		return pairs[1]
	}
	for i := 1; i < n; i++ {
		p0, a0 := pairs[2*(i-1)], pairs[2*(i-1)+1]
		p1, a1 := pairs[2*i], pairs[2*i+1]
		if pos <= p1 {
			if p1 == p0 {
				return a1
			}
			return a0 + (a1-a0)*(pos-p0)/(p1-p0)
		}
	}
	return pairs[2*(n-1)+1]
}

type rawTextDocument struct {
	S  float64         `json:"s"`
	F  string          `json:"f"`
	T  string          `json:"t"`
	J  int             `json:"j"`
	TR float64         `json:"tr"`
	LH float64         `json:"lh"`
	LS float64         `json:"ls"`
	FC json.RawMessage `json:"fc"`
	SC json.RawMessage `json:"sc"`
	SW float64         `json:"sw"`
	OF bool            `json:"of"`
}

func convText(p *parser, path string, raw json.RawMessage) (animation.TextDocument, error) {
	var rt rawTextDocument
	if err := json.Unmarshal(raw, &rt); err != nil {
		p.warnf(path, "invalid text document")
		return animation.TextDocument{}, nil
	}
	doc := animation.TextDocument{
		Text:          strings.ReplaceAll(rt.T, "\r", "\n"),
		Font:          rt.F,
		Size:          rt.S,
		LineHeight:    rt.LH,
		Tracking:      rt.TR,
		BaselineShift: rt.LS,
		Justify:       animation.Justify(rt.J),
		StrokeWidth:   rt.SW,
		StrokeOver:    rt.OF,
		Fill:          animation.RGB(0, 0, 0),
	}
	if doc.LineHeight == 0 {
		doc.LineHeight = math.Round(doc.Size * 1.2)
	}
	if !isNull(rt.FC) {
		doc.Fill, _ = convColor(p, path+".fc", rt.FC)
	}
	if !isNull(rt.SC) && doc.StrokeWidth > 0 {
		doc.Stroke, _ = convColor(p, path+".sc", rt.SC)
		doc.HasStroke = true
	}
	return doc, nil
}
