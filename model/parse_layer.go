package model

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/gg-lottie/animation"
)

type rawLayer struct {
	Nm     string            `json:"nm"`
	Ind    *int              `json:"ind"`
	Ty     int               `json:"ty"`
	Parent *int              `json:"parent"`
	Ks     json.RawMessage   `json:"ks"`
	Ao     json.RawMessage   `json:"ao"`
	Ip     float64           `json:"ip"`
	Op     float64           `json:"op"`
	St     float64           `json:"st"`
	Sr     *float64          `json:"sr"`
	Tt     int               `json:"tt"`
	Td     int               `json:"td"`
	Bm     int               `json:"bm"`
	Hd     bool              `json:"hd"`
	Ddd    int               `json:"ddd"`
	Masks  []rawMask         `json:"masksProperties"`
	Shapes []json.RawMessage `json:"shapes"`
	Ef     []json.RawMessage `json:"ef"`
	RefID  string            `json:"refId"`
	W      float64           `json:"w"`
	H      float64           `json:"h"`
	Tm     json.RawMessage   `json:"tm"`
	Sc     string            `json:"sc"`
	Sw     float64           `json:"sw"`
	Sh     float64           `json:"sh"`
	T      *rawText          `json:"t"`
}

type rawMask struct {
	Nm   string          `json:"nm"`
	Mode string          `json:"mode"`
	Inv  bool            `json:"inv"`
	Pt   json.RawMessage `json:"pt"`
	O    json.RawMessage `json:"o"`
	X    json.RawMessage `json:"x"`
}

type rawText struct {
	D json.RawMessage   `json:"d"`
	A []json.RawMessage `json:"a"`
	P json.RawMessage   `json:"p"`
}

type rawTransform struct {
	A  json.RawMessage `json:"a"`
	P  json.RawMessage `json:"p"`
	S  json.RawMessage `json:"s"`
	R  json.RawMessage `json:"r"`
	Rz json.RawMessage `json:"rz"`
	O  json.RawMessage `json:"o"`
	Sk json.RawMessage `json:"sk"`
	Sa json.RawMessage `json:"sa"`
	Rx json.RawMessage `json:"rx"`
	Ry json.RawMessage `json:"ry"`
	// Repeater transforms only.
	So json.RawMessage `json:"so"`
	Eo json.RawMessage `json:"eo"`
}

type rawSplitPosition struct {
	S bool            `json:"s"`
	X json.RawMessage `json:"x"`
	Y json.RawMessage `json:"y"`
}

func (p *parser) layers(path string, raws []json.RawMessage) ([]*Layer, error) {
	layers := make([]*Layer, 0, len(raws))
	for i, raw := range raws {
		lpath := fmt.Sprintf("%s[%d]", path, i)
		var rl rawLayer
		if err := json.Unmarshal(raw, &rl); err != nil {
			return nil, structuralf(lpath, "%v", err)
		}
		l, err := p.layer(lpath, i, &rl)
		if err != nil {
			return nil, err
		}
		if l != nil {
			layers = append(layers, l)
		}
	}
	return layers, nil
}

func (p *parser) layer(path string, pos int, rl *rawLayer) (*Layer, error) {
	typ := LayerType(rl.Ty)
	if typ < LayerPrecomp || typ > LayerText {
		p.unsupported(path, fmt.Sprintf("layer type %d", rl.Ty))
		return nil, nil
	}
	if isNull(rl.Ks) {
		return nil, structuralf(path+".ks", "layer has no transform")
	}
	tr, err := p.transform(path+".ks", rl.Ks)
	if err != nil {
		return nil, err
	}
	tr.AutoOrient = truthy(rl.Ao)
	if rl.Ddd != 0 {
		p.unsupported(path, "3d layer")
	}
	if len(rl.Ef) > 0 {
		p.unsupported(path, "layer effects")
	}

	l := &Layer{
		Name:        rl.Nm,
		Index:       -(pos + 1),
		Parent:      rl.Parent,
		Type:        typ,
		Hidden:      rl.Hd,
		InFrame:     rl.Ip,
		OutFrame:    rl.Op,
		StartTime:   rl.St,
		TimeStretch: 1,
		Transform:   tr,
		Blend:       BlendMode(rl.Bm),
		Matte:       MatteType(rl.Tt),
		MatteSource: rl.Td != 0,
		RefID:       rl.RefID,
		Width:       rl.W,
		Height:      rl.H,
	}
	if rl.Ind != nil {
		l.Index = *rl.Ind
	}
	if rl.Sr != nil && *rl.Sr != 0 {
		l.TimeStretch = *rl.Sr
	}
	if l.Matte < MatteNone || l.Matte > MatteLumaInverted {
		p.warnf(path+".tt", "unknown matte type %d", rl.Tt)
		l.Matte = MatteNone
	}
	if l.Blend < BlendNormal || l.Blend > BlendHardMix {
		p.warnf(path+".bm", "unknown blend mode %d", rl.Bm)
		l.Blend = BlendNormal
	}

	for i, rm := range rl.Masks {
		m, err := p.mask(fmt.Sprintf("%s.masksProperties[%d]", path, i), &rm)
		if err != nil {
			return nil, err
		}
		if m != nil {
			l.Masks = append(l.Masks, m)
		}
	}

	switch typ {
	case LayerShape:
		if l.Shapes, err = p.shapes(path+".shapes", rl.Shapes); err != nil {
			return nil, err
		}
	case LayerPrecomp:
		if !isNull(rl.Tm) {
			if l.TimeRemap, err = p.float(path+".tm", rl.Tm); err != nil {
				return nil, err
			}
		}
	case LayerSolid:
		l.Width, l.Height = rl.Sw, rl.Sh
		l.SolidColor, _ = convColor(p, path+".sc", json.RawMessage(fmt.Sprintf("%q", rl.Sc)))
	case LayerText:
		if rl.T == nil {
			p.warnf(path+".t", "text layer without text")
			break
		}
		doc, err := parseProperty[animation.TextDocument](p, path+".t.d", rl.T.D, convText, animation.Keyframed[animation.TextDocument])
		if err != nil {
			return nil, err
		}
		if doc == nil {
			doc = animation.Static(animation.TextDocument{})
		}
		l.Text = &Text{Document: doc}
		if len(rl.T.A) > 0 {
			p.unsupported(path+".t.a", "text animators")
		}
		if !isNull(rl.T.P) && string(rl.T.P) != "{}" {
			p.unsupported(path+".t.p", "text on path")
		}
	}
	return l, nil
}

func (p *parser) mask(path string, rm *rawMask) (*Mask, error) {
	m := &Mask{Name: rm.Nm, Inverted: rm.Inv}
	switch rm.Mode {
	case "a", "":
		m.Mode = MaskAdd
	case "s":
		m.Mode = MaskSubtract
	case "i":
		m.Mode = MaskIntersect
	case "n":
		m.Mode = MaskNone
	default:
		p.unsupported(path+".mode", fmt.Sprintf("mask mode %q", rm.Mode))
		m.Mode = MaskAdd
	}
	var err error
	if m.Path, err = p.shape(path+".pt", rm.Pt); err != nil {
		return nil, err
	}
	if m.Path == nil {
		p.warnf(path+".pt", "mask without path")
		return nil, nil
	}
	if m.Opacity, err = p.floatOr(path+".o", rm.O, 100); err != nil {
		return nil, err
	}
	if x, ok := staticNumber(rm.X); !ok || x != 0 {
		p.unsupported(path+".x", "mask expansion")
	}
	return m, nil
}

// staticNumber reads the static value of a property, reporting false for
// missing or animated values.
func staticNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, true
	}
	var rp rawProperty
	if err := json.Unmarshal(raw, &rp); err != nil || keyframeList(rp.K) != nil {
		return 0, false
	}
	return firstNumber(rp.K)
}

// transform decodes a layer or group transform. Missing members keep
// their identity value.
func (p *parser) transform(path string, raw json.RawMessage) (animation.TransformProps, error) {
	var props animation.TransformProps
	var rt rawTransform
	if err := json.Unmarshal(raw, &rt); err != nil {
		return props, structuralf(path, "%v", err)
	}

	var err error
	if props.Anchor, err = p.point(path+".a", rt.A); err != nil {
		return props, err
	}
	if err = p.position(path+".p", rt.P, &props); err != nil {
		return props, err
	}
	if props.Scale, err = p.point(path+".s", rt.S); err != nil {
		return props, err
	}
	rot := rt.R
	if isNull(rot) {
		rot = rt.Rz
	}
	if props.Rotation, err = p.float(path+".r", rot); err != nil {
		return props, err
	}
	if props.Opacity, err = p.float(path+".o", rt.O); err != nil {
		return props, err
	}
	if props.Skew, err = p.float(path+".sk", rt.Sk); err != nil {
		return props, err
	}
	if props.SkewAxis, err = p.float(path+".sa", rt.Sa); err != nil {
		return props, err
	}
	if !isNull(rt.Rx) || !isNull(rt.Ry) {
		p.unsupported(path, "3d rotation")
	}
	return props, nil
}

func (p *parser) position(path string, raw json.RawMessage, props *animation.TransformProps) error {
	if firstByte(raw) == '{' {
		var split rawSplitPosition
		if err := json.Unmarshal(raw, &split); err == nil && split.S {
			var err error
			if props.PositionX, err = p.floatOr(path+".x", split.X, 0); err != nil {
				return err
			}
			props.PositionY, err = p.floatOr(path+".y", split.Y, 0)
			return err
		}
	}
	var err error
	props.Position, err = p.point(path, raw)
	return err
}
