package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/internal/logging"
)

type rawComposition struct {
	V       string            `json:"v"`
	Nm      string            `json:"nm"`
	W       float64           `json:"w"`
	H       float64           `json:"h"`
	Ip      float64           `json:"ip"`
	Op      float64           `json:"op"`
	Fr      float64           `json:"fr"`
	Ddd     int               `json:"ddd"`
	Layers  []json.RawMessage `json:"layers"`
	Assets  []rawAsset        `json:"assets"`
	Fonts   *rawFontList      `json:"fonts"`
	Chars   []rawChar         `json:"chars"`
	Markers []rawMarker       `json:"markers"`
}

type rawFontList struct {
	List []rawFont `json:"list"`
}

type rawAsset struct {
	ID     string            `json:"id"`
	Nm     string            `json:"nm"`
	W      float64           `json:"w"`
	H      float64           `json:"h"`
	U      string            `json:"u"`
	P      string            `json:"p"`
	E      json.RawMessage   `json:"e"`
	Fr     float64           `json:"fr"`
	Layers []json.RawMessage `json:"layers"`
}

type rawFont struct {
	FName   string  `json:"fName"`
	FFamily string  `json:"fFamily"`
	FStyle  string  `json:"fStyle"`
	Ascent  float64 `json:"ascent"`
	FPath   string  `json:"fPath"`
	Origin  int     `json:"origin"`
}

type rawChar struct {
	Ch      string      `json:"ch"`
	Size    float64     `json:"size"`
	Style   string      `json:"style"`
	FFamily string      `json:"fFamily"`
	W       float64     `json:"w"`
	Data    rawCharData `json:"data"`
}

type rawCharData struct {
	Shapes []json.RawMessage `json:"shapes"`
}

type rawMarker struct {
	Cm string  `json:"cm"`
	Tm float64 `json:"tm"`
	Dr float64 `json:"dr"`
}

// parser carries the options and the warnings of one Parse call.
type parser struct {
	opts      parseOptions
	frameRate float64
	warnings  []string
	reported  map[string]bool
}

// warnf records a recoverable anomaly at path.
func (p *parser) warnf(path, format string, args ...any) {
	msg := fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...))
	p.warnings = append(p.warnings, msg)
	logging.Logger().Warn("lottie: "+msg, "path", path)
}

// unsupported records an ignored feature once per document and logs it
// once per process.
func (p *parser) unsupported(path, feature string) {
	if !p.reported[feature] {
		p.reported[feature] = true
		p.warnings = append(p.warnings, fmt.Sprintf("%s: unsupported %s", path, feature))
	}
	logging.WarnOnce("lottie: unsupported "+feature, "path", path)
}

// Parse decodes a document.
func Parse(data []byte, opts ...Option) (*Composition, error) {
	p := &parser{
		opts:     parseOptions{minVersion: DefaultMinVersion},
		reported: make(map[string]bool),
	}
	for _, o := range opts {
		o(&p.opts)
	}

	var rc rawComposition
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	c, err := p.composition(&rc)
	if err != nil {
		return nil, err
	}
	if p.opts.strict && len(p.warnings) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStrict, p.warnings[0])
	}
	logging.Logger().Info("lottie: composition loaded",
		"name", c.Name, "layers", len(c.Layers), "frames", c.Timing.Frames(), "warnings", len(c.Warnings))
	return c, nil
}

// ParseReader decodes a document read from r.
func ParseReader(r io.Reader, opts ...Option) (*Composition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("model: read: %w", err)
	}
	return Parse(data, opts...)
}

// ParseFile decodes the document stored at path.
func ParseFile(path string, opts ...Option) (*Composition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	return Parse(data, opts...)
}

func (p *parser) composition(rc *rawComposition) (*Composition, error) {
	c := &Composition{
		Name:     rc.Nm,
		Width:    rc.W,
		Height:   rc.H,
		Timing:   animation.Timing{StartFrame: rc.Ip, EndFrame: rc.Op, FrameRate: rc.Fr},
		Precomps: make(map[string]*Precomp),
		Images:   make(map[string]*ImageAsset),
		Fonts:    make(map[string]*Font),
	}
	p.version(c, rc.V)
	if rc.Fr <= 0 {
		p.warnf("fr", "invalid frame rate %v, using 60", rc.Fr)
		c.Timing.FrameRate = 60
	}
	if rc.Op < rc.Ip {
		p.warnf("op", "out point %v before in point %v", rc.Op, rc.Ip)
		c.Timing.EndFrame = rc.Ip
	}
	p.frameRate = c.Timing.FrameRate
	if rc.W <= 0 || rc.H <= 0 {
		p.warnf("w", "invalid size %vx%v", rc.W, rc.H)
	}
	if rc.Ddd != 0 {
		p.unsupported("ddd", "3d composition")
	}

	if len(rc.Layers) == 0 {
		return nil, ErrNoLayers
	}

	for i, a := range rc.Assets {
		path := fmt.Sprintf("assets[%d]", i)
		if a.Layers != nil {
			layers, err := p.layers(path+".layers", a.Layers)
			if err != nil {
				return nil, err
			}
			c.Precomps[a.ID] = &Precomp{ID: a.ID, Name: a.Nm, Layers: layers, FrameRate: a.Fr}
			continue
		}
		c.Images[a.ID] = &ImageAsset{
			ID:       a.ID,
			Width:    a.W,
			Height:   a.H,
			Dir:      a.U,
			File:     a.P,
			Embedded: truthy(a.E),
		}
	}

	layers, err := p.layers("layers", rc.Layers)
	if err != nil {
		return nil, err
	}
	c.Layers = layers
	c.layerByIndex = make(map[int]*Layer, len(layers))
	for _, l := range layers {
		c.layerByIndex[l.Index] = l
	}

	if rc.Fonts != nil {
		for _, f := range rc.Fonts.List {
			c.Fonts[f.FName] = &Font{
				Name:   f.FName,
				Family: f.FFamily,
				Style:  f.FStyle,
				Ascent: f.Ascent,
				Path:   f.FPath,
				Origin: f.Origin,
			}
		}
	}
	for i, rch := range rc.Chars {
		path := fmt.Sprintf("chars[%d]", i)
		shapes, err := p.shapes(path+".data.shapes", rch.Data.Shapes)
		if err != nil {
			return nil, err
		}
		c.Chars = append(c.Chars, &Char{
			Char:   rch.Ch,
			Family: rch.FFamily,
			Style:  rch.Style,
			Size:   rch.Size,
			Width:  rch.W,
			Shapes: shapes,
		})
	}
	for _, m := range rc.Markers {
		c.Markers = append(c.Markers, Marker{Name: m.Cm, Frame: m.Tm, Duration: m.Dr})
	}

	c.hasMasks, c.hasMattes = scanLayers(c.Layers)
	for _, pc := range c.Precomps {
		m, t := scanLayers(pc.Layers)
		c.hasMasks = c.hasMasks || m
		c.hasMattes = c.hasMattes || t
	}
	c.Warnings = p.warnings
	return c, nil
}

func scanLayers(layers []*Layer) (masks, mattes bool) {
	for _, l := range layers {
		masks = masks || len(l.Masks) > 0
		mattes = mattes || l.Matte != MatteNone
	}
	return masks, mattes
}

func (p *parser) version(c *Composition, v string) {
	if v == "" {
		p.warnf("v", "missing version")
		return
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		p.warnf("v", "invalid version %q", v)
		return
	}
	c.Version = ver
	minVer, err := semver.NewVersion(p.opts.minVersion)
	if err != nil {
		p.warnf("v", "invalid minimum version %q", p.opts.minVersion)
		return
	}
	if ver.LessThan(minVer) {
		p.warnf("v", "version %s is older than %s", ver, minVer)
	}
}
