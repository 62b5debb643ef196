package content

import (
	"math"

	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/cache"
	"github.com/gogpu/gg-lottie/geom"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// shaderSteps is the number of buckets the progress of each gradient
// input is quantized to when looking up a cached brush.
const shaderSteps = 100

// shaderKey identifies a gradient brush. The progress of each animated
// input is quantized, so frames that fall into the same bucket share the
// brush built for the first of them.
type shaderKey struct {
	id        uint64
	start     int
	end       int
	colors    int
	highlight int
}

func hashShaderKey(k shaderKey) uint64 {
	return cache.HashValues([]int64{
		int64(k.id), int64(k.start), int64(k.end), int64(k.colors), int64(k.highlight),
	})
}

// ShaderCache holds gradient brushes. It is safe for concurrent use, so
// several render trees may share one.
type ShaderCache struct {
	brushes *cache.ShardedCache[shaderKey, surface.Brush]
}

// NewShaderCache creates a cache holding about capacity brushes.
// If capacity <= 0, a default is used.
func NewShaderCache(capacity int) *ShaderCache {
	per := 0
	if capacity > 0 {
		per = max(1, capacity/cache.DefaultShardCount)
	}
	return &ShaderCache{brushes: cache.NewSharded[shaderKey, surface.Brush](per, hashShaderKey)}
}

// Stats returns the hit and miss counters of the cache.
func (c *ShaderCache) Stats() cache.Stats {
	return c.brushes.Stats()
}

// gradientPaint evaluates the gradient members of a gradient fill or stroke.
type gradientPaint struct {
	id        uint64
	radial    bool
	start     *animation.Value[geom.Point]
	end       *animation.Value[geom.Point]
	length    *animation.Value[float64]
	angle     *animation.Value[float64]
	colors    *animation.Value[animation.Gradient]
	opacity   *animation.Value[float64]
	shaders   *ShaderCache
	lastKey   shaderKey
	lastBrush surface.Brush
}

func newGradientPaint(g model.Gradient, shaders *ShaderCache) *gradientPaint {
	colors := g.Colors
	if colors == nil {
		colors = animation.Static(animation.Gradient{})
	}
	return &gradientPaint{
		id:      nextID(),
		radial:  g.Type == model.GradientRadial,
		start:   pointValue(g.Start, geom.Point{}),
		end:     pointValue(g.End, geom.Point{}),
		length:  floatValue(g.HighlightLength, 0),
		angle:   floatValue(g.HighlightAngle, 0),
		colors:  animation.NewGradient(colors),
		opacity: floatValue(g.Opacity, 100),
		shaders: shaders,
	}
}

func (g *gradientPaint) setFrame(frame float64) bool {
	a := g.start.SetFrame(frame)
	b := g.end.SetFrame(frame)
	c := g.length.SetFrame(frame)
	d := g.angle.SetFrame(frame)
	e := g.colors.SetFrame(frame)
	f := g.opacity.SetFrame(frame)
	return a || b || c || d || e || f
}

func (g *gradientPaint) opacityValue() float64 {
	return clamp01(g.opacity.Value() / 100)
}

func (g *gradientPaint) key() shaderKey {
	k := shaderKey{
		id:     g.id,
		start:  step(g.start),
		end:    step(g.end),
		colors: step(g.colors),
	}
	if g.radial {
		k.highlight = step(g.length)*(shaderSteps+1) + step(g.angle)
	}
	return k
}

// brush returns the cached brush for the current frame.
func (g *gradientPaint) brush() surface.Brush {
	k := g.key()
	if g.lastBrush != nil && k == g.lastKey {
		return g.lastBrush
	}
	b := g.shaders.brushes.GetOrCreate(k, g.build)
	g.lastKey, g.lastBrush = k, b
	return b
}

func (g *gradientPaint) build() surface.Brush {
	stops := gradientStops(g.colors.Value())
	start, end := g.start.Value(), g.end.Value()
	if !g.radial {
		return &surface.LinearGradient{Start: start, End: end, Stops: stops}
	}
	r := start.Distance(end)
	focal := start
	if hl := math.Max(-99, math.Min(99, g.length.Value())) / 100; hl != 0 && r > 0 {
		a := math.Atan2(end.Y-start.Y, end.X-start.X) + g.angle.Value()*math.Pi/180
		focal = start.Add(geom.Pt(math.Cos(a), math.Sin(a)).Mul(r * hl))
	}
	return &surface.RadialGradient{Center: start, Focal: focal, Radius: r, Stops: stops}
}

func gradientStops(g animation.Gradient) []surface.GradientStop {
	n := g.Len()
	stops := make([]surface.GradientStop, n)
	for i := range n {
		stops[i] = surface.GradientStop{Offset: g.Positions[i], Color: g.Colors[i].NRGBA(1)}
	}
	return stops
}

// step quantizes the progress of v through its keyframes.
func step[T any](v *animation.Value[T]) int {
	if !v.IsAnimated() {
		return 0
	}
	p := v.Property()
	first, last := p.FirstFrame(), p.LastFrame()
	if last <= first {
		return 0
	}
	t := clamp01((v.Frame() - first) / (last - first))
	return int(math.Round(t * shaderSteps))
}
