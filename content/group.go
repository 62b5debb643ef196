package content

import (
	"github.com/gogpu/gg-lottie/animation"
	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/model"
	"github.com/gogpu/gg-lottie/surface"
)

// Group is a built shape stack. The root group of a shape layer has no
// transform; nested groups carry their own.
//
// A Group holds per-render state and must not be shared between render
// trees.
type Group struct {
	name      string
	transform *animation.Transform
	nodes     []node   // bottom to top
	draws     []drawer // bottom to top
	exposed   int      // nodes[:exposed] are visible to enclosing paints
}

// New builds the render tree for items.
func New(items []model.ShapeItem, opts Options) *Group {
	if opts.Shaders == nil {
		opts.Shaders = NewShaderCache(0)
	}
	b := &builder{opts: opts}
	g := b.group("", nil, items, accumulator{})
	logging.Logger().Debug("lottie: shape stack built", "paths", b.paths, "paints", b.paints)
	return g
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// SetFrame evaluates every element at frame and reports whether anything
// changed.
func (g *Group) SetFrame(frame float64) bool {
	changed := false
	if g.transform != nil && g.transform.SetFrame(frame) {
		changed = true
	}
	if setFrames(g.nodes, frame) {
		changed = true
	}
	return changed
}

// Draw emits the group onto s. alpha multiplies every paint.
func (g *Group) Draw(s surface.Surface, alpha float64) {
	if g.transform != nil {
		alpha *= g.transform.Opacity()
	}
	if alpha <= 0 || len(g.draws) == 0 {
		return
	}
	s.Save()
	if g.transform != nil {
		s.Concat(g.transform.Matrix())
	}
	for _, d := range g.draws {
		d.draw(s, alpha)
	}
	s.Restore()
}

func (g *Group) draw(s surface.Surface, alpha float64) {
	g.Draw(s, alpha)
}

func (g *Group) setFrame(frame float64) bool {
	return g.SetFrame(frame)
}

// target is a consumer of geometry, a paint or a merge, together with the
// links from the group being walked up to the consumer's group.
type target struct {
	set   *sourceSet
	links []link
}

func (t target) with(l link) target {
	links := make([]link, len(t.links), len(t.links)+1)
	copy(links, t.links)
	return target{set: t.set, links: append(links, l)}
}

// accumulator holds what the reverse walk has collected so far.
type accumulator struct {
	targets []target
	trims   []*trimElement
}

func (a accumulator) descend(l link) accumulator {
	out := accumulator{trims: a.trims}
	for _, t := range a.targets {
		out.targets = append(out.targets, t.with(l))
	}
	return out
}

// fanOut returns the accumulator seen by the content of a repeater, with
// one target per copy.
func (a accumulator) fanOut(r *repeater) accumulator {
	out := accumulator{trims: a.trims}
	for i := range r.limit {
		l := copyLink{r: r, i: i}
		for _, t := range a.targets {
			out.targets = append(out.targets, t.with(l))
		}
	}
	return out
}

// register adds geo as a source of every accumulated target.
func (a *accumulator) register(geo geometry) {
	for _, t := range a.targets {
		t.set.add(source{geo: geo, links: t.links})
	}
}

type builder struct {
	opts   Options
	paths  int
	paints int
}

func (b *builder) group(name string, t *animation.Transform, items []model.ShapeItem, acc accumulator) *Group {
	g := &Group{name: name, transform: t, exposed: -1}
	for i := len(items) - 1; i >= 0; i-- {
		switch it := items[i].(type) {
		case *model.Fill:
			b.addPaint(g, &acc, newFill(it))
		case *model.Stroke:
			b.addPaint(g, &acc, newStroke(it))
		case *model.GradientFill:
			b.addPaint(g, &acc, &gradientFill{
				gradient: newGradientPaint(it.Gradient, b.opts.Shaders),
				rule:     it.Rule,
			})
		case *model.GradientStroke:
			b.addPaint(g, &acc, &gradientStroke{
				paint:        strokePaint(),
				strokeParams: newStrokeParams(it.StrokeStyle),
				gradient:     newGradientPaint(it.Gradient, b.opts.Shaders),
			})
		case *model.Trim:
			tr := newTrim(it)
			g.nodes = append(g.nodes, tr)
			acc.trims = append(acc.trims[:len(acc.trims):len(acc.trims)], tr)
		case *model.Merge:
			m := newMerge(it, b.opts.DisableMerge)
			g.nodes = append(g.nodes, m)
			acc.register(m)
			if g.exposed < 0 {
				g.exposed = len(g.nodes)
			}
			// Items above the merge feed it and no longer reach the
			// paints below it.
			acc = accumulator{trims: acc.trims, targets: []target{{set: &m.inputs}}}
		case *model.Group:
			child := b.group(it.Name, animation.NewTransform(it.Transform), it.Items, accumulator{trims: acc.trims})
			g.nodes = append(g.nodes, child)
			g.draws = append(g.draws, child)
			seed(child, acc.descend(groupLink{child.transform}))
		case *model.Repeater:
			r := newRepeater(it)
			r.content = b.group(it.Name, nil, items[:i], accumulator{trims: acc.trims})
			seed(r.content, acc.fanOut(r))
			g.nodes = append(g.nodes, r)
			g.draws = append(g.draws, r)
			i = 0
		default:
			gen := newGenerator(it)
			if gen == nil {
				continue
			}
			e := newPathElement(gen, acc.trims)
			b.paths++
			g.nodes = append(g.nodes, e)
			acc.register(e)
		}
	}
	if g.exposed < 0 {
		g.exposed = len(g.nodes)
	}
	return g
}

func (b *builder) addPaint(g *Group, acc *accumulator, p painter) {
	b.paints++
	g.nodes = append(g.nodes, p)
	g.draws = append(g.draws, p)
	acc.targets = append(acc.targets, target{set: p.set()})
}

// seed registers the geometry a built group exposes with the targets in
// acc. Nodes are visited bottom up, the order the walk itself uses.
func seed(g *Group, acc accumulator) {
	for _, n := range g.nodes[:g.exposed] {
		switch n := n.(type) {
		case *pathElement, *mergeElement:
			acc.register(n.(geometry))
		case *Group:
			seed(n, acc.descend(groupLink{n.transform}))
		case *repeater:
			seed(n.content, acc.fanOut(n))
		}
	}
}
