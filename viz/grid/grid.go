// Package grid builds the coordinate grid drawn behind a plot.
//
// The grid always spans the visible viewport: line ranges are recomputed from
// the viewport every time it changes, so lines reach the edges after any pan
// or zoom. Geometry is cached and rebuilt wholesale only when the viewport
// differs from the last build or Invalidate was called.
package grid

import (
	"log/slog"
	"math"

	"dataviz/viz/geom"
)

// Class is the tier of a grid line.
type Class uint8

const (
	Secondary Class = iota
	Primary
	Axis
)

// Classify returns the tier of the line with index i for the given primary factor.
func Classify(i int64, primaryFactor int) Class {
	switch {
	case i == 0:
		return Axis
	case primaryFactor > 0 && i%int64(primaryFactor) == 0:
		return Primary
	}
	return Secondary
}

// Grid is an adaptive, cached grid mesh. It is not safe for concurrent use.
type Grid struct {
	cfg Config
	log *slog.Logger

	snap  geom.Viewport
	built bool
	dirty bool

	secondary []geom.Vertex
	primary   []geom.Vertex
	axes      []geom.Vertex
}

// Option configures a Grid.
type Option func(*Grid)

func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a grid that builds on its first Update.
func New(cfg Config, opts ...Option) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{cfg: cfg, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Grid) Config() Config { return g.cfg }

// SetConfig replaces the configuration and forces a rebuild.
func (g *Grid) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.dirty = true
	return nil
}

// Invalidate forces the next Update to rebuild.
func (g *Grid) Invalidate() { g.dirty = true }

// Snapshot returns the viewport the current buffers were built from.
func (g *Grid) Snapshot() geom.Viewport { return g.snap }

// Update rebuilds the mesh if vp differs from the last build or the grid was
// invalidated. It reports whether a rebuild happened.
func (g *Grid) Update(vp geom.Viewport) bool {
	if g.built && !g.dirty && vp == g.snap {
		return false
	}
	g.build(vp)
	g.snap = vp
	g.built = true
	g.dirty = false
	return true
}

// Secondary returns the secondary line list (vertex pairs).
func (g *Grid) Secondary() []geom.Vertex { return g.secondary }

// Primary returns the primary line list (vertex pairs).
func (g *Grid) Primary() []geom.Vertex { return g.primary }

// Axes returns the axis line list (vertex pairs).
func (g *Grid) Axes() []geom.Vertex { return g.axes }

// Meshes returns the three buffers in draw order.
func (g *Grid) Meshes() [3]geom.Mesh {
	return [3]geom.Mesh{
		{Layer: geom.LayerSecondaryGrid, Primitive: geom.Lines, Vertices: g.secondary},
		{Layer: geom.LayerPrimaryGrid, Primitive: geom.Lines, Vertices: g.primary},
		{Layer: geom.LayerAxes, Primitive: geom.Lines, Vertices: g.axes},
	}
}

// IndexRange returns the inclusive line index range covering [lo, hi].
func IndexRange(lo, hi, step float64) (first, last int64) {
	return int64(math.Floor(lo / step)), int64(math.Ceil(hi / step))
}

func (g *Grid) build(vp geom.Viewport) {
	g.secondary = g.secondary[:0]
	g.primary = g.primary[:0]
	g.axes = g.axes[:0]

	n := vp.Normalized()
	if n.Empty() || math.IsInf(n.Left, 0) || math.IsInf(n.Right, 0) || math.IsInf(n.Top, 0) || math.IsInf(n.Bottom, 0) {
		g.log.Debug("grid: empty viewport, nothing to build", "viewport", vp)
		return
	}

	step := g.cfg.SecondaryStep
	// Vertical lines (constant x) span the visible y range.
	g.axis(n.Left, n.Right, step, func(c float64) (geom.Vec2, geom.Vec2) {
		return geom.V2(c, n.Top), geom.V2(c, n.Bottom)
	}, g.cfg.AxisYColor)
	// Horizontal lines (constant y) span the visible x range.
	g.axis(n.Top, n.Bottom, step, func(c float64) (geom.Vec2, geom.Vec2) {
		return geom.V2(n.Left, c), geom.V2(n.Right, c)
	}, g.cfg.AxisXColor)

	g.log.Debug("grid: rebuilt",
		"secondary", len(g.secondary)/2,
		"primary", len(g.primary)/2,
		"axes", len(g.axes)/2)
}

func (g *Grid) axis(lo, hi, step float64, span func(c float64) (geom.Vec2, geom.Vec2), axisColor geom.Color) {
	first, last := IndexRange(lo, hi, step)
	factor := int64(g.cfg.PrimaryFactor)

	skipSecondary, skipPrimary := false, false
	if limit := int64(g.cfg.MaxLinesPerAxis); limit > 0 {
		count := last - first + 1
		skipSecondary = count > limit
		skipPrimary = count/factor > limit
	}

	emit := func(dst []geom.Vertex, i int64, c geom.Color) []geom.Vertex {
		a, b := span(float64(i) * step)
		return append(dst, geom.Vertex{Pos: a, Color: c}, geom.Vertex{Pos: b, Color: c})
	}

	if skipSecondary {
		if first <= 0 && last >= 0 {
			g.axes = emit(g.axes, 0, axisColor)
		}
		if skipPrimary {
			return
		}
		// Walk primary indices only.
		start := ceilMultiple(first, factor)
		for i := start; i <= last; i += factor {
			if i != 0 {
				g.primary = emit(g.primary, i, g.cfg.PrimaryColor)
			}
		}
		return
	}

	for i := first; i <= last; i++ {
		switch Classify(i, g.cfg.PrimaryFactor) {
		case Axis:
			g.axes = emit(g.axes, i, axisColor)
		case Primary:
			g.primary = emit(g.primary, i, g.cfg.PrimaryColor)
		default:
			g.secondary = emit(g.secondary, i, g.cfg.SecondaryColor)
		}
	}
}

// ceilMultiple returns the smallest multiple of m that is >= v.
func ceilMultiple(v, m int64) int64 {
	r := v % m
	if r == 0 {
		return v
	}
	if v < 0 {
		return v - r
	}
	return v + m - r
}
