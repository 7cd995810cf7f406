// Package app wires a loaded dataset to the grid, trace and player and runs
// them once per frame against a hal.HAL.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"dataviz/hal"
	"dataviz/viz/columns"
	"dataviz/viz/config"
	"dataviz/viz/geom"
	"dataviz/viz/grid"
	"dataviz/viz/player"
	"dataviz/viz/trace"
)

type viewer struct {
	display hal.Display
	clock   hal.Time
	log     *slog.Logger
	cfg     config.Config

	grid   *grid.Grid
	line   *trace.Line
	player *player.Player // nil in plot mode
	xs, ys []float64

	marker    []geom.Vertex
	overlay   []string
	lastWraps int
}

// New builds the per-frame step for cfg.Mode. Column shape problems in play
// mode are returned here, before the first frame.
func New(h hal.HAL, cfg config.Config, ds *columns.Dataset, log *slog.Logger) (func() error, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g, err := grid.New(cfg.GridConfig(), grid.WithLogger(log))
	if err != nil {
		return nil, err
	}
	v := &viewer{
		display: h.Display(),
		clock:   h.Time(),
		log:     log,
		cfg:     cfg,
		grid:    g,
		line: trace.New(
			trace.WithThickness(cfg.Trace.Thickness),
			trace.WithColor(geom.Color(cfg.Trace.Color)),
		),
	}

	needed := []string{cfg.XColumn(), cfg.YColumn()}
	if cfg.Mode == config.ModePlay {
		needed = append([]string{cfg.Player.TimeColumn}, cfg.Player.DataColumns...)
	}
	for _, name := range needed {
		if !ds.Has(name) {
			log.Warn("column not found", "column", name, "headers", ds.Headers())
		}
	}

	switch cfg.Mode {
	case config.ModePlot:
		v.xs, v.ys = ds.Column(cfg.XColumn()), ds.Column(cfg.YColumn())
		if len(v.xs) != len(v.ys) || len(v.xs) < 2 {
			log.Warn("nothing to plot", "x", cfg.XColumn(), "x_len", len(v.xs), "y", cfg.YColumn(), "y_len", len(v.ys))
		}
		v.rebuildTrace()
	case config.ModePlay:
		cols := make([][]float64, len(cfg.Player.DataColumns))
		for i, name := range cfg.Player.DataColumns {
			cols[i] = ds.Column(name)
		}
		p, err := player.New(ds.Column(cfg.Player.TimeColumn), cols...)
		if err != nil {
			return nil, fmt.Errorf("player over %q: %w", cfg.Player.TimeColumn, err)
		}
		v.player = p
		log.Info("playback ready", "span", p.Span(), "rows", ds.Len(cfg.Player.TimeColumn))
	default:
		return nil, fmt.Errorf("%w: mode %q", config.ErrInvalid, cfg.Mode)
	}

	return guard(h, v.step), nil
}

// step runs one frame: resize events, clock, mesh updates, then draw calls in
// layer order.
func (v *viewer) step() error {
	resized := v.display.Resized()
	if resized {
		v.grid.Invalidate()
		if v.player == nil {
			v.rebuildTrace()
		} else {
			v.line.Clear()
		}
	}

	if v.player != nil {
		v.advance(v.clock.Delta())
	}

	v.grid.Update(v.display.Viewport())

	for _, m := range v.grid.Meshes() {
		v.display.DrawMesh(m)
	}
	v.display.DrawMesh(v.line.Mesh())
	if len(v.marker) > 0 {
		v.display.DrawMesh(geom.Mesh{Layer: geom.LayerMarker, Primitive: geom.Triangles, Vertices: v.marker})
	}
	v.display.Overlay(v.overlayLines()...)
	return nil
}

func (v *viewer) rebuildTrace() {
	s := v.cfg.Trace.Scale
	v.line.SetData(v.xs, v.ys, s, s)
}

func (v *viewer) advance(dt float64) {
	st := v.player.Advance(dt)
	if st.Reset {
		v.line.Clear()
		v.log.Debug("trail reset", "time", st.Time, "wraps", st.Wraps)
	}
	v.lastWraps = st.Wraps

	s := v.cfg.Player.SimulationScale
	x, y := st.Values[0], st.Values[1]
	v.line.AppendPoint(x, y, s, s)

	m := v.cfg.Marker
	v.marker = trace.AppendDisc(v.marker[:0], geom.V2(x*s, y*s), m.Radius, m.Segments, geom.Color(m.Color))
}

func (v *viewer) overlayLines() []string {
	v.overlay = v.overlay[:0]
	if v.player == nil {
		v.overlay = append(v.overlay,
			fmt.Sprintf("%s vs %s", v.cfg.YColumn(), v.cfg.XColumn()),
			fmt.Sprintf("points: %d", min(len(v.xs), len(v.ys))),
		)
		return v.overlay
	}

	st := v.player.State()
	v.overlay = append(v.overlay, fmt.Sprintf("%s = %.3f  loop %d", v.cfg.Player.TimeColumn, st.Time, st.Wraps+1))
	var b strings.Builder
	for i, name := range v.cfg.Player.DataColumns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s = %.3f", name, st.Values[i])
	}
	v.overlay = append(v.overlay, b.String())
	return v.overlay
}
