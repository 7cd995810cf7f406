//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dataviz/internal/buildinfo"
	"dataviz/viz/geom"
)

// maxBatchVertices keeps each DrawTriangles call within 16-bit indices.
const maxBatchVertices = 65535 / 3 * 3

// RunWindow opens a resizable desktop window and drives step once per tick.
// It blocks until the window closes or step fails.
func RunWindow(cfg HostConfig, newApp func(HAL) (func() error, error)) error {
	cfg = cfg.withDefaults()
	h := newHostHAL(cfg, newHostTime(nil))
	step, err := newApp(h)
	if err != nil {
		return err
	}

	title := cfg.Title
	if title == "" {
		title = "Data Visualizer"
	}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(&hostGame{h: h, step: step, bg: cfg.Background})
}

type hostGame struct {
	h     *hostHAL
	step  func() error
	bg    geom.Color
	input hostInput
	white *ebiten.Image

	verts   []ebiten.Vertex
	indices []uint16
}

func (g *hostGame) Update() error {
	d := g.h.display
	if g.input.poll(d.view) {
		d.markResized()
	}
	d.beginFrame()
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	screen.Fill(g.bg.NRGBA())

	d := g.h.display
	vp := d.Viewport()
	w, h := d.view.Size()
	for _, m := range d.frame() {
		switch m.Primitive {
		case geom.Lines:
			g.drawLines(screen, vp, w, h, m.Vertices)
		case geom.Triangles:
			g.drawTriangles(screen, vp, w, h, m.Vertices)
		}
	}
	if len(d.overlay) > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Join(d.overlay, "\n"), 8, 8)
	}
}

func (g *hostGame) drawLines(dst *ebiten.Image, vp geom.Viewport, w, h int, vs []geom.Vertex) {
	for i := 0; i+1 < len(vs); i += 2 {
		x0, y0 := vp.ToScreen(vs[i].Pos, w, h)
		x1, y1 := vp.ToScreen(vs[i+1].Pos, w, h)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, vs[i].Color.NRGBA(), false)
	}
}

func (g *hostGame) drawTriangles(dst *ebiten.Image, vp geom.Viewport, w, h int, vs []geom.Vertex) {
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for len(vs) >= 3 {
		n := min(len(vs)/3*3, maxBatchVertices)
		g.verts = g.verts[:0]
		g.indices = g.indices[:0]
		for i, v := range vs[:n] {
			x, y := vp.ToScreen(v.Pos, w, h)
			r, gg, b, a := v.Color.Floats()
			g.verts = append(g.verts, ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gg, ColorB: b, ColorA: a,
			})
			g.indices = append(g.indices, uint16(i))
		}
		dst.DrawTriangles(g.verts, g.indices, g.white, op)
		vs = vs[n:]
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.h.display.view.Resize(outsideWidth, outsideHeight) {
		g.h.display.markResized()
	}
	return outsideWidth, outsideHeight
}
