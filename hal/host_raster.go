package hal

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"git.sr.ht/~sbinet/gg"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"tinygo.org/x/tinyfont"

	"dataviz/viz/geom"
)

const (
	overlayLineHeight = 8
	overlayMargin     = 4
)

var overlayColor = geom.RGB(0xee, 0xee, 0xee)

// rasterize paints one frame into a new RGBA image. Triangles are filled,
// line pairs stroked one pixel wide, and the overlay drawn with tinyfont.
func rasterize(vp geom.Viewport, width, height int, bg geom.Color, meshes []geom.Mesh, overlay []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// UseImage would draw into a copy; the context must wrap img itself.
	c := vgimg.NewWith(vgimg.UseImageWithContext(img, gg.NewContextForRGBA(img)), vgimg.UseDPI(72))

	// vg canvases are y-up in points; at 72 dpi one point is one pixel.
	pt := func(p geom.Vec2) vg.Point {
		x, y := vp.ToScreen(p, width, height)
		return vg.Point{X: vg.Length(x), Y: vg.Length(float64(height) - y)}
	}

	var bgPath vg.Path
	bgPath.Move(vg.Point{})
	bgPath.Line(vg.Point{X: vg.Length(width)})
	bgPath.Line(vg.Point{X: vg.Length(width), Y: vg.Length(height)})
	bgPath.Line(vg.Point{Y: vg.Length(height)})
	bgPath.Close()
	c.SetColor(bg.NRGBA())
	c.Fill(bgPath)

	c.SetLineWidth(1)
	for _, m := range meshes {
		vs := m.Vertices
		switch m.Primitive {
		case geom.Lines:
			for i := 0; i+1 < len(vs); i += 2 {
				var p vg.Path
				p.Move(pt(vs[i].Pos))
				p.Line(pt(vs[i+1].Pos))
				c.SetColor(vs[i].Color.NRGBA())
				c.Stroke(p)
			}
		case geom.Triangles:
			for i := 0; i+2 < len(vs); i += 3 {
				var p vg.Path
				p.Move(pt(vs[i].Pos))
				p.Line(pt(vs[i+1].Pos))
				p.Line(pt(vs[i+2].Pos))
				p.Close()
				c.SetColor(vs[i].Color.NRGBA())
				c.Fill(p)
			}
		}
	}

	d := imageDisplay{img: img}
	for i, line := range overlay {
		y := int16(overlayMargin + (i+1)*overlayLineHeight)
		tinyfont.WriteLine(d, &tinyfont.TomThumb, overlayMargin, y, line, overlayColor.RGBA())
	}
	return img
}

// writeSnapshot encodes the display's current frame as PNG.
func writeSnapshot(w io.Writer, d *hostDisplay, bg geom.Color) error {
	width, height := d.view.Size()
	img := rasterize(d.Viewport(), width, height, bg, d.frame(), d.overlay)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
