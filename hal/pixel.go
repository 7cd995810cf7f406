package hal

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// imageDisplay exposes an RGBA image as a tinygo display so tinyfont can
// draw into it.
type imageDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = imageDisplay{}

func (d imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel blends a premultiplied colour over the pixel.
func (d imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(d.img.Bounds()) {
		return
	}
	if c.A == 0xFF {
		d.img.SetRGBA(p.X, p.Y, c)
		return
	}
	d.img.SetRGBA(p.X, p.Y, blend(d.img.RGBAAt(p.X, p.Y), c))
}

func (d imageDisplay) Display() error { return nil }

// blend composites premultiplied src over dst.
func blend(dst, src color.RGBA) color.RGBA {
	k := uint32(0xFF - src.A)
	ch := func(d, s uint8) uint8 { return uint8(uint32(s) + uint32(d)*k/0xFF) }
	return color.RGBA{R: ch(dst.R, src.R), G: ch(dst.G, src.G), B: ch(dst.B, src.B), A: ch(dst.A, src.A)}
}
