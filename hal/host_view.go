package hal

import (
	"math"

	"dataviz/viz/geom"
)

const (
	minZoom = 1.0 / 64
	maxZoom = 64
)

// View is the host's camera: a centre, a zoom factor and the pixel size of
// the surface. The visible height is viewHeight/zoom world units, the width
// follows the aspect ratio, and y grows upwards.
type View struct {
	center     geom.Vec2
	zoom       float64
	width      int
	height     int
	viewHeight float64
}

func NewView(width, height int, viewHeight float64) *View {
	return &View{zoom: 1, width: width, height: height, viewHeight: viewHeight}
}

func (v *View) Size() (width, height int) { return v.width, v.height }
func (v *View) Zoom() float64             { return v.zoom }

// Resize reports whether the pixel size changed.
func (v *View) Resize(width, height int) bool {
	if width <= 0 || height <= 0 || (width == v.width && height == v.height) {
		return false
	}
	v.width, v.height = width, height
	return true
}

// Pan moves the view by a pixel offset; dragging right moves the world right.
func (v *View) Pan(dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	vp := v.Viewport()
	s := vp.Size()
	v.center.X -= dx / float64(v.width) * s.X
	v.center.Y -= dy / float64(v.height) * s.Y
	return true
}

// ZoomBy multiplies the zoom factor, clamped to a sane range.
func (v *View) ZoomBy(factor float64) bool {
	if !(factor > 0) || factor == 1 {
		return false
	}
	z := math.Min(math.Max(v.zoom*factor, minZoom), maxZoom)
	if z == v.zoom {
		return false
	}
	v.zoom = z
	return true
}

// Reset recentres the view at the origin with no zoom.
func (v *View) Reset() bool {
	if v.center == (geom.Vec2{}) && v.zoom == 1 {
		return false
	}
	v.center = geom.Vec2{}
	v.zoom = 1
	return true
}

func (v *View) Viewport() geom.Viewport {
	h := v.viewHeight / v.zoom
	aspect := 1.0
	if v.height > 0 {
		aspect = float64(v.width) / float64(v.height)
	}
	return geom.FromCenterSize(v.center, geom.V2(h*aspect, -h))
}
