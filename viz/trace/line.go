// Package trace turns polylines into triangle meshes of uniform thickness.
//
// Backends only draw hairlines natively, so every segment between two
// consecutive points becomes a quad of two triangles (6 vertices). Lines can
// be built in one go from two coordinate columns, or grown one point at a
// time during playback without touching earlier segments.
package trace

import (
	"dataviz/viz/geom"
)

// VerticesPerSegment is the vertex count of one segment quad.
const VerticesPerSegment = 6

// degenerateLen is the segment length below which a segment collapses to a point.
const degenerateLen = 1e-6

var defaultColor = geom.RGBA(225, 225, 225, 128)

// Line is a thick polyline mesh. It is not safe for concurrent use.
type Line struct {
	thickness float64
	color     geom.Color

	verts   []geom.Vertex
	last    geom.Vec2
	hasLast bool
}

// Option configures a Line.
type Option func(*Line)

func WithThickness(t float64) Option { return func(l *Line) { l.thickness = t } }
func WithColor(c geom.Color) Option  { return func(l *Line) { l.color = c } }

// New returns an empty line, 1 unit thick by default.
func New(opts ...Option) *Line {
	l := &Line{thickness: 1, color: defaultColor}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetThickness applies to segments generated from now on.
func (l *Line) SetThickness(t float64) { l.thickness = t }

// SetColor applies to segments generated from now on.
func (l *Line) SetColor(c geom.Color) { l.color = c }

func (l *Line) Thickness() float64 { return l.thickness }
func (l *Line) Color() geom.Color  { return l.color }

// Vertices returns the triangle list. The slice is owned by the line.
func (l *Line) Vertices() []geom.Vertex { return l.verts }

func (l *Line) VertexCount() int { return len(l.verts) }

// Mesh wraps the vertices as a trace draw call.
func (l *Line) Mesh() geom.Mesh {
	return geom.Mesh{Layer: geom.LayerTrace, Primitive: geom.Triangles, Vertices: l.verts}
}

// Clear drops all segments and the remembered last point.
func (l *Line) Clear() {
	l.verts = l.verts[:0]
	l.last = geom.Vec2{}
	l.hasLast = false
}

// SetData rebuilds the line from paired coordinates, each scaled by its axis
// factor. Mismatched lengths or fewer than two points leave the line empty.
func (l *Line) SetData(xs, ys []float64, scaleX, scaleY float64) {
	l.Clear()
	if len(xs) != len(ys) || len(xs) < 2 {
		return
	}
	n := len(xs) - 1
	if cap(l.verts) < n*VerticesPerSegment {
		l.verts = make([]geom.Vertex, 0, n*VerticesPerSegment)
	}
	prev := geom.V2(xs[0]*scaleX, ys[0]*scaleY)
	for i := 1; i < len(xs); i++ {
		p := geom.V2(xs[i]*scaleX, ys[i]*scaleY)
		l.verts = l.appendSegment(l.verts, prev, p)
		prev = p
	}
	l.last, l.hasLast = prev, true
}

// AppendPoint extends the line by one scaled point. The first point of an
// empty line is only remembered; each later point adds exactly one segment.
func (l *Line) AppendPoint(x, y, scaleX, scaleY float64) {
	p := geom.V2(x*scaleX, y*scaleY)
	if l.hasLast {
		l.verts = l.appendSegment(l.verts, l.last, p)
	}
	l.last, l.hasLast = p, true
}

func (l *Line) appendSegment(dst []geom.Vertex, p1, p2 geom.Vec2) []geom.Vertex {
	c := l.color
	dir := p2.Sub(p1)
	length := dir.Len()
	if length < degenerateLen {
		v := geom.Vertex{Pos: p1, Color: c}
		return append(dst, v, v, v, v, v, v)
	}
	off := dir.Mul(1 / length).Perp().Mul(l.thickness * 0.5)

	p1Up, p1Down := p1.Add(off), p1.Sub(off)
	p2Up, p2Down := p2.Add(off), p2.Sub(off)
	return append(dst,
		geom.Vertex{Pos: p1Up, Color: c},
		geom.Vertex{Pos: p1Down, Color: c},
		geom.Vertex{Pos: p2Up, Color: c},

		geom.Vertex{Pos: p1Down, Color: c},
		geom.Vertex{Pos: p2Down, Color: c},
		geom.Vertex{Pos: p2Up, Color: c},
	)
}
