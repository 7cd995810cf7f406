package trace

import (
	"math"

	"dataviz/viz/geom"
)

// Disc returns a filled circle as a triangle list with the given number of
// rim segments (at least 3).
func Disc(center geom.Vec2, radius float64, segments int, c geom.Color) []geom.Vertex {
	return AppendDisc(nil, center, radius, segments, c)
}

// AppendDisc is Disc appending to dst.
func AppendDisc(dst []geom.Vertex, center geom.Vec2, radius float64, segments int, c geom.Color) []geom.Vertex {
	if segments < 3 {
		segments = 3
	}
	rim := func(i int) geom.Vec2 {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return center.Add(geom.V2(math.Cos(a)*radius, math.Sin(a)*radius))
	}
	mid := geom.Vertex{Pos: center, Color: c}
	prev := rim(0)
	for i := 1; i <= segments; i++ {
		next := rim(i % segments)
		dst = append(dst, mid, geom.Vertex{Pos: prev, Color: c}, geom.Vertex{Pos: next, Color: c})
		prev = next
	}
	return dst
}
