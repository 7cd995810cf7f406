package trace

import (
	"math"
	"testing"

	"dataviz/viz/geom"
)

func TestDisc(t *testing.T) {
	red := geom.RGB(255, 0, 0)
	c := geom.V2(10, -5)
	vs := Disc(c, 4, 16, red)
	if len(vs) != 16*3 {
		t.Fatalf("len(Disc) = %d, want %d", len(vs), 16*3)
	}
	for i, v := range vs {
		if v.Color != red {
			t.Fatalf("vertex %d colour = %v", i, v.Color)
		}
		d := v.Pos.Sub(c).Len()
		if i%3 == 0 {
			if d != 0 {
				t.Fatalf("vertex %d is not the centre: %v", i, v.Pos)
			}
			continue
		}
		if math.Abs(d-4) > 1e-9 {
			t.Fatalf("rim vertex %d at distance %v, want 4", i, d)
		}
	}
}

func TestDiscMinimumSegments(t *testing.T) {
	if n := len(Disc(geom.Vec2{}, 1, 0, geom.Color{})); n != 9 {
		t.Fatalf("len(Disc) = %d, want 9", n)
	}
	dst := make([]geom.Vertex, 2)
	if n := len(AppendDisc(dst, geom.Vec2{}, 1, 3, geom.Color{})); n != 11 {
		t.Fatalf("len(AppendDisc) = %d, want 11", n)
	}
}
