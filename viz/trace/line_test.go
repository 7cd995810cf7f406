package trace

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"dataviz/viz/geom"
)

func TestSetDataVertexCount(t *testing.T) {
	l := New()
	for n := 0; n < 6; n++ {
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
			ys[i] = float64(i * i)
		}
		l.SetData(xs, ys, 1, 1)
		want := 0
		if n >= 2 {
			want = 6 * (n - 1)
		}
		if got := l.VertexCount(); got != want {
			t.Fatalf("SetData(%d points) VertexCount() = %d, want %d", n, got, want)
		}
	}
}

func TestSetDataMismatchedLengthsClears(t *testing.T) {
	l := New()
	l.SetData([]float64{0, 1, 2}, []float64{0, 1, 2}, 1, 1)
	l.SetData([]float64{0, 1, 2}, []float64{0, 1}, 1, 1)
	if got := l.VertexCount(); got != 0 {
		t.Fatalf("VertexCount() = %d after mismatched SetData, want 0", got)
	}
}

func TestSegmentQuadGeometry(t *testing.T) {
	l := New(WithThickness(2))
	l.SetData([]float64{0, 1}, []float64{0, 0}, 10, 10)

	got := make([]geom.Vec2, 0, 6)
	for _, v := range l.Vertices() {
		got = append(got, v.Pos)
	}
	// Direction +x, perpendicular +y, half thickness 1.
	want := []geom.Vec2{
		{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 10, Y: 1},
		{X: 0, Y: -1}, {X: 10, Y: -1}, {X: 10, Y: 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("quad mismatch (-want +got):\n%s", diff)
	}
}

func TestDegenerateSegmentCollapsesToPoint(t *testing.T) {
	l := New(WithThickness(3))
	l.SetData([]float64{2, 2}, []float64{5, 5}, 1, 1)
	if l.VertexCount() != 6 {
		t.Fatalf("VertexCount() = %d, want 6", l.VertexCount())
	}
	for i, v := range l.Vertices() {
		if v.Pos != geom.V2(2, 5) || math.IsNaN(v.Pos.X) {
			t.Fatalf("vertex %d = %+v, want collapsed to (2, 5)", i, v.Pos)
		}
	}
}

func TestAppendPointIncremental(t *testing.T) {
	l := New()
	l.AppendPoint(0, 0, 1, 1)
	if l.VertexCount() != 0 {
		t.Fatalf("first AppendPoint VertexCount() = %d, want 0", l.VertexCount())
	}
	l.AppendPoint(1, 0, 1, 1)
	if l.VertexCount() != 6 {
		t.Fatalf("second AppendPoint VertexCount() = %d, want 6", l.VertexCount())
	}
	before := append([]geom.Vertex(nil), l.Vertices()...)
	l.AppendPoint(1, 1, 1, 1)
	if l.VertexCount() != 12 {
		t.Fatalf("third AppendPoint VertexCount() = %d, want 12", l.VertexCount())
	}
	if diff := cmp.Diff(before, l.Vertices()[:6]); diff != "" {
		t.Fatalf("AppendPoint modified existing vertices (-before +after):\n%s", diff)
	}
	// The new segment starts where the previous one ended.
	if p := l.Vertices()[6].Pos; math.Abs(p.Y) > 1e-12 || math.Abs(p.X-0.5) > 1e-12 {
		t.Fatalf("third segment first vertex = %+v, want (0.5, 0)", p)
	}
}

func TestAppendPointContinuesSetData(t *testing.T) {
	l := New()
	l.SetData([]float64{0, 1}, []float64{0, 0}, 2, 2)
	l.AppendPoint(1, 1, 2, 2)
	if l.VertexCount() != 12 {
		t.Fatalf("VertexCount() = %d, want 12", l.VertexCount())
	}
}

func TestClearForgetsLastPoint(t *testing.T) {
	l := New()
	l.AppendPoint(0, 0, 1, 1)
	l.AppendPoint(1, 0, 1, 1)
	l.Clear()
	if l.VertexCount() != 0 {
		t.Fatalf("VertexCount() after Clear = %d, want 0", l.VertexCount())
	}
	l.AppendPoint(5, 5, 1, 1)
	if l.VertexCount() != 0 {
		t.Fatalf("AppendPoint after Clear built a segment from a stale point")
	}
}

func TestStyleChangesAreNotRetroactive(t *testing.T) {
	red, blue := geom.RGB(255, 0, 0), geom.RGB(0, 0, 255)
	l := New(WithColor(red), WithThickness(1))
	l.AppendPoint(0, 0, 1, 1)
	l.AppendPoint(1, 0, 1, 1)

	l.SetColor(blue)
	l.SetThickness(4)
	l.AppendPoint(2, 0, 1, 1)

	for i, v := range l.Vertices()[:6] {
		if v.Color != red || math.Abs(math.Abs(v.Pos.Y)-0.5) > 1e-12 {
			t.Fatalf("old vertex %d = %+v, want red at half-thickness 0.5", i, v)
		}
	}
	for i, v := range l.Vertices()[6:] {
		if v.Color != blue || math.Abs(math.Abs(v.Pos.Y)-2) > 1e-12 {
			t.Fatalf("new vertex %d = %+v, want blue at half-thickness 2", i, v)
		}
	}
}
