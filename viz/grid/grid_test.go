package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dataviz/viz/geom"
)

func newGrid(t *testing.T, cfg Config) *Grid {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func snapshot(g *Grid) [3][]geom.Vertex {
	cp := func(v []geom.Vertex) []geom.Vertex { return append([]geom.Vertex(nil), v...) }
	return [3][]geom.Vertex{cp(g.Secondary()), cp(g.Primary()), cp(g.Axes())}
}

func TestUpdateCachesUntilViewportChanges(t *testing.T) {
	g := newGrid(t, DefaultConfig())
	vp := geom.FromCenterSize(geom.V2(0, 0), geom.V2(800, -600))

	if !g.Update(vp) {
		t.Fatalf("first Update() = false, want rebuild")
	}
	if g.Update(vp) {
		t.Fatalf("Update(same) = true, want cached")
	}
	moved := geom.FromCenterSize(geom.V2(5, 0), geom.V2(800, -600))
	if !g.Update(moved) {
		t.Fatalf("Update(moved centre) = false, want rebuild")
	}
	resized := geom.FromCenterSize(geom.V2(5, 0), geom.V2(820, -600))
	if !g.Update(resized) {
		t.Fatalf("Update(resized) = false, want rebuild")
	}
	g.Invalidate()
	if !g.Update(resized) {
		t.Fatalf("Update after Invalidate() = false, want rebuild")
	}
	if g.Snapshot() != resized {
		t.Fatalf("Snapshot() = %+v, want %+v", g.Snapshot(), resized)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	g := newGrid(t, DefaultConfig())
	vp := geom.FromCenterSize(geom.V2(13.5, -7.25), geom.V2(640, -480))

	g.Update(vp)
	first := snapshot(g)
	g.Invalidate()
	g.Update(vp)
	if diff := cmp.Diff(first, snapshot(g)); diff != "" {
		t.Fatalf("rebuild with same viewport differs (-first +second):\n%s", diff)
	}

	g.Update(geom.FromCenterSize(geom.V2(250, 90), geom.V2(640, -480)))
	g.Update(vp)
	if diff := cmp.Diff(first, snapshot(g)); diff != "" {
		t.Fatalf("moving the centre and back differs (-first +second):\n%s", diff)
	}
}

func TestLinesAreStepMultiplesAndDisjoint(t *testing.T) {
	cfg := DefaultConfig()
	g := newGrid(t, cfg)
	g.Update(geom.FromCenterSize(geom.V2(31, -17), geom.V2(900, -700)))

	type key struct {
		vertical bool
		index    int64
	}
	seen := make(map[key]Class)
	check := func(buf []geom.Vertex, class Class) {
		if len(buf)%2 != 0 {
			t.Fatalf("class %d buffer has odd vertex count %d", class, len(buf))
		}
		for i := 0; i < len(buf); i += 2 {
			a, b := buf[i].Pos, buf[i+1].Pos
			vertical := a.X == b.X
			c := a.Y
			if vertical {
				c = a.X
			}
			idx := c / cfg.SecondaryStep
			if idx != math.Trunc(idx) {
				t.Fatalf("line at %v is not a multiple of %v", c, cfg.SecondaryStep)
			}
			k := key{vertical, int64(idx)}
			if prev, dup := seen[k]; dup {
				t.Fatalf("line %+v present in classes %d and %d", k, prev, class)
			}
			seen[k] = class
			if got := Classify(k.index, cfg.PrimaryFactor); got != class {
				t.Fatalf("line %+v in buffer %d, Classify() = %d", k, class, got)
			}
		}
	}
	check(g.Secondary(), Secondary)
	check(g.Primary(), Primary)
	check(g.Axes(), Axis)

	if len(g.Axes()) != 4 {
		t.Fatalf("Axes() has %d vertices, want 4 (both axes visible)", len(g.Axes()))
	}
}

func TestLinesSpanViewportAfterPan(t *testing.T) {
	g := newGrid(t, DefaultConfig())
	vp := geom.FromCenterSize(geom.V2(1000, 500), geom.V2(400, -300))
	g.Update(vp)
	n := vp.Normalized()

	minX, maxX := math.Inf(1), math.Inf(-1)
	for i := 0; i < len(g.Primary()); i += 2 {
		a, b := g.Primary()[i].Pos, g.Primary()[i+1].Pos
		if a.X == b.X {
			if a.Y != n.Top || b.Y != n.Bottom {
				t.Fatalf("vertical line spans [%v, %v], want [%v, %v]", a.Y, b.Y, n.Top, n.Bottom)
			}
			minX = min(minX, a.X)
			maxX = max(maxX, a.X)
		}
	}
	if minX > n.Left || maxX < n.Right {
		t.Fatalf("vertical primaries cover [%v, %v], viewport [%v, %v]", minX, maxX, n.Left, n.Right)
	}
	if len(g.Axes()) != 0 {
		t.Fatalf("Axes() = %d vertices, want none when origin is off-screen", len(g.Axes()))
	}
}

func TestInvertedViewportMatchesNormalized(t *testing.T) {
	inverted := geom.FromCenterSize(geom.V2(0, 0), geom.V2(400, -300))
	upright := inverted.Normalized()

	a := newGrid(t, DefaultConfig())
	a.Update(inverted)
	b := newGrid(t, DefaultConfig())
	b.Update(upright)

	if len(a.Secondary()) == 0 {
		t.Fatalf("inverted viewport produced no secondary lines")
	}
	if diff := cmp.Diff(snapshot(b), snapshot(a)); diff != "" {
		t.Fatalf("inverted viewport differs from normalized (-normalized +inverted):\n%s", diff)
	}
}

func TestIndexRange(t *testing.T) {
	first, last := IndexRange(-45, 45, 20)
	if first != -3 || last != 3 {
		t.Fatalf("IndexRange(-45, 45, 20) = (%d, %d), want (-3, 3)", first, last)
	}
	first, last = IndexRange(40, 60, 20)
	if first != 2 || last != 3 {
		t.Fatalf("IndexRange(40, 60, 20) = (%d, %d), want (2, 3)", first, last)
	}
}

func TestMaxLinesDropsSecondaryFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLinesPerAxis = 50
	g := newGrid(t, cfg)
	// 2000 world units / 20 = 100 lines per axis, above the limit.
	g.Update(geom.FromCenterSize(geom.V2(0, 0), geom.V2(2000, -2000)))

	if n := len(g.Secondary()); n != 0 {
		t.Fatalf("Secondary() = %d vertices, want 0 when over the limit", n)
	}
	if n := len(g.Primary()); n == 0 {
		t.Fatalf("Primary() empty, want primaries kept")
	}
	if n := len(g.Axes()); n != 4 {
		t.Fatalf("Axes() = %d vertices, want 4", n)
	}
	for i := 0; i < len(g.Primary()); i += 2 {
		p := g.Primary()[i].Pos
		c := p.X
		if g.Primary()[i+1].Pos.X != p.X {
			c = p.Y
		}
		if math.Mod(c, 100) != 0 {
			t.Fatalf("primary at %v is not a multiple of 100", c)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SecondaryStep = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New(step=0) err = %v, want ErrInvalidConfig", err)
	}
	cfg = DefaultConfig()
	cfg.PrimaryFactor = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New(factor=0) err = %v, want ErrInvalidConfig", err)
	}
}

func TestEmptyViewportBuildsNothing(t *testing.T) {
	g := newGrid(t, DefaultConfig())
	g.Update(geom.Viewport{})
	if len(g.Secondary())+len(g.Primary())+len(g.Axes()) != 0 {
		t.Fatalf("empty viewport produced geometry")
	}
}
