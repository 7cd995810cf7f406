package player

import (
	"errors"
	"math"
	"testing"
)

func newPlayer(t *testing.T, times []float64, cols ...[]float64) *Player {
	t.Helper()
	p, err := New(times, cols...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestLookupDuplicateTimestampTieBreak(t *testing.T) {
	p := newPlayer(t, []float64{0, 1, 3, 3, 7})
	lower, upper, frac := p.Lookup(3.0)
	// First element strictly greater than 3 is index 4, so lower is the last
	// of the duplicated samples.
	if lower != 3 || upper != 4 || frac != 0 {
		t.Fatalf("Lookup(3) = (%d, %d, %v), want (3, 4, 0)", lower, upper, frac)
	}
}

func TestLookupEdges(t *testing.T) {
	p := newPlayer(t, []float64{0, 1, 1, 2})
	cases := []struct {
		time         float64
		lower, upper int
		t            float64
	}{
		{-1, 0, 1, 0},
		{0, 0, 1, 0},
		{0.25, 0, 1, 0.25},
		{1, 2, 3, 0},
		{2, 3, 3, 0},
		{5, 3, 3, 0},
	}
	for _, c := range cases {
		lower, upper, frac := p.Lookup(c.time)
		if lower != c.lower || upper != c.upper || frac != c.t {
			t.Fatalf("Lookup(%v) = (%d, %d, %v), want (%d, %d, %v)", c.time, lower, upper, frac, c.lower, c.upper, c.t)
		}
	}
}

func TestAdvanceInterpolates(t *testing.T) {
	p := newPlayer(t, []float64{0, 1, 2}, []float64{0, 10, 20})
	s := p.Advance(1.5)
	if s.Lower != 1 || s.Upper != 2 || s.T != 0.5 {
		t.Fatalf("Advance(1.5) = lower %d upper %d t %v, want 1 2 0.5", s.Lower, s.Upper, s.T)
	}
	if len(s.Values) != 1 || s.Values[0] != 15 {
		t.Fatalf("Advance(1.5) Values = %v, want [15]", s.Values)
	}
	if s.Reset {
		t.Fatalf("Advance(1.5) Reset = true, want false")
	}
}

func TestAdvanceWrapsAndSignalsReset(t *testing.T) {
	p := newPlayer(t, []float64{0, 1, 2}, []float64{0, 10, 20})
	if s := p.Advance(1.5); s.Lower != 1 {
		t.Fatalf("Advance(1.5) Lower = %d, want 1", s.Lower)
	}
	s := p.Advance(1.0)
	if s.Elapsed != 2.5 {
		t.Fatalf("Elapsed = %v, want 2.5", s.Elapsed)
	}
	if math.Abs(s.Time-0.5) > 1e-12 {
		t.Fatalf("Time = %v, want 0.5", s.Time)
	}
	if s.Lower != 0 || s.Previous != 1 || !s.Reset {
		t.Fatalf("state = %+v, want lower 0 previous 1 reset", s)
	}
	if s.Wraps != 1 {
		t.Fatalf("Wraps = %d, want 1", s.Wraps)
	}
	if math.Abs(s.Values[0]-5) > 1e-9 {
		t.Fatalf("Values[0] = %v, want 5", s.Values[0])
	}

	s = p.Advance(0.25)
	if s.Reset {
		t.Fatalf("Reset fired again without moving backwards")
	}
}

func TestAdvanceOffsetTimeColumn(t *testing.T) {
	p := newPlayer(t, []float64{10, 12, 14}, []float64{1, 3, 5})
	s := p.Advance(3)
	if s.Time != 13 || s.Lower != 1 || s.Values[0] != 4 {
		t.Fatalf("state = %+v, want time 13 lower 1 value 4", s)
	}
}

func TestAdvanceIgnoresNegativeDelta(t *testing.T) {
	p := newPlayer(t, []float64{0, 1})
	p.Advance(0.5)
	if s := p.Advance(-1); s.Elapsed != 0.5 {
		t.Fatalf("Advance(-1) Elapsed = %v, want 0.5", s.Elapsed)
	}
}

func TestStateBeforeFirstAdvance(t *testing.T) {
	p := newPlayer(t, []float64{0, 1}, []float64{3, 4})
	s := p.State()
	if s.Elapsed != 0 || s.Lower != 0 || s.Values[0] != 3 {
		t.Fatalf("State() = %+v, want first sample", s)
	}
}

func TestNewRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name  string
		times []float64
		cols  [][]float64
	}{
		{"empty", nil, nil},
		{"single", []float64{1}, nil},
		{"decreasing", []float64{0, 2, 1}, nil},
		{"zero span", []float64{3, 3, 3}, nil},
		{"nan", []float64{0, math.NaN(), 2}, nil},
		{"misaligned", []float64{0, 1, 2}, [][]float64{{0, 1}}},
	}
	for _, c := range cases {
		if _, err := New(c.times, c.cols...); !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("New(%s) err = %v, want ErrShapeMismatch", c.name, err)
		}
	}
}
