// Package player maps a free-running virtual clock onto a sampled time
// column, interpolating paired data columns between the bracketing samples.
//
// The clock loops over the column's time span. Each Advance returns the
// interpolated sample and signals Reset when the active sample index moves
// backwards, which is when trails built from earlier samples must be cleared.
package player

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"dataviz/viz/geom"
)

// ErrShapeMismatch is returned when the columns cannot drive playback.
var ErrShapeMismatch = errors.New("shape mismatch")

// State is the result of one tick.
type State struct {
	Elapsed  float64   // virtual clock, seconds since start
	Time     float64   // position in the time column
	Lower    int       // sample index at or before Time
	Upper    int       // min(Lower+1, last index)
	Previous int       // Lower of the previous tick
	T        float64   // interpolation factor between Lower and Upper
	Values   []float64 // one interpolated value per data column
	Wraps    int       // completed loops
	Reset    bool      // Lower moved backwards this tick
}

// Player is not safe for concurrent use.
type Player struct {
	times   []float64
	columns [][]float64
	span    float64

	state State
}

// New validates the columns and returns a player at elapsed time zero.
//
// times must hold at least two finite, non-decreasing samples spanning a
// positive interval, and every data column must be index-aligned with it.
func New(times []float64, columns ...[]float64) (*Player, error) {
	if len(times) < 2 {
		return nil, fmt.Errorf("%w: time column has %d samples, need at least 2", ErrShapeMismatch, len(times))
	}
	for i, v := range times {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: time sample %d is %v", ErrShapeMismatch, i, v)
		}
		if i > 0 && v < times[i-1] {
			return nil, fmt.Errorf("%w: time column decreases at sample %d (%v < %v)", ErrShapeMismatch, i, v, times[i-1])
		}
	}
	span := times[len(times)-1] - times[0]
	if span <= 0 {
		return nil, fmt.Errorf("%w: time column spans %v", ErrShapeMismatch, span)
	}
	for k, col := range columns {
		if len(col) != len(times) {
			return nil, fmt.Errorf("%w: data column %d has %d samples, time column has %d", ErrShapeMismatch, k, len(col), len(times))
		}
	}

	p := &Player{times: times, columns: columns, span: span}
	p.state = p.sample(0, times[0])
	return p, nil
}

// Span returns the looped duration.
func (p *Player) Span() float64 { return p.span }

// State returns the latest tick without advancing.
func (p *Player) State() State { return p.state }

// Advance moves the virtual clock forward by dt seconds (negative deltas are
// ignored) and returns the new state.
func (p *Player) Advance(dt float64) State {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	elapsed := p.state.Elapsed + dt
	p.state = p.sample(elapsed, p.times[0]+math.Mod(elapsed, p.span))
	return p.state
}

func (p *Player) sample(elapsed, now float64) State {
	lower, upper, t := p.Lookup(now)
	prev := p.state.Lower
	s := State{
		Elapsed:  elapsed,
		Time:     now,
		Lower:    lower,
		Upper:    upper,
		Previous: prev,
		T:        t,
		Values:   make([]float64, len(p.columns)),
		Wraps:    int(elapsed / p.span),
		Reset:    lower < prev,
	}
	for k, col := range p.columns {
		s.Values[k] = geom.Lerp(col[lower], col[upper], t)
	}
	return s
}

// Lookup finds the samples bracketing time. lower is the last index whose
// time does not exceed it (0 when time precedes every sample).
func (p *Player) Lookup(time float64) (lower, upper int, t float64) {
	ts := p.times
	pos := sort.Search(len(ts), func(i int) bool { return ts[i] > time })
	lower = max(pos-1, 0)
	upper = min(lower+1, len(ts)-1)
	if ts[upper] > ts[lower] {
		t = geom.Clamp01((time - ts[lower]) / (ts[upper] - ts[lower]))
	}
	return lower, upper, t
}
