package hal

import "time"

// hostTime measures wall-clock deltas between frames.
type hostTime struct {
	now  func() time.Time
	last time.Time
}

func newHostTime(now func() time.Time) *hostTime {
	if now == nil {
		now = time.Now
	}
	return &hostTime{now: now}
}

func (t *hostTime) Delta() float64 {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	d := now.Sub(t.last)
	t.last = now
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// fixedTime returns the same step every frame; the headless runner uses it so
// runs are reproducible.
type fixedTime float64

func (f fixedTime) Delta() float64 { return float64(f) }
