package geom

import "math"

// Viewport is the axis-aligned world rectangle currently visible.
//
// Top and Bottom are the world Y values shown at the top and bottom screen
// edges. A y-up view has Top > Bottom; Normalized returns the ordered form.
type Viewport struct {
	Left, Right, Top, Bottom float64
}

// FromCenterSize builds a viewport from a view centre and size. A negative
// size component flips that axis.
func FromCenterSize(center, size Vec2) Viewport {
	return Viewport{
		Left:   center.X - size.X/2,
		Right:  center.X + size.X/2,
		Top:    center.Y - size.Y/2,
		Bottom: center.Y + size.Y/2,
	}
}

func (v Viewport) Center() Vec2 {
	return Vec2{X: (v.Left + v.Right) / 2, Y: (v.Top + v.Bottom) / 2}
}

func (v Viewport) Size() Vec2 {
	return Vec2{X: v.Right - v.Left, Y: v.Bottom - v.Top}
}

// Normalized returns v with Left <= Right and Top <= Bottom.
func (v Viewport) Normalized() Viewport {
	if v.Left > v.Right {
		v.Left, v.Right = v.Right, v.Left
	}
	if v.Top > v.Bottom {
		v.Top, v.Bottom = v.Bottom, v.Top
	}
	return v
}

// Empty reports whether the viewport has no area or holds a NaN.
func (v Viewport) Empty() bool {
	s := v.Size()
	return s.X == 0 || s.Y == 0 || math.IsNaN(s.X) || math.IsNaN(s.Y)
}

// ToScreen maps a world point to pixel coordinates on a w x h target.
func (v Viewport) ToScreen(p Vec2, w, h int) (x, y float64) {
	s := v.Size()
	if s.X == 0 || s.Y == 0 {
		return 0, 0
	}
	return (p.X - v.Left) / s.X * float64(w), (p.Y - v.Top) / s.Y * float64(h)
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y float64, w, h int) Vec2 {
	if w == 0 || h == 0 {
		return v.Center()
	}
	s := v.Size()
	return Vec2{X: v.Left + x/float64(w)*s.X, Y: v.Top + y/float64(h)*s.Y}
}

// Scale returns pixels per world unit along X (always positive).
func (v Viewport) Scale(w int) float64 {
	s := math.Abs(v.Size().X)
	if s == 0 {
		return 1
	}
	return float64(w) / s
}
