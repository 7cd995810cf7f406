//go:build !tinygo && cgo

package hal

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	keyPanPixels = 8
	zoomStep     = 1.1
)

// hostInput turns keyboard and mouse state into view changes.
type hostInput struct {
	dragging     bool
	lastX, lastY int
}

// poll applies this tick's input to v and reports whether the view changed.
func (in *hostInput) poll(v *View) bool {
	changed := false

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += keyPanPixels
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= keyPanPixels
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.dragging = true
	case in.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		dx += float64(x - in.lastX)
		dy += float64(y - in.lastY)
	default:
		in.dragging = false
	}
	in.lastX, in.lastY = x, y
	changed = v.Pan(dx, dy) || changed

	zoom := 1.0
	if _, wy := ebiten.Wheel(); wy != 0 {
		zoom *= math.Pow(zoomStep, wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		zoom *= zoomStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		zoom /= zoomStep
	}
	changed = v.ZoomBy(zoom) || changed

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		changed = v.Reset() || changed
	}
	return changed
}
