//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"dataviz/viz/geom"
)

// HostConfig sizes the host surface and its initial view.
type HostConfig struct {
	Title      string
	Width      int
	Height     int
	ViewHeight float64
	Background geom.Color
	TPS        int
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if !(c.ViewHeight > 0) {
		c.ViewHeight = 600
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Background == (geom.Color{}) {
		c.Background = geom.RGB(33, 33, 33)
	}
	return c
}

type hostHAL struct {
	logger  *hostLogger
	display *hostDisplay
	t       Time
}

func newHostHAL(cfg HostConfig, t Time) *hostHAL {
	return &hostHAL{
		logger:  &hostLogger{w: os.Stderr},
		display: newHostDisplay(NewView(cfg.Width, cfg.Height, cfg.ViewHeight)),
		t:       t,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.display }
func (h *hostHAL) Time() Time       { return h.t }

// hostDisplay collects one frame of meshes for whichever backend presents
// them. It is owned by the frame loop goroutine.
type hostDisplay struct {
	view    *View
	resized bool
	meshes  []geom.Mesh
	overlay []string
}

func newHostDisplay(v *View) *hostDisplay {
	return &hostDisplay{view: v}
}

func (d *hostDisplay) Viewport() geom.Viewport { return d.view.Viewport() }

func (d *hostDisplay) Resized() bool {
	r := d.resized
	d.resized = false
	return r
}

func (d *hostDisplay) DrawMesh(m geom.Mesh) {
	if len(m.Vertices) == 0 {
		return
	}
	d.meshes = append(d.meshes, m)
}

func (d *hostDisplay) Overlay(lines ...string) {
	d.overlay = append(d.overlay[:0], lines...)
}

// markResized flags a viewport change for the next Resized call.
func (d *hostDisplay) markResized() { d.resized = true }

// beginFrame drops the previous frame's meshes.
func (d *hostDisplay) beginFrame() {
	clear(d.meshes)
	d.meshes = d.meshes[:0]
}

// frame returns the queued meshes ordered by layer.
func (d *hostDisplay) frame() []geom.Mesh {
	slices.SortStableFunc(d.meshes, func(a, b geom.Mesh) int { return int(a.Layer) - int(b.Layer) })
	return d.meshes
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
