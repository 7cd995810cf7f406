// Package hal is the only contact point between the visualizer core and the
// outside world: a line logger, a display that accepts meshes, and a clock.
package hal

import (
	"bytes"
	"io"
	"sync"

	"dataviz/viz/geom"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Display is the presentation surface for one frame.
type Display interface {
	// Viewport is the world rectangle currently visible.
	Viewport() geom.Viewport
	// Resized reports, once, that the viewport changed since the last call
	// because the surface was resized, panned or zoomed.
	Resized() bool
	// DrawMesh queues a mesh for this frame. Meshes are drawn by layer, then
	// in submission order.
	DrawMesh(m geom.Mesh)
	// Overlay replaces the text shown over the plot.
	Overlay(lines ...string)
}

// Time provides the real-time step between frames.
type Time interface {
	// Delta returns seconds elapsed since the previous call (0 on the first).
	Delta() float64
}

// HAL bundles the host collaborators handed to the application.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
}

// LogWriter adapts a Logger to io.Writer so slog handlers can write to it.
// Partial lines are buffered until their newline arrives.
func LogWriter(l Logger) io.Writer {
	return &lineWriter{l: l}
}

type lineWriter struct {
	mu  sync.Mutex
	l   Logger
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
