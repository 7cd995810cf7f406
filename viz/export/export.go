// Package export renders a dataset's columns as a static chart: PNG, SVG or
// PDF through gonum/plot, or a self-contained interactive HTML page through
// go-echarts.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"dataviz/viz/columns"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNoData        = errors.New("no data to plot")
	ErrFormat        = errors.New("unsupported export format")
	ErrShapeMismatch = errors.New("x and y lengths differ")
)

// Series is one y column plotted against an x column. X and Y must have the
// same length: a shorter column has lost rows to parse failures, and pairing
// by index would mix samples from different rows.
type Series struct {
	Name string
	X, Y []float64
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	// Width and Height of raster and vector output.
	Width, Height vg.Length
}

// FromDataset builds a chart of each y column against the x column.
func FromDataset(ds *columns.Dataset, title, x string, ys ...string) (Chart, error) {
	c := Chart{
		Title:  title,
		XLabel: x,
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
	}
	if !ds.Has(x) {
		return c, fmt.Errorf("%w: %q", ErrUnknownColumn, x)
	}
	if len(ys) == 1 {
		c.YLabel = ys[0]
	}
	xs := ds.Column(x)
	for _, y := range ys {
		if !ds.Has(y) {
			return c, fmt.Errorf("%w: %q", ErrUnknownColumn, y)
		}
		s := Series{Name: y, X: xs, Y: ds.Column(y)}
		if err := s.validate(); err != nil {
			return c, err
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

func (s Series) validate() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: series %q has %d x and %d y samples", ErrShapeMismatch, s.Name, len(s.X), len(s.Y))
	}
	return nil
}

func (c Chart) validate() error {
	points := 0
	for _, s := range c.Series {
		if err := s.validate(); err != nil {
			return err
		}
		points += len(s.X)
	}
	if points == 0 {
		return ErrNoData
	}
	return nil
}

// Format reports the output format implied by a file name.
func Format(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "svg", "pdf", "html":
		return ext, nil
	case "htm":
		return "html", nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Write renders the chart in the given format.
func (c Chart) Write(w io.Writer, format string) error {
	switch format {
	case "html":
		return c.WriteHTML(w)
	case "png", "svg", "pdf":
		return c.WritePlot(w, format)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Save writes the chart to path, choosing the format from the extension.
func (c Chart) Save(path string) (err error) {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return c.Write(f, format)
}
