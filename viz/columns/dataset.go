package columns

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Dataset owns the parsed columns of one source.
//
// A Dataset is immutable once Load returns and may be shared read-only.
type Dataset struct {
	headers []string
	owners  []string // owning column per field position; "" = ignored position
	data    map[string][]float64
	rows    int
	diags   []Diagnostic
}

func newDataset() *Dataset {
	return &Dataset{data: make(map[string][]float64)}
}

// Headers returns the column names in header-row order.
func (d *Dataset) Headers() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.headers...)
}

// Column returns the samples of the named column. Unknown names yield an
// empty column, not an error: callers treat "no such column" and "column
// with no parseable rows" the same way.
//
// The returned slice is shared with the dataset and must not be modified.
func (d *Dataset) Column(name string) []float64 {
	if d == nil {
		return nil
	}
	return d.data[name]
}

// Has reports whether name is a header of the dataset.
func (d *Dataset) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.data[name]
	return ok
}

// Len returns the number of samples in the named column.
func (d *Dataset) Len(name string) int { return len(d.Column(name)) }

// Rows returns the number of data rows read, whether or not their fields parsed.
func (d *Dataset) Rows() int {
	if d == nil {
		return 0
	}
	return d.rows
}

// Diagnostics returns the non-fatal problems met while parsing.
func (d *Dataset) Diagnostics() []Diagnostic {
	if d == nil {
		return nil
	}
	return append([]Diagnostic(nil), d.diags...)
}

// Empty reports whether the dataset has no headers.
func (d *Dataset) Empty() bool { return d == nil || len(d.headers) == 0 }

// Print writes the dataset as a tab-separated table. Short columns leave
// blank cells at the bottom.
func (d *Dataset) Print(w io.Writer) error {
	if d.Empty() {
		return nil
	}
	if _, err := fmt.Fprintln(w, strings.Join(d.headers, "\t")); err != nil {
		return err
	}
	n := 0
	for _, h := range d.headers {
		n = max(n, len(d.data[h]))
	}
	var b strings.Builder
	for row := 0; row < n; row++ {
		b.Reset()
		for i, h := range d.headers {
			if i > 0 {
				b.WriteByte('\t')
			}
			if col := d.data[h]; row < len(col) {
				b.WriteString(strconv.FormatFloat(col[row], 'g', -1, 64))
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Summary describes one column.
type Summary struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summary computes simple statistics for the named column. ok is false for
// unknown or empty columns.
func (d *Dataset) Summary(name string) (s Summary, ok bool) {
	col := d.Column(name)
	if len(col) == 0 {
		return Summary{Name: name}, false
	}
	s = Summary{
		Name:  name,
		Count: len(col),
		Min:   floats.Min(col),
		Max:   floats.Max(col),
	}
	if len(col) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(col, nil)
	} else {
		s.Mean = col[0]
	}
	return s, true
}

// Bounds returns the smallest and largest sample across the named columns.
// ok is false when none of them holds a sample.
func (d *Dataset) Bounds(names ...string) (lo, hi float64, ok bool) {
	for _, name := range names {
		col := d.Column(name)
		if len(col) == 0 {
			continue
		}
		cmin, cmax := floats.Min(col), floats.Max(col)
		if !ok {
			lo, hi, ok = cmin, cmax, true
			continue
		}
		lo = min(lo, cmin)
		hi = max(hi, cmax)
	}
	return lo, hi, ok
}
