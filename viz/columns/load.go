package columns

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrSourceUnavailable is returned when the input cannot be opened or read.
// The accompanying Dataset is empty but usable.
var ErrSourceUnavailable = errors.New("source unavailable")

const maxLineBytes = 4 << 20

// Diagnostic reports one non-fatal parse problem.
type Diagnostic struct {
	Line     int    // 1-based line number in the source
	Position int    // 0-based field position
	Column   string // owning column, "" for header problems
	Token    string
	Err      error
}

func (d Diagnostic) Error() string {
	if d.Column == "" {
		return fmt.Sprintf("line %d: field %d: %v", d.Line, d.Position+1, d.Err)
	}
	return fmt.Sprintf("line %d: could not parse value %q for column %q", d.Line, d.Token, d.Column)
}

func (d Diagnostic) Unwrap() error { return d.Err }

var errDuplicateHeader = errors.New("duplicate header name")
var errEmptyHeader = errors.New("empty header name")

type options struct {
	log *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger routes parse diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadFile opens path and parses it with Load. When the file cannot be
// opened the failure is logged and an empty Dataset is returned together
// with an error wrapping ErrSourceUnavailable.
func LoadFile(path string, delim Delimiter, opts ...Option) (*Dataset, error) {
	o := buildOptions(opts)
	f, err := os.Open(path)
	if err != nil {
		o.log.Error("could not open data source", "path", path, "err", err)
		return newDataset(), fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()
	return Load(f, delim, opts...)
}

// Load parses r. Field parse failures never fail the load; a read error
// returns the rows parsed so far and an error wrapping ErrSourceUnavailable.
func Load(r io.Reader, delim Delimiter, opts ...Option) (*Dataset, error) {
	o := buildOptions(opts)
	ds := newDataset()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	header := true
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := delim.split(line)
		if header {
			ds.setHeaders(lineNo, fields, o.log)
			header = false
			continue
		}
		ds.addRow(lineNo, fields, o.log)
	}
	if err := sc.Err(); err != nil {
		o.log.Error("read failed", "line", lineNo, "err", err)
		return ds, fmt.Errorf("%w: line %d: %w", ErrSourceUnavailable, lineNo+1, err)
	}

	o.log.Debug("dataset loaded", "columns", len(ds.headers), "rows", ds.rows, "diagnostics", len(ds.diags))
	return ds, nil
}

func (d *Dataset) setHeaders(lineNo int, fields []string, log *slog.Logger) {
	d.owners = make([]string, len(fields))
	for i, name := range fields {
		var err error
		switch {
		case name == "":
			err = errEmptyHeader
		case d.Has(name):
			err = errDuplicateHeader
		}
		if err != nil {
			diag := Diagnostic{Line: lineNo, Position: i, Token: name, Err: err}
			d.diags = append(d.diags, diag)
			log.Warn("ignoring header field", "line", lineNo, "field", i+1, "name", name, "err", err)
			continue
		}
		d.owners[i] = name
		d.headers = append(d.headers, name)
		d.data[name] = nil
	}
}

func (d *Dataset) addRow(lineNo int, fields []string, log *slog.Logger) {
	d.rows++
	n := min(len(fields), len(d.owners))
	for i := 0; i < n; i++ {
		name := d.owners[i]
		if name == "" {
			continue
		}
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			diag := Diagnostic{Line: lineNo, Position: i, Column: name, Token: fields[i], Err: err}
			d.diags = append(d.diags, diag)
			log.Warn("could not parse value", "line", lineNo, "value", fields[i], "column", name)
			continue
		}
		d.data[name] = append(d.data[name], v)
	}
}
