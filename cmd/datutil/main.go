package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"dataviz/viz/columns"
	"dataviz/viz/export"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input data file.")
		outPath = flag.String("out", "", "Output file for export (.png, .svg, .pdf or .html).")
		mode    = flag.String("mode", "dump", "dump|stats|export.")
		delim   = flag.String("delim", "whitespace", "Field delimiter: whitespace|comma|tab|semicolon or a single character.")
		xCol    = flag.String("x", "x(t)", "X column for export.")
		yCols   = flag.String("y", "y(t)", "Comma-separated Y columns for export.")
		title   = flag.String("title", "", "Chart title for export (defaults to the input name).")
	)
	flag.Parse()

	if *inPath == "" {
		fatalf("usage: datutil -mode dump|stats -in data.dat [-delim whitespace]\n       datutil -mode export -in data.dat -out plot.png [-x x(t)] [-y y(t),vy(t)] [-title T]")
	}
	d, err := columns.ParseDelimiter(*delim)
	if err != nil {
		fatalf("%v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ds, err := columns.LoadFile(*inPath, d, columns.WithLogger(log))
	if err != nil {
		fatalf("load: %v", err)
	}

	switch strings.ToLower(*mode) {
	case "dump":
		err = ds.Print(os.Stdout)
	case "stats":
		err = printStats(os.Stdout, ds)
	case "export":
		if *outPath == "" {
			fatalf("export: -out is required")
		}
		t := *title
		if t == "" {
			t = *inPath
		}
		err = exportChart(ds, *outPath, t, *xCol, splitList(*yCols))
	default:
		fatalf("unknown mode: %s", *mode)
	}
	if err != nil {
		fatalf("%s: %v", *mode, err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func printStats(w io.Writer, ds *columns.Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "column\tcount\tmin\tmax\tmean\tstddev\t\n")
	for _, name := range ds.Headers() {
		s, ok := ds.Summary(name)
		if !ok {
			fmt.Fprintf(tw, "%s\t0\t-\t-\t-\t-\t\n", name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%g\t%g\t%g\t%g\t\n", s.Name, s.Count, s.Min, s.Max, s.Mean, s.StdDev)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "rows: %d\n", ds.Rows())
	diags := ds.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	fmt.Fprintf(w, "diagnostics: %d\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  %v\n", d)
	}
	return nil
}

func exportChart(ds *columns.Dataset, out, title, x string, ys []string) error {
	c, err := export.FromDataset(ds, title, x, ys...)
	if err != nil {
		return err
	}
	return c.Save(out)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
