// Package config holds the host-facing configuration surface: data source,
// window, grid, trace, marker and player settings. Configuration is read from
// an optional YAML file layered over Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dataviz/viz/columns"
	"dataviz/viz/geom"
	"dataviz/viz/grid"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const maxFileSize = 1 << 20

// Mode selects static plotting or animated playback.
type Mode string

const (
	ModePlot Mode = "plot"
	ModePlay Mode = "play"
)

type Config struct {
	Mode   Mode   `yaml:"mode"`
	Data   Data   `yaml:"data"`
	Window Window `yaml:"window"`
	Grid   Grid   `yaml:"grid"`
	Trace  Trace  `yaml:"trace"`
	Marker Marker `yaml:"marker"`
	Player Player `yaml:"player"`
}

type Data struct {
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter"`
}

type Window struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	ViewHeight float64 `yaml:"view_height"` // world units visible vertically
	Background Color   `yaml:"background"`
	TPS        int     `yaml:"tps"`
}

type Grid struct {
	SecondaryStep   float64 `yaml:"secondary_step"`
	PrimaryFactor   int     `yaml:"primary_factor"`
	PrimaryColor    Color   `yaml:"primary_color"`
	SecondaryColor  Color   `yaml:"secondary_color"`
	AxisXColor      Color   `yaml:"axis_x_color"`
	AxisYColor      Color   `yaml:"axis_y_color"`
	MaxLinesPerAxis int     `yaml:"max_lines_per_axis"`
}

type Trace struct {
	Thickness float64 `yaml:"thickness"`
	Color     Color   `yaml:"color"`
	Scale     float64 `yaml:"scale"` // world units per data unit in plot mode
}

type Marker struct {
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	Color    Color   `yaml:"color"`
}

type Player struct {
	TimeColumn      string   `yaml:"time_column"`
	DataColumns     []string `yaml:"data_columns"` // first two are x and y
	SimulationScale float64  `yaml:"simulation_scale"`
}

// Default mirrors the settings the plot viewer has always shipped with.
func Default() Config {
	g := grid.DefaultConfig()
	return Config{
		Mode: ModePlay,
		Data: Data{Delimiter: "whitespace"},
		Window: Window{
			Title:      "Data Visualizer",
			Width:      800,
			Height:     600,
			ViewHeight: 600,
			Background: Color(geom.RGB(33, 33, 33)),
			TPS:        60,
		},
		Grid: Grid{
			SecondaryStep:   g.SecondaryStep,
			PrimaryFactor:   g.PrimaryFactor,
			PrimaryColor:    Color(g.PrimaryColor),
			SecondaryColor:  Color(g.SecondaryColor),
			AxisXColor:      Color(g.AxisXColor),
			AxisYColor:      Color(g.AxisYColor),
			MaxLinesPerAxis: g.MaxLinesPerAxis,
		},
		Trace: Trace{
			Thickness: 2,
			Color:     Color(geom.RGBA(225, 225, 225, 200)),
			Scale:     120,
		},
		Marker: Marker{
			Radius:   4,
			Segments: 24,
			Color:    Color(geom.RGB(255, 0, 0)),
		},
		Player: Player{
			TimeColumn:      "Time(s)",
			DataColumns:     []string{"x(t)", "y(t)"},
			SimulationScale: 35,
		},
	}
}

// Load reads a YAML file over Default and validates the result. Unknown keys
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	clean := filepath.Clean(path)
	switch ext := strings.ToLower(filepath.Ext(clean)); ext {
	case ".yaml", ".yml":
	default:
		return cfg, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.Mode {
	case ModePlot, ModePlay:
	default:
		bad("mode %q: want %q or %q", c.Mode, ModePlot, ModePlay)
	}
	if _, err := columns.ParseDelimiter(c.Data.Delimiter); err != nil {
		bad("data.delimiter: %v", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if !(c.Window.ViewHeight > 0) {
		bad("window.view_height must be > 0, got %v", c.Window.ViewHeight)
	}
	if c.Window.TPS <= 0 {
		bad("window.tps must be > 0, got %d", c.Window.TPS)
	}
	if err := c.GridConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: grid: %w", ErrInvalid, err))
	}
	if !(c.Trace.Thickness > 0) {
		bad("trace.thickness must be > 0, got %v", c.Trace.Thickness)
	}
	if c.Trace.Scale == 0 {
		bad("trace.scale must not be 0")
	}
	if !(c.Marker.Radius >= 0) {
		bad("marker.radius must be >= 0, got %v", c.Marker.Radius)
	}
	if c.Player.TimeColumn == "" {
		bad("player.time_column is empty")
	}
	if len(c.Player.DataColumns) < 2 {
		bad("player.data_columns needs x and y, got %v", c.Player.DataColumns)
	}
	if c.Player.SimulationScale == 0 {
		bad("player.simulation_scale must not be 0")
	}
	return errors.Join(errs...)
}

// Delimiter returns the parsed data delimiter.
func (c Config) Delimiter() columns.Delimiter {
	d, err := columns.ParseDelimiter(c.Data.Delimiter)
	if err != nil {
		return columns.Whitespace
	}
	return d
}

// GridConfig converts the grid section.
func (c Config) GridConfig() grid.Config {
	return grid.Config{
		SecondaryStep:   c.Grid.SecondaryStep,
		PrimaryFactor:   c.Grid.PrimaryFactor,
		PrimaryColor:    geom.Color(c.Grid.PrimaryColor),
		SecondaryColor:  geom.Color(c.Grid.SecondaryColor),
		AxisXColor:      geom.Color(c.Grid.AxisXColor),
		AxisYColor:      geom.Color(c.Grid.AxisYColor),
		MaxLinesPerAxis: c.Grid.MaxLinesPerAxis,
	}
}

// XColumn and YColumn name the plotted pair.
func (c Config) XColumn() string { return c.Player.DataColumns[0] }
func (c Config) YColumn() string { return c.Player.DataColumns[1] }
