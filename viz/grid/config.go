package grid

import (
	"errors"
	"fmt"

	"dataviz/viz/geom"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid grid config")

// Config parameterizes the grid. Every SecondaryStep world units there is a
// secondary line; every PrimaryFactor-th of those is primary; the line through
// zero on each axis is an axis line.
type Config struct {
	SecondaryStep  float64
	PrimaryFactor  int
	PrimaryColor   geom.Color
	SecondaryColor geom.Color
	AxisXColor     geom.Color // horizontal axis (y = 0)
	AxisYColor     geom.Color // vertical axis (x = 0)

	// MaxLinesPerAxis bounds the lines generated along one axis when zoomed
	// far out. Secondary lines are dropped first, then primary lines.
	MaxLinesPerAxis int
}

// DefaultConfig returns a 20-unit grid with a primary line every 100 units.
func DefaultConfig() Config {
	return Config{
		SecondaryStep:   20,
		PrimaryFactor:   5,
		PrimaryColor:    geom.RGB(100, 100, 100),
		SecondaryColor:  geom.RGB(60, 60, 60),
		AxisXColor:      geom.RGB(200, 80, 80),
		AxisYColor:      geom.RGB(80, 200, 80),
		MaxLinesPerAxis: 4096,
	}
}

func (c Config) Validate() error {
	if !(c.SecondaryStep > 0) {
		return fmt.Errorf("%w: secondary step must be > 0, got %v", ErrInvalidConfig, c.SecondaryStep)
	}
	if c.PrimaryFactor < 1 {
		return fmt.Errorf("%w: primary factor must be >= 1, got %d", ErrInvalidConfig, c.PrimaryFactor)
	}
	if c.MaxLinesPerAxis < 0 {
		return fmt.Errorf("%w: max lines per axis must be >= 0, got %d", ErrInvalidConfig, c.MaxLinesPerAxis)
	}
	return nil
}
