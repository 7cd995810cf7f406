package config

import (
	"gopkg.in/yaml.v3"

	"dataviz/viz/geom"
)

// Color is a geom.Color written as a hex string in YAML.
type Color geom.Color

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := geom.ParseHex(s)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return geom.Color(c).Hex(), nil
}

// Geom returns the colour as a geom.Color.
func (c Color) Geom() geom.Color { return geom.Color(c) }
