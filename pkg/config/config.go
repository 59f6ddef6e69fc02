// Package config loads viewport settings from YAML files and watches them
// for changes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"zoomview/pkg/viewport"
)

// Config is the on-disk form of the viewport settings.
type Config struct {
	// Upper zoom multiplier relative to the initial on-screen size.
	MaxScale float64 `yaml:"max_scale"`

	// Bounds extent as a fraction of the viewport.
	BoundsFraction float64 `yaml:"bounds_fraction"`

	// Pinch noise threshold in viewport units.
	MinPointerDistance float64 `yaml:"min_pointer_distance"`

	ZoomEnabled bool `yaml:"zoom_enabled"`
	PanEnabled  bool `yaml:"pan_enabled"`
}

// Default returns the configuration matching viewport.DefaultOptions.
func Default() *Config {
	o := viewport.DefaultOptions()
	return &Config{
		MaxScale:           o.MaxScale,
		BoundsFraction:     o.BoundsFraction,
		MinPointerDistance: o.MinPointerDistance,
		ZoomEnabled:        o.ZoomEnabled,
		PanEnabled:         o.PanEnabled,
	}
}

// Load reads the YAML file at path. Fields missing from the file keep their
// default values. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against the controller's rules.
func (c *Config) Validate() error {
	o := viewport.DefaultOptions()
	o.Apply(c.ViewportOptions()...)
	return o.Validate()
}

// ViewportOptions converts the configuration to controller options.
func (c *Config) ViewportOptions() []viewport.Option {
	return []viewport.Option{
		viewport.WithMaxScale(c.MaxScale),
		viewport.WithBoundsFraction(c.BoundsFraction),
		viewport.WithMinPointerDistance(c.MinPointerDistance),
		viewport.WithZoom(c.ZoomEnabled),
		viewport.WithPan(c.PanEnabled),
	}
}

// Options returns validated controller options.
func (c *Config) Options() (viewport.Options, error) {
	return viewport.NewOptions(c.ViewportOptions()...)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
