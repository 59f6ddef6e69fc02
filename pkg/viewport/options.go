package viewport

import (
	"fmt"
	"math"
)

// Options configures a Controller.
type Options struct {
	// MaxScale caps zooming in, as a multiple of the image's initial
	// on-screen size.
	// Default: 5
	MaxScale float64

	// BoundsFraction sizes the bounds rectangle as a fraction of the
	// viewport's dimension along the image's long side.
	// Default: 0.2
	BoundsFraction float64

	// MinPointerDistance is the finger spacing, in viewport units, at or
	// below which pinch input is ignored.
	// Default: 10
	MinPointerDistance float64

	// ZoomEnabled lets pinch gestures change the transform.
	// Default: true
	ZoomEnabled bool

	// PanEnabled lets drag gestures change the transform.
	// Default: true
	PanEnabled bool
}

// DefaultOptions returns options with the stock zoom behavior.
func DefaultOptions() Options {
	return Options{
		MaxScale:           5,
		BoundsFraction:     0.2,
		MinPointerDistance: 10,
		ZoomEnabled:        true,
		PanEnabled:         true,
	}
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithMaxScale sets the upper zoom multiplier.
func WithMaxScale(scale float64) Option {
	return func(o *Options) {
		o.MaxScale = scale
	}
}

// WithBoundsFraction sets the bounds size fraction.
func WithBoundsFraction(f float64) Option {
	return func(o *Options) {
		o.BoundsFraction = f
	}
}

// WithMinPointerDistance sets the pinch noise threshold.
func WithMinPointerDistance(d float64) Option {
	return func(o *Options) {
		o.MinPointerDistance = d
	}
}

// WithZoom enables or disables pinch zooming.
func WithZoom(enabled bool) Option {
	return func(o *Options) {
		o.ZoomEnabled = enabled
	}
}

// WithPan enables or disables drag panning.
func WithPan(enabled bool) Option {
	return func(o *Options) {
		o.PanEnabled = enabled
	}
}

// NewOptions creates options from functional options and validates them.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	o.Apply(opts...)
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Apply applies functional options to existing options.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfiguration.
func (o *Options) Validate() error {
	switch {
	case math.IsNaN(o.MaxScale) || math.IsInf(o.MaxScale, 0) || o.MaxScale <= 0:
		return fmt.Errorf("%w: max scale must be a positive number, got %v", ErrInvalidConfiguration, o.MaxScale)
	case math.IsNaN(o.BoundsFraction) || o.BoundsFraction <= 0 || o.BoundsFraction > 1:
		return fmt.Errorf("%w: bounds fraction must be in (0, 1], got %v", ErrInvalidConfiguration, o.BoundsFraction)
	case math.IsNaN(o.MinPointerDistance) || math.IsInf(o.MinPointerDistance, 0) || o.MinPointerDistance < 0:
		return fmt.Errorf("%w: min pointer distance must be non-negative, got %v", ErrInvalidConfiguration, o.MinPointerDistance)
	}
	return nil
}
