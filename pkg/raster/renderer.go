package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"zoomview/pkg/geom"
	"zoomview/pkg/viewport"
)

// View is the controller state a rendering needs.
type View interface {
	Transform() (geom.Matrix, error)
	Bounds() (geom.Bounds, error)
	ViewportSize() viewport.Size
}

// RenderOptions configures a rendering.
type RenderOptions struct {
	// Background fills the viewport outside the image.
	// Default: black
	Background color.Color

	// Overlay outlines the containment bounds.
	// Default: false
	Overlay bool

	// OverlayColor is the bounds outline color.
	// Default: opaque red
	OverlayColor color.Color

	// OverlayWidth is the outline width in pixels.
	// Default: 2
	OverlayWidth float64

	// Smooth selects Catmull-Rom resampling.
	// Default: false
	Smooth bool
}

// DefaultRenderOptions returns render options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Background:   color.Black,
		OverlayColor: color.RGBA{R: 0xff, A: 0xff},
		OverlayWidth: 2,
	}
}

// Render draws src into a canvas the size of the view's viewport, placed by
// the view's current transform.
func Render(src image.Image, v View, opts RenderOptions) (*Canvas, error) {
	vs := v.ViewportSize()
	if vs.IsEmpty() {
		return nil, errors.New("viewport has not been measured")
	}
	w, h := CanvasSize(vs.Width, vs.Height)
	return RenderSize(src, v, opts, w, h)
}

// RenderSize renders like Render into a w x h pixel canvas, scaling
// viewport units to pixels. Hosts with a device scale factor use it to
// render at native resolution.
func RenderSize(src image.Image, v View, opts RenderOptions, w, h int) (*Canvas, error) {
	m, err := v.Transform()
	if err != nil {
		return nil, fmt.Errorf("failed to get transform: %w", err)
	}
	vs := v.ViewportSize()
	if vs.IsEmpty() {
		return nil, errors.New("viewport has not been measured")
	}
	k := float64(w) / vs.Width

	canvas := NewCanvas(w, h)
	if opts.Background != nil {
		canvas.SetBackground(opts.Background)
		canvas.Clear()
	}
	canvas.SetSmooth(opts.Smooth)

	// Image pixel (0,0) is the bounds origin of src, which need not be zero.
	origin := src.Bounds().Min
	place := geom.Translate(float64(-origin.X), float64(-origin.Y)).Multiply(m).Multiply(geom.Scale(k, k))
	canvas.DrawImage(src, place)

	if opts.Overlay {
		b, err := v.Bounds()
		if err != nil {
			return canvas, fmt.Errorf("failed to get bounds: %w", err)
		}
		b = geom.Bounds{Left: b.Left * k, Top: b.Top * k, Right: b.Right * k, Bottom: b.Bottom * k}
		canvas.StrokeBounds(b, opts.OverlayColor, opts.OverlayWidth)
	}
	return canvas, nil
}

// Snapshot is a copy of controller state, for rendering outside the
// goroutine that owns the controller.
type Snapshot struct {
	Matrix   geom.Matrix
	Edges    geom.Bounds
	Viewport viewport.Size
	HasImage bool
	HasEdges bool
}

// Capture copies the state of c.
func Capture(c *viewport.Controller) Snapshot {
	s := Snapshot{Viewport: c.ViewportSize()}
	if m, err := c.Transform(); err == nil {
		s.Matrix, s.HasImage = m, true
	}
	if b, err := c.Bounds(); err == nil {
		s.Edges, s.HasEdges = b, true
	}
	return s
}

// Transform implements View.
func (s Snapshot) Transform() (geom.Matrix, error) {
	if !s.HasImage {
		return geom.Matrix{}, viewport.ErrNoImageBound
	}
	return s.Matrix, nil
}

// Bounds implements View.
func (s Snapshot) Bounds() (geom.Bounds, error) {
	if !s.HasEdges {
		return geom.Bounds{}, viewport.ErrBoundsNotReady
	}
	return s.Edges, nil
}

// ViewportSize implements View.
func (s Snapshot) ViewportSize() viewport.Size {
	return s.Viewport
}
