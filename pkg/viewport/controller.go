// Package viewport implements the touch-driven image viewport controller:
// a gesture state machine that turns pointer events into a uniform-scale
// affine transform, clamping pinch steps so the image keeps covering a
// bounds rectangle derived from the viewport.
//
// A Controller is not safe for concurrent use. Hosts deliver events from a
// single goroutine, or serialize calls themselves.
package viewport

import (
	"fmt"
	"math"

	"zoomview/pkg/geom"
)

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Controller owns the image transform and the gesture mode.
type Controller struct {
	opts Options

	matrix  geom.Matrix
	session session

	image    Size
	hasImage bool
	viewport Size

	// bounds are valid only while boundsFresh is set. BindImage clears it;
	// the next measurement recomputes bounds and the initial size.
	bounds      geom.Bounds
	boundsFresh bool

	shown   Size
	initial Size
}

// New creates a controller configured by opts.
func New(opts ...Option) (*Controller, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Controller{
		opts:   o,
		matrix: geom.Identity(),
	}, nil
}

// Options returns the controller's configuration.
func (c *Controller) Options() Options {
	return c.opts
}

// Reconfigure replaces the configuration. Image, bounds and transform are
// kept; only subsequent gestures see the new values.
func (c *Controller) Reconfigure(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	c.opts = opts
	return nil
}

// BindImage records the intrinsic size of a new image, marks the bounds
// stale and resets the transform to the default center-crop placement.
func (c *Controller) BindImage(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, width, height)
	}
	c.image = Size{float64(width), float64(height)}
	c.hasImage = true
	c.boundsFresh = false
	c.session = nil
	c.shown = Size{}
	c.initial = Size{}
	c.matrix = c.defaultPlacement()
	c.updateShownSize()

	Logger().Info("image bound", "width", width, "height", height)
	return nil
}

// defaultPlacement centers and crops the image in the last measured viewport.
func (c *Controller) defaultPlacement() geom.Matrix {
	if c.viewport.IsEmpty() {
		return geom.Identity()
	}
	return geom.CenterCrop(c.image.Width, c.image.Height, c.viewport.Width, c.viewport.Height)
}

// OnViewportMeasured records the viewport size. On the first measurement
// after BindImage it places the image and computes the bounds; later calls
// leave bounds and transform untouched.
func (c *Controller) OnViewportMeasured(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.viewport = Size{width, height}
	if !c.hasImage || c.boundsFresh {
		return
	}
	c.matrix = c.defaultPlacement()
	c.refresh()
}

// refresh recomputes the shown size and, if still pending, the bounds.
func (c *Controller) refresh() {
	c.updateShownSize()
	if !c.boundsFresh && c.hasImage && !c.viewport.IsEmpty() {
		c.computeBounds()
	}
}

func (c *Controller) updateShownSize() {
	c.shown = c.shownSizeOf(c.matrix)
}

// shownSizeOf returns the on-screen size of the image under m.
func (c *Controller) shownSizeOf(m geom.Matrix) Size {
	return Size{
		Width:  m[0]*c.image.Width + m[2]*c.image.Height,
		Height: m[1]*c.image.Width + m[3]*c.image.Height,
	}
}

// computeBounds derives the bounds from the current shown size. The bounds
// keep the image's aspect ratio; their extent along the image's long side is
// BoundsFraction of the viewport's extent on that axis.
func (c *Controller) computeBounds() {
	c.initial = c.shown
	vw, vh := c.viewport.Width, c.viewport.Height
	f := c.opts.BoundsFraction

	var b geom.Bounds
	if c.initial.Width < c.initial.Height {
		ratio := vh * f / c.initial.Height
		b.Left = (vw - c.initial.Width*ratio) / 2
		b.Top = (vh - vh*f) / 2
		b.Right = vw - b.Left
		b.Bottom = vh - b.Top
	} else {
		ratio := vw * f / c.initial.Width
		b.Top = (vh - c.initial.Height*ratio) / 2
		b.Left = (vw - vw*f) / 2
		b.Bottom = vh - b.Top
		b.Right = vw - b.Left
	}
	c.bounds = b
	c.boundsFresh = true

	Logger().Debug("bounds computed",
		"left", b.Left, "top", b.Top, "right", b.Right, "bottom", b.Bottom,
		"initial_width", c.initial.Width, "initial_height", c.initial.Height)
}

// SetZoomEnabled toggles whether pinch gestures change the transform.
func (c *Controller) SetZoomEnabled(enabled bool) {
	c.opts.ZoomEnabled = enabled
}

// SetPanEnabled toggles whether drag gestures change the transform.
func (c *Controller) SetPanEnabled(enabled bool) {
	c.opts.PanEnabled = enabled
}

// ZoomEnabled reports whether pinch gestures are applied.
func (c *Controller) ZoomEnabled() bool { return c.opts.ZoomEnabled }

// PanEnabled reports whether drag gestures are applied.
func (c *Controller) PanEnabled() bool { return c.opts.PanEnabled }

// MaxScale returns the configured upper zoom multiplier.
func (c *Controller) MaxScale() float64 { return c.opts.MaxScale }

// OnPointerDown starts a drag from p. Non-finite positions are ignored.
func (c *Controller) OnPointerDown(p geom.Point) {
	if !c.hasImage || !p.IsFinite() {
		return
	}
	c.refresh()
	c.setSession(dragSession{origin: p, start: c.matrix})
}

// OnSecondPointerDown starts a pinch when the two pointers are further apart
// than MinPointerDistance. Closer or non-finite pointers leave the mode
// unchanged.
func (c *Controller) OnSecondPointerDown(a, b geom.Point) {
	if !c.hasImage || !a.IsFinite() || !b.IsFinite() {
		return
	}
	d := geom.Distance(a, b)
	if !(d > c.opts.MinPointerDistance) || math.IsInf(d, 1) {
		return
	}
	c.setSession(pinchSession{
		startDistance: d,
		mid:           geom.Midpoint(a, b),
		start:         c.matrix,
	})
}

// OnPointerMove applies the active gesture to the current pointer positions.
func (c *Controller) OnPointerMove(points ...geom.Point) {
	switch s := c.session.(type) {
	case dragSession:
		c.drag(s, points)
	case pinchSession:
		c.pinch(s, points)
	}
}

// OnPointerUp ends the active gesture when one of several pointers lifts.
func (c *Controller) OnPointerUp() {
	c.endGesture()
}

// OnLastPointerUp ends the active gesture when the last pointer lifts.
func (c *Controller) OnLastPointerUp() {
	c.endGesture()
}

func (c *Controller) endGesture() {
	c.setSession(nil)
	if c.hasImage {
		c.refresh()
	}
}

func (c *Controller) setSession(s session) {
	from := c.Mode()
	c.session = s
	if to := c.Mode(); to != from {
		Logger().Debug("gesture mode", "from", from, "to", to)
	}
}

// drag translates the start transform by the pointer's displacement.
// No containment clamp is applied while panning.
func (c *Controller) drag(s dragSession, points []geom.Point) {
	if !c.opts.PanEnabled || len(points) == 0 || !points[0].IsFinite() {
		return
	}
	c.matrix = s.start
	delta := points[0].Sub(s.origin)
	if !delta.IsZero() {
		c.matrix = c.matrix.PostTranslate(delta.X, delta.Y)
	}
}

// pinch scales the start transform around the pinch midpoint by the ratio
// of the current to the initial finger spacing, subject to the max scale
// and containment checks.
func (c *Controller) pinch(s pinchSession, points []geom.Point) {
	if !c.opts.ZoomEnabled || len(points) < 2 || !c.boundsFresh {
		return
	}
	if !points[0].IsFinite() || !points[1].IsFinite() {
		return
	}
	d := geom.Distance(points[0], points[1])
	if !(d > c.opts.MinPointerDistance) {
		return
	}
	scale := d / s.startDistance
	if c.exceedsMaxScale(s.start, scale) {
		Logger().Debug("pinch step rejected", "reason", "max_scale", "scale", scale)
		return
	}
	candidate := s.start.PostScale(scale, scale, s.mid.X, s.mid.Y)
	clamped, ok := clampToBounds(candidate, c.image, c.bounds)
	if !ok {
		Logger().Debug("pinch step rejected", "reason", "containment", "scale", scale)
		return
	}
	c.matrix = clamped
	c.updateShownSize()
}

// exceedsMaxScale reports whether a zoom-in step from start would leave the
// shown size above MaxScale times the initial size on either axis.
// It checks the candidate size after the step, not the last committed size:
// a committed-size check lets a single large step overshoot MaxScale.
// Zoom-out steps are never refused here.
func (c *Controller) exceedsMaxScale(start geom.Matrix, scale float64) bool {
	if scale <= 1 {
		return false
	}
	base := c.shownSizeOf(start)
	ratioW := base.Width * scale / c.initial.Width
	ratioH := base.Height * scale / c.initial.Height
	return ratioH > c.opts.MaxScale || ratioW > c.opts.MaxScale
}

// Transform returns the transform to render the image with.
func (c *Controller) Transform() (geom.Matrix, error) {
	if !c.hasImage {
		return geom.Matrix{}, ErrNoImageBound
	}
	return c.matrix, nil
}

// Bounds returns the rectangle the image must keep covering.
func (c *Controller) Bounds() (geom.Bounds, error) {
	if !c.hasImage {
		return geom.Bounds{}, ErrNoImageBound
	}
	if !c.boundsFresh {
		return geom.Bounds{}, ErrBoundsNotReady
	}
	return c.bounds, nil
}

// Mode returns the active gesture mode.
func (c *Controller) Mode() Mode {
	if c.session == nil {
		return ModeNone
	}
	return c.session.mode()
}

// ImageSize returns the intrinsic size of the bound image.
func (c *Controller) ImageSize() Size { return c.image }

// ViewportSize returns the last measured viewport size.
func (c *Controller) ViewportSize() Size { return c.viewport }

// ShownSize returns the image's on-screen size as of the last committed
// step or gesture boundary.
func (c *Controller) ShownSize() Size { return c.shown }

// InitialSize returns the on-screen size recorded when bounds were computed.
func (c *Controller) InitialSize() Size { return c.initial }

// Zoom returns the shown width relative to the initial width, or 0 before
// the bounds are computed.
func (c *Controller) Zoom() float64 {
	if !c.boundsFresh || c.initial.Width == 0 {
		return 0
	}
	return c.shown.Width / c.initial.Width
}
