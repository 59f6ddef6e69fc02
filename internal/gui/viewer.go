package gui

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"zoomview/pkg/config"
	"zoomview/pkg/geom"
	"zoomview/pkg/raster"
	"zoomview/pkg/touch"
	"zoomview/pkg/viewport"
)

// wheelSpan is the spacing of the two synthetic pointers used to turn a
// scroll-wheel step into a pinch.
const wheelSpan = 100

// ZoomView is a custom widget hosting a viewport controller: drags pan the
// image, wheel steps pinch it around the cursor.
type ZoomView struct {
	widget.BaseWidget

	// mu serializes controller access between the event and render paths.
	mu      sync.Mutex
	ctrl    *viewport.Controller
	img     image.Image
	overlay bool

	raster *canvas.Raster

	// Dragging state
	dragging bool

	// OnChanged is called after the transform may have changed.
	OnChanged func()
}

// NewZoomView creates a zoom view configured by opts.
func NewZoomView(opts ...viewport.Option) (*ZoomView, error) {
	ctrl, err := viewport.New(opts...)
	if err != nil {
		return nil, err
	}
	v := &ZoomView{ctrl: ctrl}
	v.ExtendBaseWidget(v)
	v.raster = canvas.NewRaster(v.generate)
	return v, nil
}

// SetImage binds a new image and resets the view to its default placement.
func (v *ZoomView) SetImage(img image.Image) error {
	b := img.Bounds()
	v.mu.Lock()
	err := v.ctrl.BindImage(b.Dx(), b.Dy())
	if err == nil {
		v.img = img
		v.dragging = false
	}
	v.mu.Unlock()
	if err != nil {
		return err
	}
	v.changed()
	return nil
}

// ResetView rebinds the current image, discarding zoom and pan.
func (v *ZoomView) ResetView() {
	v.mu.Lock()
	img := v.img
	v.mu.Unlock()
	if img != nil {
		_ = v.SetImage(img)
	}
}

// SetZoomEnabled toggles pinch zooming.
func (v *ZoomView) SetZoomEnabled(enabled bool) {
	v.mu.Lock()
	v.ctrl.SetZoomEnabled(enabled)
	v.mu.Unlock()
}

// SetPanEnabled toggles drag panning.
func (v *ZoomView) SetPanEnabled(enabled bool) {
	v.mu.Lock()
	v.ctrl.SetPanEnabled(enabled)
	v.mu.Unlock()
}

// SetOverlay toggles drawing the containment bounds.
func (v *ZoomView) SetOverlay(enabled bool) {
	v.mu.Lock()
	v.overlay = enabled
	v.mu.Unlock()
	v.Refresh()
}

// Reconfigure applies a reloaded configuration.
func (v *ZoomView) Reconfigure(cfg *config.Config) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	v.mu.Lock()
	err = v.ctrl.Reconfigure(opts)
	v.mu.Unlock()
	if err == nil {
		v.changed()
	}
	return err
}

// Zoom returns the current zoom relative to the initial placement.
func (v *ZoomView) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Zoom()
}

// Enabled reports the zoom and pan toggles.
func (v *ZoomView) Enabled() (zoom, pan bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.ZoomEnabled(), v.ctrl.PanEnabled()
}

// dispatch feeds events to the controller under the lock.
func (v *ZoomView) dispatch(events ...touch.Event) {
	v.mu.Lock()
	for _, ev := range events {
		touch.Dispatch(v.ctrl, ev)
	}
	v.mu.Unlock()
}

// Dragged handles drag events for panning.
func (v *ZoomView) Dragged(event *fyne.DragEvent) {
	pos := toPoint(event.Position)
	if !v.dragging {
		v.dragging = true
		start := pos.Sub(geom.Pt(float64(event.Dragged.DX), float64(event.Dragged.DY)))
		v.dispatch(touch.Down(start))
	}
	v.dispatch(touch.Move(pos))
	v.changed()
}

// DragEnd handles the end of a drag.
func (v *ZoomView) DragEnd() {
	if !v.dragging {
		return
	}
	v.dragging = false
	v.dispatch(touch.Up())
	v.changed()
}

// Scrolled handles scroll events as a pinch centered on the cursor.
func (v *ZoomView) Scrolled(event *fyne.ScrollEvent) {
	if v.dragging {
		return
	}
	factor := 1 + float64(event.Scrolled.DY)/100
	v.PinchAt(toPoint(event.Position), factor)
}

// PinchAt emulates a two-finger pinch around p that changes the finger
// spacing by factor.
func (v *ZoomView) PinchAt(p geom.Point, factor float64) {
	if factor <= 0 {
		return
	}
	half := geom.Pt(wheelSpan/2, 0)
	spread := half.Scale(factor)
	v.dispatch(
		touch.Down(p.Sub(half)),
		touch.PointerDown(p.Sub(half), p.Add(half)),
		touch.Move(p.Sub(spread), p.Add(spread)),
		touch.PointerUp(),
		touch.Up(),
	)
	v.changed()
}

// ZoomIn pinches outwards around the view center.
func (v *ZoomView) ZoomIn() {
	v.PinchAt(v.center(), 1.2)
}

// ZoomOut pinches inwards around the view center.
func (v *ZoomView) ZoomOut() {
	v.PinchAt(v.center(), 1/1.2)
}

func (v *ZoomView) center() geom.Point {
	size := v.Size()
	return geom.Pt(float64(size.Width)/2, float64(size.Height)/2)
}

func (v *ZoomView) changed() {
	v.Refresh()
	if v.OnChanged != nil {
		v.OnChanged()
	}
}

// generate renders the current state at the raster's pixel size.
func (v *ZoomView) generate(w, h int) image.Image {
	v.mu.Lock()
	img, overlay := v.img, v.overlay
	snap := raster.Capture(v.ctrl)
	v.mu.Unlock()

	if img == nil || w <= 0 || h <= 0 {
		return image.NewUniform(color.Black)
	}
	opts := raster.DefaultRenderOptions()
	opts.Overlay = overlay
	c, err := raster.RenderSize(img, snap, opts, w, h)
	if err != nil && c == nil {
		viewport.Logger().Debug("render skipped", "error", err)
		return image.NewUniform(color.Black)
	}
	return c.Image()
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

// CreateRenderer creates the renderer for this widget.
func (v *ZoomView) CreateRenderer() fyne.WidgetRenderer {
	return &zoomViewRenderer{
		viewer: v,
	}
}

// zoomViewRenderer renders the zoom view.
type zoomViewRenderer struct {
	viewer *ZoomView
}

func (r *zoomViewRenderer) Layout(size fyne.Size) {
	r.viewer.mu.Lock()
	r.viewer.ctrl.OnViewportMeasured(float64(size.Width), float64(size.Height))
	r.viewer.mu.Unlock()

	r.viewer.raster.Move(fyne.NewPos(0, 0))
	r.viewer.raster.Resize(size)
}

func (r *zoomViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *zoomViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.raster}
}

func (r *zoomViewRenderer) Refresh() {
	r.Layout(r.viewer.Size())
	r.viewer.raster.Refresh()
}

func (r *zoomViewRenderer) Destroy() {}
