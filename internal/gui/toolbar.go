package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar provides image, zoom and gesture controls.
type Toolbar struct {
	container *fyne.Container

	// Callbacks
	OnOpen     func()
	OnReset    func()
	OnZoomIn   func()
	OnZoomOut  func()
	OnZoomMode func(enabled bool)
	OnPanMode  func(enabled bool)
	OnOverlay  func(enabled bool)

	// Components
	zoomCheck    *widget.Check
	panCheck     *widget.Check
	overlayCheck *widget.Check
	resetBtn     *widget.Button
}

// NewToolbar creates a new toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.build()
	return t
}

func (t *Toolbar) build() {
	openBtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() {
		if t.OnOpen != nil {
			t.OnOpen()
		}
	})

	t.resetBtn = widget.NewButtonWithIcon("", theme.ViewRestoreIcon(), func() {
		if t.OnReset != nil {
			t.OnReset()
		}
	})

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		if t.OnZoomOut != nil {
			t.OnZoomOut()
		}
	})

	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		if t.OnZoomIn != nil {
			t.OnZoomIn()
		}
	})

	t.zoomCheck = widget.NewCheck("Zoom", func(on bool) {
		if t.OnZoomMode != nil {
			t.OnZoomMode(on)
		}
	})
	t.panCheck = widget.NewCheck("Pan", func(on bool) {
		if t.OnPanMode != nil {
			t.OnPanMode(on)
		}
	})
	t.overlayCheck = widget.NewCheck("Bounds", func(on bool) {
		if t.OnOverlay != nil {
			t.OnOverlay(on)
		}
	})

	t.container = container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		t.resetBtn,
		widget.NewSeparator(),
		t.zoomCheck,
		t.panCheck,
		t.overlayCheck,
	)
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// SetModes updates the toggles without firing their callbacks.
func (t *Toolbar) SetModes(zoom, pan bool) {
	zoomCb, panCb := t.zoomCheck.OnChanged, t.panCheck.OnChanged
	t.zoomCheck.OnChanged, t.panCheck.OnChanged = nil, nil
	t.zoomCheck.SetChecked(zoom)
	t.panCheck.SetChecked(pan)
	t.zoomCheck.OnChanged, t.panCheck.OnChanged = zoomCb, panCb
}

// Enable enables the image-dependent controls.
func (t *Toolbar) Enable() {
	t.resetBtn.Enable()
}

// Disable disables the image-dependent controls.
func (t *Toolbar) Disable() {
	t.resetBtn.Disable()
}

// StatusBar provides status information.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	zoomLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:     widget.NewLabel("Ready"),
		zoomLabel: widget.NewLabel("100%"),
	}

	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.zoomLabel,
	)

	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetZoom sets the zoom percentage display.
func (s *StatusBar) SetZoom(percent int) {
	s.zoomLabel.SetText(strconv.Itoa(percent) + "%")
}
