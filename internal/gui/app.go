// Package gui provides a native desktop image viewer using Fyne, hosting the
// viewport controller in a pan and zoom widget.
package gui

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"zoomview/pkg/config"
	"zoomview/pkg/imageio"
	"zoomview/pkg/viewport"
)

// App represents the image viewer application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	configPath string

	// UI components
	view      *ZoomView
	toolbar   *Toolbar
	statusBar *StatusBar
}

// NewApp creates a new viewer application. configPath may be empty; when
// set, the file is watched and reloaded while the window is open.
func NewApp(cfg *config.Config, configPath string) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	view, err := NewZoomView(cfg.ViewportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}

	a := &App{
		fyneApp:    app.New(),
		cfg:        cfg,
		configPath: configPath,
		view:       view,
	}

	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.mainWindow = a.fyneApp.NewWindow("ZoomView")
	a.mainWindow.Resize(fyne.NewSize(900, 700))

	return a, nil
}

// Run starts the application.
func (a *App) Run() {
	a.buildUI()
	stop := a.watchConfig()
	defer stop()
	a.mainWindow.ShowAndRun()
}

// RunWithFile starts the application with an image already loaded.
func (a *App) RunWithFile(path string) {
	a.buildUI()
	stop := a.watchConfig()
	defer stop()

	// Load file after window is ready
	go func() {
		if err := a.loadFile(path); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}()

	a.mainWindow.ShowAndRun()
}

// buildUI constructs the user interface.
func (a *App) buildUI() {
	a.toolbar = NewToolbar()
	a.toolbar.OnOpen = a.openFile
	a.toolbar.OnReset = a.view.ResetView
	a.toolbar.OnZoomIn = a.view.ZoomIn
	a.toolbar.OnZoomOut = a.view.ZoomOut
	a.toolbar.OnZoomMode = a.view.SetZoomEnabled
	a.toolbar.OnPanMode = a.view.SetPanEnabled
	a.toolbar.OnOverlay = a.view.SetOverlay
	a.toolbar.SetModes(a.cfg.ZoomEnabled, a.cfg.PanEnabled)
	a.toolbar.Disable()

	a.statusBar = NewStatusBar()
	a.statusBar.SetStatus("No image loaded")
	a.view.OnChanged = a.updateStatus

	content := container.NewBorder(
		container.NewPadded(a.toolbar.Container()), // Top
		a.statusBar.Container(),                    // Bottom
		nil,                                        // Left
		nil,                                        // Right
		a.view,                                     // Center
	)

	a.mainWindow.SetContent(content)

	// Set up keyboard shortcuts
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

// handleKey handles keyboard zooming.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyPlus, fyne.KeyEqual:
		a.view.ZoomIn()
	case fyne.KeyMinus:
		a.view.ZoomOut()
	case fyne.Key0, fyne.KeyHome:
		a.view.ResetView()
	}
}

// openFile shows a file dialog and loads the selected image.
func (a *App) openFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		defer reader.Close()

		img, _, err := imageio.Decode(reader)
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if err := a.view.SetImage(img); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		a.imageLoaded(reader.URI().Name())
	}, a.mainWindow)
	d.SetFilter(storage.NewExtensionFileFilter(imageio.Extensions))
	d.Show()
}

// loadFile loads an image file.
func (a *App) loadFile(path string) error {
	img, _, err := imageio.Open(path)
	if err != nil {
		return err
	}
	if err := a.view.SetImage(img); err != nil {
		return fmt.Errorf("failed to show image: %w", err)
	}
	a.imageLoaded(filepath.Base(path))
	return nil
}

func (a *App) imageLoaded(name string) {
	a.mainWindow.SetTitle(fmt.Sprintf("ZoomView - %s", name))
	a.statusBar.SetStatus(name)
	a.toolbar.Enable()
	a.updateStatus()
}

// updateStatus refreshes the zoom percentage.
func (a *App) updateStatus() {
	if a.statusBar == nil {
		return
	}
	z := a.view.Zoom()
	if z == 0 {
		z = 1
	}
	a.statusBar.SetZoom(int(math.Round(z * 100)))
}

// watchConfig reloads the configuration file while the window is open.
func (a *App) watchConfig() (stop func()) {
	if a.configPath == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
			if err := a.view.Reconfigure(cfg); err != nil {
				viewport.Logger().Warn("config rejected", "error", err)
				return
			}
			a.toolbar.SetModes(cfg.ZoomEnabled, cfg.PanEnabled)
		})
		if err != nil {
			viewport.Logger().Warn("config watch stopped", "error", err)
		}
	}()
	return cancel
}
