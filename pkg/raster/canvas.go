// Package raster renders an image through a viewport transform into a
// viewport-sized bitmap, for headless previews of controller state.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"zoomview/pkg/geom"
)

// Canvas represents a viewport-sized drawing surface.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background color.Color
	scaler     xdraw.Transformer
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: color.Black,
		scaler:     xdraw.ApproxBiLinear,
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// SetBackground sets the background color.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = col
}

// SetSmooth selects Catmull-Rom resampling when true and approximate
// bilinear, the default, when false.
func (c *Canvas) SetSmooth(smooth bool) {
	if smooth {
		c.scaler = xdraw.CatmullRom
	} else {
		c.scaler = xdraw.ApproxBiLinear
	}
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// DrawImage draws src mapped through m, which takes source pixel
// coordinates to canvas coordinates.
func (c *Canvas) DrawImage(src image.Image, m geom.Matrix) {
	c.scaler.Transform(c.img, m.Aff3(), src, src.Bounds(), xdraw.Over, nil)
}

// StrokeBounds outlines b with a line of the given width.
func (c *Canvas) StrokeBounds(b geom.Bounds, col color.Color, width float64) {
	if width <= 0 {
		return
	}
	hw := width / 2
	outer := geom.Bounds{Left: b.Left - hw, Top: b.Top - hw, Right: b.Right + hw, Bottom: b.Bottom + hw}
	inner := geom.Bounds{Left: b.Left + hw, Top: b.Top + hw, Right: b.Right - hw, Bottom: b.Bottom - hw}

	r := vector.NewRasterizer(c.width, c.height)
	addRect(r, outer, false)
	if inner.Width() > 0 && inner.Height() > 0 {
		// Opposite winding cuts the inside out of the outer rectangle.
		addRect(r, inner, true)
	}
	r.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

func addRect(r *vector.Rasterizer, b geom.Bounds, reverse bool) {
	l, t := float32(b.Left), float32(b.Top)
	rt, bt := float32(b.Right), float32(b.Bottom)
	r.MoveTo(l, t)
	if reverse {
		r.LineTo(l, bt)
		r.LineTo(rt, bt)
		r.LineTo(rt, t)
	} else {
		r.LineTo(rt, t)
		r.LineTo(rt, bt)
		r.LineTo(l, bt)
	}
	r.ClosePath()
}

// SavePNG encodes the canvas to a PNG file, creating parent directories.
func (c *Canvas) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// CanvasSize rounds a viewport size up to whole pixels.
func CanvasSize(width, height float64) (int, int) {
	return int(math.Ceil(width)), int(math.Ceil(height))
}
