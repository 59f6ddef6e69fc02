// Package geom provides the affine geometry used by the viewport controller.
// All types are values: every operation returns a new matrix or point and
// never mutates its receiver.
package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 3x3 affine transformation matrix.
// Only the first two columns are stored since the third is always [0 0 1].
// The matrix is stored as:
//
//	[A B 0]
//	[C D 0]
//	[E F 1]
//
// so that x' = A*x + C*y + E and y' = B*x + D*y + F.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// ScaleAround returns a scaling matrix that keeps (px, py) fixed.
func ScaleAround(sx, sy, px, py float64) Matrix {
	return Matrix{sx, 0, 0, sy, px - sx*px, py - sy*py}
}

// Multiply multiplies two matrices: result = m * other,
// i.e. m is applied first and other second.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// PostTranslate returns m followed by a translation of (dx, dy).
func (m Matrix) PostTranslate(dx, dy float64) Matrix {
	return m.Multiply(Translate(dx, dy))
}

// PostScale returns m followed by a scale of (sx, sy) around (px, py).
func (m Matrix) PostScale(sx, sy, px, py float64) Matrix {
	return m.Multiply(ScaleAround(sx, sy, px, py))
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformPoint applies the matrix to a Point.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// MapPoints applies the matrix to every point and returns the mapped copy.
func (m Matrix) MapPoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Aff3 converts the matrix to the row-major layout used by x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
	}
}

// ApproxEqual reports whether every component differs by at most eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// CenterCrop returns the placement that scales a content box uniformly so it
// covers the viewport and centers it. Offsets are rounded to whole pixels.
func CenterCrop(contentW, contentH, viewW, viewH float64) Matrix {
	if contentW <= 0 || contentH <= 0 {
		return Identity()
	}
	var s, dx, dy float64
	if contentW*viewH > viewW*contentH {
		s = viewH / contentH
		dx = (viewW - contentW*s) * 0.5
	} else {
		s = viewW / contentW
		dy = (viewH - contentH*s) * 0.5
	}
	return Matrix{s, 0, 0, s, math.Round(dx), math.Round(dy)}
}
