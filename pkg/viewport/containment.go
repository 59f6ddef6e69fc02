package viewport

import "zoomview/pkg/geom"

// clampToBounds checks a candidate transform against the bounds. A candidate
// whose image box leaves a gap on both sides of an axis is rejected outright.
// Otherwise every edge that sits inside the bounds is translated back onto
// its bounds edge, and the result is accepted only if it no longer violates.
func clampToBounds(candidate geom.Matrix, image Size, b geom.Bounds) (geom.Matrix, bool) {
	pts := candidate.MapPoints(geom.Corners(image.Width, image.Height))
	if violates(pts, b) {
		return candidate, false
	}

	if pts[0].X > b.Left {
		candidate = candidate.PostTranslate(b.Left-pts[0].X, 0)
	}
	if pts[0].Y > b.Top {
		candidate = candidate.PostTranslate(0, b.Top-pts[0].Y)
	}
	if pts[2].Y < b.Bottom {
		candidate = candidate.PostTranslate(0, b.Bottom-pts[2].Y)
	}
	if pts[1].X < b.Right {
		candidate = candidate.PostTranslate(b.Right-pts[1].X, 0)
	}

	pts = candidate.MapPoints(geom.Corners(image.Width, image.Height))
	return candidate, !violates(pts, b)
}

// violates reports whether mapped corners (top-left, top-right,
// bottom-right, bottom-left) fail to cover b. Edge alignment is compared on
// values truncated toward zero.
func violates(pts []geom.Point, b geom.Bounds) bool {
	left, top := pts[0].X, pts[0].Y
	right, bottom := pts[1].X, pts[2].Y

	return (left > b.Left && right < b.Right) ||
		(top > b.Top && bottom < b.Bottom) ||
		(trunc(left) == trunc(b.Left) && right < b.Right) ||
		(trunc(top) == trunc(b.Top) && bottom < b.Bottom) ||
		(left > b.Left && trunc(right) == trunc(b.Right)) ||
		(top > b.Top && trunc(bottom) == trunc(b.Bottom))
}

func trunc(v float64) int64 {
	return int64(v)
}
