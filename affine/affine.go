// seehuhn.de/go/curveplot - overlaid time-series curve rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package affine maps data coordinates to device coordinates.
//
// Device space has its origin in the top-left corner with y pointing down.
// Rectangles in device space use LLx/LLy for the left/top and URx/URy for
// the right/bottom edge.  Rectangles in data ("math") space use the usual
// orientation, LLx/LLy being the minimum and URx/URy the maximum values.
package affine

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Transform is an affine map (x, y) -> (a*x+c*y+e, b*x+d*y+f), stored as
// the matrix [a b c d e f].
type Transform struct {
	M matrix.Matrix
}

// Identity maps every point to itself.
var Identity = Transform{M: matrix.Identity}

// Build returns the transform which maps the math rectangle onto the device
// rectangle.  The top-left corner of the device rectangle corresponds to
// the point (xmin, ymax), the bottom-right corner to (xmax, ymin).
//
// Build panics if the math rectangle has zero width or height.
func Build(device, mathRect rect.Rect) Transform {
	mw := mathRect.URx - mathRect.LLx
	mh := mathRect.URy - mathRect.LLy
	if mw == 0 || mh == 0 {
		panic(fmt.Sprintf("affine: degenerate math rectangle %v", mathRect))
	}
	a := (device.URx - device.LLx) / mw
	d := -(device.URy - device.LLy) / mh
	return Transform{M: matrix.Matrix{
		a, 0,
		0, d,
		device.LLx - a*mathRect.LLx,
		device.LLy - d*mathRect.URy,
	}}
}

// Compose returns the transform which first scales and biases a point,
// (x, y) -> (xs*x+xb, ys*y+yb), and then applies t.
func (t Transform) Compose(xs, ys, xb, yb float64) Transform {
	m := t.M
	return Transform{M: matrix.Matrix{
		m[0] * xs, m[1] * xs,
		m[2] * ys, m[3] * ys,
		m[0]*xb + m[2]*yb + m[4],
		m[1]*xb + m[3]*yb + m[5],
	}}
}

// Then returns the transform which applies t first and then u.
func (t Transform) Then(u Transform) Transform {
	a, b := t.M, u.M
	return Transform{M: matrix.Matrix{
		b[0]*a[0] + b[2]*a[1], b[1]*a[0] + b[3]*a[1],
		b[0]*a[2] + b[2]*a[3], b[1]*a[2] + b[3]*a[3],
		b[0]*a[4] + b[2]*a[5] + b[4], b[1]*a[4] + b[3]*a[5] + b[5],
	}}
}

// Map applies the transform to a point.
func (t Transform) Map(p vec.Vec2) vec.Vec2 {
	m := &t.M
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// MapRect maps the corners of r and returns their bounding box.
func (t Transform) MapRect(r rect.Rect) rect.Rect {
	p := t.Map(vec.Vec2{X: r.LLx, Y: r.LLy})
	q := t.Map(vec.Vec2{X: r.URx, Y: r.URy})
	return rect.Rect{
		LLx: min(p.X, q.X), LLy: min(p.Y, q.Y),
		URx: max(p.X, q.X), URy: max(p.Y, q.Y),
	}
}

// Inverse returns the inverse transform.  The second return value is false
// if t is singular.
func (t Transform) Inverse() (Transform, bool) {
	m := t.M
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) {
		return Transform{}, false
	}
	a := m[3] / det
	b := -m[1] / det
	c := -m[2] / det
	d := m[0] / det
	return Transform{M: matrix.Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}}, true
}

// Scale returns the device length of a unit step along the x and y axes.
func (t Transform) Scale() (sx, sy float64) {
	return math.Hypot(t.M[0], t.M[1]), math.Hypot(t.M[2], t.M[3])
}

// IsUniform reports whether t scales both axes by the same amount, up to
// a relative error of 1e-9.
func (t Transform) IsUniform() bool {
	sx, sy := t.Scale()
	return math.Abs(sx-sy) <= 1e-9*max(sx, sy)
}

// Extend returns the math rectangle which, mapped onto the device
// rectangle R, places the math rectangle M exactly onto the device
// rectangle RG.  RG is normally the part of R left over after margins.
func Extend(R, RG, M rect.Rect) rect.Rect {
	gw := RG.URx - RG.LLx
	gh := RG.URy - RG.LLy
	if gw == 0 || gh == 0 {
		return M
	}
	// math units per device pixel
	kx := (M.URx - M.LLx) / gw
	ky := (M.URy - M.LLy) / gh
	return rect.Rect{
		LLx: M.LLx - kx*(RG.LLx-R.LLx),
		URx: M.URx + kx*(R.URx-RG.URx),
		LLy: M.LLy - ky*(R.URy-RG.URy),
		URy: M.URy + ky*(RG.LLy-R.LLy),
	}
}
