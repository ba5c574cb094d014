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

package plot

import (
	"math"

	"seehuhn.de/go/geom/rect"
)

// Strategy selects how the curves of a plot are drawn.
type Strategy int

const (
	// Vector draws every curve directly onto the output surface.
	Vector Strategy = iota

	// Raster draws all curves into an off-screen bitmap, which is then
	// scaled onto the output surface.
	Raster

	autoStrategy Strategy = -1
)

func (s Strategy) String() string {
	if s == Raster {
		return "raster"
	}
	return "vector"
}

// Limits above which plots are rasterized.
const (
	MaxVectorElements = 100000
	MaxVectorCurves   = 64
)

// oversample is the bitmap resolution relative to 96 dpi.
const oversample = 1.8

// SelectStrategy chooses between vector and raster drawing for a plot with
// the given total number of path elements and the given number of curves.
func SelectStrategy(elements, curves int) Strategy {
	if elements <= MaxVectorElements && curves <= MaxVectorCurves {
		return Vector
	}
	return Raster
}

// BitmapSize returns the pixel size of the off-screen bitmap for the
// device rectangle r on a device with the given resolution.  The bitmap
// is never smaller than one pixel in each direction.
func BitmapSize(r rect.Rect, dpi float64) (w, h int) {
	w = int(math.Round(oversample * (r.URx - r.LLx) / dpi * 96))
	h = int(math.Round(oversample * (r.URy - r.LLy) / dpi * 96))
	return max(w, 1), max(h, 1)
}
