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

// Package surface defines the drawing target of the curve renderer and
// provides a raster implementation, writing into an [image.RGBA], and a
// vector implementation, writing SVG.
package surface

import (
	"image"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Pen describes how lines are stroked.
type Pen struct {
	Color color.NRGBA

	// Width is the line width in device pixels.  Zero selects a hairline,
	// one device pixel wide.
	Width float64

	// Dash is a dash pattern in device pixels, or nil for a solid line.
	Dash []float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle
}

// Anchor selects which point of a text string is placed at the position
// given to [Surface.DrawText].
type Anchor int

const (
	// Baseline places the left end of the baseline.
	Baseline Anchor = iota

	// TopLeft places the top-left corner of the line box.
	TopLeft

	// Center places the center of the ink bounding box.
	Center
)

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Color  color.NRGBA
	Anchor Anchor

	// Small selects the small font used inside numbered symbols.
	Small bool
}

// Metrics describe the regular font of a surface, in device pixels.
type Metrics struct {
	Height       float64 // ascent plus descent
	Ascent       float64
	Descent      float64
	XHeight      float64
	LineSpacing  float64
	AvgCharWidth float64
}

// Surface is a drawing target in device space, with the origin in the
// top-left corner and y pointing down.
//
// Paths passed to a Surface are mapped to device space by the given CTM
// before they are stroked or filled.  Pen widths and dash lengths are
// always in device pixels, independent of the CTM.
type Surface interface {
	// Bounds returns the device rectangle covered by the surface.
	Bounds() rect.Rect

	// DPI returns the device resolution in pixels per inch.
	DPI() float64

	// Save pushes the clip rectangle and anti-aliasing setting.
	Save()

	// Restore pops the state pushed by the matching call to Save.
	Restore()

	// Clip intersects the current clip rectangle with r.
	Clip(r rect.Rect)

	Antialias() bool
	SetAntialias(on bool)

	StrokePath(p *path.Data, ctm matrix.Matrix, pen Pen)
	FillPath(p *path.Data, ctm matrix.Matrix, c color.NRGBA)

	DrawText(pos vec.Vec2, s string, ts TextStyle)

	// TextSize returns the advance width and the line height of s.
	TextSize(s string, small bool) (w, h float64)

	Metrics() Metrics

	// DrawImage scales img into the device rectangle dst.
	DrawImage(dst rect.Rect, img image.Image)
}

// MapPath returns a copy of p with all coordinates mapped by m.
func MapPath(p *path.Data, m matrix.Matrix) *path.Data {
	res := &path.Data{
		Cmds:   slices.Clone(p.Cmds),
		Coords: make([]vec.Vec2, len(p.Coords)),
	}
	for i, c := range p.Coords {
		res.Coords[i] = vec.Vec2{
			X: m[0]*c.X + m[2]*c.Y + m[4],
			Y: m[1]*c.X + m[3]*c.Y + m[5],
		}
	}
	return res
}

// intersect returns the intersection of two rectangles.  The result may
// be empty, with URx < LLx or URy < LLy.
func intersect(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: max(a.LLx, b.LLx), LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx), URy: min(a.URy, b.URy),
	}
}
