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

package curve

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/style"
	"seehuhn.de/go/curveplot/surface"
)

// Widths are the pen sizes used for the line styles, in device pixels.
type Widths struct {
	Line       float64 // plain lines, zero for hairlines
	Thick      float64
	ExtraThick float64
	Scatter    float64 // radius of scatter dots
}

// VectorWidths returns the pen sizes for a plot with n curves, drawn
// directly onto the output surface.
func VectorWidths(n int, xHeight float64) Widths {
	w := style.BaseWidth(n, xHeight)
	return Widths{
		Line:       w,
		Thick:      w * style.Multiplier(style.Thick),
		ExtraThick: w * style.Multiplier(style.ExtraThick),
		Scatter:    w,
	}
}

// RasterWidths returns the pen sizes used inside the off-screen bitmap of
// a plot with many curves.
func RasterWidths() Widths {
	return Widths{
		Line:       0,
		Thick:      5,
		ExtraThick: 9,
		Scatter:    3,
	}
}

// Renderer draws curves onto a surface.
type Renderer struct {
	Surface surface.Surface
	Widths  Widths

	// XHeight sets the size of symbols and the symbol spacing.
	XHeight float64

	// Decorate enables symbols and flatline labels.
	Decorate bool
}

// Draw draws c in the given style.  The path of c is mapped to device
// space by ctm.
func (r *Renderer) Draw(c *Curve, ctm matrix.Matrix, st style.Style) {
	if c == nil || c.Points == 0 {
		return
	}
	s := r.Surface
	pen := surface.Pen{
		Color: st.Color,
		Cap:   graphics.LineCapSquare,
		Join:  graphics.LineJoinBevel,
	}

	switch st.Line {
	case style.Thick, style.ExtraThick:
		pen.Width = r.Widths.Thick
		if st.Line == style.ExtraThick {
			pen.Width = r.Widths.ExtraThick
		}
		pts := c.Vertices(ctm)
		if len(pts) == 1 {
			pts = append(pts, pts[0])
		}
		seg := make([]vec.Vec2, 0, 2*(len(pts)-1))
		for i := 1; i < len(pts); i++ {
			seg = append(seg, pts[i-1], pts[i])
		}
		s.StrokePath(surface.Lines(seg...), matrix.Identity, pen)
	case style.Scatter:
		dots := &path.Data{}
		for _, p := range c.Vertices(ctm) {
			dot := surface.Circle(p, r.Widths.Scatter)
			dots.Cmds = append(dots.Cmds, dot.Cmds...)
			dots.Coords = append(dots.Coords, dot.Coords...)
		}
		s.FillPath(dots, matrix.Identity, st.Color)
	default:
		pen.Width = r.Widths.Line
		if len(st.Dash) > 0 {
			unit := max(pen.Width, style.MinWidth)
			pen.Dash = make([]float64, len(st.Dash))
			for i, d := range st.Dash {
				pen.Dash[i] = d * unit
			}
		}
		s.StrokePath(c.Path, ctm, pen)
	}

	if !r.Decorate {
		return
	}
	if st.Symbol != style.NoSymbol {
		pts := PlaceSymbols(c.Vertices(ctm), 3*r.XHeight)
		for _, p := range pts {
			DrawSymbol(s, p, st.Symbol, st.Color, r.XHeight)
		}
	}
	if c.Flat() {
		r.Label(c, ctm, FlatlineLabel(c.FlatValue), st.Color, r.XHeight)
	}
}

// Label draws text above the bounding box of c.  The baseline is placed
// gap pixels above the descent line of the text.
func (r *Renderer) Label(c *Curve, ctm matrix.Matrix, text string, col color.NRGBA, gap float64) {
	box := DeviceBBox(c, ctm)
	m := r.Surface.Metrics()
	pos := vec.Vec2{X: box.LLx, Y: box.LLy - m.Descent - gap}
	r.Surface.DrawText(pos, text, surface.TextStyle{Color: col})
}

// DeviceBBox returns the bounding box of c in device space.
func DeviceBBox(c *Curve, ctm matrix.Matrix) rect.Rect {
	return affine.Transform{M: ctm}.MapRect(c.BBox)
}

// PlaceSymbols selects the points where symbols are drawn.  The first
// point is always used.  A later point is skipped if it lies inside or on
// the boundary of the square of side length spacing centered on the last
// selected point.
func PlaceSymbols(pts []vec.Vec2, spacing float64) []vec.Vec2 {
	var res []vec.Vec2
	h := spacing / 2
	for i, p := range pts {
		if i > 0 {
			last := res[len(res)-1]
			if p.X >= last.X-h && p.X <= last.X+h && p.Y >= last.Y-h && p.Y <= last.Y+h {
				continue
			}
		}
		res = append(res, p)
	}
	return res
}
