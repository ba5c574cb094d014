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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/curveplot/style"
	"seehuhn.de/go/curveplot/surface"
)

// symbolGrid is the number of symbol units per x-height.  A plain circle
// has a diameter of 72 units, matching the symbol spacing of three
// x-heights.
const symbolGrid = 24

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// DrawSymbol draws a curve marker centered at the device point p.
func DrawSymbol(s surface.Surface, p vec.Vec2, sym style.Symbol, col color.NRGBA, xHeight float64) {
	u := xHeight / symbolGrid
	pen := func(w float64) surface.Pen {
		return surface.Pen{
			Color: col,
			Width: max(w, style.MinWidth),
			Cap:   graphics.LineCapSquare,
			Join:  graphics.LineJoinBevel,
		}
	}
	thin := pen(style.SymbolWidth(xHeight))
	stroke := func(d *path.Data, pen surface.Pen) {
		s.StrokePath(d, matrix.Identity, pen)
	}
	square := func(side float64) *path.Data {
		h := side / 2
		return surface.Rect(rect.Rect{LLx: p.X - h, LLy: p.Y - h, URx: p.X + h, URy: p.Y + h})
	}

	switch sym {
	case style.Circle:
		stroke(surface.Circle(p, 36*u), thin)
	case style.ThickCircle:
		stroke(surface.Circle(p, 32*u), pen(18*u))
	case style.SolidCircle:
		stroke(surface.Circle(p, 24*u), pen(18*u))
		stroke(surface.Circle(p, 12*u), pen(18*u))
	case style.Square:
		stroke(square(60*u), thin)
	case style.ThickSquare:
		stroke(square(60*u), pen(16*u))
	case style.SolidSquare:
		stroke(square(60*u), pen(16*u))
		stroke(square(24*u), pen(24*u))
	case style.Star:
		var pts []vec.Vec2
		for _, deg := range []float64{18, 90, 162, 234, 306} {
			phi := deg * math.Pi / 180
			pts = append(pts, p, vec.Vec2{X: p.X + 36*u*math.Cos(phi), Y: p.Y - 36*u*math.Sin(phi)})
		}
		stroke(surface.Lines(pts...), pen(12*u))
	case style.XX:
		d := 24 * u
		stroke(surface.Lines(
			p, vec.Vec2{X: p.X - d, Y: p.Y - d},
			p, vec.Vec2{X: p.X + d, Y: p.Y - d},
			p, vec.Vec2{X: p.X - d, Y: p.Y + d},
			p, vec.Vec2{X: p.X + d, Y: p.Y + d},
		), pen(12*u))
	case style.Triangle:
		tp := thin
		tp.Join = graphics.LineJoinMiter
		stroke(triangle(p, 48*u), tp)
	case style.ThickTriangle:
		stroke(triangle(p, 48*u), pen(24*u))
	case style.SolidTriangle:
		stroke(triangle(p, 36*u), pen(36*u))
	default:
		digit, ok := sym.Digit()
		if !ok {
			return
		}
		label := string(digit)
		w, h := s.TextSize(label, true)
		d := 3 * max(w, h) / 2
		s.FillPath(surface.Circle(p, d/2), matrix.Identity, col)
		s.DrawText(p, label, surface.TextStyle{Color: white, Anchor: surface.Center, Small: true})
	}
}

// triangle returns an upward pointing equilateral triangle with the given
// circumradius.
func triangle(c vec.Vec2, r float64) *path.Data {
	dx := r * math.Cos(math.Pi/6)
	dy := r * math.Sin(math.Pi/6)
	return surface.Polygon(
		vec.Vec2{X: c.X, Y: c.Y - r},
		vec.Vec2{X: c.X - dx, Y: c.Y + dy},
		vec.Vec2{X: c.X + dx, Y: c.Y + dy},
	)
}
