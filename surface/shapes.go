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

package surface

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Circle returns a closed polygon approximating the circle with the given
// center and radius, in device pixels.  The polygon deviates from the
// circle by less than a quarter of a pixel.
func Circle(c vec.Vec2, r float64) *path.Data {
	const flatness = 0.25
	n := 8
	if r > flatness {
		step := 2 * math.Acos(1-flatness/r)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	p := (&path.Data{}).MoveTo(vec.Vec2{X: c.X + r, Y: c.Y})
	for i := 1; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		p = p.LineTo(vec.Vec2{X: c.X + r*math.Cos(phi), Y: c.Y + r*math.Sin(phi)})
	}
	return p.Close()
}

// Rect returns the outline of r as a closed path.
func Rect(r rect.Rect) *path.Data {
	return Polygon(
		vec.Vec2{X: r.LLx, Y: r.LLy},
		vec.Vec2{X: r.URx, Y: r.LLy},
		vec.Vec2{X: r.URx, Y: r.URy},
		vec.Vec2{X: r.LLx, Y: r.URy},
	)
}

// Polygon returns a closed path through the given points.
func Polygon(pts ...vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, q := range pts {
		if i == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p.Close()
}

// Lines returns a path with one separate subpath per pair of points.
func Lines(pts ...vec.Vec2) *path.Data {
	p := &path.Data{}
	for i := 0; i+1 < len(pts); i += 2 {
		p = p.MoveTo(pts[i]).LineTo(pts[i+1])
	}
	return p
}
