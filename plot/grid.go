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
	"slices"

	"github.com/aclements/go-moremath/scale"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/style"
	"seehuhn.de/go/curveplot/surface"
)

// gridAlpha is the opacity of grid lines.
const gridAlpha = 40

// GridTicks returns the grid positions between lo and hi, in plot units.
// On a logarithmic axis, plot units are base-10 logarithms and explicit
// ticks are given in data units.  maxTicks limits the number of major
// ticks; logarithmic axes also get the minor ticks between them.
func GridTicks(lo, hi float64, log bool, explicit []float64, maxTicks int) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if len(explicit) > 0 {
		var res []float64
		for _, v := range explicit {
			if log {
				if !(v > 0) {
					continue
				}
				v = math.Log10(v)
			}
			if v >= lo && v <= hi {
				res = append(res, v)
			}
		}
		return res
	}
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}

	o := scale.TickOptions{Max: max(maxTicks, 2)}
	var ticks []float64
	if log {
		s, err := scale.NewLog(math.Pow(10, lo), math.Pow(10, hi), 10)
		if err != nil {
			return nil
		}
		major, minor := s.Ticks(o)
		for _, v := range append(major, minor...) {
			ticks = append(ticks, math.Log10(v))
		}
		slices.Sort(ticks)
		ticks = slices.CompactFunc(ticks, func(a, b float64) bool {
			return math.Abs(a-b) < 1e-9
		})
	} else {
		ticks, _ = scale.Linear{Min: lo, Max: hi}.Ticks(o)
	}

	// Ticks within rounding distance of the range are snapped to it.
	eps := (hi - lo) * 1e-9
	var res []float64
	for _, v := range ticks {
		switch {
		case v >= lo-eps && v < lo:
			v = lo
		case v <= hi+eps && v > hi:
			v = hi
		}
		if v >= lo && v <= hi {
			res = append(res, v)
		}
	}
	return res
}

// GridLines returns the endpoints of the vertical and horizontal grid
// lines for the math rectangle m, mapped to device space by t.  Each pair
// of consecutive points is one line.
func GridLines(t affine.Transform, m rect.Rect, xTicks, yTicks []float64) (vLines, hLines []vec.Vec2) {
	for _, x := range xTicks {
		vLines = append(vLines,
			t.Map(vec.Vec2{X: x, Y: m.LLy}),
			t.Map(vec.Vec2{X: x, Y: m.URy}))
	}
	for _, y := range yTicks {
		hLines = append(hLines,
			t.Map(vec.Vec2{X: m.LLx, Y: y}),
			t.Map(vec.Vec2{X: m.URx, Y: y}))
	}
	return vLines, hLines
}

// paintGrid draws the grid lines of the plot for the visible math
// rectangle m.  Anti-aliasing is switched off while the grid is drawn.
func (p *Painter) paintGrid(s surface.Surface, t affine.Transform, m rect.Rect) {
	pl := p.Plot
	met := s.Metrics()
	dev := t.MapRect(m)

	xCount := int((dev.URx - dev.LLx) / (10 * met.XHeight))
	yCount := int((dev.URy - dev.LLy) / (5 * met.XHeight))
	logX, logY := p.logAxes()
	xTicks := GridTicks(m.LLx, m.URx, logX, pl.XTicks, xCount)
	yTicks := GridTicks(m.LLy, m.URy, logY, pl.YTicks, yCount)
	vLines, hLines := GridLines(t, m, xTicks, yTicks)

	pen := surface.Pen{
		Color: style.WithAlpha(p.Book.Foreground, gridAlpha),
		Width: max(math.Floor(met.XHeight/7), style.MinWidth),
		Dash:  []float64{4, 4},
		Cap:   graphics.LineCapButt,
		Join:  graphics.LineJoinMiter,
	}
	if logX || logY {
		pen.Dash = []float64{1, 1}
	}

	aa := s.Antialias()
	s.SetAntialias(false)
	if len(hLines) > 0 {
		s.StrokePath(surface.Lines(hLines...), matrix.Identity, pen)
	}
	if len(vLines) > 0 {
		s.StrokePath(surface.Lines(vLines...), matrix.Identity, pen)
	}
	s.SetAntialias(aa)
}
