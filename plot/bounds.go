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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/sample"
)

// MathRect returns the data rectangle shown by the plot, in plot units:
// base-10 logarithms on logarithmic axes.  Axes without a configured range
// cover the drawn data inside the time window.  Empty or degenerate ranges
// are widened so that the result can be mapped onto a device rectangle.
func (p *Painter) MathRect() (rect.Rect, error) {
	pl := p.Plot
	b := extent{
		xMin: math.Inf(1), xMax: math.Inf(-1),
		yMin: math.Inf(1), yMax: math.Inf(-1),
	}
	if pl.XRange == nil || pl.YRange == nil {
		if err := p.dataExtent(&b); err != nil {
			return rect.Rect{}, err
		}
	}
	logX, logY := p.logAxes()
	if pl.XRange != nil {
		b.xMin, b.xMax = axisRange(*pl.XRange, logX)
	}
	if pl.YRange != nil {
		b.yMin, b.yMax = axisRange(*pl.YRange, logY)
	}
	xMin, xMax := widen(b.xMin, b.xMax)
	yMin, yMax := widen(b.yMin, b.yMax)
	return rect.Rect{LLx: xMin, LLy: yMin, URx: xMax, URy: yMax}, nil
}

type extent struct {
	xMin, xMax, yMin, yMax float64
}

func (e *extent) add(q vec.Vec2) {
	e.xMin, e.xMax = min(e.xMin, q.X), max(e.xMax, q.X)
	e.yMin, e.yMax = min(e.yMin, q.Y), max(e.yMax, q.Y)
}

// dataExtent extends e by everything the plot draws: the difference curve
// of two-curve error plots and the curves themselves unless only the
// difference is shown.
func (p *Painter) dataExtent(e *extent) error {
	pl := p.Plot
	if len(pl.Curves) == 2 && pl.Presentation != Compare && p.hasData() {
		pts, err := p.difference()
		if err != nil {
			return err
		}
		for _, q := range pts {
			e.add(q)
		}
		if pl.Presentation == Error {
			return nil
		}
	}

	for i, c := range pl.Curves {
		if c.Data == nil {
			continue
		}
		m := p.mapping(i)
		err := sample.Each(c.Data, func(s sample.Sample) error {
			if s.T < p.Book.Start || s.T > p.Book.Stop {
				return nil
			}
			if q, ok := m.Map(s.X, s.Y); ok {
				e.add(q)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Painter) hasData() bool {
	for _, c := range p.Plot.Curves {
		if c.Data == nil {
			return false
		}
	}
	return true
}

func axisRange(r Range, log bool) (float64, float64) {
	lo, hi := min(r.Min, r.Max), max(r.Min, r.Max)
	if log {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	return lo, hi
}

// widen makes sure that lo < hi, both finite.
func widen(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo > hi {
		return 0, 1
	}
	if lo == hi {
		d := math.Abs(lo) / 10
		if d == 0 {
			d = 1
		}
		return lo - d, hi + d
	}
	return lo, hi
}
