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

// Package plot draws the curves of one plot, together with grid lines and
// a legend, onto a [surface.Surface].
package plot

import (
	"fmt"
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/curve"
	"seehuhn.de/go/curveplot/merge"
	"seehuhn.de/go/curveplot/surface"
)

// Painter draws one plot of a book.
type Painter struct {
	Book *Book
	Page *Page
	Plot *Plot
}

// Paint draws the plot into the device rectangle r.  The math rectangle m
// is placed onto the grid region rg, which lies inside r.  On logarithmic
// axes, m is given in base-10 logarithms.
//
// The configuration is only read.  Paint returns a *ConfigError if the data
// of an error plot is missing and a *merge.InconsistencyError if the time
// stamps of an error plot cannot be aligned.
func (p *Painter) Paint(s surface.Surface, r, rg, m rect.Rect) error {
	rm := affine.Extend(r, rg, m)
	t := affine.Build(r, rm)

	s.Save()
	defer s.Restore()
	s.Clip(r)

	pl := p.Plot
	if len(pl.Curves) == 2 {
		if pl.Presentation != Compare && (pl.LogX || pl.LogY) {
			Logger().Debug("log axes ignored for difference plot", "plot", pl.Title)
		}
		switch pl.Presentation {
		case Error:
			if err := p.paintError(s, t); err != nil {
				return err
			}
		case ErrorCompare:
			if err := p.paintError(s, t); err != nil {
				return err
			}
			if err := p.paintCurves(s, t, r, rm, Vector); err != nil {
				return err
			}
		default:
			if err := p.paintCurves(s, t, r, rm, Vector); err != nil {
				return err
			}
		}
	} else if err := p.paintCurves(s, t, r, rm, autoStrategy); err != nil {
		return err
	}

	if pl.Grid {
		p.paintGrid(s, t, m)
	}
	if p.LegendVisible() {
		p.paintLegend(s, r, p.Book.LegendPosition)
	}
	return nil
}

// logAxes returns which axes are drawn logarithmically.  Difference
// curves can be negative, so the log settings are ignored when a
// two-curve plot shows the difference.
func (p *Painter) logAxes() (x, y bool) {
	pl := p.Plot
	if len(pl.Curves) == 2 && pl.Presentation != Compare {
		return false, false
	}
	return pl.LogX, pl.LogY
}

// dataCurves returns the number of curves which have data.
func (p *Painter) dataCurves() int {
	n := 0
	for _, c := range p.Plot.Curves {
		if c.Data != nil {
			n++
		}
	}
	return n
}

// mapping returns the sample mapping of curve i into plot units.
func (p *Painter) mapping(i int) affine.Mapping {
	logX, logY := p.logAxes()
	return affine.Mapping{
		Base:  affine.Identity,
		Scale: p.Plot.Curves[i].Scale,
		LogX:  logX,
		LogY:  logY,
	}
}

// paintCurves draws all curves of the plot.  With autoStrategy, the
// strategy is chosen from the size of the curves.
func (p *Painter) paintCurves(s surface.Surface, t affine.Transform, r, rm rect.Rect, strategy Strategy) error {
	log := Logger()
	pl := p.Plot

	paths := make([]*curve.Curve, len(pl.Curves))
	total, drawn := 0, 0
	for i, c := range pl.Curves {
		if c.Data == nil {
			log.Debug("curve has no data", "label", c.Label)
			continue
		}
		cv, err := curve.BuildPath(c.Data, curve.Options{
			Mapping: p.mapping(i),
			Start:   p.Book.Start,
			Stop:    p.Book.Stop,
		})
		if err != nil {
			return fmt.Errorf("curve %q: %w", c.Label, err)
		}
		if cv.Skipped > 0 {
			log.Debug("non-positive samples on log axis",
				"label", c.Label, "skipped", cv.Skipped)
		}
		paths[i] = cv
		total += cv.Points
		drawn++
	}

	if strategy == autoStrategy {
		strategy = SelectStrategy(total, len(pl.Curves))
	}
	log.Debug("drawing curves",
		"plot", pl.Title, "curves", len(pl.Curves), "elements", total, "strategy", strategy)

	if strategy == Vector {
		xh := s.Metrics().XHeight
		rd := &curve.Renderer{
			Surface:  s,
			Widths:   curve.VectorWidths(drawn, xh),
			XHeight:  xh,
			Decorate: true,
		}
		for i, cv := range paths {
			rd.Draw(cv, t.M, pl.Curves[i].Style)
		}
		return nil
	}

	w, h := BitmapSize(r, s.DPI())
	log.Debug("off-screen bitmap", "width", w, "height", h)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bs := surface.NewImage(img, nil, 96*oversample)
	bs.Fill(p.Book.Background)
	bs.SetAntialias(true)
	tb := affine.Build(rect.Rect{URx: float64(w), URy: float64(h)}, rm)
	rd := &curve.Renderer{Surface: bs, Widths: curve.RasterWidths()}
	for i, cv := range paths {
		rd.Draw(cv, tb.M, pl.Curves[i].Style)
	}
	s.DrawImage(r, img)
	return nil
}

// difference returns the difference curve of a two-curve plot, in data
// units.
func (p *Painter) difference() ([]vec.Vec2, error) {
	b := p.Book
	c0, c1 := p.Plot.Curves[0], p.Plot.Curves[1]
	for _, c := range []*Curve{c0, c1} {
		if c.Data == nil {
			return nil, &ConfigError{Field: "error plot curve", Value: c.Label, Err: merge.ErrMissingData}
		}
	}

	a, bs := merge.ScaleFactors(c0.Scale.YS, c0.YFactor, c1.Scale.YS, c1.YFactor)
	pts, err := merge.Difference(c0.Data, c1.Data, merge.Options{
		Tolerance: b.Tolerance,
		Start:     b.Start,
		Stop:      b.Stop,
		ScaleA:    a,
		ScaleB:    bs,
	})
	if err != nil {
		return nil, fmt.Errorf("error plot %q: %w", p.Plot.Title, err)
	}
	return pts, nil
}

// paintError draws the difference of the two curves of the plot.
func (p *Painter) paintError(s surface.Surface, t affine.Transform) error {
	b := p.Book
	pts, err := p.difference()
	if err != nil {
		return err
	}

	cv := curve.BuildErrorPath(pts, affine.Identity)
	if cv.Points == 0 {
		Logger().Debug("error plot has no matching samples", "plot", p.Plot.Title)
		return nil
	}
	col := b.ErrorLineColor
	if cv.Flat() && cv.FlatValue == 0 {
		col = b.FlatLineColor
	}
	xh := s.Metrics().XHeight
	s.StrokePath(cv.Path, t.M, surface.Pen{
		Color: col,
		Width: ErrorLineWidth(xh),
		Cap:   graphics.LineCapSquare,
		Join:  graphics.LineJoinBevel,
	})
	if cv.Flat() {
		rd := &curve.Renderer{Surface: s, XHeight: xh}
		rd.Label(cv, t.M, curve.ErrorFlatlineLabel(cv.FlatValue), col, 0)
	}
	return nil
}

// ErrorLineWidth returns the pen width of difference curves.
func ErrorLineWidth(xHeight float64) float64 {
	return max(2*xHeight/3, 1)
}
