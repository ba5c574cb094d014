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
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/curve"
	"seehuhn.de/go/curveplot/style"
	"seehuhn.de/go/curveplot/surface"
)

// maxLegendEntries is the largest number of curves for which a legend is
// shown automatically.
const maxLegendEntries = 7

const legendAlpha = 190

var legendBorder = color.NRGBA{R: 120, G: 120, B: 120, A: 255}

// LegendEntry describes one line of a legend.
type LegendEntry struct {
	Pen    surface.Pen
	Symbol style.Symbol
	Label  string
}

// LegendRow is the geometry of one legend entry, in device space.
type LegendRow struct {
	// Line is the sample line.  Symbols are drawn at both ends.
	Line [2]vec.Vec2

	// Label is the top-left corner of the label.
	Label vec.Vec2
}

// Legend is the geometry of a legend box.
type Legend struct {
	Box  rect.Rect
	Rows []LegendRow
}

// LegendVisible reports whether the plot gets a legend.
func (p *Painter) LegendVisible() bool {
	show := p.Book.ShowLegend
	n := len(p.Plot.Curves)
	switch {
	case show == LegendNo:
		return false
	case show == LegendAuto && (n <= 1 || n > maxLegendEntries):
		return false
	case show != LegendYes && p.Page != nil && len(p.Page.Plots) >= 2 && p.Page.LegendsSame():
		return false
	case n == 2 && p.Plot.Presentation == Error:
		return false
	}
	return true
}

// LegendsSame reports whether all plots on the page have identical
// legends: the same number of curves with the same labels and styles.
func (pg *Page) LegendsSame() bool {
	if len(pg.Plots) == 0 {
		return false
	}
	first := pg.Plots[0]
	for _, pl := range pg.Plots[1:] {
		if len(pl.Curves) != len(first.Curves) || pl.Presentation != first.Presentation {
			return false
		}
		for i, c := range pl.Curves {
			f := first.Curves[i]
			if c.Label != f.Label || !c.Style.Equal(f.Style) {
				return false
			}
		}
	}
	return true
}

// LegendEntries returns the legend entries of the plot, using the given
// pen sizes.  Plots with the error+compare presentation get an additional
// "error" entry.
func (p *Painter) LegendEntries(w curve.Widths) []LegendEntry {
	pl := p.Plot
	res := make([]LegendEntry, 0, len(pl.Curves)+1)
	for _, c := range pl.Curves {
		pen := surface.Pen{Color: c.Style.Color, Width: w.Line}
		switch c.Style.Line {
		case style.Thick:
			pen.Width = w.Thick
		case style.ExtraThick:
			pen.Width = w.ExtraThick
		}
		if len(c.Style.Dash) > 0 {
			unit := max(pen.Width, style.MinWidth)
			for _, d := range c.Style.Dash {
				pen.Dash = append(pen.Dash, d*unit)
			}
		}
		res = append(res, LegendEntry{Pen: pen, Symbol: c.Style.Symbol, Label: c.Label})
	}
	if pl.Presentation == ErrorCompare {
		res = append(res, LegendEntry{
			Pen:   surface.Pen{Color: p.Book.ErrorLineColor, Width: w.Line},
			Label: "error",
		})
	}
	return res
}

// LayoutLegend computes the legend box for the given labels inside r.
func LayoutLegend(s surface.Surface, labels []string, r rect.Rect, pos LegendPosition) Legend {
	m := s.Metrics()
	fw := m.AvgCharWidth
	ml, mr, gap, l := fw, fw, fw, 4*fw
	v := m.LineSpacing / 8
	mt, mb := m.Height/4, m.Height/4

	var w, sumH float64
	heights := make([]float64, len(labels))
	for i, label := range labels {
		lw, lh := s.TextSize(label, false)
		w = max(w, ml+l+gap+lw+mr)
		heights[i] = lh
		sumH += lh
	}
	h := mt + mb + sumH
	if len(labels) > 1 {
		h += float64(len(labels)-1) * v
	}

	tb := m.Height / 4
	rl := fw / 2
	left := r.URx - w - rl
	switch pos {
	case North, South:
		left = r.LLx + (r.URx-r.LLx-w)/2
	case SouthWest, West, NorthWest:
		left = r.LLx + rl
	}
	top := r.LLy + tb
	switch pos {
	case East, West:
		top = r.LLy + (r.URy-r.LLy-h)/2
	case SouthEast, South, SouthWest:
		top = r.URy - h - tb
	}

	res := Legend{Box: rect.Rect{LLx: left, LLy: top, URx: left + w, URy: top + h}}
	y := top + mt
	for i := range labels {
		mid := y + heights[i]/2
		res.Rows = append(res.Rows, LegendRow{
			Line:  [2]vec.Vec2{{X: left + ml, Y: mid}, {X: left + ml + l, Y: mid}},
			Label: vec.Vec2{X: left + ml + l + gap, Y: y},
		})
		y += heights[i] + v
	}
	return res
}

// PageLegendVisible reports whether the page shows one legend in place of
// the identical legends of its plots.
func (pg *Page) PageLegendVisible(b *Book) bool {
	if b.ShowLegend != LegendAuto || len(pg.Plots) < 2 || !pg.LegendsSame() {
		return false
	}
	pl := pg.Plots[0]
	n := len(pl.Curves)
	if n <= 1 || n > maxLegendEntries {
		return false
	}
	return n != 2 || pl.Presentation != Error
}

// PageLegendHeight returns the height of the shared legend of the page.
func PageLegendHeight(s surface.Surface, b *Book, pg *Page) float64 {
	p := &Painter{Book: b, Page: pg, Plot: pg.Plots[0]}
	lg := LayoutLegend(s, p.legendLabels(), rect.Rect{}, NorthEast)
	return lg.Box.URy - lg.Box.LLy
}

// PaintPageLegend draws the shared legend of the page into the top-right
// corner of the header band r.
func PaintPageLegend(s surface.Surface, b *Book, pg *Page, r rect.Rect) {
	p := &Painter{Book: b, Page: pg, Plot: pg.Plots[0]}
	p.paintLegend(s, r, NorthEast)
}

func (p *Painter) legendLabels() []string {
	entries := p.LegendEntries(curve.Widths{})
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

// paintLegend draws the legend of the plot inside r.
func (p *Painter) paintLegend(s surface.Surface, r rect.Rect, pos LegendPosition) {
	xh := s.Metrics().XHeight
	entries := p.LegendEntries(curve.VectorWidths(p.dataCurves(), xh))
	lg := LayoutLegend(s, p.legendLabels(), r, pos)

	box := surface.Rect(lg.Box)
	s.FillPath(box, matrix.Identity, style.WithAlpha(p.Book.Background, legendAlpha))
	s.StrokePath(box, matrix.Identity, surface.Pen{Color: legendBorder})

	for i, e := range entries {
		row := lg.Rows[i]
		s.StrokePath(surface.Lines(row.Line[0], row.Line[1]), matrix.Identity, e.Pen)
		if e.Symbol != style.NoSymbol {
			curve.DrawSymbol(s, row.Line[0], e.Symbol, e.Pen.Color, xh)
			curve.DrawSymbol(s, row.Line[1], e.Symbol, e.Pen.Color, xh)
		}
		s.DrawText(row.Label, e.Label, surface.TextStyle{Color: e.Pen.Color, Anchor: surface.TopLeft})
	}
}
