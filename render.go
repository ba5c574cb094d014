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

// Package curveplot renders pages of overlaid time-series plots into PNG
// images or SVG documents.
//
// The configuration of a book is usually read with the config package.
// Each page is laid out as a column of plots, and every plot is drawn by
// [plot.Painter].
package curveplot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/plot"
	"seehuhn.de/go/curveplot/surface"
)

// Options describe the output device.
type Options struct {
	// Width and Height give the page size in device pixels.
	Width, Height int

	// DPI is the device resolution.
	DPI float64

	// FontSize is the size of the regular font in points.
	FontSize float64
}

// DefaultOptions are used for zero fields of an Options value.
var DefaultOptions = Options{
	Width:    800,
	Height:   600,
	DPI:      96,
	FontSize: 10,
}

func (o *Options) withDefaults() Options {
	res := DefaultOptions
	if o == nil {
		return res
	}
	if o.Width > 0 {
		res.Width = o.Width
	}
	if o.Height > 0 {
		res.Height = o.Height
	}
	if o.DPI > 0 {
		res.DPI = o.DPI
	}
	if o.FontSize > 0 {
		res.FontSize = o.FontSize
	}
	return res
}

// Region is the area allotted to one plot.
type Region struct {
	// R is the area covered by the curves.
	R rect.Rect

	// RG is the grid region inside R, where the data range of the plot
	// is shown.
	RG rect.Rect

	// Title is the baseline start of the plot title.
	Title vec.Vec2
}

// Layout divides the device rectangle page into regions for n plots,
// stacked vertically below a header band of the given height.  The header
// holds the page title and the shared legend.
func Layout(page rect.Rect, n int, m surface.Metrics, header float64) []Region {
	if n <= 0 {
		return nil
	}
	margin := m.LineSpacing / 2
	top := page.LLy + margin + header
	bottom := page.URy - margin
	h := (bottom - top) / float64(n)

	res := make([]Region, n)
	for i := range res {
		y0 := top + float64(i)*h
		r := rect.Rect{
			LLx: page.LLx + margin,
			LLy: y0 + m.LineSpacing,
			URx: page.URx - margin,
			URy: y0 + h - margin/2,
		}
		inset := m.XHeight
		res[i] = Region{
			R: r,
			RG: rect.Rect{
				LLx: r.LLx + inset, LLy: r.LLy + inset,
				URx: r.URx - inset, URy: r.URy - inset,
			},
			Title: vec.Vec2{X: r.LLx, Y: y0 + m.Ascent},
		}
	}
	return res
}

// RenderPage draws one page of the book onto s.  The surface must already
// be filled with the page background.
func RenderPage(s surface.Surface, b *plot.Book, pg *plot.Page) error {
	m := s.Metrics()
	bounds := s.Bounds()
	fg := surface.TextStyle{Color: b.Foreground}

	if pg.Title != "" {
		w, _ := s.TextSize(pg.Title, false)
		pos := vec.Vec2{X: (bounds.LLx + bounds.URx - w) / 2, Y: bounds.LLy + m.LineSpacing/2 + m.Ascent}
		s.DrawText(pos, pg.Title, fg)
	}

	var header float64
	if pg.Title != "" {
		header = m.LineSpacing
	}
	if pg.PageLegendVisible(b) {
		header = max(header, plot.PageLegendHeight(s, b, pg)+m.Height/2)
		margin := m.LineSpacing / 2
		band := rect.Rect{
			LLx: bounds.LLx + margin, LLy: bounds.LLy + margin,
			URx: bounds.URx - margin, URy: bounds.LLy + margin + header,
		}
		plot.PaintPageLegend(s, b, pg, band)
	}

	regions := Layout(bounds, len(pg.Plots), m, header)
	var errs []error
	for i, pl := range pg.Plots {
		reg := regions[i]
		if pl.Title != "" {
			s.DrawText(reg.Title, pl.Title, fg)
		}

		p := &plot.Painter{Book: b, Page: pg, Plot: pl}
		mr, err := p.MathRect()
		if err == nil {
			err = p.Paint(s, reg.R, reg.RG, mr)
		}
		if err != nil {
			if plot.IsFatal(err) {
				return err
			}
			errs = append(errs, fmt.Errorf("plot %d: %w", i+1, err))
		}

		s.StrokePath(surface.Rect(reg.R), matrix.Identity, surface.Pen{Color: b.Foreground})
	}
	return errors.Join(errs...)
}

// pageAt returns the page with the given index.
func pageAt(b *plot.Book, index int) (*plot.Page, error) {
	if index < 0 || index >= len(b.Pages) {
		return nil, fmt.Errorf("page %d out of range (book has %d pages)", index+1, len(b.Pages))
	}
	return b.Pages[index], nil
}

// RenderImage draws a page of the book into a new RGBA image.
func RenderImage(b *plot.Book, index int, opt *Options) (*image.RGBA, error) {
	o := opt.withDefaults()
	pg, err := pageAt(b, index)
	if err != nil {
		return nil, err
	}
	f, err := surface.NewFont(o.FontSize, o.DPI)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	s := surface.NewImage(img, f, o.DPI)
	s.Fill(b.Background)
	if err := RenderPage(s, b, pg); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderPNG writes a page of the book as a PNG image.
func RenderPNG(w io.Writer, b *plot.Book, index int, opt *Options) error {
	img, err := RenderImage(b, index, opt)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderSVG writes a page of the book as an SVG document.
func RenderSVG(w io.Writer, b *plot.Book, index int, opt *Options) error {
	o := opt.withDefaults()
	pg, err := pageAt(b, index)
	if err != nil {
		return err
	}
	f, err := surface.NewFont(o.FontSize, o.DPI)
	if err != nil {
		return err
	}
	s := surface.NewSVG(w, float64(o.Width), float64(o.Height), f, o.DPI)
	s.Fill(b.Background)
	err = RenderPage(s, b, pg)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}
