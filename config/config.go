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

// Package config reads plot books from YAML documents.
//
// A book lists pages of plots.  Each curve carries its samples inline:
//
//	start: 0
//	stop: 10
//	legend_position: se
//	pages:
//	  - plots:
//	      - presentation: compare
//	        grid: true
//	        curves:
//	          - label: measured
//	            color: red
//	            symbol: circle
//	            t: [0, 1, 2]
//	            y: [1, 4, 9]
package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/plot"
	"seehuhn.de/go/curveplot/sample"
	"seehuhn.de/go/curveplot/style"
)

// DefaultTolerance is the time tolerance used for error plots if the book
// does not set one.
const DefaultTolerance = 1e-6

// palette is cycled through for curves without a color.
var palette = []string{
	"blue", "red", "magenta", "green", "darkorange",
	"darkcyan", "purple", "saddlebrown", "gray",
}

// Book is the YAML form of a book.
type Book struct {
	Start          *float64 `yaml:"start"`
	Stop           *float64 `yaml:"stop"`
	Tolerance      *float64 `yaml:"tolerance"`
	Legend         string   `yaml:"legend"`          // auto, yes or no
	LegendPosition string   `yaml:"legend_position"` // n, ne, e, se, s, sw, w or nw
	Colors         Colors   `yaml:"colors"`
	Pages          []Page   `yaml:"pages"`
}

// Colors are the book-wide colors.  Empty values select the defaults.
type Colors struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	ErrorLine  string `yaml:"error_line"`
	FlatLine   string `yaml:"flat_line"`
}

// Page is the YAML form of a page.
type Page struct {
	Title string `yaml:"title"`
	Plots []Plot `yaml:"plots"`
}

// Plot is the YAML form of a plot.
type Plot struct {
	Title        string    `yaml:"title"`
	Presentation string    `yaml:"presentation"` // error, compare or error+compare
	LogX         bool      `yaml:"log_x"`
	LogY         bool      `yaml:"log_y"`
	Grid         *bool     `yaml:"grid"`
	XTicks       []float64 `yaml:"x_ticks"`
	YTicks       []float64 `yaml:"y_ticks"`
	XRange       []float64 `yaml:"x_range"` // [min, max]
	YRange       []float64 `yaml:"y_range"`
	Curves       []Curve   `yaml:"curves"`
}

// Curve is the YAML form of a curve.
type Curve struct {
	Label     string `yaml:"label"`
	Color     string `yaml:"color"`
	LineStyle string `yaml:"line_style"`
	Symbol    string `yaml:"symbol"`

	XScale *float64 `yaml:"x_scale"`
	YScale *float64 `yaml:"y_scale"`
	XBias  float64  `yaml:"x_bias"`
	YBias  float64  `yaml:"y_bias"`
	XUnit  *float64 `yaml:"x_unit"` // unit conversion factor
	YUnit  *float64 `yaml:"y_unit"`

	T []float64 `yaml:"t"`
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`

	// Missing marks a curve whose data is unavailable.
	Missing bool `yaml:"missing"`
}

// Load reads a book from a YAML file.
func Load(fname string) (*plot.Book, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return b, nil
}

// Parse decodes a YAML book.  Invalid values are reported as
// *plot.ConfigError.
func Parse(data []byte) (*plot.Book, error) {
	var raw Book
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}
	return raw.Convert()
}

// Convert checks the book and converts it into its typed form.
func (raw *Book) Convert() (*plot.Book, error) {
	b := &plot.Book{
		Start:     valueOr(raw.Start, math.Inf(-1)),
		Stop:      valueOr(raw.Stop, math.Inf(1)),
		Tolerance: valueOr(raw.Tolerance, DefaultTolerance),
	}
	if b.Tolerance < 0 {
		return nil, &plot.ConfigError{Field: "tolerance", Value: fmt.Sprint(b.Tolerance)}
	}

	var err error
	if b.ShowLegend, err = plot.ParseShowLegend(raw.Legend); err != nil {
		return nil, err
	}
	if b.LegendPosition, err = plot.ParseLegendPosition(raw.LegendPosition); err != nil {
		return nil, err
	}

	colors := []struct {
		field string
		value string
		def   string
		dst   *color.NRGBA
	}{
		{"foreground color", raw.Colors.Foreground, "black", &b.Foreground},
		{"background color", raw.Colors.Background, "white", &b.Background},
		{"error line color", raw.Colors.ErrorLine, "magenta", &b.ErrorLineColor},
		{"flat line color", raw.Colors.FlatLine, "green", &b.FlatLineColor},
	}
	for _, c := range colors {
		v := c.value
		if v == "" {
			v = c.def
		}
		col, err := style.ParseColor(v)
		if err != nil {
			return nil, &plot.ConfigError{Field: c.field, Value: c.value, Err: err}
		}
		*c.dst = col
	}

	for i := range raw.Pages {
		pg, err := raw.Pages[i].convert()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		b.Pages = append(b.Pages, pg)
	}
	return b, nil
}

func (raw *Page) convert() (*plot.Page, error) {
	pg := &plot.Page{Title: raw.Title}
	for i := range raw.Plots {
		pl, err := raw.Plots[i].convert()
		if err != nil {
			return nil, fmt.Errorf("plot %d: %w", i+1, err)
		}
		pg.Plots = append(pg.Plots, pl)
	}
	return pg, nil
}

func (raw *Plot) convert() (*plot.Plot, error) {
	pres, err := plot.ParsePresentation(raw.Presentation)
	if err != nil {
		return nil, err
	}
	pl := &plot.Plot{
		Title:        raw.Title,
		Presentation: pres,
		LogX:         raw.LogX,
		LogY:         raw.LogY,
		Grid:         raw.Grid == nil || *raw.Grid,
		XTicks:       raw.XTicks,
		YTicks:       raw.YTicks,
	}
	if pl.XRange, err = parseRange("x range", raw.XRange, raw.LogX); err != nil {
		return nil, err
	}
	if pl.YRange, err = parseRange("y range", raw.YRange, raw.LogY); err != nil {
		return nil, err
	}
	for i := range raw.Curves {
		c, err := raw.Curves[i].convert(palette[i%len(palette)])
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i+1, err)
		}
		pl.Curves = append(pl.Curves, c)
	}
	return pl, nil
}

func parseRange(field string, v []float64, log bool) (*plot.Range, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 || !(v[0] < v[1]) || (log && !(v[0] > 0)) {
		return nil, &plot.ConfigError{Field: field, Value: fmt.Sprint(v)}
	}
	return &plot.Range{Min: v[0], Max: v[1]}, nil
}

func (raw *Curve) convert(defaultColor string) (*plot.Curve, error) {
	col := raw.Color
	if col == "" {
		col = defaultColor
	}
	st, err := style.Resolve(raw.LineStyle, raw.Symbol, col)
	if err != nil {
		return nil, &plot.ConfigError{Field: "curve style", Value: raw.Label, Err: err}
	}

	yFactor := valueOr(raw.YScale, 1)
	c := &plot.Curve{
		Label: raw.Label,
		Style: st,
		Scale: affine.ScaleBias{
			XS: valueOr(raw.XScale, 1) * valueOr(raw.XUnit, 1),
			YS: yFactor * valueOr(raw.YUnit, 1),
			XB: raw.XBias,
			YB: raw.YBias,
		},
		YFactor: yFactor,
	}
	if raw.Missing {
		return c, nil
	}

	src, err := sample.FromColumns(raw.T, raw.X, raw.Y)
	if err != nil {
		return nil, &plot.ConfigError{Field: "curve data", Value: raw.Label, Err: err}
	}
	if err := src.Validate(); err != nil {
		return nil, &plot.ConfigError{Field: "curve data", Value: raw.Label, Err: err}
	}
	c.Data = src
	return c, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
