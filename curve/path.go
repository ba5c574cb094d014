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

// Package curve turns curve samples into device paths and draws them in
// their configured style.
package curve

import (
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/sample"
)

// Options select the samples of a curve and how they are mapped.
type Options struct {
	Mapping affine.Mapping

	// Only samples with Start <= t <= Stop are used.
	Start, Stop float64
}

// Curve is a curve converted to a path.
type Curve struct {
	// Path holds one MoveTo followed by a LineTo for every further
	// sample, in the output space of the mapping.
	Path *path.Data

	// Points is the number of path elements.
	Points int

	// BBox is the bounding box of the path.
	BBox rect.Rect

	// FlatValue is the corrected y value of the first sample, before any
	// logarithm is applied.  It is the label value of flat curves.
	FlatValue float64

	// Skipped counts samples which could not be drawn because of a
	// non-positive value on a logarithmic axis.
	Skipped int
}

// Flat reports whether the curve is a horizontal line: the bounding box of
// a non-empty path has zero height.
func (c *Curve) Flat() bool {
	return c.Points > 0 && c.BBox.URy == c.BBox.LLy
}

// Vertices returns the path vertices mapped by ctm.
func (c *Curve) Vertices(ctm matrix.Matrix) []vec.Vec2 {
	t := affine.Transform{M: ctm}
	res := make([]vec.Vec2, len(c.Path.Coords))
	for i, p := range c.Path.Coords {
		res[i] = t.Map(p)
	}
	return res
}

// BuildPath reads the samples of src inside the time window and converts
// them into a path.  The source is acquired for the duration of the call.
func BuildPath(src sample.Source, o Options) (*Curve, error) {
	c := &Curve{Path: &path.Data{}}
	err := sample.Each(src, func(s sample.Sample) error {
		if s.T < o.Start || s.T > o.Stop {
			return nil
		}
		p, ok := o.Mapping.Map(s.X, s.Y)
		if !ok {
			c.Skipped++
			return nil
		}
		if c.Points == 0 {
			_, c.FlatValue = o.Mapping.Scale.Apply(s.X, s.Y)
		}
		c.add(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuildErrorPath converts the points of a difference curve into a path,
// mapping them by t.
func BuildErrorPath(pts []vec.Vec2, t affine.Transform) *Curve {
	c := &Curve{Path: &path.Data{}}
	for i, q := range pts {
		if i == 0 {
			c.FlatValue = q.Y
		}
		c.add(t.Map(q))
	}
	return c
}

func (c *Curve) add(p vec.Vec2) {
	if c.Points == 0 {
		c.Path = c.Path.MoveTo(p)
		c.BBox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
	} else {
		c.Path = c.Path.LineTo(p)
		c.BBox.LLx = min(c.BBox.LLx, p.X)
		c.BBox.LLy = min(c.BBox.LLy, p.Y)
		c.BBox.URx = max(c.BBox.URx, p.X)
		c.BBox.URy = max(c.BBox.URy, p.Y)
	}
	c.Points++
}

// FormatFlatline formats the value of a flat curve.  Nine significant
// digits are used unless this changes the value by more than 1e-9, in
// which case nine decimals are used instead.
func FormatFlatline(v float64) string {
	for _, format := range []string{"%.9g", "%.9f"} {
		s := fmt.Sprintf(format, v)
		if back, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(v-back) <= 1e-9 {
			return s
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FlatlineLabel returns the label of a flat curve.
func FlatlineLabel(v float64) string {
	return "Flatline=" + FormatFlatline(v)
}

// ErrorFlatlineLabel returns the label of a flat difference curve.
func ErrorFlatlineLabel(v float64) string {
	if v == 0 {
		return "Flatline=0.0"
	}
	return fmt.Sprintf("Flatline=%.6g", v)
}
