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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// boxes returns a path with one closed rectangle per group of four
// coordinates x0, y0, x1, y1.
func boxes(c ...float64) *path.Data {
	p := &path.Data{}
	for i := 0; i+3 < len(c); i += 4 {
		x0, y0, x1, y1 := c[i], c[i+1], c[i+2], c[i+3]
		p = p.MoveTo(pt(x0, y0)).
			LineTo(pt(x1, y0)).
			LineTo(pt(x1, y1)).
			LineTo(pt(x0, y1)).
			Close()
	}
	return p
}

// stroke describes the stroke parameters of a test case.
type stroke struct {
	width float64
	cap   graphics.LineCapStyle
	join  graphics.LineJoinStyle
	dash  []float64
}

type testCase struct {
	name    string
	path    *path.Data
	ctm     matrix.Matrix // zero value means identity
	stroke  *stroke       // nil means fill with the nonzero rule
	evenOdd bool
	area    float64 // expected total coverage
	tol     float64
}

var cases = []testCase{
	{
		name: "fill_box",
		path: boxes(10, 10, 20, 15),
		area: 50,
		tol:  1e-4,
	},
	{
		name: "fill_fractional_box",
		path: boxes(10.5, 10.25, 20.5, 15.75),
		area: 55,
		tol:  1e-4,
	},
	{
		name: "fill_nested_nonzero",
		path: boxes(0, 0, 10, 10, 3, 3, 7, 7),
		area: 100,
		tol:  1e-4,
	},
	{
		name:    "fill_nested_evenodd",
		path:    boxes(0, 0, 10, 10, 3, 3, 7, 7),
		evenOdd: true,
		area:    84,
		tol:     1e-4,
	},
	{
		name: "fill_scaled",
		path: boxes(1, 1, 6, 6),
		ctm:  matrix.Matrix{2, 0, 0, 2, 0, 0},
		area: 100,
		tol:  1e-4,
	},
	{
		name:   "stroke_butt",
		path:   (&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(30, 10)),
		stroke: &stroke{width: 4, cap: graphics.LineCapButt},
		area:   80,
		tol:    1e-3,
	},
	{
		name:   "stroke_square",
		path:   (&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(30, 10)),
		stroke: &stroke{width: 4, cap: graphics.LineCapSquare},
		area:   96,
		tol:    1e-3,
	},
	{
		name:   "stroke_round",
		path:   (&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(30, 10)),
		stroke: &stroke{width: 4, cap: graphics.LineCapRound},
		area:   80 + 4*math.Pi,
		tol:    0.5,
	},
	{
		name:   "stroke_ctm_scales_width",
		path:   (&path.Data{}).MoveTo(pt(5, 5)).LineTo(pt(15, 5)),
		ctm:    matrix.Matrix{2, 0, 0, 2, 0, 0},
		stroke: &stroke{width: 2, cap: graphics.LineCapButt},
		area:   80,
		tol:    1e-3,
	},
	{
		name:   "stroke_dashed",
		path:   (&path.Data{}).MoveTo(pt(0, 10)).LineTo(pt(40, 10)),
		stroke: &stroke{width: 2, cap: graphics.LineCapButt, dash: []float64{5, 5}},
		area:   40,
		tol:    1e-3,
	},
	{
		name:   "stroke_dashed_odd_pattern",
		path:   (&path.Data{}).MoveTo(pt(0, 10)).LineTo(pt(40, 10)),
		stroke: &stroke{width: 2, cap: graphics.LineCapButt, dash: []float64{10}},
		area:   40,
		tol:    1e-3,
	},
	{
		name:   "stroke_closed_miter",
		path:   boxes(10, 10, 30, 30),
		stroke: &stroke{width: 2, join: graphics.LineJoinMiter},
		area:   22*22 - 18*18,
		tol:    1e-2,
	},
	{
		name:   "stroke_closed_bevel",
		path:   boxes(10, 10, 30, 30),
		stroke: &stroke{width: 2, join: graphics.LineJoinBevel},
		area:   22*22 - 18*18 - 4*0.5,
		tol:    1e-2,
	},
	{
		name:   "stroke_polyline_bend",
		path:   (&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(30, 10)).LineTo(pt(30, 30)),
		stroke: &stroke{width: 2, cap: graphics.LineCapButt, join: graphics.LineJoinMiter},
		area:   80,
		tol:    1e-2,
	},
}

func render(r *Rasterizer, tc testCase, emit EmitFunc) {
	r.CTM = matrix.Identity
	if tc.ctm != (matrix.Matrix{}) {
		r.CTM = tc.ctm
	}
	switch {
	case tc.stroke != nil:
		r.Width = tc.stroke.width
		r.Cap = tc.stroke.cap
		r.Join = tc.stroke.join
		r.Dash = tc.stroke.dash
		r.Stroke(tc.path, emit)
	case tc.evenOdd:
		r.FillEvenOdd(tc.path, emit)
	default:
		r.FillNonZero(tc.path, emit)
	}
}

func TestCoverageArea(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sum float64
			render(r, tc, func(y, xMin int, coverage []float32) {
				if y < 0 || y >= 64 || xMin < 0 || xMin+len(coverage) > 64 {
					t.Fatalf("row %d [%d,%d) outside the clip rectangle",
						y, xMin, xMin+len(coverage))
				}
				for _, c := range coverage {
					if c < 0 || c > 1 {
						t.Fatalf("coverage %g out of range", c)
					}
					sum += float64(c)
				}
			})
			if math.Abs(sum-tc.area) > tc.tol {
				t.Errorf("total coverage %.4f, want %.4f", sum, tc.area)
			}
		})
	}
}

// TestTriangleCoverage checks exact coverage values for the triangle
// (0,0), (10,0), (10,1).  Pixel x must have coverage (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(10, 1)).
		Close()

	for _, aa := range []bool{true, false} {
		r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
		r.Antialias = aa

		coverage := make([]float32, 10)
		r.FillNonZero(triangle, func(y, xMin int, cov []float32) {
			copy(coverage[xMin:], cov)
		})

		const epsilon = 1e-6
		for x := range 10 {
			want := float32(2*x+1) / 20
			if !aa {
				want = 0
				if x >= 5 {
					want = 1
				}
			}
			if math.Abs(float64(coverage[x]-want)) > epsilon {
				t.Errorf("antialias=%t, pixel %d: got %.4f, want %.4f",
					aa, x, coverage[x], want)
			}
		}
	}
}

func TestClip(t *testing.T) {
	r := NewRasterizer(rect.Rect{LLx: 5, LLy: 5, URx: 10, URy: 8})
	var sum float64
	r.FillNonZero(boxes(0, 0, 20, 20), func(y, xMin int, coverage []float32) {
		if y < 5 || y >= 8 || xMin < 5 || xMin+len(coverage) > 10 {
			t.Errorf("row %d [%d,%d) outside the clip rectangle",
				y, xMin, xMin+len(coverage))
		}
		for _, c := range coverage {
			sum += float64(c)
		}
	})
	if sum != 15 {
		t.Errorf("clipped area %g, want 15", sum)
	}
}

func TestDegenerateStroke(t *testing.T) {
	dot := (&path.Data{}).MoveTo(pt(10, 10)).LineTo(pt(10, 10))

	for _, tc := range []struct {
		cap   graphics.LineCapStyle
		empty bool
	}{
		{graphics.LineCapButt, true},
		{graphics.LineCapSquare, true},
		{graphics.LineCapRound, false},
	} {
		t.Run(tc.cap.String(), func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
			r.Width = 6
			r.Cap = tc.cap
			var sum float64
			r.Stroke(dot, func(y, xMin int, coverage []float32) {
				for _, c := range coverage {
					sum += float64(c)
				}
			})
			if tc.empty && sum != 0 {
				t.Errorf("got coverage %g, want none", sum)
			}
			if !tc.empty && math.Abs(sum-9*math.Pi) > 0.5 {
				t.Errorf("got coverage %g, want about %g", sum, 9*math.Pi)
			}
		})
	}
}
