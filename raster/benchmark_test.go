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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// sineCurve returns a dense polyline across a size x size canvas, similar
// to a long time series plotted in raster mode.
func sineCurve(size, n int) *path.Data {
	p := &path.Data{}
	for i := range n {
		x := float64(size) * float64(i) / float64(n-1)
		y := float64(size) * (0.5 + 0.4*math.Sin(x/7))
		if i == 0 {
			p = p.MoveTo(pt(x, y))
		} else {
			p = p.LineTo(pt(x, y))
		}
	}
	return p
}

func BenchmarkStrokeCurve(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			const size = 1000
			r := NewRasterizer(rect.Rect{URx: size, URy: size})
			r.Width = 1
			r.Cap = graphics.LineCapRound
			r.Join = graphics.LineJoinRound
			p := sineCurve(size, n)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			b.ReportAllocs()
			for b.Loop() {
				r.Stroke(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkFillDisc and BenchmarkVectorDisc compare the fill path with
// golang.org/x/image/vector on the same polygonal disc.
func BenchmarkFillDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)})
			p := disc(float64(size)/2, float64(size)*0.45, 64)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			b.ReportAllocs()
			for b.Loop() {
				r.FillNonZero(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

func BenchmarkVectorDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			v := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			c, radius := float32(size)/2, float32(size)*0.45

			b.ReportAllocs()
			for b.Loop() {
				v.Reset(size, size)
				for i := range 64 {
					phi := 2 * math.Pi * float64(i) / 64
					x := c + radius*float32(math.Cos(phi))
					y := c + radius*float32(math.Sin(phi))
					if i == 0 {
						v.MoveTo(x, y)
					} else {
						v.LineTo(x, y)
					}
				}
				v.ClosePath()
				v.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func disc(c, radius float64, n int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(c+radius, c))
	for i := 1; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		p = p.LineTo(pt(c+radius*math.Cos(phi), c+radius*math.Sin(phi)))
	}
	return p.Close()
}
