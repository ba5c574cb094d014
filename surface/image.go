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
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/raster"
)

type imageState struct {
	clip rect.Rect
	aa   bool
}

// Image is a Surface which draws into an RGBA image, using
// [raster.Rasterizer] for all geometry.
type Image struct {
	img  *image.RGBA
	font *Font
	dpi  float64
	r    *raster.Rasterizer

	imageState
	stack []imageState
}

// NewImage returns a surface which draws into img.  Anti-aliasing is
// enabled initially.  The font may be nil if no text is drawn.
func NewImage(img *image.RGBA, f *Font, dpi float64) *Image {
	b := img.Bounds()
	bounds := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	return &Image{
		img:        img,
		font:       f,
		dpi:        dpi,
		r:          raster.NewRasterizer(bounds),
		imageState: imageState{clip: bounds, aa: true},
	}
}

// Fill paints the whole image with c, ignoring the clip rectangle.
func (s *Image) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Bounds implements [Surface].
func (s *Image) Bounds() rect.Rect {
	b := s.img.Bounds()
	return rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
}

// DPI implements [Surface].
func (s *Image) DPI() float64 { return s.dpi }

// Save implements [Surface].
func (s *Image) Save() {
	s.stack = append(s.stack, s.imageState)
}

// Restore implements [Surface].
func (s *Image) Restore() {
	n := len(s.stack) - 1
	s.imageState = s.stack[n]
	s.stack = s.stack[:n]
}

// Clip implements [Surface].
func (s *Image) Clip(r rect.Rect) {
	s.clip = intersect(s.clip, r)
}

// Antialias implements [Surface].
func (s *Image) Antialias() bool { return s.aa }

// SetAntialias implements [Surface].
func (s *Image) SetAntialias(on bool) { s.aa = on }

// pixelClip returns the clip rectangle rounded outwards to whole pixels.
func (s *Image) pixelClip() image.Rectangle {
	return image.Rect(
		int(math.Floor(s.clip.LLx)), int(math.Floor(s.clip.LLy)),
		int(math.Ceil(s.clip.URx)), int(math.Ceil(s.clip.URy)),
	).Intersect(s.img.Bounds())
}

func (s *Image) prepare() bool {
	pc := s.pixelClip()
	if pc.Empty() {
		return false
	}
	s.r.Clip = rect.Rect{
		LLx: float64(pc.Min.X), LLy: float64(pc.Min.Y),
		URx: float64(pc.Max.X), URy: float64(pc.Max.Y),
	}
	s.r.CTM = matrix.Identity
	s.r.Antialias = s.aa
	return true
}

// StrokePath implements [Surface].
func (s *Image) StrokePath(p *path.Data, ctm matrix.Matrix, pen Pen) {
	if !s.prepare() {
		return
	}
	s.r.Width = pen.Width
	if s.r.Width <= 0 {
		s.r.Width = 1
	}
	s.r.Dash = pen.Dash
	s.r.DashPhase = 0
	s.r.Cap = pen.Cap
	s.r.Join = pen.Join
	s.r.Stroke(MapPath(p, ctm), s.painter(pen.Color))
}

// FillPath implements [Surface].
func (s *Image) FillPath(p *path.Data, ctm matrix.Matrix, c color.NRGBA) {
	if !s.prepare() {
		return
	}
	s.r.FillNonZero(MapPath(p, ctm), s.painter(c))
}

// painter returns an emit function which composites c over the image,
// weighted by the coverage.
func (s *Image) painter(c color.NRGBA) raster.EmitFunc {
	a := float32(c.A) / 255
	sr, sg, sb := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a
	return func(y, xMin int, coverage []float32) {
		off := s.img.PixOffset(xMin, y)
		pix := s.img.Pix[off : off+4*len(coverage)]
		for i, cov := range coverage {
			if cov == 0 {
				continue
			}
			k := cov * a
			q := pix[4*i : 4*i+4 : 4*i+4]
			q[0] = uint8(sr*cov + float32(q[0])*(1-k) + 0.5)
			q[1] = uint8(sg*cov + float32(q[1])*(1-k) + 0.5)
			q[2] = uint8(sb*cov + float32(q[2])*(1-k) + 0.5)
			q[3] = uint8(255*k + float32(q[3])*(1-k) + 0.5)
		}
	}
}

// DrawText implements [Surface].
func (s *Image) DrawText(pos vec.Vec2, str string, ts TextStyle) {
	pc := s.pixelClip()
	if pc.Empty() {
		return
	}
	x, y := s.font.origin(pos, str, ts)
	d := font.Drawer{
		Dst:  s.img.SubImage(pc).(*image.RGBA),
		Src:  image.NewUniform(ts.Color),
		Face: s.font.Face(ts.Small),
	}
	d.Dot.X = toFixed(x)
	d.Dot.Y = toFixed(y)
	d.DrawString(str)
}

// TextSize implements [Surface].
func (s *Image) TextSize(str string, small bool) (w, h float64) {
	return s.font.TextSize(str, small)
}

// Metrics implements [Surface].
func (s *Image) Metrics() Metrics {
	return s.font.Metrics()
}

// DrawImage implements [Surface].  The image is resampled with a
// Catmull-Rom filter.
func (s *Image) DrawImage(dst rect.Rect, img image.Image) {
	pc := s.pixelClip()
	if pc.Empty() {
		return
	}
	dr := image.Rect(
		int(math.Round(dst.LLx)), int(math.Round(dst.LLy)),
		int(math.Round(dst.URx)), int(math.Round(dst.URy)),
	)
	draw.CatmullRom.Scale(s.img.SubImage(pc).(*image.RGBA), dr, img, img.Bounds(), draw.Over, nil)
}
