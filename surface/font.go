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
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// SmallSize is the point size of the text inside numbered symbols.
const SmallSize = 6

// Font holds the regular and the small face used by a surface.  Both
// surface implementations measure text with the same faces, so that
// layouts agree between PNG and SVG output.
type Font struct {
	regular font.Face
	small   font.Face
	metrics Metrics

	// Size is the size of the regular face in points.
	Size float64
}

// NewFont loads the Go Regular font at the given size and resolution.
func NewFont(size, dpi float64) (*Font, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	regular, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size, DPI: dpi, Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("regular face: %w", err)
	}
	small, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: SmallSize, DPI: dpi, Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("small face: %w", err)
	}

	res := &Font{regular: regular, small: small, Size: size}
	m := regular.Metrics()
	res.metrics = Metrics{
		Height:      fromFixed(m.Ascent + m.Descent),
		Ascent:      fromFixed(m.Ascent),
		Descent:     fromFixed(m.Descent),
		XHeight:     fromFixed(m.XHeight),
		LineSpacing: fromFixed(m.Height),
	}
	if res.metrics.XHeight <= 0 {
		b, _ := font.BoundString(regular, "x")
		res.metrics.XHeight = fromFixed(-b.Min.Y)
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	res.metrics.AvgCharWidth = fromFixed(font.MeasureString(regular, alphabet)) / float64(len(alphabet))
	return res, nil
}

// Metrics returns the metrics of the regular face.
func (f *Font) Metrics() Metrics {
	return f.metrics
}

// Face returns the regular or the small face.
func (f *Font) Face(small bool) font.Face {
	if small {
		return f.small
	}
	return f.regular
}

// TextSize returns the advance width and the line height of s.
func (f *Font) TextSize(s string, small bool) (w, h float64) {
	face := f.Face(small)
	m := face.Metrics()
	return fromFixed(font.MeasureString(face, s)), fromFixed(m.Ascent + m.Descent)
}

// Ink returns the ink bounding box of s, relative to the start of the
// baseline, with y pointing down.
func (f *Font) Ink(s string, small bool) rect.Rect {
	b, _ := font.BoundString(f.Face(small), s)
	return rect.Rect{
		LLx: fromFixed(b.Min.X), LLy: fromFixed(b.Min.Y),
		URx: fromFixed(b.Max.X), URy: fromFixed(b.Max.Y),
	}
}

// origin returns the start of the baseline for text placed at pos.
func (f *Font) origin(pos vec.Vec2, s string, ts TextStyle) (float64, float64) {
	x, y := pos.X, pos.Y
	switch ts.Anchor {
	case TopLeft:
		y += fromFixed(f.Face(ts.Small).Metrics().Ascent)
	case Center:
		ink := f.Ink(s, ts.Small)
		x -= (ink.LLx + ink.URx) / 2
		y -= (ink.LLy + ink.URy) / 2
	}
	return x, y
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
