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
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := NewFont(10, 96)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func newTestImage(t *testing.T, w, h int) (*Image, *image.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s := NewImage(img, testFont(t), 96)
	s.Fill(white)
	return s, img
}

func TestFontMetrics(t *testing.T) {
	m := testFont(t).Metrics()
	if m.XHeight <= 0 || m.XHeight >= m.Ascent {
		t.Errorf("implausible x-height %g (ascent %g)", m.XHeight, m.Ascent)
	}
	if m.AvgCharWidth <= 0 || m.AvgCharWidth >= m.Height {
		t.Errorf("implausible average character width %g", m.AvgCharWidth)
	}
	if m.LineSpacing < m.Height-1e-9 {
		t.Errorf("line spacing %g smaller than height %g", m.LineSpacing, m.Height)
	}
}

func TestImageStroke(t *testing.T) {
	s, img := newTestImage(t, 40, 20)
	line := (&path.Data{}).MoveTo(vec.Vec2{X: 0, Y: 10}).LineTo(vec.Vec2{X: 40, Y: 10})
	s.StrokePath(line, matrix.Identity, Pen{Color: red, Width: 4, Cap: graphics.LineCapButt})

	if got := img.RGBAAt(20, 9); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel on the line is %v", got)
	}
	if got := img.RGBAAt(20, 2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("pixel off the line is %v", got)
	}
}

func TestImageCTM(t *testing.T) {
	s, img := newTestImage(t, 40, 40)
	// unit square scaled to 20x20 pixels at (10,10); the pen width stays
	// in device pixels
	sq := Rect(rect.Rect{URx: 1, URy: 1})
	ctm := matrix.Matrix{20, 0, 0, 20, 10, 10}
	s.FillPath(sq, ctm, blue)
	if got := img.RGBAAt(20, 20); got.B != 255 || got.R != 0 {
		t.Errorf("inside of the mapped square is %v", got)
	}
	if got := img.RGBAAt(35, 35); got.R != 255 {
		t.Errorf("outside of the mapped square is %v", got)
	}
}

func TestImageClipAndRestore(t *testing.T) {
	s, img := newTestImage(t, 40, 20)
	line := (&path.Data{}).MoveTo(vec.Vec2{X: 0, Y: 10}).LineTo(vec.Vec2{X: 40, Y: 10})

	s.Save()
	s.Clip(rect.Rect{URx: 20, URy: 20})
	s.SetAntialias(false)
	s.StrokePath(line, matrix.Identity, Pen{Color: red, Width: 4})
	s.Restore()

	if !s.Antialias() {
		t.Error("anti-aliasing not restored")
	}
	if got := img.RGBAAt(10, 10); got.G != 0 {
		t.Errorf("pixel inside the clip is %v", got)
	}
	if got := img.RGBAAt(30, 10); got.G != 255 {
		t.Errorf("pixel outside the clip is %v", got)
	}

	s.StrokePath(line, matrix.Identity, Pen{Color: red, Width: 4})
	if got := img.RGBAAt(30, 10); got.G != 0 {
		t.Errorf("clip still active after Restore: %v", got)
	}
}

func TestImageTranslucent(t *testing.T) {
	s, img := newTestImage(t, 10, 10)
	s.FillPath(Rect(rect.Rect{URx: 10, URy: 10}), matrix.Identity, color.NRGBA{A: 128})
	got := img.RGBAAt(5, 5)
	if got.R < 120 || got.R > 135 || got.A != 255 {
		t.Errorf("50%% black over white gave %v", got)
	}
}

func TestImageDrawImage(t *testing.T) {
	s, img := newTestImage(t, 20, 20)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+2], src.Pix[i+3] = 255, 255
	}
	s.DrawImage(rect.Rect{LLx: 5, LLy: 5, URx: 15, URy: 15}, src)
	if got := img.RGBAAt(10, 10); got.B != 255 || got.R > 10 {
		t.Errorf("center of the blitted image is %v", got)
	}
	if got := img.RGBAAt(2, 2); got.R != 255 {
		t.Errorf("pixel outside the blitted image is %v", got)
	}
}

func TestImageText(t *testing.T) {
	s, img := newTestImage(t, 60, 30)
	s.DrawText(vec.Vec2{X: 2, Y: 2}, "Hx", TextStyle{Color: red, Anchor: TopLeft})
	inked := 0
	for y := range 30 {
		for x := range 60 {
			if img.RGBAAt(x, y).G < 128 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no text was drawn")
	}
	w, h := s.TextSize("Hx", false)
	if w <= 0 || h <= 0 {
		t.Errorf("TextSize = %g, %g", w, h)
	}
}

func TestSVG(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSVG(buf, 100, 50, testFont(t), 96)
	s.Fill(white)
	s.Save()
	s.Clip(rect.Rect{LLx: 10, LLy: 10, URx: 90, URy: 40})
	s.SetAntialias(false)
	s.StrokePath(Lines(vec.Vec2{X: 0, Y: 20}, vec.Vec2{X: 100, Y: 20}), matrix.Identity,
		Pen{Color: color.NRGBA{R: 255, A: 40}, Width: 2, Dash: []float64{4, 4}})
	s.Restore()
	s.FillPath(Circle(vec.Vec2{X: 50, Y: 25}, 5), matrix.Identity, blue)
	s.DrawText(vec.Vec2{X: 5, Y: 45}, "a<b", TextStyle{Color: red})
	s.DrawImage(rect.Rect{URx: 10, URy: 10}, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"<svg",
		`clip-path="url(#clip1)"`,
		"stroke:#ff0000;stroke-opacity:0.157;stroke-width:2",
		"stroke-dasharray:4,4",
		"shape-rendering:crispEdges",
		"fill:#0000ff",
		"a&lt;b",
		"data:image/png;base64,",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if n, m := strings.Count(out, "<g "), strings.Count(out, "</g>"); n != m {
		t.Errorf("%d groups opened, %d closed", n, m)
	}
}

func TestMapPath(t *testing.T) {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 1, Y: 2}).LineTo(vec.Vec2{X: 3, Y: 4})
	q := MapPath(p, matrix.Matrix{2, 0, 0, -1, 10, 100})
	want := []vec.Vec2{{X: 12, Y: 98}, {X: 16, Y: 96}}
	for i, c := range q.Coords {
		if c != want[i] {
			t.Errorf("point %d: got %v, want %v", i, c, want[i])
		}
	}
	if p.Coords[0] != (vec.Vec2{X: 1, Y: 2}) {
		t.Error("MapPath modified its input")
	}
}
