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

package curveplot

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/curveplot/config"
	"seehuhn.de/go/curveplot/plot"
	"seehuhn.de/go/curveplot/surface"
)

const book = `
legend: yes
pages:
  - title: Demo
    plots:
      - title: overlay
        presentation: compare
        curves:
          - label: up
            color: "#ff0000"
            line_style: thick_line
            t: [0, 1, 2, 3, 4]
            y: [0, 1, 2, 3, 4]
          - label: down
            color: "#0000ff"
            symbol: circle
            t: [0, 1, 2, 3, 4]
            y: [4, 3, 2, 1, 0]
      - title: difference
        curves:
          - label: a
            t: [0, 1, 2]
            y: [1, 1, 1]
          - label: b
            t: [0, 1, 2]
            y: [1, 1, 1]
`

func loadBook(t *testing.T, doc string) *plot.Book {
	t.Helper()
	b, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestLayout(t *testing.T) {
	m := surface.Metrics{Height: 12, Ascent: 9, Descent: 3, XHeight: 5, LineSpacing: 14, AvgCharWidth: 6}
	page := rect.Rect{URx: 400, URy: 300}
	regions := Layout(page, 3, m, m.LineSpacing)
	if len(regions) != 3 {
		t.Fatalf("%d regions", len(regions))
	}
	for i, reg := range regions {
		if reg.R.LLx < page.LLx || reg.R.URx > page.URx || reg.R.LLy < page.LLy || reg.R.URy > page.URy {
			t.Errorf("region %d outside page: %v", i, reg.R)
		}
		if reg.RG.LLx <= reg.R.LLx || reg.RG.URy >= reg.R.URy {
			t.Errorf("grid region %d not inside: %v in %v", i, reg.RG, reg.R)
		}
		if i > 0 && reg.R.LLy < regions[i-1].R.URy {
			t.Errorf("regions %d and %d overlap", i-1, i)
		}
	}
	if Layout(page, 0, m, 0) != nil {
		t.Error("regions for empty page")
	}
}

func TestRenderImage(t *testing.T) {
	b := loadBook(t, book)
	img, err := RenderImage(b, 0, &Options{Width: 320, Height: 240})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("image size %v", img.Bounds())
	}

	var red, blue, green int
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			c := img.RGBAAt(x, y)
			switch {
			case c.R > 200 && c.G < 60 && c.B < 60:
				red++
			case c.B > 200 && c.R < 60 && c.G < 60:
				blue++
			case c.G > 100 && c.R < 40 && c.B < 40:
				green++
			}
		}
	}
	if red == 0 || blue == 0 {
		t.Errorf("curves missing: %d red and %d blue pixels", red, blue)
	}
	if green == 0 {
		t.Error("flat difference curve missing")
	}

	var buf bytes.Buffer
	if err := RenderPNG(&buf, b, 0, nil); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != DefaultOptions.Width {
		t.Errorf("default width %d", decoded.Bounds().Dx())
	}
}

func TestRenderSVG(t *testing.T) {
	b := loadBook(t, book)
	var buf bytes.Buffer
	if err := RenderSVG(&buf, b, 0, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "</svg>", "Demo", "overlay", "Flatline=0.0", "#ff0000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

const twoPlots = `
legend: %s
pages:
  - title: Runs
    plots:
      - title: first
        presentation: compare
        curves:
          - {label: alpha, color: red, t: [0, 1, 2], y: [0, 1, 2]}
          - {label: beta, color: blue, t: [0, 1, 2], y: [2, 1, 0]}
      - title: second
        presentation: compare
        curves:
          - {label: alpha, color: red, t: [0, 1, 2], y: [1, 1, 2]}
          - {label: beta, color: blue, t: [0, 1, 2], y: [2, 0, 0]}
`

func TestSharedLegend(t *testing.T) {
	cases := []struct {
		legend string
		want   int
	}{
		{"auto", 1},
		{"yes", 2},
		{"no", 0},
	}
	for _, tc := range cases {
		t.Run(tc.legend, func(t *testing.T) {
			b := loadBook(t, fmt.Sprintf(twoPlots, tc.legend))
			var buf bytes.Buffer
			if err := RenderSVG(&buf, b, 0, nil); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, label := range []string{"alpha", "beta"} {
				if n := strings.Count(out, ">"+label+"</text>"); n != tc.want {
					t.Errorf("label %q drawn %d times, want %d", label, n, tc.want)
				}
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	b := loadBook(t, book)
	if _, err := RenderImage(b, 1, nil); err == nil {
		t.Error("page index out of range accepted")
	}

	missing := loadBook(t, `
pages:
  - plots:
      - curves:
          - {label: a, t: [0], y: [0]}
          - {label: b, missing: true}
`)
	_, err := RenderImage(missing, 0, nil)
	var ce *plot.ConfigError
	if !errors.As(err, &ce) || !plot.IsFatal(err) {
		t.Errorf("missing error plot data: %v", err)
	}
}
