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
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

type svgState struct {
	clip   rect.Rect
	aa     bool
	groups int // number of <g> elements opened at this level
}

// SVG is a Surface which writes an SVG document.  Geometry is written in
// device coordinates; bitmaps are embedded as PNG data URIs.
type SVG struct {
	canvas *svg.SVG
	width  float64
	height float64
	font   *Font
	dpi    float64
	nextID int
	err    error

	svgState
	stack []svgState
}

// NewSVG starts an SVG document of the given size in pixels.  Call Close
// to finish the document.
func NewSVG(w io.Writer, width, height float64, f *Font, dpi float64) *SVG {
	s := &SVG{
		canvas: svg.New(w),
		width:  width,
		height: height,
		font:   f,
		dpi:    dpi,
	}
	s.clip = rect.Rect{URx: width, URy: height}
	s.aa = true
	s.canvas.Start(width, height)
	return s
}

// Fill paints the whole canvas with c.
func (s *SVG) Fill(c color.NRGBA) {
	s.canvas.Rect(0, 0, s.width, s.height, fillStyle(c))
}

// Close ends all open groups and the document.  It returns the first
// error encountered while embedding images.
func (s *SVG) Close() error {
	for len(s.stack) > 0 {
		s.Restore()
	}
	s.closeGroups()
	s.canvas.End()
	return s.err
}

// Bounds implements [Surface].
func (s *SVG) Bounds() rect.Rect {
	return rect.Rect{URx: s.width, URy: s.height}
}

// DPI implements [Surface].
func (s *SVG) DPI() float64 { return s.dpi }

// Save implements [Surface].
func (s *SVG) Save() {
	s.stack = append(s.stack, s.svgState)
	s.groups = 0
}

// Restore implements [Surface].
func (s *SVG) Restore() {
	s.closeGroups()
	n := len(s.stack) - 1
	s.svgState = s.stack[n]
	s.stack = s.stack[:n]
}

func (s *SVG) closeGroups() {
	for range s.groups {
		s.canvas.Gend()
	}
	s.groups = 0
}

// Clip implements [Surface].  Every call opens a group which refers to a
// new clipPath element.
func (s *SVG) Clip(r rect.Rect) {
	s.clip = intersect(s.clip, r)
	s.nextID++
	id := "clip" + strconv.Itoa(s.nextID)
	w := max(s.clip.URx-s.clip.LLx, 0)
	h := max(s.clip.URy-s.clip.LLy, 0)
	s.canvas.Def()
	s.canvas.ClipPath(fmt.Sprintf("id=%q", id))
	s.canvas.Rect(s.clip.LLx, s.clip.LLy, w, h)
	s.canvas.ClipEnd()
	s.canvas.DefEnd()
	s.canvas.Group(fmt.Sprintf("clip-path=%q", "url(#"+id+")"))
	s.groups++
}

// Antialias implements [Surface].
func (s *SVG) Antialias() bool { return s.aa }

// SetAntialias implements [Surface].  Without anti-aliasing, shapes are
// written with shape-rendering="crispEdges".
func (s *SVG) SetAntialias(on bool) { s.aa = on }

// StrokePath implements [Surface].
func (s *SVG) StrokePath(p *path.Data, ctm matrix.Matrix, pen Pen) {
	d := pathData(MapPath(p, ctm))
	if d == "" {
		return
	}
	st := []string{"fill:none", strokeStyle(pen)}
	if !s.aa {
		st = append(st, "shape-rendering:crispEdges")
	}
	s.canvas.Path(d, strings.Join(st, ";"))
}

// FillPath implements [Surface].
func (s *SVG) FillPath(p *path.Data, ctm matrix.Matrix, c color.NRGBA) {
	d := pathData(MapPath(p, ctm))
	if d == "" {
		return
	}
	st := fillStyle(c)
	if !s.aa {
		st += ";shape-rendering:crispEdges"
	}
	s.canvas.Path(d, st)
}

// DrawText implements [Surface].
func (s *SVG) DrawText(pos vec.Vec2, str string, ts TextStyle) {
	x, y := s.font.origin(pos, str, ts)
	size := s.font.Size
	if ts.Small {
		size = SmallSize
	}
	px := size * s.dpi / 72
	s.canvas.Text(x, y, str,
		fmt.Sprintf("font-family:Go,sans-serif;font-size:%spx;%s", num(px), fillStyle(ts.Color)))
}

// TextSize implements [Surface].
func (s *SVG) TextSize(str string, small bool) (w, h float64) {
	return s.font.TextSize(str, small)
}

// Metrics implements [Surface].
func (s *SVG) Metrics() Metrics {
	return s.font.Metrics()
}

// DrawImage implements [Surface].
func (s *SVG) DrawImage(dst rect.Rect, img image.Image) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		if s.err == nil {
			s.err = fmt.Errorf("embed image: %w", err)
		}
		return
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	w := int(math.Round(dst.URx - dst.LLx))
	h := int(math.Round(dst.URy - dst.LLy))
	s.canvas.Image(dst.LLx, dst.LLy, w, h, uri, `preserveAspectRatio="none"`)
}

// pathData converts p into the "d" attribute of an SVG path.
func pathData(p *path.Data) string {
	var b strings.Builder
	k := 0
	point := func(cmd byte, q vec.Vec2) {
		b.WriteByte(cmd)
		b.WriteString(num(q.X))
		b.WriteByte(' ')
		b.WriteString(num(q.Y))
	}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			point('M', p.Coords[k])
			k++
		case path.CmdLineTo:
			point('L', p.Coords[k])
			k++
		case path.CmdQuadTo:
			point('Q', p.Coords[k])
			point(' ', p.Coords[k+1])
			k += 2
		case path.CmdCubeTo:
			point('C', p.Coords[k])
			point(' ', p.Coords[k+1])
			point(' ', p.Coords[k+2])
			k += 3
		case path.CmdClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func strokeStyle(pen Pen) string {
	var b strings.Builder
	fmt.Fprintf(&b, "stroke:%s", hexColor(pen.Color))
	if pen.Color.A != 255 {
		fmt.Fprintf(&b, ";stroke-opacity:%s", num(float64(pen.Color.A)/255))
	}
	w := pen.Width
	if w <= 0 {
		w = 1
	}
	fmt.Fprintf(&b, ";stroke-width:%s", num(w))
	switch pen.Cap {
	case graphics.LineCapRound:
		b.WriteString(";stroke-linecap:round")
	case graphics.LineCapSquare:
		b.WriteString(";stroke-linecap:square")
	}
	switch pen.Join {
	case graphics.LineJoinRound:
		b.WriteString(";stroke-linejoin:round")
	case graphics.LineJoinBevel:
		b.WriteString(";stroke-linejoin:bevel")
	}
	if len(pen.Dash) > 0 {
		parts := make([]string, len(pen.Dash))
		for i, d := range pen.Dash {
			parts[i] = num(d)
		}
		fmt.Fprintf(&b, ";stroke-dasharray:%s", strings.Join(parts, ","))
	}
	return b.String()
}

func fillStyle(c color.NRGBA) string {
	if c.A == 255 {
		return "fill:" + hexColor(c)
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%s", hexColor(c), num(float64(c.A)/255))
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// num formats a coordinate with at most three decimals.
func num(x float64) string {
	return strconv.FormatFloat(math.Round(x*1000)/1000, 'f', -1, 64)
}
