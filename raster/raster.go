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

// Package raster converts polylines and polygons into per-pixel coverage.
//
// Paths are given in user space and mapped to device space by the CTM of
// the [Rasterizer].  Coverage is reported one scanline at a time through an
// [EmitFunc], which leaves compositing to the caller.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of the pixels xMin, xMin+1, ... on
// scanline y.  The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device space, stored with
// y0 < y1.  dir is +1 if the original segment pointed down and -1 otherwise.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    float32
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

func (e *edge) yAt(x float64) float64 {
	return e.y0 + (x-e.x0)/e.dxdy
}

// Rasterizer computes the pixel coverage of filled and stroked paths.
// Buffers are reused between calls, so a single Rasterizer should be kept
// for the lifetime of a drawing surface.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device rectangle.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a round
	// cap or join and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap and Join select the shape of line ends and corners.
	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit is the maximal ratio between miter length and line width.
	MiterLimit float64

	// Dash gives alternating on/off lengths in user space units.  An odd
	// number of entries is repeated once.  Nil means a solid line.
	Dash      []float64
	DashPhase float64

	// Antialias selects fractional coverage.  If it is false, every pixel
	// is reported as either fully covered or not covered.
	Antialias bool

	edges  []edge
	active []int
	cover  []float32
	area   []float32
	pts    []vec.Vec2
	segs   []segment
	run    []segment
	poly   []vec.Vec2

	bboxEmpty    bool
	bxMin, bxMax float64
	byMin, byMax float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with an
// identity CTM, a one unit wide solid stroke and anti-aliasing enabled.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
		Antialias:  true,
	}
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

// FillNonZero fills p using the nonzero winding rule.  Open subpaths are
// closed implicitly.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, evenOdd, emit)
}

func (r *Rasterizer) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	r.resetEdges()
	r.eachSubpath(p, func(pts []vec.Vec2, _ bool) {
		for i := 1; i < len(pts); i++ {
			r.addEdge(pts[i-1], pts[i])
		}
		r.addEdge(pts[len(pts)-1], pts[0])
	})
	r.scan(rule, emit)
}

// eachSubpath calls fn with the vertices of every subpath of p which has at
// least two vertices.  Curved segments are replaced by their chords.
func (r *Rasterizer) eachSubpath(p *path.Data, fn func(pts []vec.Vec2, closed bool)) {
	pts := r.pts[:0]
	flush := func(closed bool) {
		if len(pts) > 1 {
			fn(pts, closed)
		}
		pts = pts[:0]
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			pts = append(pts, p.Coords[k])
			k++
		case path.CmdLineTo:
			pts = append(pts, p.Coords[k])
			k++
		case path.CmdQuadTo:
			pts = append(pts, p.Coords[k+1])
			k += 2
		case path.CmdCubeTo:
			pts = append(pts, p.Coords[k+2])
			k += 3
		case path.CmdClose:
			if len(pts) == 0 {
				continue
			}
			start := pts[0]
			flush(true)
			pts = append(pts, start)
		}
	}
	flush(false)
	r.pts = pts
}

func (r *Rasterizer) resetEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge maps the user space segment a-b to device space and records it.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := &r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	if math.Abs(y1-y0) < horizontalEdgeThreshold {
		return
	}
	var dir float32 = 1
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0, x1: x1, y1: y1,
		dxdy: (x1 - x0) / (y1 - y0),
		dir:  dir,
	})

	lo, hi := min(x0, x1), max(x0, x1)
	if r.bboxEmpty {
		r.bxMin, r.bxMax, r.byMin, r.byMax = lo, hi, y0, y1
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, lo)
	r.bxMax = max(r.bxMax, hi)
	r.byMin = min(r.byMin, y0)
	r.byMax = max(r.byMax, y1)
}

// Coverage model: every edge piece inside a pixel adds its signed height to
// cover[i], and the same height weighted by the covered fraction of the
// pixel to area[i].  Integrating a scanline from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i]
//
// gives the signed area of the path inside each pixel.

// scan converts the collected edges to coverage values using an active
// edge list, one scanline at a time.
func (r *Rasterizer) scan(rule fillRule, emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		for next < len(r.edges) && r.edges[next].y0 < top+1 {
			r.active = append(r.active, next)
			next++
		}
		keep := r.active[:0]
		for _, i := range r.active {
			if r.edges[i].y1 > top {
				keep = append(keep, i)
			}
		}
		r.active = keep
		if len(r.active) == 0 {
			if next == len(r.edges) {
				break
			}
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, xMin, xMax)
		}
		r.integrate(rule)

		if cov, off := trimZeros(r.cover); cov != nil {
			emit(y, xMin+off, cov)
		}
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// buffers, which hold the pixels xMin, ..., xMax-1.
func (r *Rasterizer) accumulate(e *edge, y, xMin, xMax int) {
	yt := max(float64(y), e.y0)
	yb := min(float64(y+1), e.y1)
	if yb <= yt {
		return
	}
	xt, xb := e.xAt(yt), e.xAt(yb)
	lo, hi := min(xt, xb), max(xt, xb)

	first, last := int(math.Floor(lo)), int(math.Floor(hi))
	if first == last {
		r.deposit(first, xMin, xMax, e.dir*float32(yb-yt), (xt+xb)/2-float64(first))
		return
	}
	for px := first; px <= last; px++ {
		ya, yc := e.yAt(float64(px)), e.yAt(float64(px+1))
		segTop := max(min(ya, yc), yt)
		segBot := min(max(ya, yc), yb)
		if segBot <= segTop {
			continue
		}
		xm := e.xAt((segTop + segBot) / 2)
		r.deposit(px, xMin, xMax, e.dir*float32(segBot-segTop), xm-float64(px))
	}
}

// deposit records a piece of edge with signed height h which crosses pixel
// column px at horizontal offset frac.
func (r *Rasterizer) deposit(px, xMin, xMax int, h float32, frac float64) {
	switch {
	case px < xMin:
		r.cover[0] += h
		r.area[0] += h
	case px < xMax:
		i := px - xMin
		r.cover[i] += h
		r.area[i] += h * float32(1-frac)
	}
}

// integrate turns the cover and area buffers into coverage values, which
// are stored in r.cover.
func (r *Rasterizer) integrate(rule fillRule) {
	var acc float32
	for i, c := range r.cover {
		raw := acc + r.area[i]
		acc += c
		if raw < 0 {
			raw = -raw
		}
		var v float32
		if rule == nonZero {
			v = min(raw, 1)
		} else {
			mod := raw - 2*float32(int(raw/2))
			v = 1 - abs32(1-mod)
		}
		if !r.Antialias {
			if v >= 0.5 {
				v = 1
			} else {
				v = 0
			}
		}
		r.cover[i] = v
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips leading and trailing zeros from coverage.  It returns
// nil if no pixel is covered.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit turns joins sharper than about 11.5 degrees into
	// bevels, as in PDF.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspCosineThreshold detects segments which double back on
	// themselves.
	cuspCosineThreshold = -0.9999
)
