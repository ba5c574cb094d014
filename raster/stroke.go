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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a straight piece of a stroked polyline in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // unit normal, T rotated by 90 degrees
	L    float64
}

func newSegment(a, b vec.Vec2) (segment, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return segment{}, false
	}
	t := d.Mul(1 / l)
	return segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}, L: l}, true
}

// sub returns the part of s between arc length from and to.
func (s segment) sub(from, to float64) segment {
	res := s
	res.A = s.A.Add(s.T.Mul(from))
	res.B = s.A.Add(s.T.Mul(to))
	res.L = to - from
	return res
}

// Stroke computes the coverage of the stroked outline of p.  The outline
// is the union of one quadrilateral per segment together with the caps and
// joins, all filled at once with the nonzero rule.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.resetEdges()
	hw := r.Width / 2
	r.eachSubpath(p, func(pts []vec.Vec2, closed bool) {
		segs := r.segs[:0]
		for i := 1; i < len(pts); i++ {
			if s, ok := newSegment(pts[i-1], pts[i]); ok {
				segs = append(segs, s)
			}
		}
		if closed {
			if s, ok := newSegment(pts[len(pts)-1], pts[0]); ok {
				segs = append(segs, s)
			}
		}
		r.segs = segs

		if len(segs) == 0 {
			// a subpath without direction only shows up with round caps
			if r.Cap == graphics.LineCapRound {
				r.addCircle(pts[0], hw)
			}
			return
		}
		if len(r.Dash) > 0 {
			r.dashes(segs, func(run []segment) {
				r.strokeRun(run, false, hw)
			})
		} else {
			r.strokeRun(segs, closed, hw)
		}
	})
	r.scan(nonZero, emit)
}

// strokeRun adds the outline of a connected run of segments.
func (r *Rasterizer) strokeRun(segs []segment, closed bool, hw float64) {
	for i := range segs {
		s := &segs[i]
		off := s.N.Mul(hw)
		r.addPolygon(s.A.Add(off), s.B.Add(off), s.B.Sub(off), s.A.Sub(off))
		if i > 0 {
			r.addJoin(s.A, segs[i-1].T, s.T, hw)
		}
	}
	if closed {
		r.addJoin(segs[0].A, segs[len(segs)-1].T, segs[0].T, hw)
		return
	}
	r.addCap(segs[0].A, segs[0].T.Mul(-1), hw)
	last := &segs[len(segs)-1]
	r.addCap(last.B, last.T, hw)
}

// addCap adds the line cap at P, where T points away from the line.
func (r *Rasterizer) addCap(P, T vec.Vec2, hw float64) {
	switch r.Cap {
	case graphics.LineCapSquare:
		N := vec.Vec2{X: -T.Y, Y: T.X}.Mul(hw)
		ext := P.Add(T.Mul(hw))
		r.addPolygon(P.Add(N), ext.Add(N), ext.Sub(N), P.Sub(N))
	case graphics.LineCapRound:
		r.addCircle(P, hw)
	}
}

// addJoin fills the wedge on the outer side of the corner at P where the
// direction changes from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, hw float64) {
	cos := T1.Dot(T2)
	sin := T1.X*T2.Y - T1.Y*T2.X
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound || cos < cuspCosineThreshold {
		if r.Join == graphics.LineJoinRound {
			r.addCircle(P, hw)
		}
		return
	}

	// the outer side is on the right when turning left
	side := 1.0
	if sin > 0 {
		side = -1
	}
	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}.Mul(side)
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}.Mul(side)
	p1 := P.Add(N1.Mul(hw))
	p2 := P.Add(N2.Mul(hw))

	if r.Join == graphics.LineJoinMiter {
		// the miter length relative to the line width is 1/cos(theta/2)
		cosHalf := math.Sqrt((1 + cos) / 2)
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+1e-10 {
			bis := N1.Add(N2)
			if l := bis.Length(); l > zeroLengthThreshold {
				tip := P.Add(bis.Mul(hw / (cosHalf * l)))
				r.addPolygon(P, p1, tip, p2)
				return
			}
		}
	}
	r.addPolygon(P, p1, p2)
}

// addCircle adds a polygonal disc.  The number of vertices keeps the
// deviation from the true circle below r.Flatness in device space.
func (r *Rasterizer) addCircle(center vec.Vec2, radius float64) {
	m := &r.CTM
	devR := radius * max(math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3]))
	n := 8
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	poly := r.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		poly = append(poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
	r.poly = poly
	r.addPolygon(poly...)
}

// addPolygon adds the edges of a closed polygon, with the vertex order
// normalised to positive orientation so that overlapping pieces of an
// outline never cancel.
func (r *Rasterizer) addPolygon(pts ...vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	n := len(pts)
	if area >= 0 {
		for i := range n {
			r.addEdge(pts[i], pts[(i+1)%n])
		}
	} else {
		for i := range n {
			r.addEdge(pts[(i+1)%n], pts[i])
		}
	}
}

// dashes splits a polyline into the "on" parts of the dash pattern and
// calls fn for each of them.
func (r *Rasterizer) dashes(segs []segment, fn func(run []segment)) {
	pattern := r.Dash
	if len(pattern)%2 == 1 {
		pattern = append(slices.Clone(pattern), pattern...)
	}
	var total float64
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		fn(segs)
		return
	}

	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	left := pattern[idx] - phase

	run := r.run[:0]
	for _, s := range segs {
		pos := 0.0
		for pos < s.L {
			step := min(left, s.L-pos)
			if idx%2 == 0 && step > 0 {
				run = append(run, s.sub(pos, pos+step))
			}
			pos += step
			left -= step
			if left <= 0 {
				if len(run) > 0 {
					fn(run)
					run = run[:0]
				}
				idx = (idx + 1) % len(pattern)
				left = pattern[idx]
			}
		}
	}
	if len(run) > 0 {
		fn(run)
	}
	r.run = run
}
