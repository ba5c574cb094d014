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

package affine

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ScaleBias is the per-curve linear correction (x, y) -> (XS*x+XB, YS*y+YB)
// applied to raw samples before they are plotted.
type ScaleBias struct {
	XS, YS float64
	XB, YB float64
}

// NoScale leaves samples unchanged.
var NoScale = ScaleBias{XS: 1, YS: 1}

// Apply returns the corrected coordinates.
func (s ScaleBias) Apply(x, y float64) (float64, float64) {
	return s.XS*x + s.XB, s.YS*y + s.YB
}

// Mapping is the complete path from raw curve samples to device space:
// scale and bias, then an optional base-10 logarithm per axis, then the
// base transform.
type Mapping struct {
	Base  Transform
	Scale ScaleBias
	LogX  bool
	LogY  bool
}

// Map maps a raw sample.  The second return value is false if a corrected
// value on a logarithmic axis is not positive, in which case the point
// cannot be drawn.
func (m *Mapping) Map(x, y float64) (vec.Vec2, bool) {
	x, y = m.Scale.Apply(x, y)
	if m.LogX {
		if !(x > 0) {
			return vec.Vec2{}, false
		}
		x = math.Log10(x)
	}
	if m.LogY {
		if !(y > 0) {
			return vec.Vec2{}, false
		}
		y = math.Log10(y)
	}
	return m.Base.Map(vec.Vec2{X: x, Y: y}), true
}

// Linear returns the single affine transform equivalent to m, if neither
// axis is logarithmic.
func (m *Mapping) Linear() (Transform, bool) {
	if m.LogX || m.LogY {
		return Transform{}, false
	}
	s := m.Scale
	return m.Base.Compose(s.XS, s.YS, s.XB, s.YB), true
}
