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

// Package merge computes the difference of two time series whose samples
// are taken at nearly, but not exactly, the same times.
package merge

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveplot/sample"
)

// Options control the alignment of two series.
type Options struct {
	// Tolerance is the largest time difference, exclusive, for which two
	// samples are considered simultaneous.  Zero means that only equal
	// times match.
	Tolerance float64

	// Only matched samples with Start <= t <= Stop are emitted.
	Start, Stop float64

	// ScaleA and ScaleB multiply the y values before subtracting.
	ScaleA, ScaleB float64
}

// ErrMissingData is returned if one of the two sources is nil.
var ErrMissingData = errors.New("merge: missing curve data")

// InconsistencyError reports a pair of samples which is neither matched
// nor ordered.  This can only happen for NaN times, and indicates corrupt
// input rather than a recoverable condition.
type InconsistencyError struct {
	TA, TB float64
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("merge: time stamps %g and %g are neither matched nor ordered", e.TA, e.TB)
}

// Difference walks both series in time order and, for every pair of
// samples less than o.Tolerance apart, emits (tA, ScaleA*yA - ScaleB*yB).
// If the times differ by more, the series which lags behind is advanced.
// The walk ends as soon as either series is exhausted; unmatched samples
// are dropped.
//
// Both sources are acquired for the duration of the call and released
// before it returns.
func Difference(a, b sample.Source, o Options) ([]vec.Vec2, error) {
	if a == nil || b == nil {
		return nil, ErrMissingData
	}

	var res []vec.Vec2
	err := sample.With(a, func() error {
		return sample.With(b, func() error {
			var err error
			res, err = join(a.Begin(), b.Begin(), o)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func join(ia, ib sample.Iterator, o Options) ([]vec.Vec2, error) {
	var res []vec.Vec2
	for !ia.Done() && !ib.Done() {
		sa, sb := ia.At(), ib.At()
		d := math.Abs(sa.T - sb.T)
		switch {
		case d < o.Tolerance || sa.T == sb.T:
			if sa.T >= o.Start && sa.T <= o.Stop {
				res = append(res, vec.Vec2{X: sa.T, Y: o.ScaleA*sa.Y - o.ScaleB*sb.Y})
			}
			ia.Next()
			ib.Next()
		case sa.T < sb.T:
			ia.Next()
		case sb.T < sa.T:
			ib.Next()
		default:
			return nil, &InconsistencyError{TA: sa.T, TB: sb.T}
		}
	}
	return res, nil
}

// ScaleFactors returns the multipliers for the two series of an error
// plot: ys0 is the y scale of the first curve and k0 its configured
// scale factor, and likewise for the second curve.  The second series is
// rescaled by k1/k0 so that both are compared in the units of the first.
func ScaleFactors(ys0, k0, ys1, k1 float64) (float64, float64) {
	if k0 == 0 {
		k0 = 1
	}
	return ys0, (k1 / k0) * ys1
}
