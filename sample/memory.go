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

package sample

import "fmt"

// Memory is a Source backed by a slice.  It keeps track of acquire
// and release calls so that unbalanced use shows up in tests.
type Memory struct {
	Samples []Sample

	depth    int
	acquires int
}

// FromColumns builds a Memory source from separate time and value
// columns.  If x is nil, the time values are used for x.
func FromColumns(t, x, y []float64) (*Memory, error) {
	if len(t) != len(y) || (x != nil && len(x) != len(t)) {
		return nil, fmt.Errorf("sample: column lengths differ (t=%d, x=%d, y=%d)",
			len(t), len(x), len(y))
	}
	m := &Memory{Samples: make([]Sample, len(t))}
	for i := range t {
		s := Sample{T: t[i], X: t[i], Y: y[i]}
		if x != nil {
			s.X = x[i]
		}
		m.Samples[i] = s
	}
	return m, nil
}

// Acquire implements [Source].
func (m *Memory) Acquire() error {
	m.depth++
	m.acquires++
	return nil
}

// Release implements [Source].  It panics if the source is not acquired.
func (m *Memory) Release() {
	if m.depth == 0 {
		panic("sample: release without acquire")
	}
	m.depth--
}

// Begin implements [Source].  It panics if the source is not acquired.
func (m *Memory) Begin() Iterator {
	if m.depth == 0 {
		panic(ErrNotAcquired)
	}
	return &sliceIter{s: m.Samples}
}

// Acquired reports whether there is an outstanding Acquire call.
func (m *Memory) Acquired() bool {
	return m.depth > 0
}

// Acquires returns the total number of Acquire calls so far.
func (m *Memory) Acquires() int {
	return m.acquires
}

// Validate checks that the samples are ordered by non-decreasing time.
func (m *Memory) Validate() error {
	for i := 1; i < len(m.Samples); i++ {
		if m.Samples[i].T < m.Samples[i-1].T {
			return fmt.Errorf("sample %d: time %g precedes %g",
				i, m.Samples[i].T, m.Samples[i-1].T)
		}
	}
	return nil
}

type sliceIter struct {
	s []Sample
	i int
}

func (it *sliceIter) Done() bool { return it.i >= len(it.s) }
func (it *sliceIter) At() Sample { return it.s[it.i] }
func (it *sliceIter) Next() { it.i++ }
