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

// Package sample defines how curve data is read during a render pass.
//
// A [Source] must be acquired before it is iterated and released
// afterwards.  Use [With] or [Each] to make sure that every acquire is
// paired with a release, on every exit path.
package sample

import (
	"errors"
	"fmt"
)

// Sample is one point of a time series.  For most curves X equals T.
type Sample struct {
	T, X, Y float64
}

// Source gives scoped access to the samples of one curve.
//
// Between Acquire and Release, Begin may be called any number of times to
// obtain fresh iterators.  Samples are ordered by non-decreasing time.
// A Source is not safe for concurrent use; callers serialize access.
type Source interface {
	Acquire() error
	Begin() Iterator
	Release()
}

// Iterator is a forward cursor over the samples of a Source.
type Iterator interface {
	// Done reports whether the iterator has moved past the last sample.
	Done() bool

	// At returns the current sample.  It must not be called once Done
	// returns true.
	At() Sample

	// Next advances to the following sample.
	Next()
}

// ErrNotAcquired is reported when a source is used outside of an
// Acquire/Release bracket.
var ErrNotAcquired = errors.New("sample: source not acquired")

// With acquires src, calls fn and releases src again, even if fn panics.
func With(src Source, fn func() error) error {
	if err := src.Acquire(); err != nil {
		return fmt.Errorf("acquire curve data: %w", err)
	}
	defer src.Release()
	return fn()
}

// Each calls fn for every sample of src, in order, while src is acquired.
// Iteration stops at the first error returned by fn, and that error is
// returned.
func Each(src Source, fn func(Sample) error) error {
	return With(src, func() error {
		for it := src.Begin(); !it.Done(); it.Next() {
			if err := fn(it.At()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of samples in src.
func Count(src Source) (int, error) {
	n := 0
	err := Each(src, func(Sample) error {
		n++
		return nil
	})
	return n, err
}
