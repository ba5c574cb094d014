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

package style

// MinWidth is the narrowest pen, in device pixels, which still renders
// reliably on every surface.
const MinWidth = 1.0

// BaseWidth returns the pen width for a plot with n curves, in a font
// with the given x-height.  Plots with many curves get thinner lines.
func BaseWidth(n int, xHeight float64) float64 {
	var w float64
	switch {
	case n > 20:
		w = xHeight / 11
	case n >= 5:
		w = xHeight / 7
	default:
		w = xHeight / 5
	}
	return max(w, MinWidth)
}

// Multiplier returns the factor applied to the base width for a line
// style.
func Multiplier(s LineStyle) float64 {
	switch s {
	case Thick:
		return 3
	case ExtraThick:
		return 5
	default:
		return 1
	}
}

// SymbolWidth is the pen width used for the outline of symbols.
func SymbolWidth(xHeight float64) float64 {
	return max(xHeight/11, MinWidth)
}
