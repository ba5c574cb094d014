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

// Package style resolves the appearance of curves from their configuration
// strings.  All functions in this package are pure.
package style

import (
	"fmt"
	"image/color"
	"strings"
)

// LineStyle selects how the samples of a curve are connected.
type LineStyle int

const (
	Plain LineStyle = iota
	Thick
	ExtraThick
	Scatter
)

func (s LineStyle) String() string {
	switch s {
	case Plain:
		return "plain"
	case Thick:
		return "thick_line"
	case ExtraThick:
		return "x_thick_line"
	case Scatter:
		return "scatter"
	default:
		return fmt.Sprintf("LineStyle(%d)", int(s))
	}
}

// dashPatterns lists the dashed variants of [Plain], in units of the pen
// width.
var dashPatterns = map[string][]float64{
	"dash":      {8, 4},
	"fine_dash": {3, 3},
	"med_dash":  {6, 6},
	"big_dash":  {12, 6},
	"long_dash": {18, 6},
	"fine_dot":  {1, 3},
	"med_dot":   {1, 6},
	"big_dot":   {1, 9},
	"dash_dot":  {8, 4, 1, 4},
}

// ParseLineStyle interprets a line style name.  Dashed styles are plain
// lines with a dash pattern, given in units of the pen width.  The empty
// string means "plain".
func ParseLineStyle(name string) (LineStyle, []float64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "plain":
		return Plain, nil, nil
	case "thick_line":
		return Thick, nil, nil
	case "x_thick_line":
		return ExtraThick, nil, nil
	case "scatter":
		return Scatter, nil, nil
	}
	if p, ok := dashPatterns[name]; ok {
		return Plain, append([]float64(nil), p...), nil
	}
	return Plain, nil, fmt.Errorf("unknown line style %q", name)
}

// Symbol is a marker drawn at the samples of a curve.
type Symbol int

const (
	NoSymbol Symbol = iota
	Circle
	ThickCircle
	SolidCircle
	Square
	ThickSquare
	SolidSquare
	Star
	XX
	Triangle
	ThickTriangle
	SolidTriangle
	Number0
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Number9
)

var symbolNames = [...]string{
	NoSymbol:      "none",
	Circle:        "circle",
	ThickCircle:   "thick_circle",
	SolidCircle:   "solid_circle",
	Square:        "square",
	ThickSquare:   "thick_square",
	SolidSquare:   "solid_square",
	Star:          "star",
	XX:            "xx",
	Triangle:      "triangle",
	ThickTriangle: "thick_triangle",
	SolidTriangle: "solid_triangle",
	Number0:       "number_0",
	Number1:       "number_1",
	Number2:       "number_2",
	Number3:       "number_3",
	Number4:       "number_4",
	Number5:       "number_5",
	Number6:       "number_6",
	Number7:       "number_7",
	Number8:       "number_8",
	Number9:       "number_9",
}

func (s Symbol) String() string {
	if s >= 0 && int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// Digit returns the digit shown by a numbered symbol.
func (s Symbol) Digit() (byte, bool) {
	if s >= Number0 && s <= Number9 {
		return byte('0' + s - Number0), true
	}
	return 0, false
}

// ParseSymbol interprets a symbol name.  The empty string means "none".
func ParseSymbol(name string) (Symbol, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return NoSymbol, nil
	}
	for i, n := range symbolNames {
		if n == name {
			return Symbol(i), nil
		}
	}
	return NoSymbol, fmt.Errorf("unknown symbol %q", name)
}

// Style is the resolved appearance of one curve.
type Style struct {
	Line   LineStyle
	Symbol Symbol
	Color  color.NRGBA

	// Dash is a dash pattern in units of the pen width, or nil for a
	// solid line.
	Dash []float64
}

// Equal reports whether two styles look the same.
func (s Style) Equal(o Style) bool {
	if s.Line != o.Line || s.Symbol != o.Symbol || s.Color != o.Color {
		return false
	}
	if len(s.Dash) != len(o.Dash) {
		return false
	}
	for i := range s.Dash {
		if s.Dash[i] != o.Dash[i] {
			return false
		}
	}
	return true
}

// Resolve builds a Style from configuration strings.
func Resolve(lineStyle, symbol, col string) (Style, error) {
	line, dash, err := ParseLineStyle(lineStyle)
	if err != nil {
		return Style{}, err
	}
	sym, err := ParseSymbol(symbol)
	if err != nil {
		return Style{}, err
	}
	c, err := ParseColor(col)
	if err != nil {
		return Style{}, err
	}
	return Style{Line: line, Symbol: sym, Color: c, Dash: dash}, nil
}
