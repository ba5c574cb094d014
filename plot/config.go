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

package plot

import (
	"image/color"
	"strings"

	"seehuhn.de/go/curveplot/affine"
	"seehuhn.de/go/curveplot/sample"
	"seehuhn.de/go/curveplot/style"
)

// Presentation selects how a plot with exactly two curves is drawn.
type Presentation int

const (
	// Error draws the difference of the two curves only.
	Error Presentation = iota

	// Compare draws both curves.
	Compare

	// ErrorCompare draws both curves and their difference.
	ErrorCompare
)

func (p Presentation) String() string {
	switch p {
	case Error:
		return "error"
	case Compare:
		return "compare"
	case ErrorCompare:
		return "error+compare"
	default:
		return "unknown"
	}
}

// ParsePresentation interprets a presentation name.  The empty string
// selects [Error].
func ParsePresentation(s string) (Presentation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return Error, nil
	case "compare":
		return Compare, nil
	case "error+compare":
		return ErrorCompare, nil
	}
	return Error, &ConfigError{Field: "presentation", Value: s}
}

// LegendPosition is the corner or edge of the plot region the legend is
// attached to.
type LegendPosition int

// These are the legend positions.  The zero value is [NorthEast].
const (
	NorthEast LegendPosition = iota
	North
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var legendPositionNames = [...]string{
	NorthEast: "ne",
	North:     "n",
	East:      "e",
	SouthEast: "se",
	South:     "s",
	SouthWest: "sw",
	West:      "w",
	NorthWest: "nw",
}

func (p LegendPosition) String() string {
	if p >= 0 && int(p) < len(legendPositionNames) {
		return legendPositionNames[p]
	}
	return "unknown"
}

// ParseLegendPosition interprets one of the anchors "n", "ne", "e", "se",
// "s", "sw", "w" and "nw".  The empty string selects [NorthEast].
func ParseLegendPosition(s string) (LegendPosition, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return NorthEast, nil
	}
	for i, n := range legendPositionNames {
		if n == name {
			return LegendPosition(i), nil
		}
	}
	return NorthEast, &ConfigError{Field: "legend position", Value: s}
}

// ShowLegend controls whether legends are drawn.
type ShowLegend int

const (
	// LegendAuto shows legends when they are useful.
	LegendAuto ShowLegend = iota
	LegendYes
	LegendNo
)

// ParseShowLegend interprets "auto", "yes" or "no".  The empty string
// selects [LegendAuto].
func ParseShowLegend(s string) (ShowLegend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LegendAuto, nil
	case "yes", "true", "on":
		return LegendYes, nil
	case "no", "false", "off":
		return LegendNo, nil
	}
	return LegendAuto, &ConfigError{Field: "show legend", Value: s}
}

// Curve is one curve of a plot.
type Curve struct {
	Label string
	Style style.Style

	// Data gives the samples.  A nil source marks a curve whose data
	// could not be loaded.
	Data sample.Source

	// Scale is the effective correction applied to the samples, including
	// unit conversion.
	Scale affine.ScaleBias

	// YFactor is the configured y scale factor, without unit conversion.
	// Error plots use it to compare the second curve in the units of the
	// first.
	YFactor float64
}

// Plot is a set of overlaid curves sharing one coordinate system.
type Plot struct {
	Title        string
	Curves       []*Curve
	Presentation Presentation

	LogX, LogY bool

	// Grid enables grid lines.
	Grid bool

	// XTicks and YTicks, if non-empty, replace the computed tick
	// positions.  They are given in data units.
	XTicks, YTicks []float64

	// XRange and YRange, if set, give the visible data range of each
	// axis in data units.  Unset ranges are taken from the curves.
	XRange, YRange *Range
}

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

// Page is a column of plots.
type Page struct {
	Title string
	Plots []*Plot
}

// Book holds the settings shared by all pages.
type Book struct {
	Pages []*Page

	// Start and Stop limit the time range of all curves.
	Start, Stop float64

	// Tolerance is the time tolerance for aligning the samples of error
	// plots.
	Tolerance float64

	ShowLegend     ShowLegend
	LegendPosition LegendPosition

	Foreground color.NRGBA
	Background color.NRGBA

	// ErrorLineColor is used for difference curves, FlatLineColor for
	// difference curves which are identically zero.
	ErrorLineColor color.NRGBA
	FlatLineColor  color.NRGBA
}
