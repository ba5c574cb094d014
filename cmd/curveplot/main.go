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

// Command curveplot renders one page of a plot book to a PNG or SVG file.
//
// Usage:
//
//	curveplot -book book.yaml -o page.png [-page 1] [-width 800] [-height 600]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/curveplot"
	"seehuhn.de/go/curveplot/config"
	"seehuhn.de/go/curveplot/plot"
)

func main() {
	var (
		bookFile = flag.String("book", "", "read the plot book from `file`")
		output   = flag.String("o", "plot.png", "write the page to `file` (.png or .svg)")
		page     = flag.Int("page", 1, "render page `N` of the book")
		width    = flag.Int("width", curveplot.DefaultOptions.Width, "page width in pixels")
		height   = flag.Int("height", curveplot.DefaultOptions.Height, "page height in pixels")
		dpi      = flag.Float64("dpi", curveplot.DefaultOptions.DPI, "device resolution")
		fontSize = flag.Float64("font-size", curveplot.DefaultOptions.FontSize, "font size in points")
		verbose  = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	plot.SetLogger(logger)

	if *bookFile == "" {
		fmt.Fprintln(os.Stderr, "curveplot: missing -book argument")
		flag.Usage()
		os.Exit(2)
	}

	opt := &curveplot.Options{
		Width:    *width,
		Height:   *height,
		DPI:      *dpi,
		FontSize: *fontSize,
	}
	err := run(*bookFile, *output, *page-1, opt)
	if err != nil {
		logger.Error("rendering failed", "book", *bookFile, "error", err, "fatal", plot.IsFatal(err))
		os.Exit(1)
	}
	logger.Debug("page written", "file", *output)
}

func run(bookFile, output string, page int, opt *curveplot.Options) error {
	b, err := config.Load(bookFile)
	if err != nil {
		return err
	}

	render := curveplot.RenderPNG
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
	case ".svg":
		render = curveplot.RenderSVG
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	err = render(out, b, page, opt)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
