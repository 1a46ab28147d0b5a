// workflow-activities-pdf - workflow activities for manipulating PDF files
// Copyright (C) 2025  The workflow-activities-pdf authors
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

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vertigis/workflow-activities-pdf/activity"
)

// newFlagSet returns the flag set for a command.  Errors are reported by
// the flag package, and -h prints the usage of the command.
func newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  pdf-activity [-o out.pdf] [-f] %s %s\n\nOptions:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses the command line of a command and checks the number of
// positional arguments.
func parse(fs *flag.FlagSet, args []string, nArgs int) ([]string, error) {
	err := fs.Parse(args)
	if err != nil {
		return nil, errUsage
	}
	if nArgs >= 0 && fs.NArg() != nArgs {
		fmt.Fprintf(os.Stderr, "pdf-activity %s: need %d arguments, got %d\n\n",
			fs.Name(), nArgs, fs.NArg())
		fs.Usage()
		return nil, errUsage
	}
	return fs.Args(), nil
}

// output extracts the PDF file from the output of an activity.
func output(out *activity.Output, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

func runCreate(args []string) ([]byte, error) {
	fs := newFlagSet("create", "[options]")
	in := &activity.CreateDocumentInputs{}
	fs.Float64Var(&in.PageWidth, "width", 0, "page width in PDF units (default 595)")
	fs.Float64Var(&in.PageHeight, "height", 0, "page height in PDF units (default 842)")
	fs.StringVar(&in.Title, "title", "", "document title")
	fs.StringVar(&in.Author, "author", "", "document author")
	fs.StringVar(&in.Subject, "subject", "", "document subject")
	fs.StringVar(&in.Language, "lang", "", "document language, for example en-US")
	keywords := fs.String("keywords", "", "comma-separated list of keywords")
	_, err := parse(fs, args, 0)
	if err != nil {
		return nil, err
	}
	if *keywords != "" {
		in.Keywords = strings.Split(*keywords, ",")
	}
	return output(activity.CreateDocument(in))
}

func runMerge(args []string) ([]byte, error) {
	fs := newFlagSet("merge", "a.pdf b.pdf ...")
	files, err := parse(fs, args, -1)
	if err != nil {
		return nil, err
	}
	in := &activity.MergeDocumentsInputs{Sources: [][]byte{}}
	for _, fname := range files {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		in.Sources = append(in.Sources, data)
	}
	return output(activity.MergeDocuments(in))
}

func runText(args []string) ([]byte, error) {
	fs := newFlagSet("text", "[options] in.pdf TEXT")
	in := &activity.PlaceTextInputs{}
	fs.IntVar(&in.PageIndex, "page", 0, "zero-based page index")
	fs.Float64Var(&in.X, "x", 0, "x coordinate of the text")
	fs.Float64Var(&in.Y, "y", 0, "y coordinate of the text")
	fs.StringVar(&in.FontName, "font", "", "standard font name (default Helvetica)")
	fs.Float64Var(&in.FontSize, "size", 0, "font size (default 12)")
	fs.StringVar(&in.Color, "color", "", "text color as RRGGBB or RRGGBBAA (default 000000FF)")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return nil, err
	}
	in.Source, err = os.ReadFile(rest[0])
	if err != nil {
		return nil, err
	}
	in.Text = rest[1]
	return output(activity.PlaceText(in))
}

func runImage(args []string) ([]byte, error) {
	fs := newFlagSet("image", "[options] in.pdf image")
	in := &activity.PlaceImageInputs{}
	fs.IntVar(&in.PageIndex, "page", 0, "zero-based page index")
	fs.Float64Var(&in.X, "x", 0, "x coordinate of the bottom left corner")
	fs.Float64Var(&in.Y, "y", 0, "y coordinate of the bottom left corner")
	fs.Float64Var(&in.Width, "width", 0, "image width (default: width in pixels)")
	fs.Float64Var(&in.Height, "height", 0, "image height (default: height in pixels)")
	fs.Float64Var(&in.BorderWidth, "border", 0, "border line width, 0 for no border")
	fs.StringVar(&in.BorderColor, "border-color", "", "border color as RRGGBB or RRGGBBAA (default 000000FF)")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return nil, err
	}
	in.Source, err = os.ReadFile(rest[0])
	if err != nil {
		return nil, err
	}
	in.Image, err = os.ReadFile(rest[1])
	if err != nil {
		return nil, err
	}
	return output(activity.PlaceImage(in))
}

func runGeoref(args []string) ([]byte, error) {
	fs := newFlagSet("georef", "[options] -page-bounds ... -map-bounds ... -wkt WKT in.pdf")
	in := &activity.AddGeoreferenceInputs{}
	fs.IntVar(&in.PageIndex, "page", 0, "zero-based page index")
	fs.StringVar(&in.Name, "name", "", "viewport name (default \"Map\")")
	pageBounds := fs.String("page-bounds", "", "map area on the page as `x0,y0,x1,y1`")
	mapBounds := fs.String("map-bounds", "", "geographic coordinates of the four corners, 8 numbers")
	wkt := fs.String("wkt", "", "WKT of the coordinate system, or @file to read it from a file")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return nil, err
	}

	if *pageBounds != "" {
		in.PageBounds, err = parsePairs(*pageBounds)
		if err != nil {
			return nil, fmt.Errorf("-page-bounds: %w", err)
		}
	}
	if *mapBounds != "" {
		in.MapBounds, err = parsePairs(*mapBounds)
		if err != nil {
			return nil, fmt.Errorf("-map-bounds: %w", err)
		}
	}
	in.CoordinateSystem = *wkt
	if fname, ok := strings.CutPrefix(*wkt, "@"); ok {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		in.CoordinateSystem = strings.TrimSpace(string(data))
	}

	in.Source, err = os.ReadFile(rest[0])
	if err != nil {
		return nil, err
	}
	return output(activity.AddGeoreference(in))
}

// parsePairs converts a comma-separated list of numbers into coordinate
// pairs.
func parsePairs(s string) ([][]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}
	pairs := make([][]float64, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, []float64{x, y})
	}
	return pairs, nil
}
