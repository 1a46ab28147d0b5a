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

// Package measure attaches geospatial measurement information to PDF pages.
//
// A georeferenced page carries a /VP array of viewport dictionaries.  Each
// viewport marks a rectangular region of the page and links it, through a
// measure dictionary of subtype GEO, to a geographic or projected coordinate
// system given as OGC well-known text (WKT).  This is the layout described in
// section 12.9 of the PDF specification and used by geospatial PDF readers.
//
// # Writing
//
// A [Georeference] collects the caller's inputs.  [Georeference.Viewport]
// validates them and returns a [Viewport], and [AppendViewport] adds the
// viewport to a page dictionary:
//
//	g := &measure.Georeference{
//		PageBounds:       [][]float64{{0, 0}, {100, 100}},
//		MapBounds:        [][]float64{{10, 10}, {10, 20}, {20, 20}, {20, 10}},
//		CoordinateSystem: `GEOGCS["WGS 84", ...]`,
//	}
//	vp, err := g.Viewport()
//	if err != nil {
//		// handle error
//	}
//	err = measure.AppendViewport(nil, pageDict, vp)
//
// Existing viewports of the page are kept; the new viewport is added at
// the end of the array.
//
// # Reading
//
// [ExtractViewports] decodes the viewports of a page read from a file.
// [ViewportArray.Select] finds the viewport which applies to a given point.
package measure
