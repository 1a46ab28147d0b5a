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

package activity

import (
	"fmt"

	"github.com/vertigis/workflow-activities-pdf/document"
	"github.com/vertigis/workflow-activities-pdf/measure"
)

// AddGeoreferenceInputs are the inputs of [AddGeoreference].
type AddGeoreferenceInputs struct {
	// Source is the PDF file to modify.  This field is required.
	Source []byte `json:"source"`

	// PageBounds are the bottom-left and top-right corners of the map on
	// the page, in PDF units.  This field is required.
	PageBounds [][]float64 `json:"pageBounds"`

	// MapBounds are the geographic coordinates of the bottom-left,
	// top-left, top-right and bottom-right corners of the map.  This
	// field is required.
	MapBounds [][]float64 `json:"mapBounds"`

	// CoordinateSystem is the WKT definition of the coordinate system of
	// MapBounds.  This field is required.
	CoordinateSystem string `json:"coordinateSystem"`

	// PageIndex is the zero-based index of the page to georeference.
	PageIndex int `json:"pageIndex,omitempty"`

	// Name is the name of the viewport.  The default is "Map".
	Name string `json:"name,omitempty"`
}

// AddGeoreference adds a geospatial viewport to a page of a PDF document.
// Existing viewports of the page are kept.
func AddGeoreference(in *AddGeoreferenceInputs) (*Output, error) {
	if in.Source == nil {
		return nil, missing("source")
	}
	if in.CoordinateSystem == "" {
		return nil, &InputError{
			Field: "coordinateSystem",
			Err:   fmt.Errorf("%w: %w", ErrMissingRequiredInput, measure.ErrMissingCoordinateSystem),
		}
	}
	if in.PageBounds == nil {
		return nil, missing("pageBounds")
	}
	if in.MapBounds == nil {
		return nil, missing("mapBounds")
	}

	g := &measure.Georeference{
		Name:             in.Name,
		PageBounds:       in.PageBounds,
		MapBounds:        in.MapBounds,
		CoordinateSystem: in.CoordinateSystem,
	}
	vp, err := g.Viewport()
	if err != nil {
		return nil, err
	}

	doc, err := document.Load(in.Source)
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(in.PageIndex)
	if err != nil {
		return nil, wrapInput("pageIndex", err)
	}
	// Load makes the viewport array of every page a direct object, so
	// no reader is needed here.
	err = measure.AppendViewport(nil, page.Dict, vp)
	if err != nil {
		return nil, err
	}

	data, err := doc.Save()
	if err != nil {
		return nil, err
	}
	return &Output{Result: data}, nil
}
