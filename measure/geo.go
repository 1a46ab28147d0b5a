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

package measure

import (
	"errors"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/internal/float"
)

// UnitSquare lists the corners of the unit square in the order bottom-left,
// top-left, top-right, bottom-right.  It is used both as the /Bounds and the
// /LPTS entry of the measure dictionaries written by this package, so that
// each corner of the viewport maps to the corresponding corner of the map
// bounds.
var UnitSquare = []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

// GeospatialMeasure is a measure dictionary of subtype GEO.
type GeospatialMeasure struct {
	// Bounds is the region of the viewport, in unit square coordinates,
	// for which geospatial information is available.
	Bounds []vec.Vec2

	// GCS is the coordinate system of the geographic points.
	GCS *CoordinateSystem

	// GPTS contains the geographic points, one for each entry of LPTS.
	GPTS []vec.Vec2

	// LPTS contains points in unit square coordinates of the viewport
	// which correspond to GPTS.
	LPTS []vec.Vec2
}

// AsDict returns the measure dictionary.  The coordinate system
// dictionary gcs is stored as given, so that a viewport can share it.
func (m *GeospatialMeasure) AsDict(gcs pdf.Dict) pdf.Dict {
	return pdf.Dict{
		"Type":    pdf.Name("Measure"),
		"Subtype": pdf.Name("GEO"),
		"Bounds":  pointArray(m.Bounds),
		"GCS":     gcs,
		"GPTS":    pointArray(m.GPTS),
		"LPTS":    pointArray(m.LPTS),
	}
}

func extractGeospatialMeasure(r pdf.Getter, dict pdf.Dict) (*GeospatialMeasure, error) {
	m := &GeospatialMeasure{}

	var err error
	m.GCS, err = extractCoordinateSystem(r, dict["GCS"])
	if err != nil {
		return nil, err
	}

	m.Bounds, err = extractPoints(r, dict["Bounds"])
	if err != nil {
		return nil, err
	}
	if m.Bounds == nil {
		m.Bounds = UnitSquare
	}
	m.GPTS, err = extractPoints(r, dict["GPTS"])
	if err != nil {
		return nil, err
	}
	m.LPTS, err = extractPoints(r, dict["LPTS"])
	if err != nil {
		return nil, err
	}
	if m.LPTS != nil && len(m.LPTS) != len(m.GPTS) {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("GPTS and LPTS have different lengths"),
		}
	}

	return m, nil
}

// pointArray flattens a list of points into a PDF array of numbers.
func pointArray(pts []vec.Vec2) pdf.Array {
	a := make(pdf.Array, 0, 2*len(pts))
	for _, p := range pts {
		a = append(a, float.Object(p.X), float.Object(p.Y))
	}
	return a
}

func extractPoints(r pdf.Getter, obj pdf.Object) ([]vec.Vec2, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	} else if a == nil {
		return nil, nil
	}
	if len(a)%2 != 0 {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("odd number of point coordinates"),
		}
	}

	pts := make([]vec.Vec2, len(a)/2)
	for i := range pts {
		x, err := pdf.GetNumber(r, a[2*i])
		if err != nil {
			return nil, err
		}
		y, err := pdf.GetNumber(r, a[2*i+1])
		if err != nil {
			return nil, err
		}
		pts[i] = vec.Vec2{X: float64(x), Y: float64(y)}
	}
	return pts, nil
}
