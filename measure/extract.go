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
)

// ViewportArray is the list of viewports of a page, in file order.
type ViewportArray []*Viewport

// Select finds the viewport which applies to a given point.
// The array is examined in reverse order, and the first viewport whose
// BBox contains the point is returned.  If no viewport contains the point,
// nil is returned.
func (va ViewportArray) Select(point vec.Vec2) *Viewport {
	for i := len(va) - 1; i >= 0; i-- {
		if va[i].Contains(point) {
			return va[i]
		}
	}
	return nil
}

// ExtractViewports reads the /VP array of a page dictionary.
// Measure dictionaries of subtypes other than GEO are ignored; the
// corresponding viewports are returned without a measure.
func ExtractViewports(r pdf.Getter, page pdf.Dict) (ViewportArray, error) {
	a, err := pdf.GetArray(r, page["VP"])
	if err != nil {
		return nil, err
	}

	var res ViewportArray
	for _, obj := range a {
		vp, err := ExtractViewport(r, obj)
		if err != nil {
			return nil, err
		}
		res = append(res, vp)
	}
	return res, nil
}

// ExtractViewport reads a viewport dictionary.
func ExtractViewport(r pdf.Getter, obj pdf.Object) (*Viewport, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, err
	} else if dict == nil {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("missing viewport dictionary"),
		}
	}

	vp := &Viewport{}

	bbox, err := pdf.GetArray(r, dict["BBox"])
	if err != nil {
		return nil, err
	}
	if len(bbox) != 4 {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("viewport without valid BBox"),
		}
	}
	for i, obj := range bbox {
		x, err := pdf.GetNumber(r, obj)
		if err != nil {
			return nil, err
		}
		vp.BBox[i] = float64(x)
	}

	name, err := pdf.GetString(r, dict["Name"])
	if err != nil {
		return nil, err
	}
	vp.Name = string(name)

	mDict, err := pdf.GetDict(r, dict["Measure"])
	if err != nil {
		return nil, err
	}
	if mDict != nil {
		subtype, err := pdf.GetName(r, mDict["Subtype"])
		if err != nil {
			return nil, err
		}
		if subtype == "GEO" {
			vp.Measure, err = extractGeospatialMeasure(r, mDict)
			if err != nil {
				return nil, err
			}
		}
	}

	return vp, nil
}
