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
	"strings"

	"seehuhn.de/go/pdf"
)

// ErrMissingCoordinateSystem is returned when no WKT string is given.
var ErrMissingCoordinateSystem = errors.New("missing coordinate system")

// CoordinateSystem describes the coordinate system of a geospatial measure.
// The WKT string is stored as given and is not parsed.
type CoordinateSystem struct {
	WKT string
}

// NewCoordinateSystem returns the coordinate system described by wkt.
func NewCoordinateSystem(wkt string) (*CoordinateSystem, error) {
	if wkt == "" {
		return nil, ErrMissingCoordinateSystem
	}
	return &CoordinateSystem{WKT: wkt}, nil
}

// IsProjected reports whether the WKT describes a projected coordinate
// system.  All other coordinate systems are treated as geographic.
func (cs *CoordinateSystem) IsProjected() bool {
	return strings.HasPrefix(cs.WKT, "PROJCS[")
}

// Type returns the PDF dictionary type, /PROJCS or /GEOGCS.
func (cs *CoordinateSystem) Type() pdf.Name {
	if cs.IsProjected() {
		return "PROJCS"
	}
	return "GEOGCS"
}

// AsDict returns the coordinate system dictionary.
func (cs *CoordinateSystem) AsDict() pdf.Dict {
	return pdf.Dict{
		"Type": cs.Type(),
		"WKT":  pdf.String(cs.WKT),
	}
}

func extractCoordinateSystem(r pdf.Getter, obj pdf.Object) (*CoordinateSystem, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, err
	} else if dict == nil {
		return nil, nil
	}

	wkt, err := pdf.GetString(r, dict["WKT"])
	if err != nil {
		return nil, err
	}
	if len(wkt) == 0 {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("coordinate system without WKT"),
		}
	}
	return &CoordinateSystem{WKT: string(wkt)}, nil
}
