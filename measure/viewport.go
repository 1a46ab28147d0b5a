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
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/internal/float"
)

// PDF 2.0 sections: 12.9

// ErrInvalidBounds is returned when the page or map bounds do not have the
// required number of coordinate pairs.
var ErrInvalidBounds = errors.New("invalid bounds")

// DefaultName is the viewport name used when none is given.
const DefaultName = "Map"

// Georeference holds the inputs for one georeferenced region of a page.
type Georeference struct {
	// Name is the title of the viewport.  If this is empty, [DefaultName]
	// is used.
	Name string

	// PageBounds gives the bottom-left and top-right corner of the region,
	// in default user space units.
	PageBounds [][]float64

	// MapBounds gives the geographic coordinates of the four corners of
	// the region, in the order bottom-left, top-left, top-right,
	// bottom-right.
	MapBounds [][]float64

	// CoordinateSystem is the WKT string of the coordinate system used
	// for MapBounds.
	CoordinateSystem string
}

// Viewport checks the inputs and returns the corresponding viewport.
func (g *Georeference) Viewport() (*Viewport, error) {
	page, err := toPoints("page bounds", g.PageBounds, 2)
	if err != nil {
		return nil, err
	}
	gpts, err := toPoints("map bounds", g.MapBounds, 4)
	if err != nil {
		return nil, err
	}
	gcs, err := NewCoordinateSystem(g.CoordinateSystem)
	if err != nil {
		return nil, err
	}

	name := g.Name
	if name == "" {
		name = DefaultName
	}

	vp := &Viewport{
		BBox: [4]float64{page[0].X, page[0].Y, page[1].X, page[1].Y},
		Name: name,
		Measure: &GeospatialMeasure{
			Bounds: UnitSquare,
			GCS:    gcs,
			GPTS:   gpts,
			LPTS:   UnitSquare,
		},
	}
	return vp, nil
}

func toPoints(what string, pairs [][]float64, n int) ([]vec.Vec2, error) {
	if len(pairs) != n {
		return nil, fmt.Errorf("%w: %s need %d coordinate pairs, got %d",
			ErrInvalidBounds, what, n, len(pairs))
	}
	pts := make([]vec.Vec2, n)
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: %s entry %d has %d coordinates",
				ErrInvalidBounds, what, i, len(p))
		}
		if math.IsNaN(p[0]) || math.IsInf(p[0], 0) || math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
			return nil, fmt.Errorf("%w: %s entry %d is not finite",
				ErrInvalidBounds, what, i)
		}
		pts[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	return pts, nil
}

// Viewport represents a rectangular region of a page with measurement
// information.
type Viewport struct {
	// BBox specifies the location of the viewport on the page, as
	// [x0 y0 x1 y1].  The corners are stored in the order given.
	BBox [4]float64

	// Name is a descriptive title of the viewport (optional).
	Name string

	// Measure specifies the geospatial coordinate system of the viewport
	// (optional).
	Measure *GeospatialMeasure
}

// Contains reports whether the point lies inside the viewport's bounding
// box, including its boundary.
func (v *Viewport) Contains(p vec.Vec2) bool {
	x0, x1 := min(v.BBox[0], v.BBox[2]), max(v.BBox[0], v.BBox[2])
	y0, y1 := min(v.BBox[1], v.BBox[3]), max(v.BBox[1], v.BBox[3])
	return p.X >= x0 && p.X <= x1 && p.Y >= y0 && p.Y <= y1
}

// AsDict returns the viewport dictionary.  If a measure is present, its
// coordinate system dictionary is stored both in the measure dictionary
// and directly in the viewport dictionary, as the same object.
func (v *Viewport) AsDict() pdf.Dict {
	dict := pdf.Dict{
		"Type": pdf.Name("Viewport"),
		"BBox": pdf.Array{
			float.Object(v.BBox[0]), float.Object(v.BBox[1]),
			float.Object(v.BBox[2]), float.Object(v.BBox[3]),
		},
	}
	if v.Name != "" {
		dict["Name"] = pdf.String(v.Name)
	}
	if v.Measure != nil {
		var gcs pdf.Dict
		if v.Measure.GCS != nil {
			gcs = v.Measure.GCS.AsDict()
			dict["GCS"] = gcs
		}
		dict["Measure"] = v.Measure.AsDict(gcs)
	}
	return dict
}

// AppendViewport adds vp at the end of the /VP array of a page.  The array
// is created if the page has none.  Existing array entries are not changed.
//
// If the /VP entry is an indirect reference, r is used to read the array
// and the page is changed to hold a direct copy.  r may be nil if the
// page dictionary contains no references in its /VP entry.
func AppendViewport(r pdf.Getter, page pdf.Dict, vp *Viewport) error {
	var vps pdf.Array
	switch obj := page["VP"].(type) {
	case nil:
		// pass
	case pdf.Array:
		vps = obj
	case pdf.Reference:
		if r == nil {
			return errors.New("cannot resolve indirect /VP array")
		}
		a, err := pdf.GetArray(r, obj)
		if err != nil {
			return err
		}
		vps = a
	default:
		return fmt.Errorf("unexpected /VP entry of type %T", obj)
	}

	page["VP"] = append(slices.Clip(vps), vp.AsDict())
	return nil
}
