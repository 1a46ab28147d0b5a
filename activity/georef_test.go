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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/document"
	"github.com/vertigis/workflow-activities-pdf/measure"
)

const (
	testGeographic = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`
	testProjected  = `PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]]]]`
)

func testGeoreference(src []byte) *AddGeoreferenceInputs {
	return &AddGeoreferenceInputs{
		Source:           src,
		PageBounds:       [][]float64{{0, 0}, {100, 100}},
		MapBounds:        [][]float64{{10, 10}, {10, 20}, {20, 20}, {20, 10}},
		CoordinateSystem: testGeographic,
	}
}

func TestAddGeoreference(t *testing.T) {
	out, err := AddGeoreference(testGeoreference(makePDF(t, "", 300)))
	if err != nil {
		t.Fatal(err)
	}

	r := openPDF(t, out.Result)
	vps, err := measure.ExtractViewports(r, getPage(t, r, 0))
	if err != nil {
		t.Fatal(err)
	}
	want := measure.ViewportArray{
		{
			BBox: [4]float64{0, 0, 100, 100},
			Name: "Map",
			Measure: &measure.GeospatialMeasure{
				Bounds: measure.UnitSquare,
				GCS:    &measure.CoordinateSystem{WKT: testGeographic},
				GPTS:   []vec.Vec2{{X: 10, Y: 10}, {X: 10, Y: 20}, {X: 20, Y: 20}, {X: 20, Y: 10}},
				LPTS:   measure.UnitSquare,
			},
		},
	}
	if d := cmp.Diff(want, vps); d != "" {
		t.Errorf("unexpected viewports (-want +got):\n%s", d)
	}

	vpDict, err := pdf.GetDict(r, mustArray(t, r, getPage(t, r, 0)["VP"])[0])
	if err != nil {
		t.Fatal(err)
	}
	gcs, err := pdf.GetDict(r, vpDict["GCS"])
	if err != nil {
		t.Fatal(err)
	}
	if gcs["Type"] != pdf.Name("GEOGCS") {
		t.Errorf("GCS type = %v, want GEOGCS", gcs["Type"])
	}
}

func mustArray(t *testing.T, r pdf.Getter, obj pdf.Object) pdf.Array {
	t.Helper()

	a, err := pdf.GetArray(r, obj)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// Adding a second georeference keeps the first one unchanged.
func TestAddGeoreferenceTwice(t *testing.T) {
	first := testGeoreference(makePDF(t, "", 300, 300))
	first.PageIndex = 1
	out1, err := AddGeoreference(first)
	if err != nil {
		t.Fatal(err)
	}

	second := &AddGeoreferenceInputs{
		Source:           out1.Result,
		PageBounds:       [][]float64{{150, 150}, {250, 300}},
		MapBounds:        [][]float64{{0, 0}, {0, 1e6}, {1e6, 1e6}, {1e6, 0}},
		CoordinateSystem: testProjected,
		PageIndex:        1,
		Name:             "Inset",
	}
	out2, err := AddGeoreference(second)
	if err != nil {
		t.Fatal(err)
	}

	r1 := openPDF(t, out1.Result)
	before, err := measure.ExtractViewports(r1, getPage(t, r1, 1))
	if err != nil {
		t.Fatal(err)
	}
	r2 := openPDF(t, out2.Result)
	after, err := measure.ExtractViewports(r2, getPage(t, r2, 1))
	if err != nil {
		t.Fatal(err)
	}

	if len(before) != 1 || len(after) != 2 {
		t.Fatalf("got %d and %d viewports, want 1 and 2", len(before), len(after))
	}
	if d := cmp.Diff(before[0], after[0]); d != "" {
		t.Errorf("first viewport changed (-before +after):\n%s", d)
	}
	if after[1].Name != "Inset" || !after[1].Measure.GCS.IsProjected() {
		t.Errorf("unexpected second viewport %+v", after[1])
	}
	if got := after.Select(vec.Vec2{X: 200, Y: 200}); got != after[1] {
		t.Errorf("Select returned %v, want the inset viewport", got)
	}

	vps, err := measure.ExtractViewports(r2, getPage(t, r2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(vps) != 0 {
		t.Errorf("page 0 has %d viewports, want 0", len(vps))
	}
}

func TestAddGeoreferenceErrors(t *testing.T) {
	src := makePDF(t, "", 300)

	cases := []struct {
		name   string
		modify func(in *AddGeoreferenceInputs)
		field  string
		target error
	}{
		{"source", func(in *AddGeoreferenceInputs) { in.Source = nil }, "source", ErrMissingRequiredInput},
		{"coordinate system", func(in *AddGeoreferenceInputs) { in.CoordinateSystem = "" }, "coordinateSystem", measure.ErrMissingCoordinateSystem},
		{"page bounds", func(in *AddGeoreferenceInputs) { in.PageBounds = nil }, "pageBounds", ErrMissingRequiredInput},
		{"map bounds", func(in *AddGeoreferenceInputs) { in.MapBounds = nil }, "mapBounds", ErrMissingRequiredInput},
		{"page index", func(in *AddGeoreferenceInputs) { in.PageIndex = 2 }, "pageIndex", document.ErrPageIndex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := testGeoreference(src)
			c.modify(in)
			_, err := AddGeoreference(in)
			checkInputError(t, err, c.field, c.target)
		})
	}

	in := testGeoreference(src)
	in.CoordinateSystem = ""
	_, err := AddGeoreference(in)
	checkInputError(t, err, "coordinateSystem", ErrMissingRequiredInput)
}

func TestAddGeoreferenceInvalidBounds(t *testing.T) {
	src := makePDF(t, "", 300)

	cases := []struct {
		name       string
		pageBounds [][]float64
		mapBounds  [][]float64
	}{
		{"one page pair", [][]float64{{0, 0}}, nil},
		{"three page pairs", [][]float64{{0, 0}, {1, 1}, {2, 2}}, nil},
		{"short page pair", [][]float64{{0, 0}, {100}}, nil},
		{"long page pair", [][]float64{{0, 0, 0}, {100, 100}}, nil},
		{"three map pairs", nil, [][]float64{{0, 0}, {0, 1}, {1, 1}}},
		{"five map pairs", nil, [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
		{"empty map bounds", nil, [][]float64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := testGeoreference(src)
			if c.pageBounds != nil {
				in.PageBounds = c.pageBounds
			}
			if c.mapBounds != nil {
				in.MapBounds = c.mapBounds
			}
			_, err := AddGeoreference(in)
			if !errors.Is(err, measure.ErrInvalidBounds) {
				t.Errorf("got error %v, want ErrInvalidBounds", err)
			}
		})
	}
}
