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
	"bytes"

	"seehuhn.de/go/geom/matrix"

	"github.com/vertigis/workflow-activities-pdf/color"
	"github.com/vertigis/workflow-activities-pdf/document"
	"github.com/vertigis/workflow-activities-pdf/graphics"
	"github.com/vertigis/workflow-activities-pdf/image"
)

// PlaceImageInputs are the inputs of [PlaceImage].
type PlaceImageInputs struct {
	// Source is the PDF file to modify.  This field is required.
	Source []byte `json:"source"`

	// Image is a JPEG or PNG file.  This field is required.
	Image []byte `json:"image"`

	// X and Y give the bottom left corner of the image in PDF units.
	// The point (0, 0) is the bottom left corner of the page.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// Width and Height give the size of the image on the page.  The
	// defaults are the width and height of the image in pixels.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// BorderWidth is the line width of a border drawn around the image.
	// The default is 0, which means no border.
	BorderWidth float64 `json:"borderWidth,omitempty"`

	// BorderColor is a hex color code of the form RRGGBB or RRGGBBAA.
	// The default is "000000FF".
	BorderColor string `json:"borderColor,omitempty"`

	// PageIndex is the zero-based index of the page to draw on.
	PageIndex int `json:"pageIndex,omitempty"`
}

// PlaceImage draws an image on a page of a PDF document.
func PlaceImage(in *PlaceImageInputs) (*Output, error) {
	if in.Image == nil {
		return nil, missing("image")
	}
	if in.Source == nil {
		return nil, missing("source")
	}
	_, err := image.Detect(in.Image)
	if err != nil {
		return nil, wrapInput("image", err)
	}
	for _, v := range []struct {
		field string
		x     float64
	}{
		{"x", in.X}, {"y", in.Y}, {"width", in.Width}, {"height", in.Height},
		{"borderWidth", in.BorderWidth},
	} {
		if !isFinite(v.x) {
			return nil, invalid(v.field, "%g", v.x)
		}
	}
	hasBorder := in.BorderWidth > 0
	var border color.RGBA
	if hasBorder {
		border, err = color.ParseHex(in.BorderColor)
		if err != nil {
			return nil, wrapInput("borderColor", err)
		}
	}

	doc, err := document.Load(in.Source)
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(in.PageIndex)
	if err != nil {
		return nil, wrapInput("pageIndex", err)
	}
	img, err := image.Embed(doc, in.Image)
	if err != nil {
		return nil, wrapInput("image", err)
	}
	width := in.Width
	if width == 0 {
		width = float64(img.Width)
	}
	height := in.Height
	if height == 0 {
		height = float64(img.Height)
	}

	buf := &bytes.Buffer{}
	w := graphics.NewWriter(buf, page.Resources())
	w.PushGraphicsState()
	w.Transform(matrix.Matrix{width, 0, 0, height, in.X, in.Y})
	w.DrawXObject(img.Ref)
	w.PopGraphicsState()
	if hasBorder {
		w.PushGraphicsState()
		if !border.IsOpaque() {
			w.SetOpacity(border.Alpha, 1)
		}
		w.SetStrokeColor(border)
		w.SetLineWidth(in.BorderWidth)
		w.Rectangle(in.X, in.Y, width, height)
		w.Stroke()
		w.PopGraphicsState()
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}

	err = page.AppendContent(buf.Bytes())
	if err != nil {
		return nil, err
	}
	data, err := doc.Save()
	if err != nil {
		return nil, err
	}
	return &Output{Result: data}, nil
}
