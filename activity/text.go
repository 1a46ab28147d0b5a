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
	"math"
	"strings"

	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/color"
	"github.com/vertigis/workflow-activities-pdf/document"
	"github.com/vertigis/workflow-activities-pdf/font/standard"
	"github.com/vertigis/workflow-activities-pdf/graphics"
)

// Defaults for [PlaceText].
const (
	DefaultFont     = standard.Helvetica
	DefaultFontSize = 12

	// LineHeight is the distance between the baselines of consecutive
	// lines of a multi-line text.
	LineHeight = 24
)

// PlaceTextInputs are the inputs of [PlaceText].
type PlaceTextInputs struct {
	// Source is the PDF file to modify.  This field is required.
	Source []byte `json:"source"`

	// Text is the text to add.  This field is required.  Line breaks
	// start a new line.
	Text string `json:"text"`

	// X and Y give the start of the first baseline in PDF units.
	// The point (0, 0) is the bottom left corner of the page.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// FontName selects one of the 14 standard PDF fonts, for example
	// "TimesRomanBold" or "Times-Bold".  Unknown names select Helvetica.
	FontName string `json:"fontName,omitempty"`

	// FontSize is the font size in PDF units.  The default is 12.
	FontSize float64 `json:"fontSize,omitempty"`

	// Color is a hex color code of the form RRGGBB or RRGGBBAA.
	// The default is "000000FF".
	Color string `json:"color,omitempty"`

	// PageIndex is the zero-based index of the page to draw on.
	PageIndex int `json:"pageIndex,omitempty"`
}

// PlaceText draws a text on a page of a PDF document.
func PlaceText(in *PlaceTextInputs) (*Output, error) {
	if in.Source == nil {
		return nil, missing("source")
	}
	if in.Text == "" {
		return nil, missing("text")
	}

	font, ok := standard.Lookup(in.FontName)
	if !ok {
		font = DefaultFont
	}
	size := in.FontSize
	if size == 0 {
		size = DefaultFontSize
	}
	if !(size > 0) || math.IsInf(size, 1) {
		return nil, invalid("fontSize", "%g", size)
	}
	if !isFinite(in.X) || !isFinite(in.Y) {
		return nil, invalid("x", "(%g, %g) is not a valid position", in.X, in.Y)
	}
	col, err := color.ParseHex(in.Color)
	if err != nil {
		return nil, wrapInput("color", err)
	}
	var lines []pdf.String
	for _, line := range splitLines(in.Text) {
		s, err := font.Encode(line)
		if err != nil {
			return nil, wrapInput("text", err)
		}
		lines = append(lines, s)
	}

	doc, err := document.Load(in.Source)
	if err != nil {
		return nil, err
	}
	page, err := doc.Page(in.PageIndex)
	if err != nil {
		return nil, wrapInput("pageIndex", err)
	}
	fontRef, err := font.Embed(doc)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := graphics.NewWriter(buf, page.Resources())
	w.PushGraphicsState()
	if !col.IsOpaque() {
		w.SetOpacity(1, col.Alpha)
	}
	w.SetFillColor(col)
	w.TextStart()
	w.TextSetFont(fontRef, size)
	if len(lines) > 1 {
		w.TextSetLeading(LineHeight)
	}
	w.TextFirstLine(in.X, in.Y)
	for i, line := range lines {
		if i > 0 {
			w.TextNextLine()
		}
		w.TextShowRaw(line)
	}
	w.TextEnd()
	w.PopGraphicsState()
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

// splitLines splits text at CR, LF, CRLF, form feed and vertical tab.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for {
		i := strings.IndexAny(text, "\n\r\f\v")
		if i < 0 {
			return append(lines, text)
		}
		lines = append(lines, text[:i])
		text = text[i+1:]
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
