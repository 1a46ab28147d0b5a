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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/color"
	"github.com/vertigis/workflow-activities-pdf/document"
	"github.com/vertigis/workflow-activities-pdf/font/standard"
)

func TestPlaceText(t *testing.T) {
	src := makePDF(t, "", 300)
	out, err := PlaceText(&PlaceTextInputs{
		Source: src,
		Text:   "Hello",
		X:      50,
		Y:      60.5,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := openPDF(t, out.Result)
	page := getPage(t, r, 0)
	content := pageContent(t, r, page)
	checkLines(t, content,
		"q",
		"0 0 0 rg",
		"BT",
		"/F1 12 Tf",
		"50 60.5 Td",
		"(Hello) Tj",
		"ET",
		"Q",
	)

	font := resource(t, r, page, "Font", "F1")
	want := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
		"Encoding": pdf.Name("WinAnsiEncoding"),
	}
	if d := cmp.Diff(want, font); d != "" {
		t.Errorf("unexpected font dict (-want +got):\n%s", d)
	}
}

func TestPlaceTextOptions(t *testing.T) {
	src := makePDF(t, "", 300, 300)
	out, err := PlaceText(&PlaceTextInputs{
		Source:    src,
		Text:      "first\nsecond",
		FontName:  "TimesRomanBold",
		FontSize:  9.5,
		Color:     "#FF000080",
		PageIndex: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := openPDF(t, out.Result)
	if content := pageContent(t, r, getPage(t, r, 0)); content != "" {
		t.Errorf("page 0 was modified: %q", content)
	}

	page := getPage(t, r, 1)
	checkLines(t, pageContent(t, r, page),
		"q",
		"/E1 gs",
		"1 0 0 rg",
		"BT",
		"/F1 9.5 Tf",
		"24 TL",
		"0 0 Td",
		"(first) Tj",
		"T*",
		"(second) Tj",
		"ET",
		"Q",
	)

	font := resource(t, r, page, "Font", "F1")
	if font["BaseFont"] != pdf.Name("Times-Bold") {
		t.Errorf("BaseFont = %v, want Times-Bold", font["BaseFont"])
	}

	gs := resource(t, r, page, "ExtGState", "E1")
	ca, err := pdf.GetNumber(r, gs["ca"])
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(ca)-128.0/255) > 1e-3 {
		t.Errorf("ca = %g, want %g", ca, 128.0/255)
	}
	strokeAlpha, err := pdf.GetNumber(r, gs["CA"])
	if err != nil {
		t.Fatal(err)
	}
	if strokeAlpha != 1 {
		t.Errorf("CA = %g, want 1", strokeAlpha)
	}
}

func TestPlaceTextUnknownFont(t *testing.T) {
	place := func(fontName string) (string, pdf.Dict) {
		t.Helper()
		out, err := PlaceText(&PlaceTextInputs{
			Source:   makePDF(t, "", 300),
			Text:     "x",
			X:        10,
			Y:        20,
			FontName: fontName,
		})
		if err != nil {
			t.Fatal(err)
		}
		r := openPDF(t, out.Result)
		page := getPage(t, r, 0)
		return pageContent(t, r, page), resource(t, r, page, "Font", "F1")
	}

	wantContent, wantFont := place("Helvetica")
	if wantFont["BaseFont"] != pdf.Name("Helvetica") {
		t.Fatalf("BaseFont = %v, want Helvetica", wantFont["BaseFont"])
	}

	for _, name := range []string{"", "Comic Sans", "helvetica", "Arial"} {
		t.Run(name, func(t *testing.T) {
			content, font := place(name)
			if d := cmp.Diff(wantFont, font); d != "" {
				t.Errorf("font dict differs from Helvetica (-want +got):\n%s", d)
			}
			if content != wantContent {
				t.Errorf("content differs from Helvetica:\n%s\nwant:\n%s", content, wantContent)
			}
		})
	}
}

func TestPlaceTextExistingContent(t *testing.T) {
	src := makePDF(t, "0 0 m 10 10 l S", 300)
	out, err := PlaceText(&PlaceTextInputs{Source: src, Text: "x"})
	if err != nil {
		t.Fatal(err)
	}

	r := openPDF(t, out.Result)
	page := getPage(t, r, 0)
	contents, err := pdf.GetArray(r, page["Contents"])
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 4 {
		t.Errorf("got %d content streams, want 4", len(contents))
	}
	checkLines(t, pageContent(t, r, page),
		"q",
		"0 0 m 10 10 l S",
		"Q",
		"q",
		"(x) Tj",
		"Q",
	)
}

func TestPlaceTextErrors(t *testing.T) {
	src := makePDF(t, "", 300)
	cases := []struct {
		name   string
		in     *PlaceTextInputs
		field  string
		target error
	}{
		{"no source", &PlaceTextInputs{Text: "x"}, "source", ErrMissingRequiredInput},
		{"no text", &PlaceTextInputs{Source: src}, "text", ErrMissingRequiredInput},
		{"bad color", &PlaceTextInputs{Source: src, Text: "x", Color: "ZZZZZZ"}, "color", color.ErrInvalidColor},
		{"short color", &PlaceTextInputs{Source: src, Text: "x", Color: "#FFF"}, "color", color.ErrInvalidColor},
		{"negative size", &PlaceTextInputs{Source: src, Text: "x", FontSize: -1}, "fontSize", ErrInvalidInput},
		{"bad position", &PlaceTextInputs{Source: src, Text: "x", X: math.Inf(1)}, "x", ErrInvalidInput},
		{"page index", &PlaceTextInputs{Source: src, Text: "x", PageIndex: 1}, "pageIndex", document.ErrPageIndex},
		{"negative page index", &PlaceTextInputs{Source: src, Text: "x", PageIndex: -1}, "pageIndex", document.ErrPageIndex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := PlaceText(c.in)
			checkInputError(t, err, c.field, c.target)
		})
	}
}

func TestPlaceTextUnsupportedChar(t *testing.T) {
	_, err := PlaceText(&PlaceTextInputs{
		Source: makePDF(t, "", 300),
		Text:   "price: 5€ (中)",
	})
	var charErr *standard.UnsupportedCharError
	if !errors.As(err, &charErr) {
		t.Fatalf("got error %v, want UnsupportedCharError", err)
	}
	if charErr.Char != '中' {
		t.Errorf("got character %q, want '中'", charErr.Char)
	}
	checkInputError(t, err, "text", charErr)
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\n", []string{"a", ""}},
	}
	for _, c := range cases {
		if d := cmp.Diff(c.want, splitLines(c.in)); d != "" {
			t.Errorf("splitLines(%q) (-want +got):\n%s", c.in, d)
		}
	}
}
