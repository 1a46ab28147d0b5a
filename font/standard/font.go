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

// Package standard provides access to the 14 standard PDF fonts.
//
// The standard fonts are available in every PDF viewer and are referenced
// by name only; no font program is embedded in the PDF file.
package standard

import "seehuhn.de/go/pdf"

// Font identifies the individual fonts.
type Font string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	CourierOblique       Font = "Courier-Oblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	HelveticaOblique     Font = "Helvetica-Oblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesBoldItalic      Font = "Times-BoldItalic"
	TimesItalic          Font = "Times-Italic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

// All lists the 14 standard PDF fonts defined in this package.
var All = []Font{
	Courier,
	CourierBold,
	CourierBoldOblique,
	CourierOblique,
	Helvetica,
	HelveticaBold,
	HelveticaBoldOblique,
	HelveticaOblique,
	TimesRoman,
	TimesBold,
	TimesBoldItalic,
	TimesItalic,
	Symbol,
	ZapfDingbats,
}

// keys maps the font names used by workflow designers, which leave out the
// dash of the PostScript names, to the fonts.
var keys = map[string]Font{
	"Courier":              Courier,
	"CourierBold":          CourierBold,
	"CourierOblique":       CourierOblique,
	"CourierBoldOblique":   CourierBoldOblique,
	"Helvetica":            Helvetica,
	"HelveticaBold":        HelveticaBold,
	"HelveticaOblique":     HelveticaOblique,
	"HelveticaBoldOblique": HelveticaBoldOblique,
	"TimesRoman":           TimesRoman,
	"TimesRomanBold":       TimesBold,
	"TimesRomanItalic":     TimesItalic,
	"TimesRomanBoldItalic": TimesBoldItalic,
	"Symbol":               Symbol,
	"ZapfDingbats":         ZapfDingbats,
}

// Lookup finds a standard font by name.  Both the PostScript names (like
// "Times-Bold") and the dash-less short names (like "TimesRomanBold") are
// recognized.
func Lookup(name string) (Font, bool) {
	if f, ok := keys[name]; ok {
		return f, true
	}
	for _, f := range All {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// IsSymbolic reports whether the font uses its own builtin encoding instead
// of WinAnsiEncoding.
func (f Font) IsSymbolic() bool {
	return f == Symbol || f == ZapfDingbats
}

// Dict returns the font dictionary for f.
func (f Font) Dict() pdf.Dict {
	dict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name(f),
	}
	if !f.IsSymbolic() {
		dict["Encoding"] = pdf.Name("WinAnsiEncoding")
	}
	return dict
}

// Writer is the part of a PDF writer which is needed to embed fonts.
// It is implemented by [pdf.Writer].
type Writer interface {
	Alloc() pdf.Reference
	Put(ref pdf.Reference, obj pdf.Object) error
}

// Embed writes the font dictionary to w and returns its reference.
func (f Font) Embed(w Writer) (pdf.Reference, error) {
	ref := w.Alloc()
	err := w.Put(ref, f.Dict())
	if err != nil {
		return 0, err
	}
	return ref, nil
}
