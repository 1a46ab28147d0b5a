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

package graphics

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdf"
)

// This file implements the text related PDF operators.  The operators
// implemented here are defined in tables 103, 105, 106 and 107 of ISO
// 32000-2:2020.

// TextStart starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (w *Writer) TextStart() {
	if !w.isValid("TextStart", objPage) {
		return
	}
	w.currentObject = objText

	w.nesting = append(w.nesting, pairTypeBT)

	_, w.Err = fmt.Fprintln(w.Content, "BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (w *Writer) TextEnd() {
	if !w.isValid("TextEnd", objText) {
		return
	}
	w.currentObject = objPage

	if len(w.nesting) == 0 || w.nesting[len(w.nesting)-1] != pairTypeBT {
		w.Err = errors.New("TextEnd: no matching TextStart")
		return
	}
	w.nesting = w.nesting[:len(w.nesting)-1]

	_, w.Err = fmt.Fprintln(w.Content, "ET")
}

// TextSetLeading sets the leading, the vertical distance between the
// baselines of adjacent lines of text.
//
// This implements the PDF graphics operator "TL".
func (w *Writer) TextSetLeading(leading float64) {
	if !w.isValid("TextSetLeading", objText|objPage) {
		return
	}

	_, w.Err = fmt.Fprintln(w.Content, coord(leading), "TL")
}

// TextSetFont sets the font and font size.  The font dictionary must have
// been written to the PDF file already, ref is its reference.
//
// This implements the PDF graphics operator "Tf".
func (w *Writer) TextSetFont(ref pdf.Reference, size float64) {
	if !w.isValid("TextSetFont", objText|objPage) {
		return
	}
	if size <= 0 {
		w.Err = fmt.Errorf("TextSetFont: invalid font size %g", size)
		return
	}

	name := w.resourceName(catFont, ref, ref)
	w.Set |= StateTextFont

	w.writeOperator(name, coord(size), "Tf")
}

// TextFirstLine moves to the start of the next line of text,
// offset from the start of the current line by (dx, dy).
// At the start of a text object, this sets the position of the first line.
//
// This implements the PDF graphics operator "Td".
func (w *Writer) TextFirstLine(dx, dy float64) {
	if !w.isValid("TextFirstLine", objText) {
		return
	}

	_, w.Err = fmt.Fprintln(w.Content, coord(dx), coord(dy), "Td")
}

// TextNextLine moves to the start of the next line of text,
// using the current leading.
//
// This implements the PDF graphics operator "T*".
func (w *Writer) TextNextLine() {
	if !w.isValid("TextNextLine", objText) {
		return
	}

	_, w.Err = fmt.Fprintln(w.Content, "T*")
}

// TextShowRaw shows an already encoded text in the PDF file.
//
// This implements the PDF graphics operator "Tj".
func (w *Writer) TextShowRaw(s pdf.String) {
	if !w.isValid("TextShowRaw", objText) {
		return
	}
	if !w.isSet(StateTextFont) {
		w.Err = errors.New("TextShowRaw: no font set")
		return
	}

	w.writeOperator(s, "Tj")
}
