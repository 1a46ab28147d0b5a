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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
)

// This file implements the operators in the "General Graphics State" and
// "Special graphics state" categories.  These operators are defined
// in table 56 of ISO 32000-2:2020.

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (w *Writer) PushGraphicsState() {
	if !w.isValid("PushGraphicsState", objPage) {
		return
	}

	w.nesting = append(w.nesting, pairTypeQ)
	w.stack = append(w.stack, w.State)

	_, w.Err = fmt.Fprintln(w.Content, "q")
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (w *Writer) PopGraphicsState() {
	if !w.isValid("PopGraphicsState", objPage) {
		return
	}

	if len(w.nesting) == 0 || w.nesting[len(w.nesting)-1] != pairTypeQ {
		w.Err = errors.New("PopGraphicsState: no matching PushGraphicsState")
		return
	}
	w.nesting = w.nesting[:len(w.nesting)-1]

	n := len(w.stack) - 1
	w.State = w.stack[n]
	w.stack = w.stack[:n]

	_, w.Err = fmt.Fprintln(w.Content, "Q")
}

// Transform applies a transformation matrix to the coordinate system.
// This function modifies the current transformation matrix, so that
// the new, additional transformation is applied to the user coordinates
// first, followed by the existing transformation.
//
// This implements the PDF graphics operator "cm".
func (w *Writer) Transform(extraTrfm matrix.Matrix) {
	if !w.isValid("Transform", objPage) {
		return
	}

	w.CTM = extraTrfm.Mul(w.CTM)

	_, w.Err = fmt.Fprintln(w.Content,
		coord(extraTrfm[0]), coord(extraTrfm[1]),
		coord(extraTrfm[2]), coord(extraTrfm[3]),
		coord(extraTrfm[4]), coord(extraTrfm[5]), "cm")
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (w *Writer) SetLineWidth(width float64) {
	if !w.isValid("SetLineWidth", objPage|objText) {
		return
	}
	if width < 0 || math.IsNaN(width) {
		w.Err = fmt.Errorf("SetLineWidth: invalid width %f", width)
		return
	}
	if w.isSet(StateLineWidth) && width == w.LineWidth {
		return
	}

	w.LineWidth = width
	w.Set |= StateLineWidth

	_, w.Err = fmt.Fprintln(w.Content, coord(width), "w")
}

type opacity struct {
	stroke, fill float64
}

// SetOpacity sets the constant opacity for stroking and for non-stroking
// operations, using an ExtGState resource.  Both values must be in the
// range [0, 1].
//
// This implements the PDF graphics operator "gs".
func (w *Writer) SetOpacity(stroke, fill float64) {
	if !w.isValid("SetOpacity", objPage|objText) {
		return
	}
	if !(stroke >= 0 && stroke <= 1) || !(fill >= 0 && fill <= 1) {
		w.Err = fmt.Errorf("SetOpacity: invalid opacity %g/%g", stroke, fill)
		return
	}

	dict := pdf.Dict{
		"Type": pdf.Name("ExtGState"),
		"CA":   pdf.Real(stroke),
		"ca":   pdf.Real(fill),
	}
	name := w.resourceName(catExtGState, opacity{stroke, fill}, dict)

	w.writeOperator(name, "gs")
}
