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

import "github.com/vertigis/workflow-activities-pdf/color"

// This file implements the DeviceRGB color operators.
// These operators are defined in table 73 of ISO 32000-2:2020.

// SetStrokeColor sets the color to use for stroking operations.
// The alpha component of the color is ignored, see [Writer.SetOpacity].
//
// This implements the PDF graphics operator "RG".
func (w *Writer) SetStrokeColor(c color.RGBA) {
	if !w.isValid("SetStrokeColor", objPage|objText) {
		return
	}
	if w.isSet(StateStrokeColor) && sameRGB(c, w.StrokeColor) {
		return
	}

	w.StrokeColor = c
	w.Set |= StateStrokeColor

	w.Err = c.SetStroke(w.Content)
}

// SetFillColor sets the color to use for non-stroking operations.
// The alpha component of the color is ignored, see [Writer.SetOpacity].
//
// This implements the PDF graphics operator "rg".
func (w *Writer) SetFillColor(c color.RGBA) {
	if !w.isValid("SetFillColor", objPage|objText) {
		return
	}
	if w.isSet(StateFillColor) && sameRGB(c, w.FillColor) {
		return
	}

	w.FillColor = c
	w.Set |= StateFillColor

	w.Err = c.SetFill(w.Content)
}

func sameRGB(a, b color.RGBA) bool {
	return a.Red == b.Red && a.Green == b.Green && a.Blue == b.Blue
}
