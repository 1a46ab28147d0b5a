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

import "seehuhn.de/go/pdf"

// This file implements the "XObject operator".
// The operator is defined in table 86 of ISO 32000-2:2020.

// DrawXObject draws a PDF XObject on the page.
// The XObject must have been written to the PDF file already, ref
// is the reference of the XObject stream.
//
// This implements the PDF graphics operator "Do".
func (w *Writer) DrawXObject(ref pdf.Reference) {
	if !w.isValid("DrawXObject", objPage) {
		return
	}

	name := w.resourceName(catXObject, ref, ref)

	w.writeOperator(name, "Do")
}
