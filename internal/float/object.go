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

package float

import (
	"math"

	"seehuhn.de/go/pdf"
)

// Object returns x as a PDF integer if x has no fractional part, and as a
// PDF real number otherwise.
func Object(x float64) pdf.Object {
	if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
		return pdf.Integer(x)
	}
	return pdf.Real(x)
}
