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

// Package float converts numbers for use in PDF content streams and
// PDF objects.
package float

import (
	"strconv"
	"strings"
)

// Format returns the shortest decimal representation of x with at most
// the given number of digits after the decimal point.  Trailing zeros and
// a leading zero before the decimal point are removed, so that 0.5 is
// written as ".5" and 2.000 as "2".
func Format(x float64, precision int) string {
	out := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}

	neg := strings.HasPrefix(out, "-")
	if neg {
		out = out[1:]
	}
	if strings.HasPrefix(out, "0.") {
		out = out[1:]
	}
	if out == "0" || out == "" {
		return "0"
	}
	if neg {
		out = "-" + out
	}
	return out
}
