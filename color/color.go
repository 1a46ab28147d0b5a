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

// Package color parses hex color codes and writes them as DeviceRGB
// colors to PDF content streams.
package color

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vertigis/workflow-activities-pdf/internal/float"
)

// DefaultHex is the color used when no color code is given (opaque black).
const DefaultHex = "000000FF"

// ErrInvalidColor is returned by [ParseHex] for malformed color codes.
var ErrInvalidColor = errors.New("invalid color")

// RGBA is a color in the DeviceRGB color space, together with an
// opacity value.  All components are in the range [0, 1].
type RGBA struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

// Black is opaque black.
var Black = RGBA{Alpha: 1}

// ParseHex converts a color code of the form "RRGGBB" or "RRGGBBAA",
// optionally preceded by "#", into RGBA values.  Hex digits may be upper
// or lower case.  If the alpha component is missing, the color is opaque.
//
// The empty string is interpreted as [DefaultHex].
func ParseHex(hex string) (RGBA, error) {
	if hex == "" {
		hex = DefaultHex
	}
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("%w %q: need 6 or 8 hex digits", ErrInvalidColor, hex)
	}

	var c [4]float64
	c[3] = 1
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, hex)
		}
		c[i] = float64(v) / 255
	}

	return RGBA{Red: c[0], Green: c[1], Blue: c[2], Alpha: c[3]}, nil
}

// IsOpaque reports whether the color is fully opaque.
func (c RGBA) IsOpaque() bool {
	return c.Alpha >= 1
}

// SetStroke writes the "RG" operator for the color to w.
// The alpha component is ignored.
func (c RGBA) SetStroke(w io.Writer) error {
	_, err := fmt.Fprintln(w, c.components(), "RG")
	return err
}

// SetFill writes the "rg" operator for the color to w.
// The alpha component is ignored.
func (c RGBA) SetFill(w io.Writer) error {
	_, err := fmt.Fprintln(w, c.components(), "rg")
	return err
}

func (c RGBA) components() string {
	return float.Format(c.Red, 3) + " " +
		float.Format(c.Green, 3) + " " +
		float.Format(c.Blue, 3)
}
