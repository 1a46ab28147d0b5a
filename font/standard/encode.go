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

package standard

import (
	"fmt"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font/pdfenc"
)

// UnsupportedCharError is returned by [Font.Encode] for characters which
// cannot be shown using the font.
type UnsupportedCharError struct {
	Font Font
	Char rune
}

func (err *UnsupportedCharError) Error() string {
	return fmt.Sprintf("font %s cannot show character %q", err.Font, err.Char)
}

// Encode converts text to the character codes used in a content stream.
// Non-symbolic fonts use the WinAnsi (Windows-1252) encoding, Symbol and
// ZapfDingbats use their builtin encodings.
func (f Font) Encode(text string) (pdf.String, error) {
	var codes map[rune]byte
	switch f {
	case Symbol:
		codes = symbolCodes()
	case ZapfDingbats:
		codes = dingbatsCodes()
	}

	res := make(pdf.String, 0, len(text))
	for _, r := range text {
		var c byte
		var ok bool
		if codes != nil {
			c, ok = codes[r]
		} else {
			c, ok = charmap.Windows1252.EncodeRune(r)
			ok = ok && isWinAnsi(c)
		}
		if !ok {
			return nil, &UnsupportedCharError{Font: f, Char: r}
		}
		res = append(res, c)
	}
	return res, nil
}

// isWinAnsi reports whether the code is assigned in WinAnsiEncoding.
// Windows-1252 maps the control characters to themselves, but the PDF font
// encoding has no glyphs for them.
func isWinAnsi(c byte) bool {
	return c >= 0x20 && c != 0x7F
}

var (
	symbolCodes   = sync.OnceValue(func() map[rune]byte { return builtinCodes(pdfenc.Symbol.Encoding[:], string(Symbol)) })
	dingbatsCodes = sync.OnceValue(func() map[rune]byte { return builtinCodes(pdfenc.ZapfDingbats.Encoding[:], string(ZapfDingbats)) })
)

// builtinCodes inverts a builtin font encoding, given as a list of glyph
// names indexed by character code.  The font name selects the glyph list
// used to map glyph names to characters.
func builtinCodes(encoding []string, fontName string) map[rune]byte {
	res := make(map[rune]byte)
	for code, glyphName := range encoding {
		if glyphName == "" || glyphName == ".notdef" {
			continue
		}
		rr := []rune(names.ToUnicode(glyphName, fontName))
		if len(rr) != 1 {
			continue
		}
		if _, seen := res[rr[0]]; !seen {
			res[rr[0]] = byte(code)
		}
	}
	return res
}
