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

// Package graphics writes PDF content streams which are drawn on top of
// existing page content.
//
// A [Writer] emits content stream operators and adds the resources used by
// these operators to a page resource dictionary.  Resource names are chosen
// so that they do not clash with names already present in the dictionary,
// which may come from the original page content.
//
// Errors are sticky: after the first error, all further operations are
// ignored and the error is available in [Writer.Err].
package graphics

import (
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/color"
	"github.com/vertigis/workflow-activities-pdf/internal/float"
)

// Writer writes a PDF content stream.
type Writer struct {
	Content io.Writer

	// Resources is the resource dictionary of the page.  New resources
	// are added to the category dictionaries inside.
	Resources pdf.Dict

	Err error

	State
	stack []State

	currentObject objectType
	nesting       []pairType

	resName map[catRes]pdf.Name

	opt pdf.OutputOptions
}

// State holds the parts of the graphics state which are tracked by the
// writer.
type State struct {
	CTM         matrix.Matrix
	LineWidth   float64
	StrokeColor color.RGBA
	FillColor   color.RGBA

	// Set records which of the fields above have been set explicitly in
	// the content stream.
	Set StateBits
}

// StateBits is a bit mask of graphics state parameters.
type StateBits int

// Graphics state parameters tracked by [State.Set].
const (
	StateLineWidth StateBits = 1 << iota
	StateStrokeColor
	StateFillColor
	StateTextFont
)

type catRes struct {
	cat resourceCategory
	res any
}

type resourceCategory byte

// The resource categories used by this package.
// These correspond to the entries in the Resources dictionary.
//
// See section 7.8.3 of ISO 32000-2:2020.
const (
	catExtGState resourceCategory = iota + 1
	catXObject
	catFont
)

type pairType byte

const (
	pairTypeQ  pairType = iota + 1 // q ... Q
	pairTypeBT                     // BT ... ET
)

// NewWriter allocates a new Writer which adds resources to res.
func NewWriter(out io.Writer, res pdf.Dict) *Writer {
	return &Writer{
		Content:   out,
		Resources: res,
		State: State{
			CTM:         matrix.Identity,
			LineWidth:   1,
			StrokeColor: color.Black,
			FillColor:   color.Black,
		},
		currentObject: objPage,
		resName:       make(map[catRes]pdf.Name),
		opt:           pdf.OptContentStream,
	}
}

// Close checks that all q/Q and BT/ET pairs are balanced.
// The underlying content stream is not closed.
func (w *Writer) Close() error {
	if w.Err != nil {
		return w.Err
	}
	if len(w.nesting) > 0 {
		return fmt.Errorf("%d unclosed q or BT operators", len(w.nesting))
	}
	return nil
}

// isValid returns true, if the current graphics object is one of the given
// types and if w.Err is nil.  Otherwise it sets w.Err and returns false.
func (w *Writer) isValid(cmd string, ss objectType) bool {
	if w.Err != nil {
		return false
	}

	if w.currentObject&ss != 0 {
		return true
	}

	w.Err = fmt.Errorf("unexpected state %q for %q", w.currentObject, cmd)
	return false
}

// writeOperator writes obj, followed by the remaining operands and the
// operator, as one line of the content stream.
func (w *Writer) writeOperator(obj pdf.Object, rest ...any) {
	if w.Err != nil {
		return
	}
	w.Err = pdf.Format(w.Content, w.opt, obj)
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, append([]any{""}, rest...)...)
}

func (w *Writer) isSet(bits StateBits) bool {
	return w.Set&bits == bits
}

func coord(x float64) string {
	return float.Format(x, 2)
}

// resourceName returns the name under which obj is listed in the given
// resource category, adding obj to the resource dictionary if needed.
// Objects with equal keys share a resource name.  The key must be
// comparable.
func (w *Writer) resourceName(cat resourceCategory, key any, obj pdf.Object) pdf.Name {
	k := catRes{cat, key}
	if name, ok := w.resName[k]; ok {
		return name
	}

	dict := w.getCategoryDict(cat)
	name := generateName(cat, dict)
	dict[name] = obj

	w.resName[k] = name
	return name
}

func (w *Writer) getCategoryDict(category resourceCategory) pdf.Dict {
	var key pdf.Name
	switch category {
	case catFont:
		key = "Font"
	case catExtGState:
		key = "ExtGState"
	case catXObject:
		key = "XObject"
	default:
		panic("invalid resource category")
	}

	dict, _ := w.Resources[key].(pdf.Dict)
	if dict == nil {
		dict = pdf.Dict{}
		w.Resources[key] = dict
	}
	return dict
}

// generateName returns a name with the category prefix which is not yet
// used in dict.
func generateName(category resourceCategory, dict pdf.Dict) pdf.Name {
	var name pdf.Name

	prefix := getCategoryPrefix(category)
	numUsed := len(dict)
	for k := numUsed + 1; ; k-- {
		name = prefix + pdf.Name(strconv.Itoa(k))
		if _, isUsed := dict[name]; !isUsed {
			break
		}
	}

	return name
}

func getCategoryPrefix(category resourceCategory) pdf.Name {
	switch category {
	case catFont:
		return "F"
	case catExtGState:
		return "E"
	case catXObject:
		return "X"
	default:
		panic("invalid resource category")
	}
}

// See Figure 9 (p. 113) of PDF 32000-1:2008.
type objectType int

const (
	objPage objectType = 1 << iota
	objPath
	objText
)

func (s objectType) String() string {
	switch s {
	case objPage:
		return "page"
	case objPath:
		return "path"
	case objText:
		return "text"
	default:
		return fmt.Sprintf("objectType(%d)", s)
	}
}
