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

package document

import (
	"slices"

	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/internal/float"
)

// Page is a page of a [Document].
type Page struct {
	// Dict is the page dictionary.  It can be modified until the document
	// is saved.  The /Parent entry is set when the page tree is written.
	Dict pdf.Dict

	// Ref is the reference of the page dictionary in the output file.
	Ref pdf.Reference

	doc *Document

	// isolated is set once the original page content, if any, has been
	// wrapped in a q/Q pair.
	isolated bool
}

// Resources returns the resource dictionary of the page.
// An empty dictionary is added to the page if necessary.
func (p *Page) Resources() pdf.Dict {
	res, _ := p.Dict["Resources"].(pdf.Dict)
	if res == nil {
		res = pdf.Dict{}
		p.Dict["Resources"] = res
	}
	return res
}

// AppendContent adds a content stream to the page, which is drawn on top
// of the existing page content.
//
// The first time content is added to a page, the existing content streams
// are enclosed in a q/Q pair, so that the new content starts in the
// default graphics state.
func (p *Page) AppendContent(content []byte) error {
	out := p.doc.Out

	var contents pdf.Array
	switch obj := p.Dict["Contents"].(type) {
	case nil:
		// pass
	case pdf.Array:
		contents = obj
	default:
		contents = pdf.Array{obj}
	}

	if !p.isolated && len(contents) > 0 {
		qRef := out.Alloc()
		err := p.writeStream(qRef, []byte("q\n"), false)
		if err != nil {
			return err
		}
		QRef := out.Alloc()
		err = p.writeStream(QRef, []byte("Q\n"), false)
		if err != nil {
			return err
		}

		wrapped := make(pdf.Array, 0, len(contents)+3)
		wrapped = append(wrapped, qRef)
		wrapped = append(wrapped, contents...)
		wrapped = append(wrapped, QRef)
		contents = wrapped
	}
	p.isolated = true

	ref := out.Alloc()
	err := p.writeStream(ref, content, true)
	if err != nil {
		return err
	}
	p.Dict["Contents"] = append(slices.Clip(contents), ref)
	return nil
}

func (p *Page) writeStream(ref pdf.Reference, data []byte, compress bool) error {
	var filters []pdf.Filter
	if compress {
		filters = append(filters, pdf.FilterCompress{})
	}
	stm, err := p.doc.Out.OpenStream(ref, nil, filters...)
	if err != nil {
		return err
	}
	_, err = stm.Write(data)
	if err != nil {
		stm.Close()
		return err
	}
	return stm.Close()
}

func mediaBox(width, height float64) pdf.Array {
	return pdf.Array{
		pdf.Integer(0), pdf.Integer(0),
		float.Object(width), float.Object(height),
	}
}
