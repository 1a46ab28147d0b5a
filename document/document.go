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

// Package document holds PDF documents in memory while their pages are
// being modified.
//
// A [Document] is backed by a [pdf.Writer] which writes into a memory
// buffer.  Pages loaded from existing files are copied into the writer
// straight away, but the page dictionaries are kept in memory until
// [Document.Save] writes the page tree.  This allows content streams,
// resources and viewports to be added to any page before the document is
// saved.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"
)

// ErrPageIndex is returned by [Document.Page] for an index outside the
// range of pages.
var ErrPageIndex = errors.New("page index out of range")

var errSaved = errors.New("document already saved")

// Document is a PDF document which is being assembled in memory.
type Document struct {
	// Out is the PDF file being written.  It can be used to embed fonts,
	// images and other resources.
	Out *pdf.Writer

	// RM is the resource manager for Out.
	RM *pdf.ResourceManager

	buf   *bytes.Buffer
	pages []*Page
	saved bool
}

// New creates an empty document which will be written using PDF version v.
func New(v pdf.Version) (*Document, error) {
	buf := &bytes.Buffer{}
	out, err := pdf.NewWriter(buf, v, nil)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Out: out,
		RM:  pdf.NewResourceManager(out),
		buf: buf,
	}
	return doc, nil
}

// Load reads a PDF file from memory.
//
// All pages are copied, together with the document information dictionary
// and the document-level catalog entries which refer to the pages.  The
// output uses the PDF version of the input file, but at least PDF 1.7.
func Load(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := New(max(r.GetMeta().Version, pdf.V1_7))
	if err != nil {
		return nil, err
	}

	c, err := doc.AppendPages(r)
	if err != nil {
		return nil, err
	}
	err = doc.copyCatalog(c, r.GetMeta())
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Merge creates a new document containing the pages of all files, in
// order.  Document-level information of the input files is not copied.
// The output uses the highest PDF version of the input files, but at
// least PDF 1.7.
func Merge(files [][]byte) (*Document, error) {
	readers := make([]*pdf.Reader, 0, len(files))
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	v := pdf.V1_7
	for i, data := range files {
		r, err := pdf.NewReader(bytes.NewReader(data), nil)
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i+1, err)
		}
		readers = append(readers, r)
		v = max(v, r.GetMeta().Version)
	}

	doc, err := New(v)
	if err != nil {
		return nil, err
	}
	for i, r := range readers {
		_, err := doc.AppendPages(r)
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i+1, err)
		}
	}
	return doc, nil
}

// AppendFile appends all pages of the PDF file data to the document.
func (d *Document) AppendFile(data []byte) error {
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = d.AppendPages(r)
	return err
}

// AppendPages copies all pages of r to the end of the document.
//
// Inherited page attributes are stored directly in the copied page
// dictionaries.  The returned copier can be used to copy further objects
// from r; references to pages of r are translated to the copied pages.
func (d *Document) AppendPages(r pdf.Getter) (*pdfcopy.Copier, error) {
	if d.saved {
		return nil, errSaved
	}

	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	c := pdfcopy.NewCopier(d.Out, r)

	// All page references are redirected before the first page is copied,
	// so that links between pages point to the new page objects.
	dicts := make([]pdf.Dict, n)
	refs := make([]pdf.Reference, n)
	for i := range n {
		origRef, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}
		dicts[i], err = flattenPage(r, dict)
		if err != nil {
			return nil, err
		}
		refs[i] = d.Out.Alloc()
		if origRef != 0 {
			c.Redirect(origRef, refs[i])
		}
	}

	for i, dict := range dicts {
		copied, err := c.CopyDict(dict)
		if err != nil {
			return nil, err
		}
		d.pages = append(d.pages, &Page{
			Dict: copied,
			Ref:  refs[i],
			doc:  d,
		})
	}

	return c, nil
}

func (d *Document) copyCatalog(c *pdfcopy.Copier, meta *pdf.MetaInfo) error {
	src := meta.Catalog
	dst := d.Out.GetMeta().Catalog

	dst.Lang = src.Lang
	dst.PageLayout = src.PageLayout
	dst.PageMode = src.PageMode

	objs := pdf.Dict{}
	for key, val := range map[pdf.Name]pdf.Object{
		"PageLabels":        src.PageLabels,
		"Names":             src.Names,
		"Dests":             src.Dests,
		"ViewerPreferences": src.ViewerPreferences,
		"OpenAction":        src.OpenAction,
		"AcroForm":          src.AcroForm,
		"StructTreeRoot":    src.StructTreeRoot,
		"MarkInfo":          src.MarkInfo,
		"OutputIntents":     src.OutputIntents,
		"OCProperties":      src.OCProperties,
	} {
		if val != nil {
			objs[key] = val
		}
	}
	copied, err := c.CopyDict(objs)
	if err != nil {
		return err
	}
	dst.PageLabels = copied["PageLabels"]
	dst.Names = copied["Names"]
	dst.Dests = copied["Dests"]
	dst.ViewerPreferences = copied["ViewerPreferences"]
	dst.OpenAction = copied["OpenAction"]
	dst.AcroForm = copied["AcroForm"]
	dst.StructTreeRoot = copied["StructTreeRoot"]
	dst.MarkInfo = copied["MarkInfo"]
	dst.OutputIntents = copied["OutputIntents"]
	dst.OCProperties = copied["OCProperties"]

	if src.Outlines != 0 {
		dst.Outlines, err = c.CopyReference(src.Outlines)
		if err != nil {
			return err
		}
	}
	if src.Metadata != 0 {
		dst.Metadata, err = c.CopyReference(src.Metadata)
		if err != nil {
			return err
		}
	}

	if meta.Info != nil {
		info := *meta.Info
		d.Out.GetMeta().Info = &info
	}
	return nil
}

// resourceCategories lists the resource dictionary entries to which
// content overlays may add resources.
var resourceCategories = []pdf.Name{"ExtGState", "Font", "XObject"}

// flattenPage returns a copy of a page dictionary in which the entries
// modified by this package are direct objects.  The /Parent entry is
// removed.
func flattenPage(r pdf.Getter, dict pdf.Dict) (pdf.Dict, error) {
	dict = maps.Clone(dict)
	delete(dict, "Parent")

	res, err := pdf.GetDict(r, dict["Resources"])
	if err != nil {
		return nil, err
	}
	res = maps.Clone(res)
	if res == nil {
		res = pdf.Dict{}
	}
	for _, key := range resourceCategories {
		sub, err := pdf.GetDict(r, res[key])
		if err != nil {
			return nil, err
		}
		if sub != nil {
			res[key] = maps.Clone(sub)
		}
	}
	dict["Resources"] = res

	for _, key := range []pdf.Name{"Contents", "VP"} {
		if _, isRef := dict[key].(pdf.Reference); !isRef {
			continue
		}
		obj, err := pdf.Resolve(r, dict[key])
		if err != nil {
			return nil, err
		}
		if a, ok := obj.(pdf.Array); ok {
			dict[key] = slices.Clone(a)
		}
	}

	return dict, nil
}

// AddPage appends a blank page of the given size to the document.
func (d *Document) AddPage(width, height float64) *Page {
	p := &Page{
		Dict: pdf.Dict{
			"Type":      pdf.Name("Page"),
			"MediaBox":  mediaBox(width, height),
			"Resources": pdf.Dict{},
		},
		Ref:      d.Out.Alloc(),
		doc:      d,
		isolated: true,
	}
	d.pages = append(d.pages, p)
	return p
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the page with the given index.  The first page has index 0.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrPageIndex, i, len(d.pages))
	}
	return d.pages[i], nil
}

// Alloc allocates a new object reference in the output file.
func (d *Document) Alloc() pdf.Reference {
	return d.Out.Alloc()
}

// Put writes an indirect object to the output file.
func (d *Document) Put(ref pdf.Reference, obj pdf.Object) error {
	return d.Out.Put(ref, obj)
}

// OpenStream opens a new stream in the output file.
// The stream must be closed before the document is saved.
func (d *Document) OpenStream(ref pdf.Reference, dict pdf.Dict, filters ...pdf.Filter) (io.WriteCloser, error) {
	return d.Out.OpenStream(ref, dict, filters...)
}

// Save writes the page tree and the document catalog and returns the
// complete PDF file.  A document can only be saved once.
func (d *Document) Save() ([]byte, error) {
	if d.saved {
		return nil, errSaved
	}
	d.saved = true

	meta := d.Out.GetMeta()
	if len(d.pages) == 0 {
		// The page tree writer needs at least one page, so an empty
		// tree is written by hand.
		ref := d.Out.Alloc()
		err := d.Out.Put(ref, pdf.Dict{
			"Type":  pdf.Name("Pages"),
			"Kids":  pdf.Array{},
			"Count": pdf.Integer(0),
		})
		if err != nil {
			return nil, err
		}
		meta.Catalog.Pages = ref
	} else {
		tree := pagetree.NewWriter(d.Out)
		for _, p := range d.pages {
			err := tree.AppendPageRef(p.Ref, p.Dict)
			if err != nil {
				return nil, err
			}
		}
		ref, err := tree.Close()
		if err != nil {
			return nil, err
		}
		meta.Catalog.Pages = ref
	}

	err := d.RM.Close()
	if err != nil {
		return nil, err
	}
	err = d.Out.Close()
	if err != nil {
		return nil, err
	}
	return d.buf.Bytes(), nil
}
