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

package activity

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/document"
)

// Producer is stored as the producer of all documents created by
// [CreateDocument].
const Producer = "VertiGIS Studio"

// CreateDocumentInputs are the inputs of [CreateDocument].
type CreateDocumentInputs struct {
	// PageWidth is the page width in PDF units.  The default is 595 (A4).
	PageWidth float64 `json:"pageWidth,omitempty"`

	// PageHeight is the page height in PDF units.  The default is 842 (A4).
	PageHeight float64 `json:"pageHeight,omitempty"`

	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`

	// Language is a BCP 47 language tag, for example "en-US".
	Language string `json:"language,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
}

// now is replaced in tests.
var now = time.Now

// CreateDocument creates a PDF document with one blank page.
func CreateDocument(in *CreateDocumentInputs) (*Output, error) {
	width := in.PageWidth
	if width == 0 {
		width = document.A4.URx
	}
	height := in.PageHeight
	if height == 0 {
		height = document.A4.URy
	}
	if !(width > 0) {
		return nil, invalid("pageWidth", "%g", width)
	}
	if !(height > 0) {
		return nil, invalid("pageHeight", "%g", height)
	}

	var lang language.Tag
	if in.Language != "" {
		var err error
		lang, err = language.Parse(in.Language)
		if err != nil {
			return nil, wrapInput("language", err)
		}
	}
	keywords := strings.Join(in.Keywords, " ")

	doc, err := document.New(pdf.V1_7)
	if err != nil {
		return nil, err
	}
	doc.AddPage(width, height)

	t := now()
	meta := doc.Out.GetMeta()
	meta.Info = &pdf.Info{
		Title:        pdf.TextString(in.Title),
		Author:       pdf.TextString(in.Author),
		Subject:      pdf.TextString(in.Subject),
		Keywords:     pdf.TextString(keywords),
		Producer:     Producer,
		CreationDate: pdf.Date(t),
		ModDate:      pdf.Date(t),
	}
	if in.Language != "" {
		meta.Catalog.Lang = lang
	}

	ref, err := writeMetadata(doc, in, keywords, t)
	if err != nil {
		return nil, err
	}
	meta.Catalog.Metadata = ref

	data, err := doc.Save()
	if err != nil {
		return nil, err
	}
	return &Output{Result: data}, nil
}

// writeMetadata writes an XMP metadata stream which matches the document
// information dictionary.
func writeMetadata(doc *document.Document, in *CreateDocumentInputs, keywords string, t time.Time) (pdf.Reference, error) {
	dc := &xmp.DublinCore{}
	if in.Title != "" {
		dc.Title.Set(language.MustParse("x-default"), in.Title)
	}
	if in.Author != "" {
		dc.Creator.Append(xmp.NewProperName(in.Author))
	}
	if in.Subject != "" {
		dc.Description.Set(language.MustParse("x-default"), in.Subject)
	}
	basic := &xmp.Basic{}
	basic.CreateDate = xmp.NewDate(t)
	basic.ModifyDate = xmp.NewDate(t)
	info := &pdfNamespace{}
	if keywords != "" {
		info.Keywords = xmp.NewText(keywords)
	}
	info.Producer = xmp.NewAgentName(Producer)

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, info)
	if err != nil {
		return 0, err
	}

	ref := doc.Alloc()
	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	stm, err := doc.OpenStream(ref, dict)
	if err != nil {
		return 0, err
	}
	err = packet.Write(stm, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return 0, err
	}
	err = stm.Close()
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// pdfNamespace is the XMP namespace for PDF properties.
type pdfNamespace struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}
