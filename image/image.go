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

// Package image embeds JPEG and PNG images in PDF files.
//
// JPEG data is copied into the PDF file unchanged, using the DCTDecode
// filter.  PNG images are decoded and stored losslessly, using a Flate
// filter with PNG predictors and a soft mask for the alpha channel.
package image

import (
	"bytes"
	"errors"
	"io"

	"seehuhn.de/go/pdf"
)

// ErrUnsupportedFormat is returned for image data which is neither JPEG
// nor PNG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an image file format.
type Format int

// The supported image formats.
const (
	JPEG Format = iota + 1
	PNG
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	default:
		return "unknown"
	}
}

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// Detect determines the image format from the leading bytes of data.
func Detect(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, jpegSignature):
		return JPEG, nil
	case bytes.HasPrefix(data, pngSignature):
		return PNG, nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

// Writer is the part of a PDF writer which is needed to embed images.
// It is implemented by [pdf.Writer].
type Writer interface {
	Alloc() pdf.Reference
	OpenStream(ref pdf.Reference, dict pdf.Dict, filters ...pdf.Filter) (io.WriteCloser, error)
}

// Embedded is an image XObject which has been written to a PDF file.
type Embedded struct {
	// Ref is the reference of the image XObject.
	Ref pdf.Reference

	// Width and Height give the size of the image in pixels.
	Width, Height int
}

// Embed writes the image data to w as an image XObject.
// The format is determined using [Detect].
func Embed(w Writer, data []byte) (*Embedded, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	switch format {
	case JPEG:
		return EmbedJPEG(w, data)
	default:
		return EmbedPNG(w, data)
	}
}
