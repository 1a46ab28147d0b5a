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

package image

import (
	"bytes"
	"fmt"
	gocolor "image/color"
	"image/jpeg"

	"seehuhn.de/go/pdf"
)

// EmbedJPEG writes JPEG data to w.  The data is not re-encoded.
func EmbedJPEG(w Writer, data []byte) (*Embedded, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// see Table 87 of ISO 32000-2:2020
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(cfg.Width),
		"Height":           pdf.Integer(cfg.Height),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	}
	switch cfg.ColorModel {
	case gocolor.GrayModel:
		dict["ColorSpace"] = pdf.Name("DeviceGray")
	case gocolor.YCbCrModel, gocolor.RGBAModel:
		dict["ColorSpace"] = pdf.Name("DeviceRGB")
	case gocolor.CMYKModel:
		// Adobe applications write inverted CMYK data.
		dict["ColorSpace"] = pdf.Name("DeviceCMYK")
		dict["Decode"] = pdf.Array{
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
		}
	default:
		return nil, fmt.Errorf("%w: JPEG color model %T", ErrUnsupportedFormat, cfg.ColorModel)
	}

	ref := w.Alloc()
	stream, err := w.OpenStream(ref, dict)
	if err != nil {
		return nil, err
	}
	_, err = stream.Write(data)
	if err != nil {
		stream.Close()
		return nil, err
	}
	err = stream.Close()
	if err != nil {
		return nil, err
	}

	return &Embedded{Ref: ref, Width: cfg.Width, Height: cfg.Height}, nil
}
