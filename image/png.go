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
	"image"
	gocolor "image/color"
	"image/png"

	"golang.org/x/image/draw"
	"seehuhn.de/go/pdf"
)

// EmbedPNG decodes PNG data and writes the image to w.
//
// Gray images are stored in the DeviceGray color space, all other images
// in DeviceRGB.  If any pixel is not fully opaque, the alpha channel is
// stored as a soft mask.
func EmbedPNG(w Writer, data []byte) (*Embedded, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return embedPixels(w, src)
}

func embedPixels(w Writer, src image.Image) (*Embedded, error) {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()

	var samples []byte
	colors := 3
	colorSpace := pdf.Name("DeviceRGB")
	var alpha []byte

	switch src.ColorModel() {
	case gocolor.GrayModel, gocolor.Gray16Model:
		img, ok := src.(*image.Gray)
		if !ok || b.Min != (image.Point{}) {
			img = image.NewGray(image.Rect(0, 0, width, height))
			draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
		}
		samples = packRows(img.Pix, img.Stride, width)
		colors = 1
		colorSpace = "DeviceGray"

	default:
		// NRGBA keeps the colour values separate from the alpha channel,
		// as required for images with a soft mask.
		img, ok := src.(*image.NRGBA)
		if !ok || b.Min != (image.Point{}) {
			img = image.NewNRGBA(image.Rect(0, 0, width, height))
			draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
		}
		samples = make([]byte, 0, 3*width*height)
		if needsAlphaChannel(img) {
			alpha = make([]byte, 0, width*height)
		}
		for y := 0; y < height; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*width]
			for x := 0; x < width; x++ {
				px := row[4*x : 4*x+4]
				samples = append(samples, px[0], px[1], px[2])
				if alpha != nil {
					alpha = append(alpha, px[3])
				}
			}
		}
	}

	ref := w.Alloc()
	var maskRef pdf.Reference
	if alpha != nil {
		maskRef = w.Alloc()
	}

	// see Table 87 of ISO 32000-2:2020
	imDict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(width),
		"Height":           pdf.Integer(height),
		"ColorSpace":       colorSpace,
		"BitsPerComponent": pdf.Integer(8),
	}
	if maskRef != 0 {
		imDict["SMask"] = maskRef
	}
	err := writeSamples(w, ref, imDict, samples, width, colors)
	if err != nil {
		return nil, err
	}

	if maskRef != 0 {
		maskDict := pdf.Dict{
			"Type":             pdf.Name("XObject"),
			"Subtype":          pdf.Name("Image"),
			"Width":            pdf.Integer(width),
			"Height":           pdf.Integer(height),
			"ColorSpace":       pdf.Name("DeviceGray"),
			"BitsPerComponent": pdf.Integer(8),
		}
		err = writeSamples(w, maskRef, maskDict, alpha, width, 1)
		if err != nil {
			return nil, err
		}
	}

	return &Embedded{Ref: ref, Width: width, Height: height}, nil
}

func writeSamples(w Writer, ref pdf.Reference, dict pdf.Dict, samples []byte, width, colors int) error {
	filter := pdf.FilterCompress{
		"Columns":   pdf.Integer(width),
		"Predictor": pdf.Integer(15),
	}
	if colors != 1 {
		filter["Colors"] = pdf.Integer(colors)
	}
	stream, err := w.OpenStream(ref, dict, filter)
	if err != nil {
		return err
	}
	_, err = stream.Write(samples)
	if err != nil {
		stream.Close()
		return err
	}
	return stream.Close()
}

// packRows removes the padding at the end of each row of pixel data.
func packRows(pix []byte, stride, rowLen int) []byte {
	if stride == rowLen {
		return pix
	}
	var res []byte
	for y := 0; y+rowLen <= len(pix); y += stride {
		res = append(res, pix[y:y+rowLen]...)
	}
	return res
}

func needsAlphaChannel(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*b.Dx()]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0xff {
				return true
			}
		}
	}
	return false
}
