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
	"errors"
	"image"
	gocolor "image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/pdf"
)

type recordedStream struct {
	dict    pdf.Dict
	filters []pdf.Filter
	data    *bytes.Buffer
}

type recorder struct {
	next    pdf.Reference
	streams map[pdf.Reference]*recordedStream
}

func newRecorder() *recorder {
	return &recorder{streams: make(map[pdf.Reference]*recordedStream)}
}

func (r *recorder) Alloc() pdf.Reference {
	r.next++
	return r.next
}

func (r *recorder) OpenStream(ref pdf.Reference, dict pdf.Dict, filters ...pdf.Filter) (io.WriteCloser, error) {
	s := &recordedStream{dict: dict, filters: filters, data: &bytes.Buffer{}}
	r.streams[ref] = s
	return nopCloser{s.data}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	cases := []struct {
		data []byte
		want Format
		err  error
	}{
		{[]byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0}, JPEG, nil},
		{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0}, PNG, nil},
		{[]byte("GIF89a"), 0, ErrUnsupportedFormat},
		{[]byte{0xFF, 0xD8}, 0, ErrUnsupportedFormat},
		{[]byte{0x89, 'P', 'N', 'G'}, 0, ErrUnsupportedFormat},
		{nil, 0, ErrUnsupportedFormat},
	}
	for i, c := range cases {
		got, err := Detect(c.data)
		if got != c.want || !errors.Is(err, c.err) {
			t.Errorf("%d: got %v, %v; want %v, %v", i, got, err, c.want, c.err)
		}
	}
}

func TestEmbedJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	data := encodeJPEG(t, src)

	w := newRecorder()
	im, err := Embed(w, data)
	if err != nil {
		t.Fatal(err)
	}
	if im.Width != 20 || im.Height != 10 {
		t.Errorf("got size %dx%d, want 20x10", im.Width, im.Height)
	}

	s := w.streams[im.Ref]
	if s == nil {
		t.Fatal("image stream not written")
	}
	want := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(20),
		"Height":           pdf.Integer(10),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	}
	if d := cmp.Diff(want, s.dict); d != "" {
		t.Errorf("unexpected image dictionary (-want +got):\n%s", d)
	}
	if !bytes.Equal(s.data.Bytes(), data) {
		t.Error("JPEG data was modified")
	}
	if len(s.filters) != 0 {
		t.Errorf("unexpected filters %v", s.filters)
	}
}

func TestEmbedGrayJPEG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	data := encodeJPEG(t, src)

	w := newRecorder()
	im, err := EmbedJPEG(w, data)
	if err != nil {
		t.Fatal(err)
	}
	if cs := w.streams[im.Ref].dict["ColorSpace"]; cs != pdf.Name("DeviceGray") {
		t.Errorf("got color space %v, want DeviceGray", cs)
	}
}

func TestEmbedCorruptJPEG(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	_, err := Embed(newRecorder(), data)
	if err == nil {
		t.Error("expected error for corrupt JPEG data")
	}
}

func TestEmbedOpaquePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, gocolor.NRGBA{R: byte(10 * x), G: byte(10 * y), B: 7, A: 255})
		}
	}
	data := encodePNG(t, src)

	w := newRecorder()
	im, err := Embed(w, data)
	if err != nil {
		t.Fatal(err)
	}
	if im.Width != 3 || im.Height != 2 {
		t.Errorf("got size %dx%d, want 3x2", im.Width, im.Height)
	}
	if len(w.streams) != 1 {
		t.Fatalf("got %d streams, want 1", len(w.streams))
	}

	s := w.streams[im.Ref]
	if _, hasMask := s.dict["SMask"]; hasMask {
		t.Error("opaque image has a soft mask")
	}
	if s.dict["ColorSpace"] != pdf.Name("DeviceRGB") {
		t.Errorf("got color space %v, want DeviceRGB", s.dict["ColorSpace"])
	}
	wantSamples := []byte{
		0, 0, 7, 10, 0, 7, 20, 0, 7,
		0, 10, 7, 10, 10, 7, 20, 10, 7,
	}
	if d := cmp.Diff(wantSamples, s.data.Bytes()); d != "" {
		t.Errorf("unexpected samples (-want +got):\n%s", d)
	}
}

func TestEmbedTransparentPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, gocolor.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, gocolor.NRGBA{G: 255, A: 128})
	src.SetNRGBA(0, 1, gocolor.NRGBA{B: 255, A: 0})
	src.SetNRGBA(1, 1, gocolor.NRGBA{R: 1, G: 2, B: 3, A: 64})
	data := encodePNG(t, src)

	w := newRecorder()
	im, err := EmbedPNG(w, data)
	if err != nil {
		t.Fatal(err)
	}

	s := w.streams[im.Ref]
	maskRef, ok := s.dict["SMask"].(pdf.Reference)
	if !ok {
		t.Fatalf("missing soft mask, got %v", s.dict["SMask"])
	}
	mask := w.streams[maskRef]
	if mask == nil {
		t.Fatal("soft mask stream not written")
	}
	if mask.dict["ColorSpace"] != pdf.Name("DeviceGray") {
		t.Errorf("got mask color space %v, want DeviceGray", mask.dict["ColorSpace"])
	}
	if d := cmp.Diff([]byte{255, 128, 0, 64}, mask.data.Bytes()); d != "" {
		t.Errorf("unexpected alpha values (-want +got):\n%s", d)
	}

	// colour values are stored without premultiplication
	wantSamples := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 1, 2, 3}
	if d := cmp.Diff(wantSamples, s.data.Bytes()); d != "" {
		t.Errorf("unexpected samples (-want +got):\n%s", d)
	}
}

func TestEmbedGrayPNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.Pix = []byte{0, 128, 255}
	data := encodePNG(t, src)

	w := newRecorder()
	im, err := EmbedPNG(w, data)
	if err != nil {
		t.Fatal(err)
	}
	s := w.streams[im.Ref]
	if s.dict["ColorSpace"] != pdf.Name("DeviceGray") {
		t.Errorf("got color space %v, want DeviceGray", s.dict["ColorSpace"])
	}
	if d := cmp.Diff([]byte{0, 128, 255}, s.data.Bytes()); d != "" {
		t.Errorf("unexpected samples (-want +got):\n%s", d)
	}
}

func TestEmbedUnsupported(t *testing.T) {
	_, err := Embed(newRecorder(), []byte("GIF89a......"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got error %v, want ErrUnsupportedFormat", err)
	}
}
