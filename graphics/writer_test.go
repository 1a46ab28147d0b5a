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

package graphics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"

	"github.com/vertigis/workflow-activities-pdf/color"
)

func TestOverlay(t *testing.T) {
	buf := &bytes.Buffer{}
	res := pdf.Dict{
		"Font": pdf.Dict{"F1": pdf.Reference(5)},
	}
	w := NewWriter(buf, res)

	w.PushGraphicsState()
	w.SetOpacity(1, 0.5)
	w.SetFillColor(color.RGBA{Red: 1, Alpha: 0.5})
	w.TextStart()
	w.TextSetFont(pdf.Reference(9), 12)
	w.TextFirstLine(10, 20.5)
	w.TextShowRaw(pdf.String("Hello"))
	w.TextEnd()
	w.PopGraphicsState()
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		"q",
		"/E1 gs",
		"1 0 0 rg",
		"BT",
		"/F2 12 Tf",
		"10 20.5 Td",
		"", // Tj
		"ET",
		"Q",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf)
	}
	for i := range want {
		if i == 6 {
			if !strings.HasSuffix(lines[i], " Tj") {
				t.Errorf("line %d: got %q, want text showing operator", i, lines[i])
			}
			continue
		}
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}

	wantRes := pdf.Dict{
		"Font": pdf.Dict{
			"F1": pdf.Reference(5),
			"F2": pdf.Reference(9),
		},
		"ExtGState": pdf.Dict{
			"E1": pdf.Dict{
				"Type": pdf.Name("ExtGState"),
				"CA":   pdf.Real(1),
				"ca":   pdf.Real(0.5),
			},
		},
	}
	if d := cmp.Diff(wantRes, res); d != "" {
		t.Errorf("unexpected resources (-want +got):\n%s", d)
	}
}

func TestResourceReuse(t *testing.T) {
	buf := &bytes.Buffer{}
	res := pdf.Dict{}
	w := NewWriter(buf, res)

	w.DrawXObject(pdf.Reference(3))
	w.DrawXObject(pdf.Reference(4))
	w.DrawXObject(pdf.Reference(3))
	w.SetOpacity(0.25, 1)
	w.SetOpacity(0.25, 1)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	want := "/X1 Do\n/X2 Do\n/X1 Do\n/E1 gs\n/E1 gs\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if n := len(res["XObject"].(pdf.Dict)); n != 2 {
		t.Errorf("got %d XObjects, want 2", n)
	}
	if n := len(res["ExtGState"].(pdf.Dict)); n != 1 {
		t.Errorf("got %d ExtGStates, want 1", n)
	}
}

func TestGenerateName(t *testing.T) {
	cases := []struct {
		used []pdf.Name
		want pdf.Name
	}{
		{nil, "F1"},
		{[]pdf.Name{"F1"}, "F2"},
		{[]pdf.Name{"F2"}, "F1"},
		{[]pdf.Name{"F1", "F2", "F3"}, "F4"},
		{[]pdf.Name{"F2", "F3", "Helv"}, "F4"},
		{[]pdf.Name{"F2", "F3", "F4"}, "F1"},
	}
	for _, c := range cases {
		dict := pdf.Dict{}
		for _, name := range c.used {
			dict[name] = pdf.Integer(0)
		}
		got := generateName(catFont, dict)
		if got != c.want {
			t.Errorf("%v: got %s, want %s", c.used, got, c.want)
		}
		if _, clash := dict[got]; clash {
			t.Errorf("%v: name %s is already used", c.used, got)
		}
	}
}

func TestBorder(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf, pdf.Dict{})

	w.PushGraphicsState()
	w.Transform(matrix.Translate(10, 20))
	w.SetLineWidth(2)
	w.SetLineWidth(2)
	w.SetStrokeColor(color.RGBA{Blue: 1, Alpha: 1})
	w.SetStrokeColor(color.RGBA{Blue: 1, Alpha: 0.5})
	w.Rectangle(0, 0, 100, 50.25)
	w.Stroke()
	w.PopGraphicsState()
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	want := "q\n1 0 0 1 10 20 cm\n2 w\n0 0 1 RG\n0 0 100 50.25 re\nS\nQ\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if w.CTM != matrix.Identity {
		t.Errorf("CTM not restored: %v", w.CTM)
	}
}

func TestWriterErrors(t *testing.T) {
	cases := []struct {
		name string
		draw func(w *Writer)
	}{
		{"Q without q", func(w *Writer) { w.PopGraphicsState() }},
		{"ET without BT", func(w *Writer) { w.TextEnd() }},
		{"Tj outside text", func(w *Writer) { w.TextShowRaw(pdf.String("x")) }},
		{"Tj without font", func(w *Writer) {
			w.TextStart()
			w.TextShowRaw(pdf.String("x"))
		}},
		{"unclosed q", func(w *Writer) { w.PushGraphicsState() }},
		{"unclosed BT", func(w *Writer) { w.TextStart() }},
		{"stroke without path", func(w *Writer) { w.Stroke() }},
		{"Do inside text", func(w *Writer) {
			w.TextStart()
			w.DrawXObject(pdf.Reference(1))
		}},
		{"negative line width", func(w *Writer) { w.SetLineWidth(-1) }},
		{"opacity out of range", func(w *Writer) { w.SetOpacity(1.5, 1) }},
		{"zero font size", func(w *Writer) { w.TextSetFont(pdf.Reference(1), 0) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWriter(&bytes.Buffer{}, pdf.Dict{})
			c.draw(w)
			if err := w.Close(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestColorState(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf, pdf.Dict{})

	red := color.RGBA{Red: 1, Alpha: 1}
	green := color.RGBA{Green: 1, Alpha: 1}

	w.PushGraphicsState()
	w.SetStrokeColor(red)
	w.SetFillColor(green)
	w.Rectangle(0, 0, 10, 10)
	w.Fill()
	w.Rectangle(0, 0, 10, 10)
	w.Stroke()
	if w.StrokeColor != red || w.FillColor != green {
		t.Errorf("got stroke %v, fill %v", w.StrokeColor, w.FillColor)
	}
	w.PopGraphicsState()
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if w.StrokeColor != color.Black || w.FillColor != color.Black {
		t.Errorf("colors not restored: stroke %v, fill %v", w.StrokeColor, w.FillColor)
	}
	if w.isSet(StateStrokeColor) || w.isSet(StateFillColor) {
		t.Error("color state bits not restored")
	}

	want := "q\n1 0 0 RG\n0 1 0 rg\n0 0 10 10 re\nf\n0 0 10 10 re\nS\nQ\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
