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

// Package activity implements workflow activities which create and modify
// PDF documents.
//
// Each activity takes an input record and returns an [Output] holding the
// bytes of the new PDF file.  Optional input fields use their zero value
// to select the documented default.  All inputs are validated before the
// source document is modified, and the activities share no state, so they
// can be run concurrently.
//
// The activities are:
//   - [CreateDocument] creates a PDF file with a single blank page.
//   - [MergeDocuments] concatenates the pages of several PDF files.
//   - [PlaceText] draws a text on a page.
//   - [PlaceImage] draws a JPEG or PNG image on a page.
//   - [AddGeoreference] adds OGC georeference information to a page.
//
// [Registry] makes the activities available to a workflow host which
// exchanges JSON records.
package activity

// Output is the result of every activity.
type Output struct {
	// Result is the complete PDF file.
	Result []byte `json:"result"`
}
