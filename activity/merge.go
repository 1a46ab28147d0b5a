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

import "github.com/vertigis/workflow-activities-pdf/document"

// MergeDocumentsInputs are the inputs of [MergeDocuments].
type MergeDocumentsInputs struct {
	// Sources are the PDF files to merge.  This field is required, but
	// the list may be empty.
	Sources [][]byte `json:"sources"`
}

// MergeDocuments creates a document which contains the pages of all
// source documents, in order.
func MergeDocuments(in *MergeDocumentsInputs) (*Output, error) {
	if in.Sources == nil {
		return nil, missing("sources")
	}
	for i, src := range in.Sources {
		if len(src) == 0 {
			return nil, invalid("sources", "file %d is empty", i+1)
		}
	}

	doc, err := document.Merge(in.Sources)
	if err != nil {
		return nil, err
	}
	data, err := doc.Save()
	if err != nil {
		return nil, err
	}
	return &Output{Result: data}, nil
}
