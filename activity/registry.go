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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownActivity is returned by [Run] for names which are not in the
// [Registry].
var ErrUnknownActivity = errors.New("unknown activity")

// A Handler runs an activity.  The input and the output are JSON records.
// Binary fields are base64 encoded.
type Handler func(ctx context.Context, input []byte) ([]byte, error)

// Registry maps activity names to their handlers.
var Registry = map[string]Handler{
	"CreatePdf":            handler(CreateDocument),
	"MergePdfs":            handler(MergeDocuments),
	"AddTextToPdf":         handler(PlaceText),
	"AddImageToPdf":        handler(PlaceImage),
	"AddGeoreferenceToPdf": handler(AddGeoreference),
}

// Names returns the names of all registered activities, in sorted order.
func Names() []string {
	var names []string
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run decodes the input record, runs the named activity and encodes the
// output record.
func Run(ctx context.Context, name string, input []byte) ([]byte, error) {
	h, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)",
			ErrUnknownActivity, name, strings.Join(Names(), ", "))
	}
	return h(ctx, input)
}

func handler[In any](run func(*In) (*Output, error)) Handler {
	return func(ctx context.Context, input []byte) ([]byte, error) {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		in := new(In)
		err = json.Unmarshal(input, in)
		if err != nil {
			return nil, fmt.Errorf("decoding input: %w", err)
		}

		out, err := run(in)
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	}
}
