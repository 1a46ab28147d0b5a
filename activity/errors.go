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
	"errors"
	"fmt"
)

// ErrMissingRequiredInput indicates that a required input field was not
// set.
var ErrMissingRequiredInput = errors.New("missing required input")

// ErrInvalidInput indicates an input field with an out-of-range value.
var ErrInvalidInput = errors.New("invalid input")

// InputError is returned when an input field is missing or invalid.
type InputError struct {
	// Field is the JSON name of the input field.
	Field string

	// Err describes the problem.
	Err error
}

func (err *InputError) Error() string {
	return fmt.Sprintf("input %q: %v", err.Field, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

func missing(field string) error {
	return &InputError{Field: field, Err: ErrMissingRequiredInput}
}

func invalid(field string, format string, args ...any) error {
	return &InputError{
		Field: field,
		Err:   fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...),
	}
}

func wrapInput(field string, err error) error {
	return &InputError{Field: field, Err: err}
}
