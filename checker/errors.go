/*
 * gdiface - Godot script interface conformance checker
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package checker

import (
	"fmt"
	"strings"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
)

// ConformanceError reports the required methods of an interface
// which are not satisfied by a script.
type ConformanceError struct {
	Interface   string
	Unsatisfied []Unsatisfied
	common.Location
}

var _ errors.UserError = &ConformanceError{}
var _ errors.ParentError = &ConformanceError{}

func (*ConformanceError) IsUserError() {}

func (e *ConformanceError) Error() string {
	return fmt.Sprintf(
		"script does not implement interface `%s`: %d required method(s) not satisfied",
		e.Interface,
		len(e.Unsatisfied),
	)
}

func (e *ConformanceError) ChildErrors() []error {
	errs := make([]error, 0, len(e.Unsatisfied))
	for _, unsatisfied := range e.Unsatisfied {
		errs = append(errs, &UnsatisfiedMethodError{
			Interface:   e.Interface,
			Unsatisfied: unsatisfied,
			Location:    e.Location,
		})
	}
	return errs
}

func (e *ConformanceError) Unwrap() []error {
	return e.ChildErrors()
}

// UnsatisfiedMethodError reports a single unsatisfied required method.
type UnsatisfiedMethodError struct {
	Interface   string
	Unsatisfied Unsatisfied
	common.Location
}

var _ errors.UserError = &UnsatisfiedMethodError{}
var _ errors.SecondaryError = &UnsatisfiedMethodError{}
var _ errors.ErrorNotes = &UnsatisfiedMethodError{}

func (*UnsatisfiedMethodError) IsUserError() {}

func (e *UnsatisfiedMethodError) Error() string {
	name := e.Unsatisfied.Requirement.Name
	if len(e.Unsatisfied.Mismatches) == 0 {
		return fmt.Sprintf(
			"missing method `%s` of interface `%s`",
			name,
			e.Interface,
		)
	}
	return fmt.Sprintf(
		"method `%s` does not match interface `%s`",
		name,
		e.Interface,
	)
}

func (e *UnsatisfiedMethodError) SecondaryError() string {
	var builder strings.Builder
	builder.WriteString("expected `")
	builder.WriteString(e.Unsatisfied.Requirement.String())
	builder.WriteString("`")

	if suggestion := e.Unsatisfied.Suggestion; suggestion != "" {
		builder.WriteString(fmt.Sprintf(". did you mean `%s`?", suggestion))
	}

	return builder.String()
}

func (e *UnsatisfiedMethodError) ErrorNotes() []errors.ErrorNote {
	notes := make([]errors.ErrorNote, 0, len(e.Unsatisfied.Mismatches))
	for _, mismatch := range e.Unsatisfied.Mismatches {
		notes = append(notes, mismatchNote{mismatch})
	}
	return notes
}

type mismatchNote struct {
	Mismatch
}

func (n mismatchNote) Message() string {
	return fmt.Sprintf(
		"candidate `%s`: %s",
		n.Candidate,
		n.Mismatch.Message(),
	)
}
