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
	"strconv"

	"github.com/onflow/gdiface/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=MismatchKind

// MismatchKind is the first property in which a candidate differs from a requirement.
type MismatchKind uint

const (
	MismatchUnknown MismatchKind = iota
	MismatchArity
	MismatchType
	MismatchContainerHint
	MismatchFlags
	MismatchHint
	MismatchHintString
)

func (k MismatchKind) Name() string {
	switch k {
	case MismatchArity:
		return "parameter count"
	case MismatchType:
		return "type"
	case MismatchContainerHint:
		return "container element type"
	case MismatchFlags:
		return "usage flags"
	case MismatchHint:
		return "hint"
	case MismatchHintString:
		return "hint string"
	case MismatchUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

// ReturnIndex is the index of a mismatch in the return value.
const ReturnIndex = -1

// Mismatch describes why a method with a matching name does not satisfy a requirement.
type Mismatch struct {
	// Candidate is the name of the actual method
	Candidate string
	Kind      MismatchKind
	// Index is the index of the mismatching parameter, or ReturnIndex.
	// It is not used for arity mismatches
	Index    int
	Expected string
	Actual   string
}

func (m Mismatch) Message() string {
	if m.Kind == MismatchArity {
		return fmt.Sprintf(
			"expected %s parameters, got %s",
			m.Expected,
			m.Actual,
		)
	}

	var location string
	if m.Index == ReturnIndex {
		location = "return value"
	} else {
		location = fmt.Sprintf("parameter %d", m.Index+1)
	}

	return fmt.Sprintf(
		"%s: expected %s `%s`, got `%s`",
		location,
		m.Kind.Name(),
		m.Expected,
		m.Actual,
	)
}

func newArityMismatch(expected, actual int) Mismatch {
	return Mismatch{
		Kind:     MismatchArity,
		Expected: strconv.Itoa(expected),
		Actual:   strconv.Itoa(actual),
	}
}
