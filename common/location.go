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

package common

import (
	"fmt"
)

// Location is a position in a declaration source, e.g. a declaration file.
// Lines and columns are 1-based; zero means unknown.
type Location struct {
	Path   string
	Line   int
	Column int
}

// HasLocation is implemented by values which are associated with a source location,
// most notably errors.
type HasLocation interface {
	SourceLocation() Location
}

func (l Location) SourceLocation() Location {
	return l
}

func (l Location) IsKnown() bool {
	return l.Line > 0
}

func (l Location) String() string {
	switch {
	case l.Path == "" && !l.IsKnown():
		return "<unknown>"
	case !l.IsKnown():
		return l.Path
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
	default:
		return fmt.Sprintf("%s:%d", l.Path, l.Line)
	}
}
