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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// ToSnakeCase converts a PascalCase or camelCase member name
// into the snake_case convention used by scripts,
// e.g. `TakeDamage` becomes `take_damage` and `HTTPRequest` becomes `http_request`.
func ToSnakeCase(name string) string {
	runes := []rune(name)

	var builder strings.Builder
	builder.Grow(len(name) + 4)

	for i, r := range runes {
		if i > 0 && runes[i-1] != '_' && r != '_' && isWordBoundary(runes, i) {
			builder.WriteByte('_')
		}
		builder.WriteRune(r)
	}

	return lower.String(builder.String())
}

// isWordBoundary reports whether a new word starts at index i.
// An acronym run ends before its last upper-case letter
// when that letter is followed by a lower-case one.
func isWordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	cur := runes[i]

	nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	switch {
	case unicode.IsLower(prev):
		return unicode.IsUpper(cur) || unicode.IsDigit(cur)
	case unicode.IsUpper(prev):
		return unicode.IsUpper(cur) && nextIsLower
	case unicode.IsDigit(prev):
		return unicode.IsUpper(cur) && nextIsLower
	}

	return false
}
