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

// Equatable is implemented by types which define their own equality,
// typically pointers to optional parts of a value.
type Equatable[T any] interface {
	comparable
	Equal(other T) bool
}

// DeepEquals reports whether two optional values are equal:
// either both are absent, or both are present and equal.
func DeepEquals[T Equatable[T]](a, b T) bool {
	var absent T
	if a == absent || b == absent {
		return a == b
	}
	return a.Equal(b)
}
