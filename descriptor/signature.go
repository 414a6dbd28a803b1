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

package descriptor

import (
	"slices"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/variant"
)

// ParameterDescriptor describes an argument or a return value.
//
// On a required signature, the checked fields are optional constraints:
// nil means the sub-property is not verified.
// On an actual signature, they hold the introspected values,
// and nil is the same as the zero value.
type ParameterDescriptor struct {
	// Name is informational only and never compared
	Name              string
	Type              TypeDescriptor
	CheckedFlags      *variant.PropertyUsageFlags
	CheckedHint       *variant.PropertyHint
	CheckedHintString *string
}

func (p ParameterDescriptor) UsageFlags() variant.PropertyUsageFlags {
	if p.CheckedFlags == nil {
		return variant.UsageNone
	}
	return *p.CheckedFlags
}

func (p ParameterDescriptor) Hint() variant.PropertyHint {
	if p.CheckedHint == nil {
		return variant.HintNone
	}
	return *p.CheckedHint
}

func (p ParameterDescriptor) HintString() string {
	if p.CheckedHintString == nil {
		return ""
	}
	return *p.CheckedHintString
}

// HasChecks reports whether any sub-property is constrained.
func (p ParameterDescriptor) HasChecks() bool {
	return p.CheckedFlags != nil ||
		p.CheckedHint != nil ||
		p.CheckedHintString != nil
}

// WithCheckedFlags returns a copy of the parameter which requires the given usage flags.
func (p ParameterDescriptor) WithCheckedFlags(flags variant.PropertyUsageFlags) ParameterDescriptor {
	p.CheckedFlags = &flags
	return p
}

// WithCheckedHint returns a copy of the parameter which requires the given hint and hint string.
func (p ParameterDescriptor) WithCheckedHint(hint variant.PropertyHint, hintString string) ParameterDescriptor {
	p.CheckedHint = &hint
	p.CheckedHintString = &hintString
	return p
}

// Checked returns a pointer to the given value, for use as a checked sub-property.
func Checked[T variant.PropertyUsageFlags | variant.PropertyHint | string](value T) *T {
	return &value
}

func equalOptional[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Equal reports whether the descriptors are identical, including the name.
func (p ParameterDescriptor) Equal(other ParameterDescriptor) bool {
	return p.Name == other.Name &&
		p.Type.Equal(other.Type) &&
		equalOptional(p.CheckedFlags, other.CheckedFlags) &&
		equalOptional(p.CheckedHint, other.CheckedHint) &&
		equalOptional(p.CheckedHintString, other.CheckedHintString)
}

// MethodSignature is the script-side shape of a method.
type MethodSignature struct {
	Name string
	// Aliases are additional names the method can be matched by
	Aliases    []string
	Parameters []ParameterDescriptor
	Return     ParameterDescriptor
	// DefaultArgumentCount and Flags are informational
	DefaultArgumentCount int
	Flags                variant.MethodFlags
}

// Names returns the name and the aliases of the method.
func (s MethodSignature) Names() []string {
	names := make([]string, 0, 1+len(s.Aliases))
	names = append(names, s.Name)
	return append(names, s.Aliases...)
}

// HasName reports whether the method has the given name or alias.
func (s MethodSignature) HasName(name string) bool {
	return s.Name == name || slices.Contains(s.Aliases, name)
}

func (s MethodSignature) Equal(other MethodSignature) bool {
	return s.Name == other.Name &&
		slices.Equal(s.Aliases, other.Aliases) &&
		slices.EqualFunc(s.Parameters, other.Parameters, ParameterDescriptor.Equal) &&
		s.Return.Equal(other.Return) &&
		s.DefaultArgumentCount == other.DefaultArgumentCount &&
		s.Flags == other.Flags
}

func (s MethodSignature) String() string {
	return render(s.Doc())
}

// InterfaceContract is the ordered list of method signatures
// which a script must provide to implement an interface.
type InterfaceContract struct {
	Name     string
	Location common.Location
	Methods  []MethodSignature
}

// Method returns the first method with the given name or alias.
func (c *InterfaceContract) Method(name string) (MethodSignature, bool) {
	for _, method := range c.Methods {
		if method.HasName(name) {
			return method, true
		}
	}
	return MethodSignature{}, false
}

func (c *InterfaceContract) Equal(other *InterfaceContract) bool {
	return c.Name == other.Name &&
		c.Location == other.Location &&
		slices.EqualFunc(c.Methods, other.Methods, MethodSignature.Equal)
}

func (c *InterfaceContract) String() string {
	return render(c.Doc())
}
