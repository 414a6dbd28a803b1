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
	"fmt"
	"strings"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/variant"
)

// AnyTypeName is the name used for "any Variant" in container hints and in rendered types.
const AnyTypeName = "Variant"

const dictionaryHintSeparator = ";"

// ContainerHint names the element type of a typed array,
// or the key and value types of a typed dictionary.
type ContainerHint struct {
	// Element is the element type name of an array, or the key type name of a dictionary
	Element string
	// Value is the value type name of a dictionary, and empty for arrays
	Value string
}

func ArrayHint(element string) *ContainerHint {
	return &ContainerHint{
		Element: element,
	}
}

func DictionaryHint(key, value string) *ContainerHint {
	return &ContainerHint{
		Element: key,
		Value:   value,
	}
}

func (h *ContainerHint) IsDictionary() bool {
	return h.Value != ""
}

func (h *ContainerHint) Equal(other *ContainerHint) bool {
	return *h == *other
}

// String returns the hint string, e.g. `int` or `String;int`.
func (h *ContainerHint) String() string {
	if h.IsDictionary() {
		return h.Element + dictionaryHintSeparator + h.Value
	}
	return h.Element
}

// ParseContainerHint parses the hint string of a typed container of the given kind.
func ParseContainerHint(kind variant.Kind, hintString string) (*ContainerHint, error) {
	switch kind {
	case variant.KindArray:
		if hintString == "" || strings.Contains(hintString, dictionaryHintSeparator) {
			return nil, fmt.Errorf("invalid array element hint %q", hintString)
		}
		return ArrayHint(hintString), nil

	case variant.KindDictionary:
		key, value, ok := strings.Cut(hintString, dictionaryHintSeparator)
		if !ok || key == "" || value == "" || strings.Contains(value, dictionaryHintSeparator) {
			return nil, fmt.Errorf("invalid dictionary key/value hint %q", hintString)
		}
		return DictionaryHint(key, value), nil

	default:
		return nil, fmt.Errorf("%s is not a container", kind.Name())
	}
}

// TypeDescriptor is the dynamic type of an argument or return value.
type TypeDescriptor struct {
	Kind variant.Kind
	// ClassName is the nearest framework class of an object,
	// or the fully qualified name of an enum
	ClassName string
	// ContainerHint is set for typed arrays and typed dictionaries only
	ContainerHint *ContainerHint
	EnumMarker    bool
	AnyMarker     bool
}

func Primitive(kind variant.Kind) TypeDescriptor {
	switch kind {
	case variant.KindObject,
		variant.KindArray,
		variant.KindDictionary:

		panic(errors.NewUnexpectedError("%s is not a primitive kind", kind.Name()))
	}
	if !kind.IsValid() {
		panic(errors.NewUnreachableError())
	}

	return TypeDescriptor{
		Kind: kind,
	}
}

// Untyped returns the descriptor of an untyped container.
func Untyped(kind variant.Kind) TypeDescriptor {
	if !kind.IsContainer() {
		panic(errors.NewUnexpectedError("%s is not a container kind", kind.Name()))
	}
	return TypeDescriptor{
		Kind: kind,
	}
}

func NewTypedArray(element string) TypeDescriptor {
	return TypeDescriptor{
		Kind:          variant.KindArray,
		ContainerHint: ArrayHint(element),
	}
}

func NewTypedDictionary(key, value string) TypeDescriptor {
	return TypeDescriptor{
		Kind:          variant.KindDictionary,
		ContainerHint: DictionaryHint(key, value),
	}
}

func Object(className string) TypeDescriptor {
	return TypeDescriptor{
		Kind:      variant.KindObject,
		ClassName: className,
	}
}

func Enum(qualifiedName string) TypeDescriptor {
	return TypeDescriptor{
		Kind:       variant.KindInt,
		ClassName:  qualifiedName,
		EnumMarker: true,
	}
}

// Any returns the descriptor of "any Variant".
func Any() TypeDescriptor {
	return TypeDescriptor{
		Kind:      variant.KindNil,
		AnyMarker: true,
	}
}

func Void() TypeDescriptor {
	return TypeDescriptor{
		Kind: variant.KindVoid,
	}
}

func (d TypeDescriptor) IsVoid() bool {
	return d.Kind == variant.KindVoid && !d.AnyMarker
}

func (d TypeDescriptor) IsTyped() bool {
	return d.ContainerHint != nil
}

// SameType reports whether the kinds and class names are equal.
// Container hints and markers are not compared.
func (d TypeDescriptor) SameType(other TypeDescriptor) bool {
	return d.Kind == other.Kind &&
		d.ClassName == other.ClassName
}

// Equal reports whether the descriptors are identical.
func (d TypeDescriptor) Equal(other TypeDescriptor) bool {
	return d.SameType(other) &&
		d.EnumMarker == other.EnumMarker &&
		d.AnyMarker == other.AnyMarker &&
		common.DeepEquals(d.ContainerHint, other.ContainerHint)
}

// HintName returns the name of the type when used as an element, key, or value type of a container.
func (d TypeDescriptor) HintName() string {
	switch {
	case d.AnyMarker:
		return AnyTypeName
	case d.Kind == variant.KindObject:
		return d.ClassName
	default:
		return d.Kind.Name()
	}
}

// Validate checks the structural invariants of the descriptor.
func (d TypeDescriptor) Validate() error {
	if !d.Kind.IsValid() {
		return fmt.Errorf("invalid kind %d", d.Kind)
	}

	if d.AnyMarker && d.Kind != variant.KindNil {
		return fmt.Errorf("any marker on kind %s", d.Kind.Name())
	}

	if d.EnumMarker {
		if d.Kind != variant.KindInt {
			return fmt.Errorf("enum marker on kind %s", d.Kind.Name())
		}
		if d.ClassName == "" {
			return fmt.Errorf("enum without name")
		}
	}

	switch {
	case d.Kind == variant.KindObject:
		if d.ClassName == "" {
			return fmt.Errorf("object without class name")
		}
	case d.ClassName != "" && !d.EnumMarker:
		return fmt.Errorf("class name %s on kind %s", d.ClassName, d.Kind.Name())
	}

	if d.ContainerHint != nil {
		if !d.Kind.IsContainer() {
			return fmt.Errorf("container hint on kind %s", d.Kind.Name())
		}
		if d.ContainerHint.IsDictionary() != (d.Kind == variant.KindDictionary) {
			return fmt.Errorf("container hint %q does not match kind %s", d.ContainerHint, d.Kind.Name())
		}
		if d.ContainerHint.Element == "" {
			return fmt.Errorf("empty container hint")
		}
	}

	return nil
}

func (d TypeDescriptor) String() string {
	return render(d.Doc())
}
