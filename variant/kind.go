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

package variant

import (
	"github.com/onflow/gdiface/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind

// Kind is the runtime type tag of a Variant.
// The values are the engine's wire integers and must not be reordered.
type Kind uint

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindVector2
	KindVector2i
	KindRect2
	KindRect2i
	KindVector3
	KindVector3i
	KindTransform2D
	KindVector4
	KindVector4i
	KindPlane
	KindQuaternion
	KindAABB
	KindBasis
	KindTransform3D
	KindProjection
	KindColor
	KindStringName
	KindNodePath
	KindRID
	KindObject
	KindCallable
	KindSignal
	KindDictionary
	KindArray
	KindPackedByteArray
	KindPackedInt32Array
	KindPackedInt64Array
	KindPackedFloat32Array
	KindPackedFloat64Array
	KindPackedStringArray
	KindPackedVector2Array
	KindPackedVector3Array
	KindPackedColorArray
	KindPackedVector4Array

	// KindCount is the number of kinds, it is not a valid kind
	KindCount
)

// KindVoid is the tag of a method's return value when the method returns nothing.
// The engine reports it as Nil; descriptors tell it apart from "any" by the any marker.
const KindVoid = KindNil

var kindNames = [...]string{
	KindNil:                "Nil",
	KindBool:               "bool",
	KindInt:                "int",
	KindFloat:              "float",
	KindString:             "String",
	KindVector2:            "Vector2",
	KindVector2i:           "Vector2i",
	KindRect2:              "Rect2",
	KindRect2i:             "Rect2i",
	KindVector3:            "Vector3",
	KindVector3i:           "Vector3i",
	KindTransform2D:        "Transform2D",
	KindVector4:            "Vector4",
	KindVector4i:           "Vector4i",
	KindPlane:              "Plane",
	KindQuaternion:         "Quaternion",
	KindAABB:               "AABB",
	KindBasis:              "Basis",
	KindTransform3D:        "Transform3D",
	KindProjection:         "Projection",
	KindColor:              "Color",
	KindStringName:         "StringName",
	KindNodePath:           "NodePath",
	KindRID:                "RID",
	KindObject:             "Object",
	KindCallable:           "Callable",
	KindSignal:             "Signal",
	KindDictionary:         "Dictionary",
	KindArray:              "Array",
	KindPackedByteArray:    "PackedByteArray",
	KindPackedInt32Array:   "PackedInt32Array",
	KindPackedInt64Array:   "PackedInt64Array",
	KindPackedFloat32Array: "PackedFloat32Array",
	KindPackedFloat64Array: "PackedFloat64Array",
	KindPackedStringArray:  "PackedStringArray",
	KindPackedVector2Array: "PackedVector2Array",
	KindPackedVector3Array: "PackedVector3Array",
	KindPackedColorArray:   "PackedColorArray",
	KindPackedVector4Array: "PackedVector4Array",
}

var kindsByName = func() map[string]Kind {
	result := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		result[name] = Kind(kind)
	}
	return result
}()

func (k Kind) IsValid() bool {
	return k < KindCount
}

// Name returns the canonical type name, as used in container hint strings.
func (k Kind) Name() string {
	if !k.IsValid() {
		panic(errors.NewUnreachableError())
	}
	return kindNames[k]
}

// KindByName returns the kind with the given canonical name.
func KindByName(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}

// IsContainer reports whether the kind may carry a container hint.
func (k Kind) IsContainer() bool {
	switch k {
	case KindArray, KindDictionary:
		return true
	default:
		return false
	}
}

func (k Kind) IsPackedArray() bool {
	return k >= KindPackedByteArray && k <= KindPackedVector4Array
}

// PackedElementKind returns the element kind of a packed array kind.
// Sized integer and float elements are reported as Int and Float.
func (k Kind) PackedElementKind() (Kind, bool) {
	switch k {
	case KindPackedByteArray,
		KindPackedInt32Array,
		KindPackedInt64Array:

		return KindInt, true

	case KindPackedFloat32Array,
		KindPackedFloat64Array:

		return KindFloat, true

	case KindPackedStringArray:
		return KindString, true
	case KindPackedVector2Array:
		return KindVector2, true
	case KindPackedVector3Array:
		return KindVector3, true
	case KindPackedColorArray:
		return KindColor, true
	case KindPackedVector4Array:
		return KindVector4, true
	}

	return KindNil, false
}
