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

package resolver

import (
	"fmt"

	"github.com/SaveTheRbtz/mph"
	"github.com/rs/zerolog"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/static"
	"github.com/onflow/gdiface/variant"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Position

// Position is where a type occurs in a signature.
type Position uint

const (
	PositionUnknown Position = iota
	PositionParameter
	PositionReturn
)

func (p Position) Name() string {
	switch p {
	case PositionParameter:
		return "parameter"
	case PositionReturn:
		return "return value"
	case PositionUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

// valueTypeNames are the framework value types with a dedicated kind
var valueTypeNames = []string{
	"Vector2",
	"Vector2I",
	"Rect2",
	"Rect2I",
	"Vector3",
	"Vector3I",
	"Transform2D",
	"Vector4",
	"Vector4I",
	"Plane",
	"Quaternion",
	"Aabb",
	"Basis",
	"Transform3D",
	"Projection",
	"Color",
	"StringName",
	"NodePath",
	"Rid",
	"Callable",
	"Signal",
}

var valueTypeKinds = []variant.Kind{
	variant.KindVector2,
	variant.KindVector2i,
	variant.KindRect2,
	variant.KindRect2i,
	variant.KindVector3,
	variant.KindVector3i,
	variant.KindTransform2D,
	variant.KindVector4,
	variant.KindVector4i,
	variant.KindPlane,
	variant.KindQuaternion,
	variant.KindAABB,
	variant.KindBasis,
	variant.KindTransform3D,
	variant.KindProjection,
	variant.KindColor,
	variant.KindStringName,
	variant.KindNodePath,
	variant.KindRID,
	variant.KindCallable,
	variant.KindSignal,
}

var valueTypesTable = mph.Build(valueTypeNames)

// packedElementNames are the array element types with a dedicated packed array kind.
// Primitive types are named by their keyword, framework value types by their name.
var packedElementNames = []string{
	"byte",
	"int",
	"long",
	"float",
	"double",
	"string",
	"Vector2",
	"Vector3",
	"Color",
	"Vector4",
}

var packedArrayKinds = []variant.Kind{
	variant.KindPackedByteArray,
	variant.KindPackedInt32Array,
	variant.KindPackedInt64Array,
	variant.KindPackedFloat32Array,
	variant.KindPackedFloat64Array,
	variant.KindPackedStringArray,
	variant.KindPackedVector2Array,
	variant.KindPackedVector3Array,
	variant.KindPackedColorArray,
	variant.KindPackedVector4Array,
}

var packedElementsTable = mph.Build(packedElementNames)

// Resolver maps static types to type descriptors.
//
// A resolver caches the descriptors of the types it resolved successfully.
// It is meant for one mapping pass and is not safe for concurrent use.
type Resolver struct {
	config         Config
	nameExceptions map[string]string
	logger         zerolog.Logger
	cache          map[static.Type]descriptor.TypeDescriptor
}

func NewResolver(config Config, logger zerolog.Logger) *Resolver {
	config = config.withDefaults()
	return &Resolver{
		config:         config,
		nameExceptions: config.nameExceptions(),
		logger:         logger,
		cache:          map[static.Type]descriptor.TypeDescriptor{},
	}
}

// ResolveType returns the descriptor of the given type, when used in the given position.
func (r *Resolver) ResolveType(typ static.Type, position Position) (descriptor.TypeDescriptor, error) {
	if typ == static.Void {
		if position != PositionReturn {
			return descriptor.TypeDescriptor{}, &UnrepresentableTypeError{
				Type:   typ,
				Reason: "void can only be used as a return type",
			}
		}
		return descriptor.Void(), nil
	}

	if result, ok := r.cache[typ]; ok {
		return result, nil
	}

	result, err := r.resolveType(typ)
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	r.cache[typ] = result
	return result, nil
}

func unrepresentable(typ static.Type, reason string, args ...any) *UnrepresentableTypeError {
	return &UnrepresentableTypeError{
		Type:   typ,
		Reason: fmt.Sprintf(reason, args...),
	}
}

func (r *Resolver) resolveType(typ static.Type) (descriptor.TypeDescriptor, error) {
	switch typ := typ.(type) {
	case *static.NamedType:
		return r.resolveNamedType(typ)

	case *static.EnumType:
		return descriptor.Enum(typ.QualifiedName()), nil

	case static.VoidType:
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "void can only be used as a return type")

	case static.PrimitiveType:
		return resolvePrimitiveType(typ)

	case *static.ArrayType:
		return r.resolveArrayType(typ)

	case *static.TypeParameter:
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "type parameters have no runtime representation")
	}

	panic(errors.NewUnreachableError())
}

func resolvePrimitiveType(typ static.PrimitiveType) (descriptor.TypeDescriptor, error) {
	switch {
	case typ == static.PrimitiveBool:
		return descriptor.Primitive(variant.KindBool), nil

	case typ == static.PrimitiveString:
		return descriptor.Primitive(variant.KindString), nil

	case typ.IsFloatingPoint():
		return descriptor.Primitive(variant.KindFloat), nil

	case typ.IsInteger(),
		typ == static.PrimitiveChar:

		return descriptor.Primitive(variant.KindInt), nil

	case typ == static.PrimitiveDecimal:
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "decimal has no runtime representation")
	}

	panic(errors.NewUnreachableError())
}

// elementName returns the name of an array element type
// which may have a packed array kind
func (r *Resolver) elementName(typ static.Type) (string, bool) {
	switch typ := typ.(type) {
	case static.PrimitiveType:
		return typ.Keyword(), true
	case *static.NamedType:
		if typ.Namespace == r.config.FrameworkNamespace && !typ.IsConstructed() {
			return typ.Name, true
		}
	}
	return "", false
}

func (r *Resolver) resolveArrayType(typ *static.ArrayType) (descriptor.TypeDescriptor, error) {
	if typ.Rank != 1 {
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "multi-dimensional arrays have no runtime representation")
	}

	if name, ok := r.elementName(typ.Element); ok {
		if index, ok := packedElementsTable.Lookup(name); ok {
			return descriptor.Primitive(packedArrayKinds[index]), nil
		}
	}

	if element, ok := typ.Element.(*static.NamedType); ok &&
		!element.IsValueType &&
		r.derivesFromRootObject(element) {

		return descriptor.NewTypedArray(r.NearestFrameworkAncestorName(element)), nil
	}

	return descriptor.TypeDescriptor{}, unrepresentable(
		typ,
		"arrays of `%s` have no runtime representation",
		typ.Element,
	)
}

func (r *Resolver) isFrameworkType(typ *static.NamedType, name string) bool {
	return typ.Namespace == r.config.FrameworkNamespace && typ.Name == name
}

func (r *Resolver) resolveNamedType(typ *static.NamedType) (descriptor.TypeDescriptor, error) {

	if r.isFrameworkType(typ, static.VariantType.Name) && !typ.IsConstructed() {
		return descriptor.Any(), nil
	}

	if typ.Namespace == r.config.collectionsNamespace() {
		switch typ.Name {
		case "Array":
			return r.resolveArrayCollection(typ)
		case "Dictionary":
			return r.resolveDictionaryCollection(typ)
		}
	}

	if typ.IsConstructed() && !typ.IsValueType && r.derivesFromRootObject(typ) {
		return descriptor.Object(r.NearestFrameworkAncestorName(typ)), nil
	}

	if typ.IsConstructed() || typ.IsGenericDefinition() {
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "generic type `%s` has no runtime representation", typ.Name)
	}

	if typ.Namespace == r.config.FrameworkNamespace {
		if index, ok := valueTypesTable.Lookup(typ.Name); ok {
			return descriptor.Primitive(valueTypeKinds[index]), nil
		}
	}

	if !typ.IsValueType && r.derivesFromRootObject(typ) {
		return descriptor.Object(r.NearestFrameworkAncestorName(typ)), nil
	}

	if typ.IsValueType {
		return descriptor.TypeDescriptor{}, unrepresentable(typ, "structure `%s` has no runtime representation", typ.Name)
	}

	return descriptor.TypeDescriptor{}, unrepresentable(
		typ,
		"class `%s` does not derive from `%s.%s`",
		typ.Name,
		r.config.FrameworkNamespace,
		r.config.RootObjectName,
	)
}

// resolveContainerArgument resolves a type argument of a generic container.
func (r *Resolver) resolveContainerArgument(
	container *static.NamedType,
	argument static.Type,
) (descriptor.TypeDescriptor, error) {
	result, err := r.ResolveType(argument, PositionParameter)
	if err != nil {
		typeErr, ok := err.(*UnrepresentableTypeError)
		if !ok {
			return descriptor.TypeDescriptor{}, err
		}
		return descriptor.TypeDescriptor{}, unrepresentable(
			container,
			"type argument `%s`: %s",
			typeErr.Type,
			typeErr.Reason,
		)
	}
	return result, nil
}

func (r *Resolver) resolveArrayCollection(typ *static.NamedType) (descriptor.TypeDescriptor, error) {
	switch len(typ.TypeArguments) {
	case 0:
		return descriptor.Untyped(variant.KindArray), nil

	case 1:
		element, err := r.resolveContainerArgument(typ, typ.TypeArguments[0])
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}
		if element.AnyMarker {
			return descriptor.Untyped(variant.KindArray), nil
		}
		return descriptor.NewTypedArray(element.HintName()), nil
	}

	panic(errors.NewUnreachableError())
}

func (r *Resolver) resolveDictionaryCollection(typ *static.NamedType) (descriptor.TypeDescriptor, error) {
	switch len(typ.TypeArguments) {
	case 0:
		return descriptor.Untyped(variant.KindDictionary), nil

	case 2:
		key, err := r.resolveContainerArgument(typ, typ.TypeArguments[0])
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}
		value, err := r.resolveContainerArgument(typ, typ.TypeArguments[1])
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}
		if key.AnyMarker && value.AnyMarker {
			return descriptor.Untyped(variant.KindDictionary), nil
		}
		return descriptor.NewTypedDictionary(key.HintName(), value.HintName()), nil
	}

	panic(errors.NewUnreachableError())
}
