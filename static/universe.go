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

package static

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

const (
	SystemNamespace      = "System"
	FrameworkNamespace   = "Godot"
	CollectionsNamespace = FrameworkNamespace + ".Collections"

	RootObjectName = "GodotObject"
)

// Universe is the set of types which type expressions may refer to.
// A fresh universe contains the built-in types and the framework's types;
// declaration files add their own.
type Universe struct {
	types      map[string]Type
	namespaces []string
}

// NewUniverse returns a universe with the built-in and framework types,
// in which the system and framework namespaces are imported.
func NewUniverse() *Universe {
	return &Universe{
		types: maps.Clone(builtinTypes),
		namespaces: []string{
			SystemNamespace,
			FrameworkNamespace,
			CollectionsNamespace,
		},
	}
}

// NewFrameworkUniverse is like NewUniverse, but declares the framework types
// in the given namespace, with the given name for the root object class.
func NewFrameworkUniverse(namespace string, rootObjectName string) *Universe {
	if namespace == "" {
		namespace = FrameworkNamespace
	}
	if rootObjectName == "" {
		rootObjectName = RootObjectName
	}
	if namespace == FrameworkNamespace && rootObjectName == RootObjectName {
		return NewUniverse()
	}

	variantType := &NamedType{
		Namespace:   namespace,
		Name:        VariantType.Name,
		IsValueType: true,
	}
	rootObjectType := &NamedType{
		Namespace: namespace,
		Name:      rootObjectName,
	}

	return &Universe{
		types: newBuiltinTypes(variantType, rootObjectType),
		namespaces: []string{
			SystemNamespace,
			namespace,
			collectionsNamespace(namespace),
		},
	}
}

func collectionsNamespace(frameworkNamespace string) string {
	return frameworkNamespace + ".Collections"
}

// Import makes the types of the given namespaces accessible by their unqualified name.
func (u *Universe) Import(namespaces ...string) {
	for _, namespace := range namespaces {
		if namespace == "" || slices.Contains(u.namespaces, namespace) {
			continue
		}
		u.namespaces = append(u.namespaces, namespace)
	}
}

func typeKey(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return name + "`" + strconv.Itoa(arity)
}

func declarationKey(typ Type) (string, error) {
	switch typ := typ.(type) {
	case *NamedType:
		if typ.IsConstructed() {
			return "", fmt.Errorf("cannot declare constructed type %s", typ.QualifiedString())
		}
		return typeKey(typ.QualifiedName(), len(typ.TypeParameters)), nil
	case *EnumType:
		return typ.QualifiedName(), nil
	default:
		return "", fmt.Errorf("cannot declare type %s", typ.QualifiedString())
	}
}

// Declare adds a named type or enum to the universe.
func (u *Universe) Declare(typ Type) error {
	key, err := declarationKey(typ)
	if err != nil {
		return err
	}
	if _, ok := u.types[key]; ok {
		return fmt.Errorf("type %s is already declared", key)
	}
	u.types[key] = typ
	return nil
}

// Lookup finds the type with the given, possibly qualified, name
// and the given number of type parameters.
func (u *Universe) Lookup(name string, arity int) (Type, bool) {
	if arity == 0 {
		if primitive, ok := keywords[name]; ok {
			return primitive, true
		}
	}

	key := typeKey(name, arity)
	if typ, ok := u.types[key]; ok {
		return typ, true
	}

	for _, namespace := range u.namespaces {
		if typ, ok := u.types[namespace+"."+key]; ok {
			return typ, true
		}
	}

	return nil, false
}

// LookupNamed is like Lookup, but only finds classes and structures.
func (u *Universe) LookupNamed(name string) (*NamedType, bool) {
	typ, ok := u.Lookup(name, 0)
	if !ok {
		return nil, false
	}
	namedType, ok := typ.(*NamedType)
	return namedType, ok
}

var keywords = map[string]Type{
	"void":    Void,
	"bool":    PrimitiveBool,
	"char":    PrimitiveChar,
	"sbyte":   PrimitiveSByte,
	"byte":    PrimitiveByte,
	"short":   PrimitiveInt16,
	"ushort":  PrimitiveUInt16,
	"int":     PrimitiveInt32,
	"uint":    PrimitiveUInt32,
	"long":    PrimitiveInt64,
	"ulong":   PrimitiveUInt64,
	"float":   PrimitiveSingle,
	"double":  PrimitiveDouble,
	"decimal": PrimitiveDecimal,
	"string":  PrimitiveString,
	"object":  systemObjectType,
}

var systemObjectType = &NamedType{
	Namespace: SystemNamespace,
	Name:      "Object",
}

var RootObjectType = &NamedType{
	Namespace: FrameworkNamespace,
	Name:      RootObjectName,
}

// VariantType is the framework's dynamically typed value.
var VariantType = &NamedType{
	Namespace:   FrameworkNamespace,
	Name:        "Variant",
	IsValueType: true,
}

var frameworkValueTypes = []string{
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
	"Rid",
	"Callable",
	"Signal",
}

// frameworkClasses lists framework classes and their base classes.
// Bases must precede the classes deriving from them.
var frameworkClasses = [][2]string{
	{"StringName", ""},
	{"NodePath", ""},
	{"Node", RootObjectName},
	{"RefCounted", RootObjectName},
	{"Resource", "RefCounted"},
	{"CanvasItem", "Node"},
	{"Node2D", "CanvasItem"},
	{"Node3D", "Node"},
	{"Control", "CanvasItem"},
	{"Label", "Control"},
	{"BaseButton", "Control"},
	{"Button", "BaseButton"},
	{"Timer", "Node"},
	{"HttpRequest", "Node"},
	{"Sprite2D", "Node2D"},
	{"CollisionObject2D", "Node2D"},
	{"Area2D", "CollisionObject2D"},
	{"PhysicsBody2D", "CollisionObject2D"},
	{"CharacterBody2D", "PhysicsBody2D"},
	{"RigidBody2D", "PhysicsBody2D"},
	{"GpuParticles2D", "Node2D"},
	{"VisualInstance3D", "Node3D"},
	{"GeometryInstance3D", "VisualInstance3D"},
	{"GpuParticles3D", "GeometryInstance3D"},
	{"CsgShape3D", "GeometryInstance3D"},
	{"CsgPrimitive3D", "CsgShape3D"},
	{"CsgBox3D", "CsgPrimitive3D"},
	{"CollisionObject3D", "Node3D"},
	{"PhysicsBody3D", "CollisionObject3D"},
	{"CharacterBody3D", "PhysicsBody3D"},
	{"Texture", "Resource"},
	{"Texture2D", "Texture"},
	{"PackedScene", "Resource"},
	{"GltfDocument", "Resource"},
	{"GltfState", "Resource"},
	{"Json", "RefCounted"},
	{"JsonRpc", RootObjectName},
	{"AesContext", "RefCounted"},
	{"HmacContext", "RefCounted"},
	{"Upnp", "RefCounted"},
	{"UpnpDevice", "RefCounted"},
	{"DtlsServer", "RefCounted"},
	{"PacketPeer", "RefCounted"},
	{"PacketPeerDtls", "PacketPeer"},
	{"TlsOptions", "RefCounted"},
	{"Ip", RootObjectName},
	{"Os", RootObjectName},
}

var builtinTypes = newBuiltinTypes(VariantType, RootObjectType)

// newBuiltinTypes declares the system types, and the framework types
// in the namespace of the given root object class.
func newBuiltinTypes(variantType, rootObjectType *NamedType) map[string]Type {
	frameworkNamespace := rootObjectType.Namespace
	collections := collectionsNamespace(frameworkNamespace)

	types := map[string]Type{}

	declare := func(typ Type) {
		key, err := declarationKey(typ)
		if err != nil {
			panic(err)
		}
		types[key] = typ
	}

	for primitive := PrimitiveBool; primitive <= PrimitiveString; primitive++ {
		types[primitive.QualifiedString()] = primitive
	}

	declare(systemObjectType)
	for _, name := range []string{"DateTime", "Guid", "TimeSpan"} {
		declare(&NamedType{
			Namespace:   SystemNamespace,
			Name:        name,
			IsValueType: true,
		})
	}
	declare(&NamedType{
		Namespace:      SystemNamespace + ".Collections.Generic",
		Name:           "List",
		TypeParameters: []string{"T"},
		Base:           systemObjectType,
	})
	declare(&NamedType{
		Namespace:      SystemNamespace + ".Collections.Generic",
		Name:           "Dictionary",
		TypeParameters: []string{"TKey", "TValue"},
		Base:           systemObjectType,
	})

	declare(variantType)
	for _, name := range frameworkValueTypes {
		declare(&NamedType{
			Namespace:   frameworkNamespace,
			Name:        name,
			IsValueType: true,
		})
	}

	declare(rootObjectType)
	// the class table refers to the root object class by its default name
	classes := map[string]*NamedType{
		RootObjectName: rootObjectType,
	}
	for _, class := range frameworkClasses {
		name, baseName := class[0], class[1]
		namedType := &NamedType{
			Namespace: frameworkNamespace,
			Name:      name,
		}
		if baseName != "" {
			base, ok := classes[baseName]
			if !ok {
				panic(fmt.Errorf("base class %s of %s is not declared", baseName, name))
			}
			namedType.Base = base
		}
		classes[name] = namedType
		declare(namedType)
	}

	declare(&EnumType{
		Namespace: frameworkNamespace,
		Name:      "Error",
	})
	declare(&EnumType{
		DeclaringType: classes["Node"],
		Name:          "ProcessModeEnum",
	})

	declare(&NamedType{
		Namespace: collections,
		Name:      "Array",
	})
	declare(&NamedType{
		Namespace:      collections,
		Name:           "Array",
		TypeParameters: []string{"T"},
	})
	declare(&NamedType{
		Namespace: collections,
		Name:      "Dictionary",
	})
	declare(&NamedType{
		Namespace:      collections,
		Name:           "Dictionary",
		TypeParameters: []string{"TKey", "TValue"},
	})

	return types
}
