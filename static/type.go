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
	"strings"

	"github.com/onflow/gdiface/errors"
)

// Type is a type of the statically typed side, as it appears in interface declarations.
type Type interface {
	isType()
	// QualifiedString returns the fully qualified C# notation of the type
	QualifiedString() string
	String() string
}

// VoidType is the return type of methods without a result.
type VoidType struct{}

var Void Type = VoidType{}

var _ Type = VoidType{}

func (VoidType) isType() {}

func (VoidType) QualifiedString() string {
	return "void"
}

func (VoidType) String() string {
	return "void"
}

// PrimitiveType is one of the built-in value types.
type PrimitiveType uint

const (
	PrimitiveUnknown PrimitiveType = iota
	PrimitiveBool
	PrimitiveChar
	PrimitiveSByte
	PrimitiveByte
	PrimitiveInt16
	PrimitiveUInt16
	PrimitiveInt32
	PrimitiveUInt32
	PrimitiveInt64
	PrimitiveUInt64
	PrimitiveSingle
	PrimitiveDouble
	PrimitiveDecimal
	PrimitiveString
)

var _ Type = PrimitiveUnknown

func (PrimitiveType) isType() {}

// Keyword returns the language keyword of the primitive type.
func (t PrimitiveType) Keyword() string {
	switch t {
	case PrimitiveBool:
		return "bool"
	case PrimitiveChar:
		return "char"
	case PrimitiveSByte:
		return "sbyte"
	case PrimitiveByte:
		return "byte"
	case PrimitiveInt16:
		return "short"
	case PrimitiveUInt16:
		return "ushort"
	case PrimitiveInt32:
		return "int"
	case PrimitiveUInt32:
		return "uint"
	case PrimitiveInt64:
		return "long"
	case PrimitiveUInt64:
		return "ulong"
	case PrimitiveSingle:
		return "float"
	case PrimitiveDouble:
		return "double"
	case PrimitiveDecimal:
		return "decimal"
	case PrimitiveString:
		return "string"
	}

	panic(errors.NewUnreachableError())
}

func (t PrimitiveType) String() string {
	if t == PrimitiveUnknown {
		return "unknown"
	}
	return t.Keyword()
}

// QualifiedString returns the name of the system type the keyword stands for.
func (t PrimitiveType) QualifiedString() string {
	switch t {
	case PrimitiveBool:
		return "System.Boolean"
	case PrimitiveChar:
		return "System.Char"
	case PrimitiveSByte:
		return "System.SByte"
	case PrimitiveByte:
		return "System.Byte"
	case PrimitiveInt16:
		return "System.Int16"
	case PrimitiveUInt16:
		return "System.UInt16"
	case PrimitiveInt32:
		return "System.Int32"
	case PrimitiveUInt32:
		return "System.UInt32"
	case PrimitiveInt64:
		return "System.Int64"
	case PrimitiveUInt64:
		return "System.UInt64"
	case PrimitiveSingle:
		return "System.Single"
	case PrimitiveDouble:
		return "System.Double"
	case PrimitiveDecimal:
		return "System.Decimal"
	case PrimitiveString:
		return "System.String"
	case PrimitiveUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

func (t PrimitiveType) IsInteger() bool {
	switch t {
	case PrimitiveSByte,
		PrimitiveByte,
		PrimitiveInt16,
		PrimitiveUInt16,
		PrimitiveInt32,
		PrimitiveUInt32,
		PrimitiveInt64,
		PrimitiveUInt64:

		return true

	default:
		return false
	}
}

func (t PrimitiveType) IsFloatingPoint() bool {
	return t == PrimitiveSingle || t == PrimitiveDouble
}

// EnumType is an enumeration, optionally nested in another type.
type EnumType struct {
	Namespace     string
	DeclaringType *NamedType
	Name          string
}

var _ Type = &EnumType{}

func (*EnumType) isType() {}

// QualifiedName returns the fully qualified name,
// nested enums are separated from their declaring type by a dot.
func (t *EnumType) QualifiedName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.QualifiedName() + "." + t.Name
	}
	return qualify(t.Namespace, t.Name)
}

func (t *EnumType) QualifiedString() string {
	return t.QualifiedName()
}

func (t *EnumType) String() string {
	return t.Name
}

// ArrayType is a built-in array. Rank is the number of dimensions.
type ArrayType struct {
	Element Type
	Rank    int
}

var _ Type = &ArrayType{}

func (*ArrayType) isType() {}

func (t *ArrayType) suffix() string {
	return "[" + strings.Repeat(",", t.Rank-1) + "]"
}

func (t *ArrayType) QualifiedString() string {
	return t.Element.QualifiedString() + t.suffix()
}

func (t *ArrayType) String() string {
	return t.Element.String() + t.suffix()
}

// NamedType is a nominal class or structure.
// A constructed generic type refers to its definition through Definition,
// and carries the type arguments.
type NamedType struct {
	Namespace      string
	Name           string
	TypeParameters []string
	TypeArguments  []Type
	Definition     *NamedType
	Base           *NamedType
	IsValueType    bool
}

var _ Type = &NamedType{}

func (*NamedType) isType() {}

func (t *NamedType) QualifiedName() string {
	return qualify(t.Namespace, t.Name)
}

// IsGenericDefinition reports whether the type has type parameters
// which are not bound to type arguments.
func (t *NamedType) IsGenericDefinition() bool {
	return len(t.TypeParameters) > 0 && t.Definition == nil
}

// IsConstructed reports whether the type is a generic type with type arguments.
func (t *NamedType) IsConstructed() bool {
	return t.Definition != nil
}

// Instantiate constructs the generic type with the given type arguments.
func (t *NamedType) Instantiate(arguments []Type) *NamedType {
	if len(arguments) != len(t.TypeParameters) {
		panic(errors.NewUnexpectedError(
			"cannot instantiate %s: expected %d type arguments, got %d",
			t.QualifiedName(),
			len(t.TypeParameters),
			len(arguments),
		))
	}

	return &NamedType{
		Namespace:      t.Namespace,
		Name:           t.Name,
		TypeParameters: t.TypeParameters,
		TypeArguments:  arguments,
		Definition:     t,
		Base:           t.Base,
		IsValueType:    t.IsValueType,
	}
}

func (t *NamedType) typeArgumentsString(qualified bool) string {
	if len(t.TypeArguments) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('<')
	for i, argument := range t.TypeArguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		if qualified {
			sb.WriteString(argument.QualifiedString())
		} else {
			sb.WriteString(argument.String())
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *NamedType) QualifiedString() string {
	return t.QualifiedName() + t.typeArgumentsString(true)
}

func (t *NamedType) String() string {
	return t.Name + t.typeArgumentsString(false)
}

// TypeParameter is a reference to a type parameter of a generic declaration.
type TypeParameter struct {
	Name string
}

var _ Type = &TypeParameter{}

func (*TypeParameter) isType() {}

func (t *TypeParameter) QualifiedString() string {
	return t.Name
}

func (t *TypeParameter) String() string {
	return t.Name
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
