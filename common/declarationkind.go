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
	"github.com/onflow/gdiface/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=DeclarationKind

type DeclarationKind uint

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindInterface
	DeclarationKindClass
	DeclarationKindStructure
	DeclarationKindEnum
	DeclarationKindMethod
	DeclarationKindProperty
	DeclarationKindIndexer
	DeclarationKindParameter
	DeclarationKindReturn
)

func (k DeclarationKind) IsTypeDeclaration() bool {
	switch k {
	case DeclarationKindInterface,
		DeclarationKindClass,
		DeclarationKindStructure,
		DeclarationKindEnum:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) IsMember() bool {
	switch k {
	case DeclarationKindMethod,
		DeclarationKindProperty,
		DeclarationKindIndexer:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindInterface:
		return "interface"
	case DeclarationKindClass:
		return "class"
	case DeclarationKindStructure:
		return "structure"
	case DeclarationKindEnum:
		return "enum"
	case DeclarationKindMethod:
		return "method"
	case DeclarationKindProperty:
		return "property"
	case DeclarationKindIndexer:
		return "indexer"
	case DeclarationKindParameter:
		return "parameter"
	case DeclarationKindReturn:
		return "return value"
	case DeclarationKindUnknown:
		return "unknown"
	}

	panic(errors.NewUnreachableError())
}

// DeclarationKindByName returns the type declaration kind for
// the keyword used in declaration files.
func DeclarationKindByName(name string) (DeclarationKind, bool) {
	switch name {
	case "interface":
		return DeclarationKindInterface, true
	case "class":
		return DeclarationKindClass, true
	case "struct", "structure":
		return DeclarationKindStructure, true
	case "enum":
		return DeclarationKindEnum, true
	}
	return DeclarationKindUnknown, false
}
