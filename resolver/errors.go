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
	"strings"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/static"
)

// Member identifies a member of an interface declaration.
type Member struct {
	Interface string
	Kind      common.DeclarationKind
	Name      string
}

func (m Member) IsKnown() bool {
	return m.Name != ""
}

func (m Member) String() string {
	return fmt.Sprintf("%s `%s.%s`", m.Kind.Name(), m.Interface, m.Name)
}

// UnrepresentableTypeError is reported when a type has no runtime representation.
type UnrepresentableTypeError struct {
	Type   static.Type
	Reason string
	// Member, Position, and ParameterName are only set
	// when the type is resolved as part of an interface
	Member        Member
	Position      Position
	ParameterName string
	common.Location
}

var _ errors.UserError = &UnrepresentableTypeError{}
var _ errors.SecondaryError = &UnrepresentableTypeError{}
var _ common.HasLocation = &UnrepresentableTypeError{}

func (*UnrepresentableTypeError) IsUserError() {}

func (e *UnrepresentableTypeError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "cannot represent type `%s`", e.Type)

	if e.Member.IsKnown() {
		switch e.Position {
		case PositionParameter:
			fmt.Fprintf(&builder, " of parameter `%s`", e.ParameterName)
		case PositionReturn:
			builder.WriteString(" of return value")
		}
		fmt.Fprintf(&builder, " of %s", e.Member)
	}

	return builder.String()
}

func (e *UnrepresentableTypeError) SecondaryError() string {
	return e.Reason
}

// GenericInterfaceError is reported for interfaces with type parameters.
type GenericInterfaceError struct {
	Interface      string
	TypeParameters []string
	common.Location
}

var _ errors.UserError = &GenericInterfaceError{}
var _ errors.SecondaryError = &GenericInterfaceError{}

func (*GenericInterfaceError) IsUserError() {}

func (e *GenericInterfaceError) Error() string {
	return fmt.Sprintf("cannot map generic interface `%s`", e.Interface)
}

func (e *GenericInterfaceError) SecondaryError() string {
	return fmt.Sprintf(
		"type parameters <%s> have no runtime representation",
		strings.Join(e.TypeParameters, ", "),
	)
}

// GenericMethodError is reported for methods with type parameters.
type GenericMethodError struct {
	Member         Member
	TypeParameters []string
	common.Location
}

var _ errors.UserError = &GenericMethodError{}
var _ errors.SecondaryError = &GenericMethodError{}

func (*GenericMethodError) IsUserError() {}

func (e *GenericMethodError) Error() string {
	return fmt.Sprintf("cannot map generic %s", e.Member)
}

func (e *GenericMethodError) SecondaryError() string {
	return fmt.Sprintf(
		"type parameters <%s> have no runtime representation",
		strings.Join(e.TypeParameters, ", "),
	)
}

// IndexerError is reported for indexer properties.
type IndexerError struct {
	Member Member
	common.Location
}

var _ errors.UserError = &IndexerError{}
var _ errors.SecondaryError = &IndexerError{}

func (*IndexerError) IsUserError() {}

func (e *IndexerError) Error() string {
	return fmt.Sprintf("cannot map %s", e.Member)
}

func (e *IndexerError) SecondaryError() string {
	return "scripts cannot declare indexers"
}

// InvalidMappingRequestError is reported when the declaration to map
// is missing or is not an interface.
type InvalidMappingRequestError struct {
	Name string
	Kind common.DeclarationKind
	common.Location
}

var _ errors.UserError = &InvalidMappingRequestError{}

func (*InvalidMappingRequestError) IsUserError() {}

func (e *InvalidMappingRequestError) Error() string {
	if e.Name == "" {
		return "missing interface declaration"
	}
	return fmt.Sprintf(
		"cannot map %s `%s`: only interfaces can be mapped",
		e.Kind.Name(),
		e.Name,
	)
}

// MappingError is reported when errors are aggregated,
// and contains all errors of an interface.
type MappingError struct {
	Interface string
	Errors    []error
	common.Location
}

var _ errors.UserError = &MappingError{}
var _ errors.ParentError = &MappingError{}

func (*MappingError) IsUserError() {}

func (e *MappingError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "cannot map interface `%s`: ", e.Interface)
	fmt.Fprintf(&builder, "%d error", len(e.Errors))
	if len(e.Errors) != 1 {
		builder.WriteByte('s')
	}
	return builder.String()
}

func (e *MappingError) ChildErrors() []error {
	return e.Errors
}

func (e *MappingError) Unwrap() []error {
	return e.Errors
}
