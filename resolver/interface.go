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
	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/static"
	"github.com/onflow/gdiface/variant"
)

const (
	getterPrefix = "@"
	getterSuffix = "_getter"
	setterSuffix = "_setter"

	getterAliasPrefix = "get_"
	setterAliasPrefix = "set_"

	setterParameterName = "value"
)

// ResolveInterface maps the interface declaration to the contract
// which a script must satisfy to implement it.
//
// Methods are mapped to signatures with the same name in snake case,
// unless a script name is declared.
// Properties are mapped to a getter and optionally a setter signature.
func (r *Resolver) ResolveInterface(declaration *static.InterfaceDeclaration) (*descriptor.InterfaceContract, error) {
	if declaration == nil {
		return nil, &InvalidMappingRequestError{}
	}

	if declaration.Kind != common.DeclarationKindInterface {
		return nil, &InvalidMappingRequestError{
			Name:     declaration.QualifiedName(),
			Kind:     declaration.Kind,
			Location: declaration.Location,
		}
	}

	interfaceName := declaration.QualifiedName()

	if declaration.IsGeneric() {
		return nil, &GenericInterfaceError{
			Interface:      interfaceName,
			TypeParameters: declaration.TypeParameters,
			Location:       declaration.Location,
		}
	}

	var errs []error

	report := func(err error) error {
		if !r.config.AggregateErrors {
			return err
		}
		errs = append(errs, err)
		return nil
	}

	// Members which cannot be mapped at all are rejected before any type is resolved

	for _, method := range declaration.Methods {
		if !method.IsGeneric() {
			continue
		}
		err := report(&GenericMethodError{
			Member: Member{
				Interface: interfaceName,
				Kind:      common.DeclarationKindMethod,
				Name:      method.Name,
			},
			TypeParameters: method.TypeParameters,
			Location:       method.Location,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, property := range declaration.Properties {
		if !property.IsIndexer() {
			continue
		}
		err := report(&IndexerError{
			Member: Member{
				Interface: interfaceName,
				Kind:      common.DeclarationKindIndexer,
				Name:      property.Name,
			},
			Location: property.Location,
		})
		if err != nil {
			return nil, err
		}
	}

	if len(errs) > 0 {
		return nil, r.mappingError(declaration, errs)
	}

	contract := &descriptor.InterfaceContract{
		Name:     interfaceName,
		Location: declaration.Location,
	}

	for _, method := range declaration.Methods {
		signature, err := r.resolveMethod(interfaceName, method)
		if err != nil {
			if err := report(err); err != nil {
				return nil, err
			}
			continue
		}
		contract.Methods = append(contract.Methods, signature)
	}

	for _, property := range declaration.Properties {
		signatures, err := r.resolveProperty(interfaceName, property)
		if err != nil {
			if err := report(err); err != nil {
				return nil, err
			}
			continue
		}
		contract.Methods = append(contract.Methods, signatures...)
	}

	if len(errs) > 0 {
		return nil, r.mappingError(declaration, errs)
	}

	r.logger.Debug().
		Str("interface", interfaceName).
		Int("methods", len(contract.Methods)).
		Msg("resolved interface")

	return contract, nil
}

func (r *Resolver) mappingError(declaration *static.InterfaceDeclaration, errs []error) *MappingError {
	return &MappingError{
		Interface: declaration.QualifiedName(),
		Errors:    errs,
		Location:  declaration.Location,
	}
}

// resolveMemberType resolves a type of a member,
// and attributes errors to the member.
func (r *Resolver) resolveMemberType(
	member Member,
	typ static.Type,
	position Position,
	parameterName string,
	location common.Location,
) (descriptor.TypeDescriptor, error) {
	result, err := r.ResolveType(typ, position)
	if err != nil {
		if typeErr, ok := err.(*UnrepresentableTypeError); ok {
			typeErr.Member = member
			typeErr.Position = position
			typeErr.ParameterName = parameterName
			typeErr.Location = location
		}
		return descriptor.TypeDescriptor{}, err
	}
	return result, nil
}

func (r *Resolver) resolveMethod(
	interfaceName string,
	method *static.MethodDeclaration,
) (descriptor.MethodSignature, error) {
	member := Member{
		Interface: interfaceName,
		Kind:      common.DeclarationKindMethod,
		Name:      method.Name,
	}

	name := method.ScriptName
	if name == "" {
		name = common.ToSnakeCase(method.Name)
	}

	signature := descriptor.MethodSignature{
		Name:       name,
		Parameters: make([]descriptor.ParameterDescriptor, 0, len(method.Parameters)),
		Flags:      variant.MethodFlagsDefault,
	}

	for _, parameter := range method.Parameters {
		location := parameter.Location
		if !location.IsKnown() {
			location = method.Location
		}

		typ, err := r.resolveMemberType(member, parameter.Type, PositionParameter, parameter.Name, location)
		if err != nil {
			return descriptor.MethodSignature{}, err
		}

		signature.Parameters = append(signature.Parameters, descriptor.ParameterDescriptor{
			Name: parameter.Name,
			Type: typ,
		})

		if parameter.HasDefault {
			signature.DefaultArgumentCount++
		}
	}

	returnType, err := r.resolveMemberType(member, method.ReturnType, PositionReturn, "", method.Location)
	if err != nil {
		return descriptor.MethodSignature{}, err
	}
	signature.Return = descriptor.ParameterDescriptor{
		Type: returnType,
	}

	return signature, nil
}

// AccessorNames returns the names of the getter and setter of a property
// with the given script name.
func AccessorNames(name string) (getter string, setter string) {
	return getterPrefix + name + getterSuffix,
		getterPrefix + name + setterSuffix
}

func (r *Resolver) resolveProperty(
	interfaceName string,
	property *static.PropertyDeclaration,
) ([]descriptor.MethodSignature, error) {
	member := Member{
		Interface: interfaceName,
		Kind:      common.DeclarationKindProperty,
		Name:      property.Name,
	}

	typ, err := r.resolveMemberType(member, property.Type, PositionParameter, "", property.Location)
	if err != nil {
		if typeErr, ok := err.(*UnrepresentableTypeError); ok {
			// the type is the property's own, not the one of an accessor parameter
			typeErr.Position = PositionUnknown
		}
		return nil, err
	}

	name := property.ScriptName
	if name == "" {
		name = common.ToSnakeCase(property.Name)
	}

	getterName, setterName := AccessorNames(name)

	var signatures []descriptor.MethodSignature

	if property.HasGetter {
		getter := descriptor.MethodSignature{
			Name: getterName,
			Return: descriptor.ParameterDescriptor{
				Type: typ,
			},
			Flags: variant.MethodFlagsDefault,
		}
		if r.config.AccessorAliases {
			getter.Aliases = []string{getterAliasPrefix + name}
		}
		signatures = append(signatures, getter)
	}

	if property.HasSetter {
		setter := descriptor.MethodSignature{
			Name: setterName,
			Parameters: []descriptor.ParameterDescriptor{
				{
					Name: setterParameterName,
					Type: typ,
				},
			},
			Return: descriptor.ParameterDescriptor{
				Type: descriptor.Void(),
			},
			Flags: variant.MethodFlagsDefault,
		}
		if r.config.AccessorAliases {
			setter.Aliases = []string{setterAliasPrefix + name}
		}
		signatures = append(signatures, setter)
	}

	return signatures, nil
}
