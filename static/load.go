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
	"os"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/onflow/gdiface/common"
)

// DeclarationError is reported for an invalid declaration file.
type DeclarationError struct {
	Message string
	common.Location
	Err error
}

var _ error = &DeclarationError{}
var _ common.HasLocation = &DeclarationError{}

func (e *DeclarationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

func (*DeclarationError) IsUserError() {}

// Declarations are the types and interfaces declared in a declaration file.
type Declarations struct {
	Path       string
	Types      []Type
	Interfaces []*InterfaceDeclaration
}

// Interface returns the interface with the given simple or qualified name.
func (d *Declarations) Interface(name string) (*InterfaceDeclaration, bool) {
	for _, declaration := range d.Interfaces {
		if declaration.Name == name || declaration.QualifiedName() == name {
			return declaration, true
		}
	}
	return nil, false
}

type declarationFile struct {
	Namespace  string           `yaml:"namespace"`
	Using      []string         `yaml:"using"`
	Types      []typeEntry      `yaml:"types"`
	Interfaces []interfaceEntry `yaml:"interfaces"`
}

type typeEntry struct {
	Kind           string   `yaml:"kind"`
	Namespace      string   `yaml:"namespace"`
	Name           string   `yaml:"name"`
	Base           string   `yaml:"base"`
	DeclaringType  string   `yaml:"declaring_type"`
	TypeParameters []string `yaml:"type_parameters"`
}

type interfaceEntry struct {
	Kind           string          `yaml:"kind"`
	Namespace      string          `yaml:"namespace"`
	Name           string          `yaml:"name"`
	TypeParameters []string        `yaml:"type_parameters"`
	Methods        []methodEntry   `yaml:"methods"`
	Properties     []propertyEntry `yaml:"properties"`
}

type methodEntry struct {
	Name           string           `yaml:"name"`
	ScriptName     string           `yaml:"script_name"`
	TypeParameters []string         `yaml:"type_parameters"`
	Parameters     []parameterEntry `yaml:"parameters"`
	Return         string           `yaml:"return"`
}

type parameterEntry struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default bool   `yaml:"default"`
}

type propertyEntry struct {
	Name            string           `yaml:"name"`
	ScriptName      string           `yaml:"script_name"`
	Type            string           `yaml:"type"`
	Get             *bool            `yaml:"get"`
	Set             bool             `yaml:"set"`
	IndexParameters []parameterEntry `yaml:"index_parameters"`
}

// ReadDeclarations reads and loads the declaration file at the given path.
func ReadDeclarations(path string, universe *Universe) (*Declarations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}
	return LoadDeclarations(path, data, universe)
}

// LoadDeclarations loads the types and interfaces declared in the given YAML document.
// Declared types are added to the universe, so later files may refer to them.
func LoadDeclarations(path string, data []byte, universe *Universe) (*Declarations, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, &DeclarationError{
			Message:  "failed to parse declarations",
			Location: common.Location{Path: path},
			Err:      err,
		}
	}

	var contents declarationFile
	err = yaml.UnmarshalWithOptions(data, &contents, yaml.Strict())
	if err != nil {
		return nil, &DeclarationError{
			Message:  "invalid declarations",
			Location: common.Location{Path: path},
			Err:      err,
		}
	}

	loader := &declarationLoader{
		path:     path,
		file:     file,
		universe: universe,
		contents: contents,
	}

	return loader.load()
}

type declarationLoader struct {
	path     string
	file     *ast.File
	universe *Universe
	contents declarationFile
}

// location returns the source location of the node at the given YAML path
func (l *declarationLoader) location(pathFormat string, args ...any) common.Location {
	location := common.Location{Path: l.path}

	path, err := yaml.PathString(fmt.Sprintf(pathFormat, args...))
	if err != nil {
		return location
	}
	node, err := path.FilterFile(l.file)
	if err != nil || node == nil {
		return location
	}

	position := node.GetToken().Position
	location.Line = position.Line
	location.Column = position.Column
	return location
}

func (l *declarationLoader) errorf(location common.Location, err error, format string, args ...any) *DeclarationError {
	return &DeclarationError{
		Message:  fmt.Sprintf(format, args...),
		Location: location,
		Err:      err,
	}
}

func (l *declarationLoader) namespace(namespace string) string {
	if namespace != "" {
		return namespace
	}
	return l.contents.Namespace
}

func (l *declarationLoader) load() (*Declarations, error) {
	l.universe.Import(l.contents.Namespace)
	l.universe.Import(l.contents.Using...)

	types, err := l.loadTypes()
	if err != nil {
		return nil, err
	}

	interfaces := make([]*InterfaceDeclaration, 0, len(l.contents.Interfaces))
	for i, entry := range l.contents.Interfaces {
		declaration, err := l.loadInterface(i, entry)
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, declaration)
	}

	return &Declarations{
		Path:       l.path,
		Types:      types,
		Interfaces: interfaces,
	}, nil
}

func (l *declarationLoader) loadTypes() ([]Type, error) {
	types := make([]Type, len(l.contents.Types))

	// Classes and structures are declared before their bases are linked,
	// so a base may be declared after the types deriving from it.

	for i, entry := range l.contents.Types {
		kind, ok := common.DeclarationKindByName(entry.Kind)
		if !ok {
			return nil, l.errorf(
				l.location("$.types[%d].kind", i),
				nil,
				"unsupported type kind %q",
				entry.Kind,
			)
		}

		switch kind {
		case common.DeclarationKindClass,
			common.DeclarationKindStructure:

			namedType := &NamedType{
				Namespace:      l.namespace(entry.Namespace),
				Name:           entry.Name,
				TypeParameters: entry.TypeParameters,
				IsValueType:    kind == common.DeclarationKindStructure,
			}
			err := l.universe.Declare(namedType)
			if err != nil {
				return nil, l.errorf(l.location("$.types[%d].name", i), err, "invalid type declaration")
			}
			types[i] = namedType

		case common.DeclarationKindEnum:
			// declared once all classes are known

		default:
			return nil, l.errorf(
				l.location("$.types[%d].kind", i),
				nil,
				"cannot declare %s %s as a type",
				kind.Name(),
				entry.Name,
			)
		}
	}

	for i, entry := range l.contents.Types {
		switch typ := types[i].(type) {
		case *NamedType:
			if entry.Base == "" {
				continue
			}
			if typ.IsValueType {
				return nil, l.errorf(
					l.location("$.types[%d].base", i),
					nil,
					"structure %s cannot have a base type",
					typ.QualifiedName(),
				)
			}
			base, ok := l.universe.LookupNamed(entry.Base)
			if !ok || base.IsValueType {
				return nil, l.errorf(
					l.location("$.types[%d].base", i),
					nil,
					"unknown base class %s",
					entry.Base,
				)
			}
			typ.Base = base

		case nil:
			enumType := &EnumType{
				Namespace: l.namespace(entry.Namespace),
				Name:      entry.Name,
			}
			if entry.DeclaringType != "" {
				declaringType, ok := l.universe.LookupNamed(entry.DeclaringType)
				if !ok {
					return nil, l.errorf(
						l.location("$.types[%d].declaring_type", i),
						nil,
						"unknown declaring type %s",
						entry.DeclaringType,
					)
				}
				enumType.Namespace = ""
				enumType.DeclaringType = declaringType
			}
			err := l.universe.Declare(enumType)
			if err != nil {
				return nil, l.errorf(l.location("$.types[%d].name", i), err, "invalid type declaration")
			}
			types[i] = enumType
		}
	}

	return types, nil
}

func (l *declarationLoader) parseType(
	expression string,
	typeParameters []string,
	pathFormat string,
	args ...any,
) (Type, error) {
	typ, err := l.universe.ParseType(expression, typeParameters)
	if err != nil {
		return nil, l.errorf(l.location(pathFormat, args...), err, "invalid type")
	}
	return typ, nil
}

func (l *declarationLoader) loadInterface(index int, entry interfaceEntry) (*InterfaceDeclaration, error) {
	kind := common.DeclarationKindInterface
	if entry.Kind != "" {
		var ok bool
		kind, ok = common.DeclarationKindByName(entry.Kind)
		if !ok {
			return nil, l.errorf(
				l.location("$.interfaces[%d].kind", index),
				nil,
				"unsupported declaration kind %q",
				entry.Kind,
			)
		}
	}

	declaration := &InterfaceDeclaration{
		Kind:           kind,
		Namespace:      l.namespace(entry.Namespace),
		Name:           entry.Name,
		TypeParameters: entry.TypeParameters,
		Location:       l.location("$.interfaces[%d].name", index),
	}

	for i, methodEntry := range entry.Methods {
		method, err := l.loadMethod(index, i, entry.TypeParameters, methodEntry)
		if err != nil {
			return nil, err
		}
		declaration.Methods = append(declaration.Methods, method)
	}

	for i, propertyEntry := range entry.Properties {
		property, err := l.loadProperty(index, i, entry.TypeParameters, propertyEntry)
		if err != nil {
			return nil, err
		}
		declaration.Properties = append(declaration.Properties, property)
	}

	return declaration, nil
}

func (l *declarationLoader) loadMethod(
	interfaceIndex int,
	index int,
	outerTypeParameters []string,
	entry methodEntry,
) (*MethodDeclaration, error) {
	typeParameters := append(append([]string(nil), outerTypeParameters...), entry.TypeParameters...)

	returnExpression := entry.Return
	if returnExpression == "" {
		returnExpression = "void"
	}
	returnType, err := l.parseType(
		returnExpression,
		typeParameters,
		"$.interfaces[%d].methods[%d].return",
		interfaceIndex,
		index,
	)
	if err != nil {
		return nil, err
	}

	method := &MethodDeclaration{
		Name:           entry.Name,
		ScriptName:     entry.ScriptName,
		TypeParameters: entry.TypeParameters,
		ReturnType:     returnType,
		Location:       l.location("$.interfaces[%d].methods[%d].name", interfaceIndex, index),
	}

	for i, parameterEntry := range entry.Parameters {
		parameterType, err := l.parseType(
			parameterEntry.Type,
			typeParameters,
			"$.interfaces[%d].methods[%d].parameters[%d].type",
			interfaceIndex,
			index,
			i,
		)
		if err != nil {
			return nil, err
		}
		method.Parameters = append(method.Parameters, &ParameterDeclaration{
			Name:       parameterEntry.Name,
			Type:       parameterType,
			HasDefault: parameterEntry.Default,
			Location: l.location(
				"$.interfaces[%d].methods[%d].parameters[%d].name",
				interfaceIndex,
				index,
				i,
			),
		})
	}

	return method, nil
}

func (l *declarationLoader) loadProperty(
	interfaceIndex int,
	index int,
	typeParameters []string,
	entry propertyEntry,
) (*PropertyDeclaration, error) {
	propertyType, err := l.parseType(
		entry.Type,
		typeParameters,
		"$.interfaces[%d].properties[%d].type",
		interfaceIndex,
		index,
	)
	if err != nil {
		return nil, err
	}

	hasGetter := entry.Get == nil || *entry.Get

	property := &PropertyDeclaration{
		Name:       entry.Name,
		ScriptName: entry.ScriptName,
		Type:       propertyType,
		HasGetter:  hasGetter,
		HasSetter:  entry.Set,
		Location:   l.location("$.interfaces[%d].properties[%d].name", interfaceIndex, index),
	}

	for i, parameterEntry := range entry.IndexParameters {
		parameterType, err := l.parseType(
			parameterEntry.Type,
			typeParameters,
			"$.interfaces[%d].properties[%d].index_parameters[%d].type",
			interfaceIndex,
			index,
			i,
		)
		if err != nil {
			return nil, err
		}
		property.IndexParameters = append(property.IndexParameters, &ParameterDeclaration{
			Name: parameterEntry.Name,
			Type: parameterType,
			Location: l.location(
				"$.interfaces[%d].properties[%d].index_parameters[%d].name",
				interfaceIndex,
				index,
				i,
			),
		})
	}

	return property, nil
}
