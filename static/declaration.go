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
	"github.com/onflow/gdiface/common"
)

// InterfaceDeclaration is a declared type whose members are mapped to script method signatures.
// Kind is normally common.DeclarationKindInterface; other kinds are rejected by the resolver.
type InterfaceDeclaration struct {
	Kind           common.DeclarationKind
	Namespace      string
	Name           string
	TypeParameters []string
	Methods        []*MethodDeclaration
	Properties     []*PropertyDeclaration
	Location       common.Location
}

func (d *InterfaceDeclaration) QualifiedName() string {
	return qualify(d.Namespace, d.Name)
}

func (d *InterfaceDeclaration) IsGeneric() bool {
	return len(d.TypeParameters) > 0
}

type MethodDeclaration struct {
	Name string
	// ScriptName overrides the name of the method on the script side
	ScriptName     string
	TypeParameters []string
	Parameters     []*ParameterDeclaration
	ReturnType     Type
	Location       common.Location
}

func (d *MethodDeclaration) IsGeneric() bool {
	return len(d.TypeParameters) > 0
}

type ParameterDeclaration struct {
	Name       string
	Type       Type
	HasDefault bool
	Location   common.Location
}

// PropertyDeclaration is a property, or an indexer if it has index parameters.
type PropertyDeclaration struct {
	Name string
	// ScriptName overrides the base name of the accessors on the script side
	ScriptName      string
	Type            Type
	HasGetter       bool
	HasSetter       bool
	IndexParameters []*ParameterDeclaration
	Location        common.Location
}

func (d *PropertyDeclaration) IsIndexer() bool {
	return len(d.IndexParameters) > 0
}
