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
	"strings"

	"github.com/turbolent/prettier"

	"github.com/onflow/gdiface/variant"
)

const maxLineWidth = 80

func render(doc prettier.Doc) string {
	return Render(doc, maxLineWidth)
}

// Render lays out the document, breaking lines longer than the given width.
func Render(doc prettier.Doc, width int) string {
	var builder strings.Builder
	prettier.Prettier(&builder, doc, width, "    ")
	return builder.String()
}

var separatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

// Doc renders the type in script syntax, e.g. `int`, `Array[Node]`, or `Dictionary[String, int]`.
func (d TypeDescriptor) Doc() prettier.Doc {
	switch {
	case d.AnyMarker:
		return prettier.Text(AnyTypeName)

	case d.IsVoid():
		return prettier.Text("void")

	case d.Kind == variant.KindObject,
		d.EnumMarker:

		return prettier.Text(d.ClassName)

	case d.ContainerHint != nil:
		var elementDocs []prettier.Doc
		if d.ContainerHint.IsDictionary() {
			elementDocs = []prettier.Doc{
				prettier.Text(d.ContainerHint.Element),
				prettier.Text(d.ContainerHint.Value),
			}
		} else {
			elementDocs = []prettier.Doc{
				prettier.Text(d.ContainerHint.Element),
			}
		}
		return prettier.Concat{
			prettier.Text(d.Kind.Name()),
			prettier.WrapBrackets(
				prettier.Join(separatorDoc, elementDocs...),
				prettier.SoftLine{},
			),
		}

	default:
		return prettier.Text(d.Kind.Name())
	}
}

func (p ParameterDescriptor) Doc() prettier.Doc {
	if p.Name == "" {
		return p.Type.Doc()
	}
	return prettier.Concat{
		prettier.Text(p.Name),
		prettier.Text(": "),
		p.Type.Doc(),
	}
}

// Doc renders the signature as a function header,
// e.g. `func take_damage(damage: int) -> void`.
func (s MethodSignature) Doc() prettier.Doc {
	var parametersDoc prettier.Doc
	if len(s.Parameters) == 0 {
		parametersDoc = prettier.Text("()")
	} else {
		parameterDocs := make([]prettier.Doc, len(s.Parameters))
		for i, parameter := range s.Parameters {
			parameterDocs[i] = parameter.Doc()
		}
		parametersDoc = prettier.WrapParentheses(
			prettier.Join(separatorDoc, parameterDocs...),
			prettier.SoftLine{},
		)
	}

	doc := prettier.Concat{
		prettier.Text("func "),
		prettier.Text(s.Name),
		parametersDoc,
		prettier.Text(" -> "),
		s.Return.Type.Doc(),
	}

	if len(s.Aliases) > 0 {
		doc = append(doc,
			prettier.Text("  # aka "),
			prettier.Text(strings.Join(s.Aliases, ", ")),
		)
	}

	return prettier.Group{
		Doc: doc,
	}
}

// Doc renders the contract as a commented list of function headers.
func (c *InterfaceContract) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("# " + c.Name),
	}
	for _, method := range c.Methods {
		doc = append(doc,
			prettier.HardLine{},
			method.Doc(),
		)
	}
	return doc
}
