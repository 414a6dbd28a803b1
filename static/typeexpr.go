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
	"slices"
	"unicode"

	"github.com/onflow/gdiface/errors"
)

// TypeExpressionError is reported for a malformed type expression,
// or one which refers to an unknown type.
type TypeExpressionError struct {
	Expression string
	Offset     int
	Message    string
}

var _ error = &TypeExpressionError{}

func (e *TypeExpressionError) Error() string {
	return fmt.Sprintf(
		"invalid type expression %q at offset %d: %s",
		e.Expression,
		e.Offset,
		e.Message,
	)
}

// ParseType parses a type expression, like `int`, `long[]`, `Godot.Node`,
// or `Godot.Collections.Dictionary<string, Godot.Variant>`,
// and resolves the names it refers to.
// typeParameters are the type parameter names which are in scope.
func (u *Universe) ParseType(expression string, typeParameters []string) (Type, error) {
	parser := &typeParser{
		universe:       u,
		expression:     expression,
		input:          []rune(expression),
		typeParameters: typeParameters,
	}

	typ, err := parser.parseType()
	if err != nil {
		return nil, err
	}

	parser.skipSpace()
	if !parser.atEnd() {
		return nil, parser.errorf("unexpected %q", parser.current())
	}

	return typ, nil
}

type typeParser struct {
	universe       *Universe
	expression     string
	input          []rune
	offset         int
	typeParameters []string
}

func (p *typeParser) errorf(format string, args ...any) *TypeExpressionError {
	return &TypeExpressionError{
		Expression: p.expression,
		Offset:     p.offset,
		Message:    fmt.Sprintf(format, args...),
	}
}

func (p *typeParser) atEnd() bool {
	return p.offset >= len(p.input)
}

func (p *typeParser) current() rune {
	if p.atEnd() {
		return 0
	}
	return p.input[p.offset]
}

func (p *typeParser) skipSpace() {
	for !p.atEnd() && unicode.IsSpace(p.current()) {
		p.offset++
	}
}

func (p *typeParser) accept(r rune) bool {
	p.skipSpace()
	if p.current() != r || p.atEnd() {
		return false
	}
	p.offset++
	return true
}

func (p *typeParser) expect(r rune) error {
	if !p.accept(r) {
		if p.atEnd() {
			return p.errorf("expected %q, got end of expression", r)
		}
		return p.errorf("expected %q, got %q", r, p.current())
	}
	return nil
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

func (p *typeParser) parseIdentifier() (string, error) {
	p.skipSpace()
	if p.atEnd() {
		return "", p.errorf("expected type name, got end of expression")
	}
	if !isIdentifierStart(p.current()) {
		return "", p.errorf("expected type name, got %q", p.current())
	}
	start := p.offset
	for !p.atEnd() && isIdentifierPart(p.current()) {
		p.offset++
	}
	return string(p.input[start:p.offset]), nil
}

func (p *typeParser) parseQualifiedName() (string, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return "", err
	}
	for p.accept('.') {
		identifier, err := p.parseIdentifier()
		if err != nil {
			return "", err
		}
		name += "." + identifier
	}
	return name, nil
}

func (p *typeParser) parseType() (Type, error) {
	p.skipSpace()
	start := p.offset

	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	var arguments []Type
	if p.accept('<') {
		for {
			argument, err := p.parseType()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, argument)

			if p.accept(',') {
				continue
			}
			if err := p.expect('>'); err != nil {
				return nil, err
			}
			break
		}
	}

	typ, err := p.resolve(name, arguments, start)
	if err != nil {
		return nil, err
	}

	for p.accept('[') {
		rank := 1
		for p.accept(',') {
			rank++
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		typ = &ArrayType{
			Element: typ,
			Rank:    rank,
		}
	}

	if p.accept('?') {
		return nil, p.errorf("nullable types are not supported")
	}

	return typ, nil
}

func (p *typeParser) resolve(name string, arguments []Type, start int) (Type, error) {
	if len(arguments) == 0 && slices.Contains(p.typeParameters, name) {
		return &TypeParameter{Name: name}, nil
	}

	typ, ok := p.universe.Lookup(name, len(arguments))
	if !ok {
		err := p.errorf("unknown type %s", typeKey(name, len(arguments)))
		err.Offset = start
		return nil, err
	}

	if len(arguments) == 0 {
		return typ, nil
	}

	definition, ok := typ.(*NamedType)
	if !ok {
		panic(errors.NewUnreachableError())
	}

	return definition.Instantiate(arguments), nil
}
