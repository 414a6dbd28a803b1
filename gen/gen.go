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

// Package gen generates Go source which declares interface contracts,
// so that scripts can be checked against them without the declarations.
package gen

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/mod/module"
	"golang.org/x/tools/imports"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/variant"
)

const DefaultPackageName = "contracts"

const DefaultModulePath = "github.com/onflow/gdiface"

const headerTemplate = `// Code generated by gdiface from {{ . }}. DO NOT EDIT.

`

var parsedHeaderTemplate = template.Must(template.New("header").Parse(headerTemplate))

type Options struct {
	// PackageName is the name of the generated package
	PackageName string
	// ModulePath is the import path of the module providing
	// the descriptor and variant packages
	ModulePath string
	// Source is mentioned in the header of the generated file
	Source string
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = DefaultPackageName
	}
	if o.ModulePath == "" {
		o.ModulePath = DefaultModulePath
	}
	if o.Source == "" {
		o.Source = "interface declarations"
	}
	return o
}

func (o Options) validate() error {
	if !token.IsIdentifier(o.PackageName) {
		return errors.NewDefaultUserError("invalid package name %q", o.PackageName)
	}
	if err := module.CheckImportPath(o.ModulePath); err != nil {
		return errors.NewDefaultUserError("invalid module path: %s", err)
	}
	return nil
}

type generator struct {
	options     Options
	decls       []dst.Decl
	names       map[string]string
	usesVariant bool
	usesCommon  bool
}

// Generate writes a Go file which declares one variable per contract.
func Generate(w io.Writer, contracts []*descriptor.InterfaceContract, options Options) error {
	source, err := Source(contracts, options)
	if err != nil {
		return err
	}
	_, err = w.Write(source)
	return err
}

// Source returns the formatted Go source declaring the given contracts.
func Source(contracts []*descriptor.InterfaceContract, options Options) ([]byte, error) {
	options = options.withDefaults()
	if err := options.validate(); err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, errors.NewDefaultUserError("no contracts to generate")
	}

	gen := &generator{
		options: options,
		names:   map[string]string{},
	}
	for _, contract := range contracts {
		if err := gen.addContract(contract); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	err := parsedHeaderTemplate.Execute(&buf, options.Source)
	if err != nil {
		return nil, err
	}

	file := &dst.File{
		Name:  dst.NewIdent(options.PackageName),
		Decls: append([]dst.Decl{gen.importDecl()}, gen.decls...),
	}
	err = decorator.Fprint(&buf, file)
	if err != nil {
		return nil, fmt.Errorf("failed to print generated code: %w", err)
	}

	formatted, err := imports.Process(
		"",
		buf.Bytes(),
		&imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return formatted, nil
}

// VariableName returns the name of the variable declaring the contract
// of the interface with the given qualified name,
// e.g. `GameIDamageableContract` for `Game.IDamageable`.
func VariableName(interfaceName string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(interfaceName, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		part = strings.Trim(part, "_")
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	b.WriteString("Contract")
	return b.String()
}

func (g *generator) addContract(contract *descriptor.InterfaceContract) error {
	name := VariableName(contract.Name)
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return errors.NewDefaultUserError(
			"cannot derive a variable name for interface %q",
			contract.Name,
		)
	}
	if other, ok := g.names[name]; ok {
		return errors.NewDefaultUserError(
			"interfaces %q and %q both generate variable %s",
			other,
			contract.Name,
			name,
		)
	}
	g.names[name] = contract.Name

	for _, method := range contract.Methods {
		for _, parameter := range method.Parameters {
			if err := parameter.Type.Validate(); err != nil {
				return fmt.Errorf("invalid parameter type of method %q: %w", method.Name, err)
			}
		}
		if err := method.Return.Type.Validate(); err != nil {
			return fmt.Errorf("invalid return type of method %q: %w", method.Name, err)
		}
	}

	decl := goVarDecl(name, &dst.UnaryExpr{
		Op: token.AND,
		X:  g.contractExpr(contract),
	})
	decl.Decorations().Start.Append(
		fmt.Sprintf("// %s is the contract of the interface `%s`.", name, contract.Name),
	)
	g.decls = append(g.decls, decl)
	return nil
}

func (g *generator) importDecl() *dst.GenDecl {
	paths := []string{g.importPath("descriptor")}
	if g.usesCommon {
		paths = append(paths, g.importPath("common"))
	}
	if g.usesVariant {
		paths = append(paths, g.importPath("variant"))
	}
	return goImportDeclaration(paths...)
}

func (g *generator) importPath(pkg string) string {
	return g.options.ModulePath + "/" + pkg
}

func (g *generator) contractExpr(contract *descriptor.InterfaceContract) *dst.CompositeLit {
	elements := []dst.Expr{
		goKeyValue("Name", goStringLit(contract.Name)),
	}

	if contract.Location != (common.Location{}) {
		g.usesCommon = true
		elements = append(elements, goKeyValue("Location", locationExpr(contract.Location)))
	}

	if len(contract.Methods) > 0 {
		methods := make([]dst.Expr, 0, len(contract.Methods))
		for _, method := range contract.Methods {
			methodExpr := g.methodExpr(method)
			methodExpr.Decorations().Before = dst.NewLine
			methodExpr.Decorations().After = dst.NewLine
			methods = append(methods, methodExpr)
		}
		elements = append(elements, goKeyValue(
			"Methods",
			&dst.CompositeLit{
				Type: &dst.ArrayType{Elt: descriptorIdent("MethodSignature")},
				Elts: methods,
			},
		))
	}

	return &dst.CompositeLit{
		Type: descriptorIdent("InterfaceContract"),
		Elts: elements,
	}
}

func locationExpr(location common.Location) dst.Expr {
	elements := []dst.Expr{
		goKeyValue("Path", goStringLit(location.Path)),
	}
	if location.Line != 0 {
		elements = append(elements, goKeyValue("Line", goIntLit(location.Line)))
	}
	if location.Column != 0 {
		elements = append(elements, goKeyValue("Column", goIntLit(location.Column)))
	}
	return &dst.CompositeLit{
		Type: &dst.SelectorExpr{
			X:   dst.NewIdent("common"),
			Sel: dst.NewIdent("Location"),
		},
		Elts: elements,
	}
}

// methodExpr returns an untyped composite literal,
// as it is an element of a []descriptor.MethodSignature literal
func (g *generator) methodExpr(method descriptor.MethodSignature) *dst.CompositeLit {
	g.usesVariant = true

	elements := []dst.Expr{
		goKeyValue("Name", goStringLit(method.Name)),
	}

	if len(method.Aliases) > 0 {
		aliases := make([]dst.Expr, 0, len(method.Aliases))
		for _, alias := range method.Aliases {
			aliases = append(aliases, goStringLit(alias))
		}
		elements = append(elements, goKeyValue(
			"Aliases",
			&dst.CompositeLit{
				Type: &dst.ArrayType{Elt: dst.NewIdent("string")},
				Elts: aliases,
			},
		))
	}

	if len(method.Parameters) > 0 {
		parameters := make([]dst.Expr, 0, len(method.Parameters))
		for _, parameter := range method.Parameters {
			parameterExpr := g.parameterExpr(parameter, false)
			parameterExpr.Decorations().Before = dst.NewLine
			parameterExpr.Decorations().After = dst.NewLine
			parameters = append(parameters, parameterExpr)
		}
		elements = append(elements, goKeyValue(
			"Parameters",
			&dst.CompositeLit{
				Type: &dst.ArrayType{Elt: descriptorIdent("ParameterDescriptor")},
				Elts: parameters,
			},
		))
	}

	elements = append(elements, goKeyValue("Return", g.parameterExpr(method.Return, true)))

	if method.DefaultArgumentCount != 0 {
		elements = append(elements, goKeyValue(
			"DefaultArgumentCount",
			goIntLit(method.DefaultArgumentCount),
		))
	}

	if method.Flags != 0 {
		elements = append(elements, goKeyValue(
			"Flags",
			variantConversion("MethodFlags", uint64(method.Flags)),
		))
	}

	return &dst.CompositeLit{
		Elts: elements,
	}
}

func (g *generator) parameterExpr(parameter descriptor.ParameterDescriptor, typed bool) *dst.CompositeLit {
	var elements []dst.Expr

	if parameter.Name != "" {
		elements = append(elements, goKeyValue("Name", goStringLit(parameter.Name)))
	}

	elements = append(elements, goKeyValue("Type", typeExpr(parameter.Type)))

	if parameter.CheckedFlags != nil {
		elements = append(elements, goKeyValue(
			"CheckedFlags",
			checkedExpr(variantConversion("PropertyUsageFlags", uint64(*parameter.CheckedFlags))),
		))
	}
	if parameter.CheckedHint != nil {
		elements = append(elements, goKeyValue(
			"CheckedHint",
			checkedExpr(hintExpr(*parameter.CheckedHint)),
		))
	}
	if parameter.CheckedHintString != nil {
		elements = append(elements, goKeyValue(
			"CheckedHintString",
			checkedExpr(goStringLit(*parameter.CheckedHintString)),
		))
	}

	lit := &dst.CompositeLit{
		Elts: elements,
	}
	if typed {
		lit.Type = descriptorIdent("ParameterDescriptor")
	}
	return lit
}

func typeExpr(typ descriptor.TypeDescriptor) dst.Expr {
	elements := []dst.Expr{
		goKeyValue("Kind", variantIdent(typ.Kind.String())),
	}
	if typ.ClassName != "" {
		elements = append(elements, goKeyValue("ClassName", goStringLit(typ.ClassName)))
	}
	if typ.ContainerHint != nil {
		hint := []dst.Expr{
			goKeyValue("Element", goStringLit(typ.ContainerHint.Element)),
		}
		if typ.ContainerHint.Value != "" {
			hint = append(hint, goKeyValue("Value", goStringLit(typ.ContainerHint.Value)))
		}
		elements = append(elements, goKeyValue(
			"ContainerHint",
			&dst.UnaryExpr{
				Op: token.AND,
				X: &dst.CompositeLit{
					Type: descriptorIdent("ContainerHint"),
					Elts: hint,
				},
			},
		))
	}
	if typ.EnumMarker {
		elements = append(elements, goKeyValue("EnumMarker", goBoolLit(true)))
	}
	if typ.AnyMarker {
		elements = append(elements, goKeyValue("AnyMarker", goBoolLit(true)))
	}

	return &dst.CompositeLit{
		Type: descriptorIdent("TypeDescriptor"),
		Elts: elements,
	}
}

func hintExpr(hint variant.PropertyHint) dst.Expr {
	if !hint.IsValid() {
		return variantConversion("PropertyHint", uint64(hint))
	}
	return variantIdent(hint.String())
}

func checkedExpr(value dst.Expr) dst.Expr {
	return &dst.CallExpr{
		Fun:  descriptorIdent("Checked"),
		Args: []dst.Expr{value},
	}
}

func variantConversion(typeName string, value uint64) dst.Expr {
	return &dst.CallExpr{
		Fun: variantIdent(typeName),
		Args: []dst.Expr{
			&dst.BasicLit{
				Kind:  token.INT,
				Value: strconv.FormatUint(value, 10),
			},
		},
	}
}

func descriptorIdent(name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{
		X:   dst.NewIdent("descriptor"),
		Sel: dst.NewIdent(name),
	}
}

func variantIdent(name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{
		X:   dst.NewIdent("variant"),
		Sel: dst.NewIdent(name),
	}
}
