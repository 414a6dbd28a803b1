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

package gen

import (
	"go/token"
	"strconv"

	"github.com/dave/dst"
)

func goImportDeclaration(paths ...string) *dst.GenDecl {

	specs := make([]dst.Spec, 0, len(paths))

	for _, path := range paths {
		specs = append(
			specs,
			&dst.ImportSpec{
				Path: &dst.BasicLit{
					Kind:  token.STRING,
					Value: strconv.Quote(path),
				},
			},
		)
	}

	return &dst.GenDecl{
		Tok:   token.IMPORT,
		Specs: specs,
	}
}

func goVarDecl(name string, value dst.Expr) *dst.GenDecl {
	decl := &dst.GenDecl{
		Tok: token.VAR,
		Specs: []dst.Spec{
			&dst.ValueSpec{
				Names: []*dst.Ident{
					dst.NewIdent(name),
				},
				Values: []dst.Expr{
					value,
				},
			},
		},
	}
	decl.Decorations().Before = dst.EmptyLine
	decl.Decorations().After = dst.EmptyLine
	return decl
}

func goKeyValue(name string, value dst.Expr) *dst.KeyValueExpr {
	expr := &dst.KeyValueExpr{
		Key:   dst.NewIdent(name),
		Value: value,
	}
	expr.Decorations().Before = dst.NewLine
	expr.Decorations().After = dst.NewLine
	return expr
}

func goStringLit(s string) dst.Expr {
	return &dst.BasicLit{
		Kind:  token.STRING,
		Value: strconv.Quote(s),
	}
}

func goIntLit(i int) dst.Expr {
	return &dst.BasicLit{
		Kind:  token.INT,
		Value: strconv.Itoa(i),
	}
}

func goBoolLit(b bool) dst.Expr {
	return dst.NewIdent(strconv.FormatBool(b))
}
