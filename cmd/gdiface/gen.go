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

package main

import (
	"path/filepath"
	"strings"

	"github.com/onflow/gdiface/gen"
)

type GenCommand struct {
	environmentHolder `no-flag:"true"`

	Interfaces []string `short:"i" long:"interface" description:"only generate the interface with the given simple or qualified name (repeatable)"`
	Package    string   `short:"p" long:"package" default:"contracts" description:"name of the generated package"`
	Module     string   `long:"module" default:"github.com/onflow/gdiface" description:"import path of the module providing the descriptor package"`
	Output     string   `short:"o" long:"output" description:"output file, instead of standard output"`
}

var _ command = &GenCommand{}

func (c *GenCommand) Execute(args []string) error {
	env := c.env

	declarations, err := env.loadInterfaces(args, c.Interfaces)
	if err != nil {
		return err
	}

	contracts, err := env.resolveContracts(declarations)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(args))
	for _, path := range args {
		names = append(names, filepath.Base(path))
	}

	source, err := gen.Source(
		contracts,
		gen.Options{
			PackageName: c.Package,
			ModulePath:  c.Module,
			Source:      strings.Join(names, ", "),
		},
	)
	if err != nil {
		return err
	}

	return env.writeOutput(c.Output, source)
}
