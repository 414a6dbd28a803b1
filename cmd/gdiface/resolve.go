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
	"bytes"
	"fmt"
	"io"
	"os"

	jsonpretty "github.com/tidwall/pretty"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/encoding/cbor"
	"github.com/onflow/gdiface/encoding/json"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/resolver"
	"github.com/onflow/gdiface/static"
)

const (
	formatJSON        = "json"
	formatText        = "text"
	formatCBOR        = "cbor"
	formatFingerprint = "fingerprint"
)

type ResolveCommand struct {
	environmentHolder `no-flag:"true"`

	Interfaces []string `short:"i" long:"interface" description:"only map the interface with the given simple or qualified name (repeatable)"`
	Format     string   `short:"f" long:"format" choice:"json" choice:"text" choice:"cbor" choice:"fingerprint" default:"json" description:"output format"`
	Output     string   `short:"o" long:"output" description:"output file, instead of standard output"`
}

var _ command = &ResolveCommand{}

func (c *ResolveCommand) Execute(args []string) error {
	env := c.env

	declarations, err := env.loadInterfaces(args, c.Interfaces)
	if err != nil {
		return err
	}

	contracts, err := env.resolveContracts(declarations)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = env.writeContracts(&buf, contracts, c.Format, c.Output == "")
	if err != nil {
		return err
	}

	return env.writeOutput(c.Output, buf.Bytes())
}

// loadInterfaces loads the declaration files at the given paths into one universe,
// and returns the interfaces with the given names, or all interfaces if no names are given.
func (env *environment) loadInterfaces(paths []string, names []string) ([]*static.InterfaceDeclaration, error) {
	if len(paths) == 0 {
		return nil, errors.NewDefaultUserError("no declaration files given")
	}

	universe := env.config.ResolverConfig().NewUniverse()

	var files []*static.Declarations
	for _, path := range paths {
		data, err := env.readSource(path)
		if err != nil {
			return nil, errors.NewDefaultUserError("failed to read declarations: %w", err)
		}

		declarations, err := static.LoadDeclarations(path, data, universe)
		if err != nil {
			return nil, err
		}

		env.logger.Debug().
			Str("path", path).
			Int("types", len(declarations.Types)).
			Int("interfaces", len(declarations.Interfaces)).
			Msg("loaded declarations")

		files = append(files, declarations)
	}

	var interfaces []*static.InterfaceDeclaration

	if len(names) == 0 {
		for _, declarations := range files {
			interfaces = append(interfaces, declarations.Interfaces...)
		}
		if len(interfaces) == 0 {
			return nil, errors.NewDefaultUserError("no interfaces declared")
		}
		return interfaces, nil
	}

	for _, name := range names {
		declaration, ok := findInterface(files, name)
		if !ok {
			return nil, errors.NewDefaultUserError("interface `%s` is not declared", name)
		}
		interfaces = append(interfaces, declaration)
	}
	return interfaces, nil
}

func findInterface(files []*static.Declarations, name string) (*static.InterfaceDeclaration, bool) {
	for _, declarations := range files {
		if declaration, ok := declarations.Interface(name); ok {
			return declaration, true
		}
	}
	return nil, false
}

// resolveContracts maps the interface declarations to contracts.
// If more than one interface cannot be mapped, all errors are printed.
func (env *environment) resolveContracts(declarations []*static.InterfaceDeclaration) ([]*descriptor.InterfaceContract, error) {
	results, err := resolver.ResolveInterfaces(
		env.ctx,
		env.config.ResolverConfig(),
		env.logger,
		declarations,
	)
	if err != nil {
		return nil, err
	}

	contracts := make([]*descriptor.InterfaceContract, 0, len(results))
	var errs []error

	for _, result := range results {
		env.metrics.ObserveResolution(result.Err)

		if result.Err != nil {
			errs = append(errs, result.Err)
			continue
		}
		contracts = append(contracts, result.Contract)
	}

	switch len(errs) {
	case 0:
		env.logger.Info().Int("interfaces", len(contracts)).Msg("mapped interfaces")
		return contracts, nil
	case 1:
		return nil, errs[0]
	default:
		for _, err := range errs {
			env.printError(err)
		}
		return nil, errors.NewDefaultUserError("%d interfaces could not be mapped", len(errs))
	}
}

func (env *environment) writeContracts(
	w io.Writer,
	contracts []*descriptor.InterfaceContract,
	format string,
	terminal bool,
) error {
	switch format {
	case formatJSON:
		for _, contract := range contracts {
			data, err := json.EncodeContract(contract)
			if err != nil {
				return err
			}
			data = jsonpretty.Pretty(data)
			if terminal && env.colors {
				data = jsonpretty.Color(data, nil)
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
		}

	case formatText:
		for i, contract := range contracts {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			text := descriptor.Render(contract.Doc(), env.config.MaxLineWidth)
			if _, err := io.WriteString(w, text+"\n"); err != nil {
				return err
			}
		}

	case formatCBOR:
		if len(contracts) != 1 {
			return errors.NewDefaultUserError(
				"CBOR output requires exactly one interface, got %d; select one with --interface",
				len(contracts),
			)
		}
		err := cbor.NewEncoder(w).Encode(contracts[0])
		if err != nil {
			return err
		}

	case formatFingerprint:
		for _, contract := range contracts {
			fingerprint, err := cbor.Fingerprint(contract)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%x  %s\n", fingerprint, contract.Name); err != nil {
				return err
			}
		}

	default:
		panic(errors.NewUnreachableError())
	}

	return nil
}

func (env *environment) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := env.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	env.logger.Info().Str("path", path).Msg("wrote output")
	return nil
}
