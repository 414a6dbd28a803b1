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
	"io"
	"os"

	jsonpretty "github.com/tidwall/pretty"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/encoding/json"
	"github.com/onflow/gdiface/errors"
)

type RenderCommand struct {
	environmentHolder `no-flag:"true"`

	Contracts bool   `long:"contracts" description:"the inputs are contracts written by resolve, instead of method lists"`
	Filter    string `long:"filter" description:"jq filter selecting the method list of each input"`
	Format    string `short:"f" long:"format" choice:"text" choice:"json" default:"text" description:"output format"`
}

var _ command = &RenderCommand{}

func (c *RenderCommand) Execute(args []string) error {
	env := c.env

	if len(args) == 0 {
		return errors.NewDefaultUserError("nothing to render")
	}

	var buf bytes.Buffer

	if c.Contracts {
		contracts := make([]*descriptor.InterfaceContract, 0, len(args))
		for _, path := range args {
			contract, err := env.readContract(path)
			if err != nil {
				return err
			}
			contracts = append(contracts, contract)
		}

		err := env.writeContracts(&buf, contracts, c.Format, true)
		if err != nil {
			return err
		}

		return env.writeOutput("", buf.Bytes())
	}

	var options []json.Option
	if c.Filter != "" {
		filter, err := json.ParseFilter(c.Filter)
		if err != nil {
			return err
		}
		options = append(options, json.WithFilter(filter))
	}
	options = append(options, json.WithContext(env.ctx))

	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.NewDefaultUserError("failed to read method list: %w", err)
		}

		methods, err := json.Decode(data, options...)
		if err != nil {
			return errors.NewDefaultUserError("invalid method list %s: %w", path, err)
		}
		if methods.Script == "" {
			methods.Script = path
		}

		if i > 0 && c.Format == formatText {
			buf.WriteString("\n")
		}

		err = env.writeMethodList(&buf, methods, c.Format)
		if err != nil {
			return err
		}
	}

	return env.writeOutput("", buf.Bytes())
}

func (env *environment) writeMethodList(w io.Writer, methods *json.MethodList, format string) error {
	switch format {
	case formatText:
		_, err := io.WriteString(w, "# "+methods.Script+"\n")
		if err != nil {
			return err
		}
		for _, method := range methods.Methods {
			text := descriptor.Render(method.Doc(), env.config.MaxLineWidth)
			if _, err := io.WriteString(w, text+"\n"); err != nil {
				return err
			}
		}
		return nil

	case formatJSON:
		data, err := json.EncodeMethodList(methods)
		if err != nil {
			return err
		}
		data = jsonpretty.Pretty(data)
		if env.colors {
			data = jsonpretty.Color(data, nil)
		}
		_, err = w.Write(data)
		return err

	default:
		panic(errors.NewUnreachableError())
	}
}
