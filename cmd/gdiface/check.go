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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/itchyny/gojq"
	"github.com/schollz/progressbar/v3"

	"github.com/onflow/gdiface/checker"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/encoding/cbor"
	"github.com/onflow/gdiface/encoding/json"
	"github.com/onflow/gdiface/errors"
)

type CheckCommand struct {
	environmentHolder `no-flag:"true"`

	Declarations []string `short:"d" long:"declarations" description:"declaration file (repeatable)"`
	Contract     string   `long:"contract" description:"contract file written by resolve, in JSON or CBOR (.cbor) format"`
	Interface    string   `short:"i" long:"interface" description:"simple or qualified name of the declared interface to check against"`
	Filter       string   `long:"filter" description:"jq filter selecting the method list of each input"`
	Watch        bool     `short:"w" long:"watch" description:"check again when the inputs or the declarations change"`
}

var _ command = &CheckCommand{}

func (c *CheckCommand) Execute(args []string) error {
	var filter *gojq.Query
	if c.Filter != "" {
		var err error
		filter, err = json.ParseFilter(c.Filter)
		if err != nil {
			return err
		}
	}

	if c.Watch {
		return c.watch(args, filter)
	}

	return c.check(args, filter)
}

func (c *CheckCommand) check(args []string, filter *gojq.Query) error {
	env := c.env

	contract, err := c.loadContract()
	if err != nil {
		return err
	}

	inputs, err := env.collectInputs(args)
	if err != nil {
		return err
	}

	failed, err := env.checkInputs(contract, inputs, filter)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(
		env.stdout,
		"%d of %d script(s) implement `%s`\n",
		len(inputs)-failed,
		len(inputs),
		contract.Name,
	)
	if err != nil {
		return err
	}

	if failed > 0 {
		return errUnsatisfied{failed: failed}
	}
	return nil
}

func (c *CheckCommand) loadContract() (*descriptor.InterfaceContract, error) {
	env := c.env

	if c.Contract != "" {
		if len(c.Declarations) > 0 {
			return nil, errors.NewDefaultUserError("--contract and --declarations are mutually exclusive")
		}
		return env.readContract(c.Contract)
	}

	if c.Interface == "" {
		return nil, errors.NewDefaultUserError("no interface given, select one with --interface")
	}

	declarations, err := env.loadInterfaces(c.Declarations, []string{c.Interface})
	if err != nil {
		return nil, err
	}

	contracts, err := env.resolveContracts(declarations)
	if err != nil {
		return nil, err
	}

	return contracts[0], nil
}

// readContract reads a contract written by the resolve command.
func (env *environment) readContract(path string) (*descriptor.InterfaceContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDefaultUserError("failed to read contract: %w", err)
	}

	var contract *descriptor.InterfaceContract
	if filepath.Ext(path) == ".cbor" {
		contract, err = cbor.Decode(data)
	} else {
		contract, err = json.DecodeContract(data, json.WithContext(env.ctx))
	}
	if err != nil {
		return nil, errors.NewDefaultUserError("invalid contract %s: %w", path, err)
	}

	env.logger.Debug().
		Str("path", path).
		Str("interface", contract.Name).
		Int("methods", len(contract.Methods)).
		Msg("read contract")

	return contract, nil
}

// collectInputs returns the given method list files,
// and the files selected by the configured globs in the given directories.
func (env *environment) collectInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.NewDefaultUserError("no method lists given")
	}

	matcher, err := env.config.InputMatcher()
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.NewDefaultUserError("invalid input: %w", err)
		}

		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		selected, err := matcher.Inputs(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, selected...)
	}

	if len(inputs) == 0 {
		return nil, errors.NewDefaultUserError("no method lists found")
	}

	return inputs, nil
}

type checkOutcome struct {
	input string
	err   error
}

// checkInputs checks each input against the contract and prints the outcomes.
// It returns the number of inputs which failed the check.
func (env *environment) checkInputs(
	contract *descriptor.InterfaceContract,
	inputs []string,
	filter *gojq.Query,
) (int, error) {

	var bar *progressbar.ProgressBar
	if len(inputs) > 1 && !env.verbose {
		bar = progressbar.NewOptions(
			len(inputs),
			progressbar.OptionSetWriter(env.stderr),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	outcomes := make([]checkOutcome, 0, len(inputs))

	for _, input := range inputs {
		if err := env.ctx.Err(); err != nil {
			return 0, err
		}

		outcomes = append(outcomes, checkOutcome{
			input: input,
			err:   env.checkInput(contract, input, filter),
		})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	failed := 0
	for _, outcome := range outcomes {
		status := "ok  "
		if outcome.err != nil {
			status = "FAIL"
			failed++
		}

		_, err := fmt.Fprintf(env.stdout, "%s %s\n", status, outcome.input)
		if err != nil {
			return 0, err
		}

		if outcome.err != nil {
			env.printError(outcome.err)
		}
	}

	return failed, nil
}

func (env *environment) checkInput(
	contract *descriptor.InterfaceContract,
	input string,
	filter *gojq.Query,
) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.NewDefaultUserError("failed to read method list: %w", err)
	}

	methods, err := json.Decode(
		data,
		json.WithFilter(filter),
		json.WithContext(env.ctx),
	)
	if err != nil {
		return errors.NewDefaultUserError("invalid method list %s: %w", input, err)
	}

	start := time.Now()
	result := checker.Check(contract, methods.Methods)
	env.metrics.ObserveCheck(result, time.Since(start))

	env.logger.Debug().
		Str("input", input).
		Str("script", methods.Script).
		Int("methods", len(methods.Methods)).
		Int("unsatisfied", len(result.Unsatisfied)).
		Msg("checked method list")

	return result.Err()
}

func (c *CheckCommand) watch(args []string, filter *gojq.Query) error {
	env := c.env

	runCheck := func() {
		err := c.check(args, filter)
		switch err.(type) {
		case nil, errUnsatisfied:
		default:
			env.printError(err)
		}
		if err := env.writeMetrics(); err != nil {
			env.logger.Error().Err(err).Msg("failed to write metrics")
		}
	}

	runCheck()

	paths := slices.Concat(c.Declarations, args)
	if c.Contract != "" {
		paths = append(paths, c.Contract)
	}

	w := newWatcher(paths, env.logger, func() {
		env.metrics.WatchEvents.Inc()
		runCheck()
	})

	env.logger.Info().Strs("paths", paths).Msg("watching for changes")

	err := w.Run(env.ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
