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

// gdiface maps interface declarations to script method contracts,
// and checks scripts' method lists against them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/onflow/gdiface/errors"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitInternal
)

var tracer = otel.Tracer("github.com/onflow/gdiface/cmd/gdiface")

type Options struct {
	Config  string `short:"c" long:"config" description:"configuration file (.yaml, .yml, or .toml)"`
	Verbose bool   `short:"v" long:"verbose" description:"enable debug logging"`
	NoColor bool   `long:"no-color" description:"disable colored output"`

	Resolve ResolveCommand `command:"resolve" description:"map interface declarations to contracts"`
	Check   CheckCommand   `command:"check" description:"check method lists of scripts against a contract"`
	Render  RenderCommand  `command:"render" description:"print method lists or contracts as function headers"`
	Gen     GenCommand     `command:"gen" description:"generate Go source declaring contracts"`
}

// command is implemented by all commands.
// The environment is set up before the command is executed
type command interface {
	flags.Commander
	setEnvironment(env *environment)
}

// errUnsatisfied is returned by commands when a check did not pass.
// The diagnostics are already printed
type errUnsatisfied struct {
	failed int
}

func (e errUnsatisfied) Error() string {
	return fmt.Sprintf("%d check(s) failed", e.failed)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var options Options

	parser := flags.NewParser(&options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "gdiface"

	var env *environment

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		var err error
		env, err = newEnvironment(ctx, options, stdout, stderr)
		if err != nil {
			return err
		}

		name := parser.Active.Name

		spanCtx, span := tracer.Start(
			env.ctx,
			"gdiface."+name,
			trace.WithAttributes(
				attribute.String("command", name),
				attribute.StringSlice("args", args),
			),
		)
		defer span.End()
		env.ctx = spanCtx

		env.logger.Debug().
			Str("command", name).
			Strs("args", args).
			Msg("running command")

		if c, ok := cmd.(command); ok {
			c.setEnvironment(env)
		}

		err = cmd.Execute(args)

		if metricsErr := env.writeMetrics(); metricsErr != nil {
			env.logger.Error().Err(metricsErr).Msg("failed to write metrics")
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}

	_, err := parser.ParseArgs(args)
	if err == nil {
		return exitOK
	}

	if flagsErr, ok := err.(*flags.Error); ok {
		if flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(stdout, flagsErr.Message)
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, flagsErr.Message)
		return exitUsage
	}

	if _, ok := err.(errUnsatisfied); ok {
		return exitFailure
	}

	if env == nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return exitFailure
	}

	env.printError(err)
	if errors.IsInternalError(err) {
		return exitInternal
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
