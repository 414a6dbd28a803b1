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
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/onflow/gdiface/config"
	"github.com/onflow/gdiface/metrics"
	"github.com/onflow/gdiface/pretty"
)

// environment is shared by all commands of one run
type environment struct {
	ctx     context.Context
	config  *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	stdout  io.Writer
	stderr  io.Writer
	colors  bool
	verbose bool
	// sources holds the contents of the read declaration files by path,
	// for excerpts in diagnostics
	sources map[string]string
}

func newEnvironment(ctx context.Context, options Options, stdout, stderr io.Writer) (*environment, error) {
	cfg := config.Default()
	if options.Config != "" {
		var err error
		cfg, err = config.Load(options.Config)
		if err != nil {
			return nil, err
		}
	}

	colors := cfg.UseColors() && !options.NoColor

	level := zerolog.InfoLevel
	if options.Verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(
		zerolog.ConsoleWriter{
			Out:        stderr,
			NoColor:    !colors,
			TimeFormat: time.TimeOnly,
		}).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()

	if options.Config != "" {
		logger.Debug().Str("path", options.Config).Msg("loaded configuration")
	}

	return &environment{
		ctx:     ctx,
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
		stdout:  stdout,
		stderr:  stderr,
		colors:  colors,
		verbose: options.Verbose,
		sources: map[string]string{},
	}, nil
}

// readSource reads the file at the given path, and keeps its contents for diagnostics.
func (env *environment) readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env.sources[path] = string(data)
	return data, nil
}

func (env *environment) printError(err error) {
	printer := pretty.NewErrorPrettyPrinter(env.stderr, env.colors)
	if printErr := printer.PrettyPrintError(err, env.sources); printErr != nil {
		env.logger.Error().Err(printErr).Msg("failed to print error")
	}
}

func (env *environment) writeMetrics() error {
	path := env.config.MetricsFile
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := env.metrics.WriteTextfile(path); err != nil {
		return err
	}
	env.logger.Debug().Str("path", path).Msg("wrote metrics")
	return nil
}

// environmentHolder is embedded in commands
type environmentHolder struct {
	env *environment
}

func (h *environmentHolder) setEnvironment(env *environment) {
	h.env = env
}
