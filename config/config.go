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

// Package config loads the configuration of the command line tool
// from YAML or TOML files.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/gobwas/glob"

	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/resolver"
	"github.com/onflow/gdiface/static"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
)

// FormatForPath returns the format of a configuration file, based on its extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

const (
	DefaultMaxLineWidth = 80
	minMaxLineWidth     = 20
	DefaultInclude      = "**.json"
)

type Config struct {
	FrameworkNamespace string            `yaml:"framework_namespace" toml:"framework_namespace"`
	RootObject         string            `yaml:"root_object" toml:"root_object"`
	NameExceptions     map[string]string `yaml:"name_exceptions" toml:"name_exceptions"`
	AggregateErrors    bool              `yaml:"aggregate_errors" toml:"aggregate_errors"`
	AccessorAliases    bool              `yaml:"accessor_aliases" toml:"accessor_aliases"`
	Colors             *bool             `yaml:"colors" toml:"colors"`
	MaxLineWidth       int               `yaml:"max_line_width" toml:"max_line_width"`
	// Include and Exclude are glob patterns for the method list files of batch checks,
	// relative to the checked directory
	Include     []string `yaml:"include" toml:"include"`
	Exclude     []string `yaml:"exclude" toml:"exclude"`
	MetricsFile string   `yaml:"metrics_file" toml:"metrics_file"`
}

// Default returns the configuration used when no configuration file is given.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load reads and validates the configuration file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return config, nil
}

// Parse decodes and validates a configuration.
// Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	var config Config

	switch format {
	case FormatYAML:
		err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
		if err != nil {
			return nil, errors.NewDefaultUserError("%s", yaml.FormatError(err, false, true))
		}

	case FormatTOML:
		metadata, err := toml.Decode(string(data), &config)
		if err != nil {
			return nil, errors.NewDefaultUserError("%w", err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewDefaultUserError("unknown key %q", undecoded[0].String())
		}

	default:
		return nil, errors.NewDefaultUserError("unsupported configuration format")
	}

	applyDefaults(&config)

	err := validate(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if strings.TrimSpace(config.FrameworkNamespace) == "" {
		config.FrameworkNamespace = static.FrameworkNamespace
	}
	if strings.TrimSpace(config.RootObject) == "" {
		config.RootObject = static.RootObjectName
	}
	if config.Colors == nil {
		enabled := true
		config.Colors = &enabled
	}
	if config.MaxLineWidth == 0 {
		config.MaxLineWidth = DefaultMaxLineWidth
	}
	if len(config.Include) == 0 {
		config.Include = []string{DefaultInclude}
	}
}

var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func isQualifiedIdentifier(name string) bool {
	for _, part := range strings.Split(name, ".") {
		if !identifierRegexp.MatchString(part) {
			return false
		}
	}
	return true
}

func validate(config *Config) error {
	if !isQualifiedIdentifier(config.FrameworkNamespace) {
		return errors.NewDefaultUserError(
			"invalid framework_namespace %q",
			config.FrameworkNamespace,
		)
	}

	if !identifierRegexp.MatchString(config.RootObject) {
		return errors.NewDefaultUserError(
			"invalid root_object %q",
			config.RootObject,
		)
	}

	names := make([]string, 0, len(config.NameExceptions))
	for name := range config.NameExceptions {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if !identifierRegexp.MatchString(name) || !identifierRegexp.MatchString(config.NameExceptions[name]) {
			return errors.NewDefaultUserError(
				"invalid name exception %q = %q",
				name,
				config.NameExceptions[name],
			)
		}
	}

	if config.MaxLineWidth < minMaxLineWidth {
		return errors.NewDefaultUserError(
			"max_line_width must be at least %d, got %d",
			minMaxLineWidth,
			config.MaxLineWidth,
		)
	}

	_, err := config.InputMatcher()
	return err
}

// ResolverConfig returns the configuration of the type resolver.
func (c *Config) ResolverConfig() resolver.Config {
	return resolver.Config{
		FrameworkNamespace: c.FrameworkNamespace,
		RootObjectName:     c.RootObject,
		NameExceptions:     c.NameExceptions,
		AccessorAliases:    c.AccessorAliases,
		AggregateErrors:    c.AggregateErrors,
	}
}

func (c *Config) UseColors() bool {
	return c.Colors == nil || *c.Colors
}

// InputMatcher selects the method list files of batch checks.
type InputMatcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func compileGlobs(patterns []string, key string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.NewDefaultUserError("invalid %s pattern %q: %w", key, pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func (c *Config) InputMatcher() (*InputMatcher, error) {
	include, err := compileGlobs(c.Include, "include")
	if err != nil {
		return nil, err
	}

	exclude, err := compileGlobs(c.Exclude, "exclude")
	if err != nil {
		return nil, err
	}

	return &InputMatcher{
		include: include,
		exclude: exclude,
	}, nil
}

// Match reports whether the given slash-separated relative path is selected.
func (m *InputMatcher) Match(path string) bool {
	for _, g := range m.exclude {
		if g.Match(path) {
			return false
		}
	}
	for _, g := range m.include {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Inputs returns the selected files in the given directory tree, in lexical order.
func (m *InputMatcher) Inputs(root string) ([]string, error) {
	var inputs []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if m.Match(filepath.ToSlash(relative)) {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inputs, nil
}
