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

package resolver

import (
	"maps"

	"github.com/onflow/gdiface/static"
)

type Config struct {
	// FrameworkNamespace is the namespace of the engine's types
	FrameworkNamespace string
	// RootObjectName is the name of the class all engine objects derive from
	RootObjectName string
	// NameExceptions maps framework class names to engine class names,
	// in addition to the built-in exceptions
	NameExceptions map[string]string
	// AccessorAliases adds the get_/set_ names of property accessors as aliases.
	// A plain get_<p> method then satisfies the getter requirement without
	// naming the `@<p>_getter` alias itself.
	AccessorAliases bool
	// AggregateErrors reports all member errors of an interface, instead of only the first
	AggregateErrors bool
}

func (c Config) withDefaults() Config {
	if c.FrameworkNamespace == "" {
		c.FrameworkNamespace = static.FrameworkNamespace
	}
	if c.RootObjectName == "" {
		c.RootObjectName = static.RootObjectName
	}
	return c
}

// NewUniverse returns a universe in which the framework types
// are declared in the configured framework namespace.
func (c Config) NewUniverse() *static.Universe {
	c = c.withDefaults()
	return static.NewFrameworkUniverse(c.FrameworkNamespace, c.RootObjectName)
}

func (c Config) collectionsNamespace() string {
	return c.FrameworkNamespace + ".Collections"
}

func (c Config) nameExceptions() map[string]string {
	if len(c.NameExceptions) == 0 && c.RootObjectName == static.RootObjectName {
		return engineClassNameExceptions
	}
	exceptions := maps.Clone(engineClassNameExceptions)
	exceptions[c.RootObjectName] = rootEngineClassName
	maps.Copy(exceptions, c.NameExceptions)
	return exceptions
}
