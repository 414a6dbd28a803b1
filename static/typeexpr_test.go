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

package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {

	t.Parallel()

	universe := NewUniverse()

	t.Run("keywords", func(t *testing.T) {
		t.Parallel()

		for _, test := range []struct {
			expression string
			expected   Type
		}{
			{"void", Void},
			{"bool", PrimitiveBool},
			{"char", PrimitiveChar},
			{"long", PrimitiveInt64},
			{"decimal", PrimitiveDecimal},
			{"System.Int32", PrimitiveInt32},
			{"  string ", PrimitiveString},
		} {
			typ, err := universe.ParseType(test.expression, nil)
			require.NoError(t, err, test.expression)
			assert.Equal(t, test.expected, typ, test.expression)
		}
	})

	t.Run("framework types", func(t *testing.T) {
		t.Parallel()

		typ, err := universe.ParseType("Godot.Node", nil)
		require.NoError(t, err)

		unqualified, err := universe.ParseType("Node", nil)
		require.NoError(t, err)

		assert.Same(t, typ, unqualified)
		require.IsType(t, &NamedType{}, typ)
		assert.Same(t, RootObjectType, typ.(*NamedType).Base)

		variant, err := universe.ParseType("Variant", nil)
		require.NoError(t, err)
		assert.Same(t, VariantType, variant)
	})

	t.Run("arrays", func(t *testing.T) {
		t.Parallel()

		typ, err := universe.ParseType("long[]", nil)
		require.NoError(t, err)
		assert.Equal(t, &ArrayType{Element: PrimitiveInt64, Rank: 1}, typ)

		typ, err = universe.ParseType("int[,]", nil)
		require.NoError(t, err)
		assert.Equal(t, &ArrayType{Element: PrimitiveInt32, Rank: 2}, typ)
		assert.Equal(t, "System.Int32[,]", typ.QualifiedString())

		typ, err = universe.ParseType("byte[][]", nil)
		require.NoError(t, err)
		assert.Equal(t,
			&ArrayType{
				Element: &ArrayType{Element: PrimitiveByte, Rank: 1},
				Rank:    1,
			},
			typ,
		)
	})

	t.Run("generic containers", func(t *testing.T) {
		t.Parallel()

		typ, err := universe.ParseType("Godot.Collections.Dictionary<string, Godot.Variant>", nil)
		require.NoError(t, err)

		require.IsType(t, &NamedType{}, typ)
		dictionary := typ.(*NamedType)
		assert.True(t, dictionary.IsConstructed())
		assert.Equal(t, "Dictionary", dictionary.Name)
		assert.Equal(t, []Type{PrimitiveString, VariantType}, dictionary.TypeArguments)
		assert.Equal(t,
			"Godot.Collections.Dictionary<System.String, Godot.Variant>",
			dictionary.QualifiedString(),
		)

		untyped, err := universe.ParseType("Godot.Collections.Array", nil)
		require.NoError(t, err)
		assert.False(t, untyped.(*NamedType).IsConstructed())

		definition, ok := universe.Lookup("Dictionary", 2)
		require.True(t, ok)
		assert.Same(t, definition, dictionary.Definition)

		nested, err := universe.ParseType("Array<Array<Node>>", nil)
		require.NoError(t, err)
		assert.Equal(t, "Array<Array<Node>>", nested.String())
	})

	t.Run("type parameters", func(t *testing.T) {
		t.Parallel()

		typ, err := universe.ParseType("Array<T>", []string{"T"})
		require.NoError(t, err)
		assert.Equal(t, []Type{&TypeParameter{Name: "T"}}, typ.(*NamedType).TypeArguments)
	})

	t.Run("nested enum", func(t *testing.T) {
		t.Parallel()

		typ, err := universe.ParseType("Node.ProcessModeEnum", nil)
		require.NoError(t, err)
		require.IsType(t, &EnumType{}, typ)
		assert.Equal(t, "Godot.Node.ProcessModeEnum", typ.(*EnumType).QualifiedName())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, expression := range []string{
			"",
			"Unknown",
			"int[",
			"Array<int",
			"Array<>",
			"int?",
			"Node.",
			"int int",
			"Dictionary<int>",
			"1int",
		} {
			_, err := universe.ParseType(expression, nil)
			var expressionErr *TypeExpressionError
			require.ErrorAs(t, err, &expressionErr, expression)
			assert.Equal(t, expression, expressionErr.Expression)
		}
	})
}

func TestUniverse_Declare(t *testing.T) {

	t.Parallel()

	universe := NewUniverse()

	player := &NamedType{
		Namespace: "Game",
		Name:      "Player",
		Base:      RootObjectType,
	}
	require.NoError(t, universe.Declare(player))
	require.Error(t, universe.Declare(&NamedType{Namespace: "Game", Name: "Player"}))

	_, ok := universe.Lookup("Player", 0)
	assert.False(t, ok)

	universe.Import("Game")
	typ, ok := universe.Lookup("Player", 0)
	require.True(t, ok)
	assert.Same(t, player, typ)

	// declarations are not shared between universes
	_, ok = NewUniverse().Lookup("Game.Player", 0)
	assert.False(t, ok)
}

func TestNewFrameworkUniverse(t *testing.T) {

	t.Parallel()

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		universe := NewFrameworkUniverse("", "")

		typ, ok := universe.Lookup("Godot.Variant", 0)
		require.True(t, ok)
		assert.Same(t, VariantType, typ)
	})

	t.Run("custom namespace", func(t *testing.T) {
		t.Parallel()

		universe := NewFrameworkUniverse("Engine", "EngineObject")

		_, ok := universe.Lookup("Godot.Node", 0)
		assert.False(t, ok)

		node, ok := universe.LookupNamed("Engine.Node")
		require.True(t, ok)
		assert.Equal(t, "Engine", node.Namespace)
		require.NotNil(t, node.Base)
		assert.Equal(t, "Engine", node.Base.Namespace)
		assert.Equal(t, "EngineObject", node.Base.Name)

		// framework namespaces are imported
		label, ok := universe.LookupNamed("Label")
		require.True(t, ok)
		assert.Equal(t, "Engine", label.Namespace)

		for _, expression := range []string{
			"Variant",
			"Engine.Collections.Array",
			"Array<Node>",
			"Dictionary<string, Variant>",
			"Engine.Error",
		} {
			_, err := universe.ParseType(expression, nil)
			assert.NoError(t, err, expression)
		}

		variant, ok := universe.LookupNamed("Variant")
		require.True(t, ok)
		assert.NotSame(t, VariantType, variant)
		assert.Equal(t, "Engine", variant.Namespace)
	})
}
