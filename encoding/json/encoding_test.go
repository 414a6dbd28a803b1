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

package json_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/gdiface/checker"
	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/encoding/json"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/variant"
)

const playerMethods = `[
  {
    "name": "_ready",
    "args": [],
    "default_args": [],
    "flags": 1,
    "id": 0,
    "return": {"name": "", "class_name": "", "type": 0, "hint": 0, "hint_string": "", "usage": 6}
  },
  {
    "name": "take_damage",
    "args": [
      {"name": "amount", "class_name": "", "type": 2, "hint": 0, "hint_string": "", "usage": 0}
    ],
    "default_args": [],
    "flags": 1,
    "id": 0,
    "return": {"name": "", "class_name": "", "type": 0, "hint": 0, "hint_string": "", "usage": 6}
  },
  {
    "name": "get_is_dead",
    "args": [],
    "default_args": [],
    "flags": 1,
    "id": 0,
    "return": {"name": "", "class_name": "", "type": 1, "hint": 0, "hint_string": "", "usage": 6}
  },
  {
    "name": "follow",
    "args": [
      {"name": "targets", "class_name": "", "type": 28, "hint": 31, "hint_string": "Node2D", "usage": 6},
      {"name": "speed", "class_name": "", "type": 3, "hint": 0, "hint_string": "", "usage": 0}
    ],
    "default_args": [1.5],
    "flags": 1,
    "id": 0,
    "return": {"name": "", "class_name": "Game.Element", "type": 2, "hint": 0, "hint_string": "", "usage": 65542}
  },
  {
    "name": "get_meta_value",
    "args": [],
    "default_args": [],
    "flags": 1,
    "id": 0,
    "return": {"name": "", "class_name": "", "type": 0, "hint": 0, "hint_string": "", "usage": 131078}
  }
]`

func actualParameter(t *testing.T, info descriptor.PropertyInfo) descriptor.ParameterDescriptor {
	parameter, err := info.ParameterDescriptor()
	require.NoError(t, err)
	return parameter
}

func voidReturn(t *testing.T) descriptor.ParameterDescriptor {
	return actualParameter(t, descriptor.PropertyInfo{
		Type:  variant.KindNil,
		Usage: variant.UsageDefault,
	})
}

func TestDecodeMethodList(t *testing.T) {

	t.Parallel()

	methods, err := json.Decode([]byte(playerMethods))
	require.NoError(t, err)

	assert.Empty(t, methods.Script)
	require.Len(t, methods.Methods, 5)

	assert.Equal(t,
		descriptor.MethodSignature{
			Name:       "_ready",
			Parameters: []descriptor.ParameterDescriptor{},
			Return:     voidReturn(t),
			Flags:      variant.MethodFlagNormal,
		},
		methods.Methods[0],
	)

	assert.Equal(t,
		descriptor.MethodSignature{
			Name: "take_damage",
			Parameters: []descriptor.ParameterDescriptor{
				actualParameter(t, descriptor.PropertyInfo{
					Name: "amount",
					Type: variant.KindInt,
				}),
			},
			Return: voidReturn(t),
			Flags:  variant.MethodFlagNormal,
		},
		methods.Methods[1],
	)

	follow := methods.Methods[3]
	assert.Equal(t, 1, follow.DefaultArgumentCount)
	require.Len(t, follow.Parameters, 2)
	assert.Equal(t, descriptor.NewTypedArray("Node2D"), follow.Parameters[0].Type)
	assert.Equal(t, descriptor.Primitive(variant.KindFloat), follow.Parameters[1].Type)
	assert.Equal(t, descriptor.Enum("Game.Element"), follow.Return.Type)

	assert.Equal(t, descriptor.Any(), methods.Methods[4].Return.Type)
	assert.True(t, methods.Methods[0].Return.Type.IsVoid())
}

func TestDecodeMethodList_ObjectForm(t *testing.T) {

	t.Parallel()

	document := `{
      "script": "res://player.gd",
      "methods": [
        {
          "name": "get_is_dead",
          "aliases": ["@is_dead_getter"],
          "args": [],
          "default_args": [],
          "flags": 1,
          "id": 3,
          "return": {"name": "", "class_name": "", "type": 1, "hint": 0, "hint_string": "", "usage": 6}
        }
      ]
    }`

	methods, err := json.Decode([]byte(document))
	require.NoError(t, err)

	assert.Equal(t, "res://player.gd", methods.Script)
	require.Len(t, methods.Methods, 1)
	assert.Equal(t, []string{"@is_dead_getter"}, methods.Methods[0].Aliases)
	assert.True(t, methods.Methods[0].HasName("@is_dead_getter"))
}

func TestDecodeMethodList_Filter(t *testing.T) {

	t.Parallel()

	document := `{"scripts": {"res://player.gd": ` + playerMethods + `}}`

	t.Run("select", func(t *testing.T) {
		t.Parallel()

		filter, err := json.ParseFilter(`.scripts["res://player.gd"]`)
		require.NoError(t, err)

		methods, err := json.Decode(
			[]byte(document),
			json.WithFilter(filter),
			json.WithContext(context.Background()),
		)
		require.NoError(t, err)
		assert.Len(t, methods.Methods, 5)
	})

	t.Run("map", func(t *testing.T) {
		t.Parallel()

		filter, err := json.ParseFilter(`.scripts[] | map(select(.name | startswith("_") | not))`)
		require.NoError(t, err)

		methods, err := json.Decode([]byte(document), json.WithFilter(filter))
		require.NoError(t, err)
		assert.Len(t, methods.Methods, 4)
	})

	t.Run("no result", func(t *testing.T) {
		t.Parallel()

		filter, err := json.ParseFilter(`empty`)
		require.NoError(t, err)

		_, err = json.Decode([]byte(document), json.WithFilter(filter))
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
		assert.Contains(t, err.Error(), "produced no result")
	})

	t.Run("runtime error", func(t *testing.T) {
		t.Parallel()

		filter, err := json.ParseFilter(`.scripts | error("no scripts")`)
		require.NoError(t, err)

		_, err = json.Decode([]byte(document), json.WithFilter(filter))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := json.ParseFilter(`.scripts[`)
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
	})
}

func TestDecodeMethodList_Errors(t *testing.T) {

	t.Parallel()

	const voidJSON = `{"name": "", "class_name": "", "type": 0, "hint": 0, "hint_string": "", "usage": 6}`

	method := func(args string, ret string) string {
		return `[{"name": "f", "args": [` + args + `], "default_args": [], "flags": 1, "id": 0, "return": ` + ret + `}]`
	}

	tests := []struct {
		name     string
		document string
		message  string
	}{
		{
			name:     "missing methods",
			document: `{"script": "res://player.gd"}`,
			message:  "failed to decode method list: missing property: methods",
		},
		{
			name:     "missing args",
			document: `[{"name": "f"}]`,
			message:  "failed to decode method list: missing property: args (at [0])",
		},
		{
			name:     "missing class name",
			document: method(`{"name": "x", "type": 2, "hint": 0, "hint_string": "", "usage": 6}`, voidJSON),
			message:  "failed to decode method list: missing property: class_name (at [0].args[0])",
		},
		{
			name:     "invalid name",
			document: `[{"name": 1}]`,
			message:  "failed to decode method list: expected JSON string, got number (at [0].name)",
		},
		{
			name:     "invalid type",
			document: method(``, `{"name": "", "class_name": "", "type": 99, "hint": 0, "hint_string": "", "usage": 6}`),
			message:  "failed to decode method list: invalid variant type: 99 (at [0].return.type)",
		},
		{
			name:     "negative usage",
			document: method(``, `{"name": "", "class_name": "", "type": 0, "hint": 0, "hint_string": "", "usage": -1}`),
			message:  "failed to decode method list: expected unsigned integer, got -1 (at [0].return.usage)",
		},
		{
			name:     "fractional hint",
			document: method(``, `{"name": "", "class_name": "", "type": 0, "hint": 1.5, "hint_string": "", "usage": 6}`),
			message:  "failed to decode method list: expected unsigned integer, got 1.5 (at [0].return.hint)",
		},
		{
			name: "invalid dictionary hint",
			document: method(
				`{"name": "x", "class_name": "", "type": 27, "hint": 38, "hint_string": "int", "usage": 6}`,
				voidJSON,
			),
			message: `failed to decode method list: invalid property: invalid dictionary key/value hint "int" (at [0].args[0])`,
		},
		{
			name:     "string document",
			document: `"methods"`,
			message:  "failed to decode method list: expected JSON array or object with key `methods`, got string",
		},
		{
			name:     "invalid method",
			document: `[1]`,
			message:  "failed to decode method list: expected JSON object, got number (at [0])",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := json.Decode([]byte(test.document))
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err))
			assert.Equal(t, test.message, err.Error())
		})
	}

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := json.Decode([]byte(`[`))
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to decode JSON: "))
	})
}

func TestDecodeMethodList_Conformance(t *testing.T) {

	t.Parallel()

	methods, err := json.Decode([]byte(playerMethods))
	require.NoError(t, err)

	contract := &descriptor.InterfaceContract{
		Name: "Game.IDamageable",
		Methods: []descriptor.MethodSignature{
			{
				Name: "take_damage",
				Parameters: []descriptor.ParameterDescriptor{
					{Name: "damage", Type: descriptor.Primitive(variant.KindInt)},
				},
				Return: descriptor.ParameterDescriptor{Type: descriptor.Void()},
			},
			{
				Name:    "@is_dead_getter",
				Aliases: []string{"get_is_dead"},
				Return:  descriptor.ParameterDescriptor{Type: descriptor.Primitive(variant.KindBool)},
			},
		},
	}

	assert.True(t, checker.IsSatisfied(contract, methods.Methods))
}

func TestEncodeMethodList(t *testing.T) {

	t.Parallel()

	methods, err := json.Decode([]byte(playerMethods))
	require.NoError(t, err)
	methods.Script = "res://player.gd"

	encoded, err := json.EncodeMethodList(methods)
	require.NoError(t, err)

	decoded, err := json.Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, methods.Script, decoded.Script)
	require.Len(t, decoded.Methods, len(methods.Methods))
	for i, method := range methods.Methods {
		assert.True(t, method.Equal(decoded.Methods[i]), method.Name)
	}
}

func TestEncodeContract(t *testing.T) {

	t.Parallel()

	t.Run("format", func(t *testing.T) {
		t.Parallel()

		contract := &descriptor.InterfaceContract{
			Name: "I",
			Methods: []descriptor.MethodSignature{
				{
					Name:   "f",
					Return: descriptor.ParameterDescriptor{Type: descriptor.Void()},
				},
			},
		}

		encoded, err := json.EncodeContract(contract)
		require.NoError(t, err)

		assert.Equal(t,
			`{"interface":"I","methods":[{"name":"f","args":[],"default_args":[],"flags":0,"id":0,`+
				`"return":{"name":"","class_name":"","type":0,"hint":0,"hint_string":"","usage":6}}]}`,
			strings.TrimSpace(string(encoded)),
		)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		contract := &descriptor.InterfaceContract{
			Name: "Game.IDamageable",
			Location: common.Location{
				Path:   "game.yaml",
				Line:   3,
				Column: 5,
			},
			Methods: []descriptor.MethodSignature{
				{
					Name: "take_damage",
					Parameters: []descriptor.ParameterDescriptor{
						descriptor.ParameterDescriptor{
							Name: "damage",
							Type: descriptor.Primitive(variant.KindInt),
						}.WithCheckedHint(variant.HintRange, "0,100"),
						descriptor.ParameterDescriptor{
							Name: "element",
							Type: descriptor.Enum("Game.Element"),
						}.WithCheckedFlags(variant.UsageStorage),
					},
					Return:               descriptor.ParameterDescriptor{Type: descriptor.Void()},
					DefaultArgumentCount: 1,
					Flags:                variant.MethodFlagsDefault,
				},
				{
					Name:    "@stats_getter",
					Aliases: []string{"get_stats"},
					Return: descriptor.ParameterDescriptor{
						Type: descriptor.NewTypedDictionary("String", descriptor.AnyTypeName),
					},
					Flags: variant.MethodFlagsDefault,
				},
				{
					Name: "find",
					Parameters: []descriptor.ParameterDescriptor{
						{Name: "key", Type: descriptor.Any()},
						{Name: "nodes", Type: descriptor.NewTypedArray("Node")},
					},
					Return: descriptor.ParameterDescriptor{Type: descriptor.Object("Node2D")},
					Flags:  variant.MethodFlagsDefault,
				},
			},
		}

		encoded, err := json.EncodeContract(contract)
		require.NoError(t, err)

		decoded, err := json.DecodeContract(encoded)
		require.NoError(t, err)

		assert.True(t, contract.Equal(decoded), "%s\n%s", contract, decoded)
	})

	t.Run("missing interface", func(t *testing.T) {
		t.Parallel()

		_, err := json.DecodeContract([]byte(`{"methods": []}`))
		require.Error(t, err)
		assert.Equal(t, "failed to decode contract: missing property: interface", err.Error())
	})
}
