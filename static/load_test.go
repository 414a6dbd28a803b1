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

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
)

const playerDeclarations = `
namespace: Game
types:
  - kind: class
    name: Player
    base: Enemy
  - kind: class
    name: Enemy
    base: CharacterBody2D
  - kind: enum
    name: Team
    declaring_type: Player
  - kind: struct
    name: Stats
interfaces:
  - name: IDamageable
    methods:
      - name: TakeDamage
        parameters:
          - name: damage
            type: int
      - name: Heal
        script_name: restore_health
        return: bool
        parameters:
          - name: amount
            type: float
            default: true
    properties:
      - name: IsDead
        type: bool
      - name: Team
        type: Player.Team
        set: true
`

func TestLoadDeclarations(t *testing.T) {

	t.Parallel()

	universe := NewUniverse()
	declarations, err := LoadDeclarations("player.yaml", []byte(playerDeclarations), universe)
	require.NoError(t, err)

	require.Len(t, declarations.Types, 4)

	player := declarations.Types[0].(*NamedType)
	enemy := declarations.Types[1].(*NamedType)
	assert.Equal(t, "Game.Player", player.QualifiedName())
	assert.Same(t, enemy, player.Base)
	assert.Equal(t, "CharacterBody2D", enemy.Base.Name)

	team := declarations.Types[2].(*EnumType)
	assert.Equal(t, "Game.Player.Team", team.QualifiedName())

	stats := declarations.Types[3].(*NamedType)
	assert.True(t, stats.IsValueType)

	declaration, ok := declarations.Interface("Game.IDamageable")
	require.True(t, ok)

	assert.Equal(t, common.DeclarationKindInterface, declaration.Kind)
	assert.Equal(t, "player.yaml", declaration.Location.Path)
	assert.Equal(t, 16, declaration.Location.Line)

	require.Len(t, declaration.Methods, 2)

	takeDamage := declaration.Methods[0]
	assert.Equal(t, "TakeDamage", takeDamage.Name)
	assert.Equal(t, Void, takeDamage.ReturnType)
	require.Len(t, takeDamage.Parameters, 1)
	assert.Equal(t, PrimitiveInt32, takeDamage.Parameters[0].Type)
	assert.Equal(t, 18, takeDamage.Location.Line)

	heal := declaration.Methods[1]
	assert.Equal(t, "restore_health", heal.ScriptName)
	assert.Equal(t, PrimitiveBool, heal.ReturnType)
	assert.True(t, heal.Parameters[0].HasDefault)
	assert.Equal(t, PrimitiveSingle, heal.Parameters[0].Type)

	require.Len(t, declaration.Properties, 2)

	isDead := declaration.Properties[0]
	assert.True(t, isDead.HasGetter)
	assert.False(t, isDead.HasSetter)

	teamProperty := declaration.Properties[1]
	assert.Same(t, team, teamProperty.Type)
	assert.True(t, teamProperty.HasSetter)
}

func TestLoadDeclarations_Errors(t *testing.T) {

	t.Parallel()

	test := func(t *testing.T, code string, line int) *DeclarationError {
		_, err := LoadDeclarations("test.yaml", []byte(code), NewUniverse())

		var declarationErr *DeclarationError
		require.ErrorAs(t, err, &declarationErr)
		assert.True(t, errors.IsUserError(err))
		assert.Equal(t, "test.yaml", declarationErr.Path)
		if line > 0 {
			assert.Equal(t, line, declarationErr.Line)
		}
		return declarationErr
	}

	t.Run("unknown parameter type", func(t *testing.T) {
		t.Parallel()

		err := test(t, `
interfaces:
  - name: I
    methods:
      - name: M
        parameters:
          - name: p
            type: Missing
`, 8)

		var expressionErr *TypeExpressionError
		require.ErrorAs(t, err, &expressionErr)
	})

	t.Run("unknown base", func(t *testing.T) {
		t.Parallel()

		test(t, `
types:
  - kind: class
    name: C
    base: Missing
`, 5)
	})

	t.Run("structure with base", func(t *testing.T) {
		t.Parallel()

		test(t, `
types:
  - kind: struct
    name: S
    base: Node
`, 5)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		test(t, `
interfaces:
  - name: I
    fields: []
`, 0)
	})

	t.Run("duplicate type", func(t *testing.T) {
		t.Parallel()

		test(t, `
types:
  - kind: class
    name: Node
    namespace: Godot
`, 4)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		t.Parallel()

		test(t, `
types:
  - kind: record
    name: R
`, 3)
	})

	t.Run("syntax", func(t *testing.T) {
		t.Parallel()

		test(t, "interfaces: [", 0)
	})
}
