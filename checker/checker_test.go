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

package checker

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
	. "github.com/onflow/gdiface/test_utils/common_utils"
	"github.com/onflow/gdiface/variant"
)

func parameter(name string, typ descriptor.TypeDescriptor) descriptor.ParameterDescriptor {
	return descriptor.ParameterDescriptor{
		Name: name,
		Type: typ,
	}
}

func returning(typ descriptor.TypeDescriptor) descriptor.ParameterDescriptor {
	return descriptor.ParameterDescriptor{
		Type: typ,
	}
}

var takeDamage = descriptor.MethodSignature{
	Name: "take_damage",
	Parameters: []descriptor.ParameterDescriptor{
		parameter("damage", descriptor.Primitive(variant.KindInt)),
	},
	Return: returning(descriptor.Void()),
	Flags:  variant.MethodFlagsDefault,
}

var isDeadGetter = descriptor.MethodSignature{
	Name:   "@is_dead_getter",
	Return: returning(descriptor.Primitive(variant.KindBool)),
	Flags:  variant.MethodFlagsDefault,
}

func damageableContract() *descriptor.InterfaceContract {
	return &descriptor.InterfaceContract{
		Name: "Game.IDamageable",
		Methods: []descriptor.MethodSignature{
			takeDamage,
			isDeadGetter,
		},
	}
}

// scriptMethods are the methods of a script implementing the interface,
// as introspected from the engine.
func scriptMethods() []descriptor.MethodSignature {
	return []descriptor.MethodSignature{
		{
			Name:   "_ready",
			Return: returning(descriptor.Void()),
		},
		{
			Name: "take_damage",
			Parameters: []descriptor.ParameterDescriptor{
				parameter("amount", descriptor.Primitive(variant.KindInt)),
			},
			Return: returning(descriptor.Void()),
		},
		{
			Name:    "get_is_dead",
			Aliases: []string{"@is_dead_getter"},
			Return:  returning(descriptor.Primitive(variant.KindBool)),
		},
	}
}

func withoutAliases(methods []descriptor.MethodSignature) []descriptor.MethodSignature {
	result := make([]descriptor.MethodSignature, 0, len(methods))
	for _, method := range methods {
		method.Aliases = nil
		result = append(result, method)
	}
	return result
}

func without(methods []descriptor.MethodSignature, name string) []descriptor.MethodSignature {
	var result []descriptor.MethodSignature
	for _, method := range methods {
		if method.Name == name {
			continue
		}
		result = append(result, method)
	}
	return result
}

func TestCheck_Damageable(t *testing.T) {

	t.Parallel()

	t.Run("all methods", func(t *testing.T) {
		t.Parallel()

		contract := damageableContract()
		actual := scriptMethods()

		assert.True(t, IsSatisfied(contract, actual))

		result := Check(contract, actual)
		assert.True(t, result.Satisfied())
		assert.NoError(t, result.Err())
	})

	for _, name := range []string{"take_damage", "get_is_dead"} {

		t.Run(fmt.Sprintf("without %s", name), func(t *testing.T) {
			t.Parallel()

			contract := damageableContract()
			actual := without(scriptMethods(), name)

			assert.False(t, IsSatisfied(contract, actual))

			result := Check(contract, actual)
			assert.False(t, result.Satisfied())
			require.Len(t, result.Unsatisfied, 1)
			assert.Empty(t, result.Unsatisfied[0].Mismatches)

			err := result.Err()
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err))
		})
	}

	t.Run("without getter alias", func(t *testing.T) {
		t.Parallel()

		contract := damageableContract()
		actual := withoutAliases(scriptMethods())

		assert.False(t, IsSatisfied(contract, actual))

		result := Check(contract, actual)
		require.Len(t, result.Unsatisfied, 1)
		assert.Equal(t, "@is_dead_getter", result.Unsatisfied[0].Requirement.Name)
	})
}

func TestCheck_NameMatching(t *testing.T) {

	t.Parallel()

	getter := descriptor.MethodSignature{
		Name:   "@is_dead_getter",
		Return: returning(descriptor.Primitive(variant.KindBool)),
	}

	tests := []struct {
		name      string
		required  descriptor.MethodSignature
		actual    descriptor.MethodSignature
		satisfied bool
	}{
		{
			name:      "exact name",
			required:  getter,
			actual:    getter,
			satisfied: true,
		},
		{
			name:     "accessor name without alias",
			required: isDeadGetter,
			actual: descriptor.MethodSignature{
				Name:   "get_is_dead",
				Return: returning(descriptor.Primitive(variant.KindBool)),
			},
			satisfied: false,
		},
		{
			name: "required alias",
			required: descriptor.MethodSignature{
				Name:    "@is_dead_getter",
				Aliases: []string{"get_is_dead"},
				Return:  returning(descriptor.Primitive(variant.KindBool)),
			},
			actual: descriptor.MethodSignature{
				Name:   "get_is_dead",
				Return: returning(descriptor.Primitive(variant.KindBool)),
			},
			satisfied: true,
		},
		{
			name:     "actual alias",
			required: getter,
			actual: descriptor.MethodSignature{
				Name:    "get_is_dead",
				Aliases: []string{"@is_dead_getter"},
				Return:  returning(descriptor.Primitive(variant.KindBool)),
			},
			satisfied: true,
		},
		{
			name:     "similar name",
			required: getter,
			actual: descriptor.MethodSignature{
				Name:   "is_dead",
				Return: returning(descriptor.Primitive(variant.KindBool)),
			},
			satisfied: false,
		},
		{
			name:     "case differs",
			required: takeDamage,
			actual: descriptor.MethodSignature{
				Name:       "Take_Damage",
				Parameters: takeDamage.Parameters,
				Return:     takeDamage.Return,
			},
			satisfied: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			contract := &descriptor.InterfaceContract{
				Name:    "I",
				Methods: []descriptor.MethodSignature{test.required},
			}

			assert.Equal(t,
				test.satisfied,
				IsSatisfied(contract, []descriptor.MethodSignature{test.actual}),
			)
		})
	}
}

func TestCheck_Mismatches(t *testing.T) {

	t.Parallel()

	intType := descriptor.Primitive(variant.KindInt)

	tests := []struct {
		name     string
		required descriptor.MethodSignature
		actual   descriptor.MethodSignature
		mismatch *Mismatch
	}{
		{
			name:     "arity",
			required: takeDamage,
			actual: descriptor.MethodSignature{
				Name: "take_damage",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("amount", intType),
					parameter("source", descriptor.Object("Node")),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchArity,
				Expected: "1",
				Actual:   "2",
			},
		},
		{
			name:     "parameter type",
			required: takeDamage,
			actual: descriptor.MethodSignature{
				Name: "take_damage",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("amount", descriptor.Primitive(variant.KindFloat)),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchType,
				Index:    0,
				Expected: "int",
				Actual:   "float",
			},
		},
		{
			name:     "return type",
			required: takeDamage,
			actual: descriptor.MethodSignature{
				Name:       "take_damage",
				Parameters: takeDamage.Parameters,
				Return:     returning(descriptor.Primitive(variant.KindBool)),
			},
			mismatch: &Mismatch{
				Kind:     MismatchType,
				Index:    ReturnIndex,
				Expected: "void",
				Actual:   "bool",
			},
		},
		{
			name: "class name",
			required: descriptor.MethodSignature{
				Name:   "get_target",
				Return: returning(descriptor.Object("Node2D")),
			},
			actual: descriptor.MethodSignature{
				Name:   "get_target",
				Return: returning(descriptor.Object("Node")),
			},
			mismatch: &Mismatch{
				Kind:     MismatchType,
				Index:    ReturnIndex,
				Expected: "Node2D",
				Actual:   "Node",
			},
		},
		{
			name: "typed array required, untyped actual",
			required: descriptor.MethodSignature{
				Name: "add_all",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("nodes", descriptor.NewTypedArray("Node")),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "add_all",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("nodes", descriptor.Untyped(variant.KindArray)),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchContainerHint,
				Index:    0,
				Expected: "Node",
				Actual:   "untyped",
			},
		},
		{
			name: "dictionary hints differ",
			required: descriptor.MethodSignature{
				Name: "scores",
				Return: returning(
					descriptor.NewTypedDictionary("String", "int"),
				),
			},
			actual: descriptor.MethodSignature{
				Name: "scores",
				Return: returning(
					descriptor.NewTypedDictionary("String", "float"),
				),
			},
			mismatch: &Mismatch{
				Kind:     MismatchContainerHint,
				Index:    ReturnIndex,
				Expected: "String;int",
				Actual:   "String;float",
			},
		},
		{
			name: "untyped array required, typed actual",
			required: descriptor.MethodSignature{
				Name: "add_all",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("nodes", descriptor.Untyped(variant.KindArray)),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "add_all",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("nodes", descriptor.NewTypedArray("Node")),
				},
				Return: returning(descriptor.Void()),
			},
		},
		{
			name: "missing usage flags",
			required: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedFlags(variant.UsageDefault),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedFlags(variant.UsageStorage),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchFlags,
				Index:    0,
				Expected: "STORAGE|EDITOR",
				Actual:   "STORAGE",
			},
		},
		{
			name: "additional usage flags",
			required: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedFlags(variant.UsageStorage),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedFlags(variant.UsageDefault),
				},
				Return: returning(descriptor.Void()),
			},
		},
		{
			name: "unchecked usage flags",
			required: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedFlags(variant.UsageStorage),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchFlags,
				Index:    0,
				Expected: "STORAGE",
				Actual:   "NONE",
			},
		},
		{
			name: "hint",
			required: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedHint(variant.HintRange, "0,100"),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchHint,
				Index:    0,
				Expected: "HintRange",
				Actual:   "HintNone",
			},
		},
		{
			name: "hint string",
			required: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedHint(variant.HintRange, "0,100"),
				},
				Return: returning(descriptor.Void()),
			},
			actual: descriptor.MethodSignature{
				Name: "set_health",
				Parameters: []descriptor.ParameterDescriptor{
					parameter("value", intType).
						WithCheckedHint(variant.HintRange, "0,10"),
				},
				Return: returning(descriptor.Void()),
			},
			mismatch: &Mismatch{
				Kind:     MismatchHintString,
				Index:    0,
				Expected: "0,100",
				Actual:   "0,10",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			contract := &descriptor.InterfaceContract{
				Name:    "I",
				Methods: []descriptor.MethodSignature{test.required},
			}
			actual := []descriptor.MethodSignature{test.actual}

			result := Check(contract, actual)
			assert.Equal(t, test.mismatch == nil, IsSatisfied(contract, actual))

			if test.mismatch == nil {
				assert.True(t, result.Satisfied())
				return
			}

			require.Len(t, result.Unsatisfied, 1)
			unsatisfied := result.Unsatisfied[0]

			expected := *test.mismatch
			expected.Candidate = test.actual.Name

			assert.Equal(t, []Mismatch{expected}, unsatisfied.Mismatches)
			assert.Empty(t, unsatisfied.Suggestion)
		})
	}
}

func TestCheck_SharedActual(t *testing.T) {

	t.Parallel()

	getHealth := descriptor.MethodSignature{
		Name:   "get_health",
		Return: returning(descriptor.Primitive(variant.KindInt)),
	}

	contract := &descriptor.InterfaceContract{
		Name: "I",
		Methods: []descriptor.MethodSignature{
			getHealth,
			{
				Name:    "@health_getter",
				Aliases: []string{"get_health"},
				Return:  returning(descriptor.Primitive(variant.KindInt)),
			},
		},
	}

	assert.True(t, IsSatisfied(contract, []descriptor.MethodSignature{getHealth}))
}

func TestCheck_CandidateOrder(t *testing.T) {

	t.Parallel()

	// Only one of the candidates with the same name has to match
	contract := &descriptor.InterfaceContract{
		Name:    "I",
		Methods: []descriptor.MethodSignature{takeDamage},
	}

	mismatching := descriptor.MethodSignature{
		Name:   "take_damage",
		Return: returning(descriptor.Void()),
	}

	actual := []descriptor.MethodSignature{mismatching, takeDamage}
	assert.True(t, IsSatisfied(contract, actual))
	assert.True(t, Check(contract, actual).Satisfied())

	result := Check(contract, []descriptor.MethodSignature{mismatching, mismatching})
	require.Len(t, result.Unsatisfied, 1)
	assert.Len(t, result.Unsatisfied[0].Mismatches, 2)
}

func TestCheck_Suggestion(t *testing.T) {

	t.Parallel()

	tests := []struct {
		name       string
		actual     []string
		suggestion string
	}{
		{
			name:       "typo",
			actual:     []string{"heal", "take_damag", "die"},
			suggestion: "take_damag",
		},
		{
			name:       "closest",
			actual:     []string{"take_dmg", "takedamage"},
			suggestion: "takedamage",
		},
		{
			name:   "unrelated",
			actual: []string{"jump", "run"},
		},
		{
			name: "no methods",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			actual := make([]descriptor.MethodSignature, 0, len(test.actual))
			for _, name := range test.actual {
				actual = append(actual, descriptor.MethodSignature{
					Name:   name,
					Return: returning(descriptor.Void()),
				})
			}

			contract := &descriptor.InterfaceContract{
				Name:    "I",
				Methods: []descriptor.MethodSignature{takeDamage},
			}

			result := Check(contract, actual)
			require.Len(t, result.Unsatisfied, 1)
			assert.Equal(t, test.suggestion, result.Unsatisfied[0].Suggestion)
		})
	}
}

func TestConformanceError(t *testing.T) {

	t.Parallel()

	contract := damageableContract()
	actual := []descriptor.MethodSignature{
		{
			Name: "take_damage",
			Parameters: []descriptor.ParameterDescriptor{
				parameter("amount", descriptor.Primitive(variant.KindFloat)),
			},
			Return: returning(descriptor.Void()),
		},
		{
			Name:    "get_is_ded",
			Aliases: []string{"@is_ded_getter"},
			Return:  returning(descriptor.Primitive(variant.KindBool)),
		},
	}

	err := Check(contract, actual).Err()
	RequireError(t, err)

	var conformanceError *ConformanceError
	require.ErrorAs(t, err, &conformanceError)

	assert.Equal(t,
		"script does not implement interface `Game.IDamageable`: 2 required method(s) not satisfied",
		conformanceError.Error(),
	)

	childErrors := conformanceError.ChildErrors()
	require.Len(t, childErrors, 2)

	takeDamageError := childErrors[0].(*UnsatisfiedMethodError)
	assert.Equal(t,
		"method `take_damage` does not match interface `Game.IDamageable`",
		takeDamageError.Error(),
	)
	assert.Equal(t,
		"expected `func take_damage(damage: int) -> void`",
		takeDamageError.SecondaryError(),
	)

	notes := takeDamageError.ErrorNotes()
	require.Len(t, notes, 1)
	assert.Equal(t,
		"candidate `take_damage`: parameter 1: expected type `int`, got `float`",
		notes[0].Message(),
	)

	isDeadError := childErrors[1].(*UnsatisfiedMethodError)
	assert.Equal(t,
		"missing method `@is_dead_getter` of interface `Game.IDamageable`",
		isDeadError.Error(),
	)
	assert.Equal(t,
		"expected `func @is_dead_getter() -> bool`. did you mean `@is_ded_getter`?",
		isDeadError.SecondaryError(),
	)
	assert.Empty(t, isDeadError.ErrorNotes())
}

func TestMismatchMessage(t *testing.T) {

	t.Parallel()

	assert.Equal(t,
		"expected 1 parameters, got 0",
		newArityMismatch(1, 0).Message(),
	)

	assert.Equal(t,
		"return value: expected hint string `a,b`, got ``",
		Mismatch{
			Kind:     MismatchHintString,
			Index:    ReturnIndex,
			Expected: "a,b",
		}.Message(),
	)

	assert.Panics(t, func() {
		_ = MismatchKind(100).Name()
	})
}

// typeChoices are the types which generated methods are built from
var typeChoices = []descriptor.TypeDescriptor{
	descriptor.Primitive(variant.KindInt),
	descriptor.Primitive(variant.KindFloat),
	descriptor.Primitive(variant.KindString),
	descriptor.Primitive(variant.KindVector2),
	descriptor.Object("Node"),
	descriptor.Object("Node2D"),
	descriptor.Untyped(variant.KindArray),
	descriptor.NewTypedArray("Node"),
	descriptor.NewTypedDictionary("String", "int"),
	descriptor.Untyped(variant.KindDictionary),
	descriptor.Enum("Game.Element"),
	descriptor.Any(),
}

func generatedMethod(index int, choice int) descriptor.MethodSignature {
	parameterCount := choice % 4
	parameters := make([]descriptor.ParameterDescriptor, 0, parameterCount)
	for i := 0; i < parameterCount; i++ {
		typ := typeChoices[(choice+i)%len(typeChoices)]
		parameters = append(parameters, parameter(fmt.Sprintf("p%d", i), typ))
	}

	returnType := descriptor.Void()
	if choice%3 != 0 {
		returnType = typeChoices[choice%len(typeChoices)]
	}

	return descriptor.MethodSignature{
		Name:       fmt.Sprintf("method_%d", index),
		Parameters: parameters,
		Return:     returning(returnType),
	}
}

func generatedContract(choices []int) *descriptor.InterfaceContract {
	methods := make([]descriptor.MethodSignature, 0, len(choices))
	for index, choice := range choices {
		methods = append(methods, generatedMethod(index, choice))
	}
	return &descriptor.InterfaceContract{
		Name:    "IGenerated",
		Methods: methods,
	}
}

func TestIsSatisfied_Properties(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	choices := gen.SliceOf(gen.IntRange(0, 1000))

	properties.Property("a contract satisfies itself", prop.ForAll(
		func(choices []int) bool {
			contract := generatedContract(choices)
			return IsSatisfied(contract, contract.Methods)
		},
		choices,
	))

	properties.Property("extra actual methods are ignored", prop.ForAll(
		func(choices []int, extraChoices []int) bool {
			contract := generatedContract(choices)

			actual := append([]descriptor.MethodSignature{}, contract.Methods...)
			for index, choice := range extraChoices {
				extra := generatedMethod(index, choice)
				extra.Name = fmt.Sprintf("extra_%d", index)
				actual = append(actual, extra)
			}

			return IsSatisfied(contract, actual)
		},
		choices,
		choices,
	))

	properties.Property("changing the arity of the only match fails", prop.ForAll(
		func(choice int) bool {
			contract := generatedContract([]int{choice})

			changed := generatedMethod(0, choice)
			changed.Parameters = append(
				changed.Parameters,
				parameter("extra", descriptor.Primitive(variant.KindInt)),
			)

			return !IsSatisfied(contract, []descriptor.MethodSignature{changed})
		},
		gen.IntRange(0, 1000),
	))

	properties.Property("usage flags are satisfied by supersets", prop.ForAll(
		func(required, actual uint64) bool {
			requiredFlags := variant.PropertyUsageFlags(required)
			actualFlags := variant.PropertyUsageFlags(actual)

			contract := &descriptor.InterfaceContract{
				Name: "I",
				Methods: []descriptor.MethodSignature{
					{
						Name:   "get_value",
						Return: returning(descriptor.Any()).WithCheckedFlags(requiredFlags),
					},
				},
			}
			actualMethods := []descriptor.MethodSignature{
				{
					Name:   "get_value",
					Return: returning(descriptor.Any()).WithCheckedFlags(actualFlags),
				},
			}

			return IsSatisfied(contract, actualMethods) == (actual&required == required)
		},
		gen.UInt64Range(0, 1<<30-1),
		gen.UInt64Range(0, 1<<30-1),
	))

	properties.TestingRun(t)
}
