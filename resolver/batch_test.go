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
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/onflow/gdiface/static"
)

func TestResolveInterfaces(t *testing.T) {

	defer goleak.VerifyNone(t)

	var code string
	code += "interfaces:\n"
	const count = 50
	for i := 0; i < count; i++ {
		code += fmt.Sprintf("  - name: I%d\n", i)
		code += "    methods:\n"
		code += fmt.Sprintf("      - name: Method%d\n", i)
		if i%10 == 0 {
			code += "        return: decimal\n"
		} else {
			code += "        return: Array<Node>\n"
		}
	}

	declarations, err := static.LoadDeclarations("batch.yaml", []byte(code), static.NewUniverse())
	require.NoError(t, err)
	require.Len(t, declarations.Interfaces, count)

	results, err := ResolveInterfaces(
		context.Background(),
		Config{},
		zerolog.Nop(),
		declarations.Interfaces,
	)
	require.NoError(t, err)
	require.Len(t, results, count)

	for i, result := range results {
		assert.Same(t, declarations.Interfaces[i], result.Declaration)

		if i%10 == 0 {
			var typeErr *UnrepresentableTypeError
			assert.ErrorAs(t, result.Err, &typeErr)
			assert.Nil(t, result.Contract)
			continue
		}

		require.NoError(t, result.Err)
		require.Len(t, result.Contract.Methods, 1)
		assert.Equal(t, fmt.Sprintf("method_%d", i), result.Contract.Methods[0].Name)
		assert.Equal(t, "Array[Node]", result.Contract.Methods[0].Return.Type.String())
	}
}

func TestResolveInterfaces_Canceled(t *testing.T) {

	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveInterfaces(
		ctx,
		Config{},
		zerolog.Nop(),
		[]*static.InterfaceDeclaration{nil, nil},
	)
	require.ErrorIs(t, err, context.Canceled)
}
