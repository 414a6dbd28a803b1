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
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/static"
)

// Result is the outcome of mapping one interface declaration.
type Result struct {
	Declaration *static.InterfaceDeclaration
	Contract    *descriptor.InterfaceContract
	Err         error
}

// ResolveInterfaces maps the interface declarations concurrently,
// each with its own resolver.
// The results are in the order of the declarations.
// Mapping errors are reported in the results;
// the returned error is only non-nil if the context is done before all declarations are mapped.
func ResolveInterfaces(
	ctx context.Context,
	config Config,
	logger zerolog.Logger,
	declarations []*static.InterfaceDeclaration,
) ([]Result, error) {

	results := make([]Result, len(declarations))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, declaration := range declarations {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			resolver := NewResolver(config, logger)
			contract, err := resolver.ResolveInterface(declaration)

			results[i] = Result{
				Declaration: declaration,
				Contract:    contract,
				Err:         err,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// the loop may have stopped early without any goroutine observing the cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
