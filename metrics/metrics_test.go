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

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/gdiface/checker"
	"github.com/onflow/gdiface/descriptor"
)

func TestMetrics(t *testing.T) {

	t.Parallel()

	metrics := New()

	metrics.ObserveResolution(nil)
	metrics.ObserveResolution(nil)
	metrics.ObserveResolution(errors.New("unrepresentable"))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.InterfacesResolved.WithLabelValues(resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InterfacesResolved.WithLabelValues(resultError)))

	metrics.ObserveCheck(checker.Result{}, time.Millisecond)
	metrics.ObserveCheck(
		checker.Result{
			Unsatisfied: []checker.Unsatisfied{
				{Requirement: descriptor.MethodSignature{Name: "take_damage"}},
				{Requirement: descriptor.MethodSignature{Name: "heal"}},
			},
		},
		time.Millisecond,
	)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Checks.WithLabelValues(resultSatisfied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Checks.WithLabelValues(resultUnsatisfied)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.UnsatisfiedMethods))

	count, err := testutil.GatherAndCount(metrics.Gatherer(), "gdiface_check_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWriteTextfile(t *testing.T) {

	t.Parallel()

	metrics := New()
	metrics.WatchEvents.Inc()

	path := filepath.Join(t.TempDir(), "gdiface.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gdiface_watch_events_total 1")
}
