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

// Package metrics counts mapping and conformance check runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/gdiface/checker"
)

const namespace = "gdiface"

const (
	resultOK          = "ok"
	resultError       = "error"
	resultSatisfied   = "satisfied"
	resultUnsatisfied = "unsatisfied"
)

type Metrics struct {
	registry *prometheus.Registry

	InterfacesResolved *prometheus.CounterVec
	Checks             *prometheus.CounterVec
	UnsatisfiedMethods prometheus.Counter
	CheckDuration      prometheus.Histogram
	WatchEvents        prometheus.Counter
}

// New returns metrics registered with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		InterfacesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interfaces_resolved_total",
			Help:      "Total number of interface declarations mapped to contracts.",
		}, []string{"result"}),

		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Total number of conformance checks of scripts against contracts.",
		}, []string{"result"}),

		UnsatisfiedMethods: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unsatisfied_methods_total",
			Help:      "Total number of required methods not satisfied by checked scripts.",
		}),

		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Time spent checking a script against a contract.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 6),
		}),

		WatchEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "Total number of file system events which triggered a re-run.",
		}),
	}
}

func (m *Metrics) ObserveResolution(err error) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.InterfacesResolved.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveCheck(result checker.Result, duration time.Duration) {
	label := resultSatisfied
	if !result.Satisfied() {
		label = resultUnsatisfied
	}
	m.Checks.WithLabelValues(label).Inc()
	m.UnsatisfiedMethods.Add(float64(len(result.Unsatisfied)))
	m.CheckDuration.Observe(duration.Seconds())
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format,
// e.g. for the textfile collector of the node exporter.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
