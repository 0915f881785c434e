// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wmi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome label values.
const (
	outcomeSuccess   = "success"
	outcomeMemoized  = "memoized"
	outcomeInvalid   = "invalid"
	outcomeSoft      = "soft_namespace"
	outcomeFailed    = "failed"
	outcomeTimeout   = "timeout"
	outcomeCancelled = "cancelled"
	outcomeError     = "error"
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cns_wmi_queries_total",
			Help: "Total number of WMI queries by class and outcome",
		},
		[]string{"class", "outcome"},
	)

	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cns_wmi_query_duration_seconds",
			Help:    "Time spent dispatching WMI queries",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"class"},
	)

	threadingToggles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cns_wmi_threading_model_toggles_total",
			Help: "Number of times a handler switched COM threading model after RPC_E_CHANGED_MODE",
		},
	)

	memoizedClasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cns_wmi_memoized_classes_total",
			Help: "Number of classes recorded as unreachable across all handlers",
		},
	)
)
