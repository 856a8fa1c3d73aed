// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
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

package kubectl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Invocation results used as metric labels.
const (
	resultSuccess       = "success"
	resultNonZeroExit   = "nonzero_exit"
	resultLaunchFailure = "launch_failure"
	resultCanceled      = "canceled"
	resultError         = "error"
)

var (
	invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubedrive_invocations_total",
			Help: "Total number of kubectl invocations by operation and result",
		},
		[]string{"operation", "result"},
	)

	invocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubedrive_invocation_duration_seconds",
			Help:    "Wall time of kubectl invocations from launch to exit",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"operation"},
	)

	invocationsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kubedrive_invocations_in_flight",
			Help: "Current number of running kubectl invocations",
		},
		[]string{"operation"},
	)

	progressEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubedrive_progress_events_total",
			Help: "Total number of progress events emitted by stream",
		},
		[]string{"stream"},
	)
)

func resultLabel(state State, exitCode int, err error) string {
	switch {
	case state == StateLaunchFailed:
		return resultLaunchFailure
	case state == StateCanceled:
		return resultCanceled
	case err != nil:
		return resultError
	case exitCode != 0:
		return resultNonZeroExit
	default:
		return resultSuccess
	}
}
