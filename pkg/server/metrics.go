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

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "kubedrive"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	// Event streams last as long as the kubectl run behind them.
	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, event streams included.",
		Buckets:   []float64{.01, .05, .1, .5, 1, 5, 30, 120, 600},
	}, []string{"route", "method"})

	requestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served, by route.",
	}, []string{"route"})

	rateLimitRejects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "rate_limit_rejects_total",
		Help:      "Requests rejected by the rate limiter.",
	})

	panicRecoveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "panic_recoveries_total",
		Help:      "Handler panics recovered by the server.",
	})
)

// routeLabel uses the mux pattern when one matched so path parameters
// and unknown paths do not grow label cardinality.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := routeLabel(r)
		inFlight := requestsInFlight.WithLabelValues(route)
		inFlight.Inc()

		rw := newResponseWriter(w)
		start := time.Now()
		defer func() {
			inFlight.Dec()
			requestSeconds.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
			requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.Status())).Inc()
		}()

		next(rw, r)
	}
}
