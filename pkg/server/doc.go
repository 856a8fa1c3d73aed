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

// Package server provides the HTTP server that hosts the kubedrive API.
//
// The server owns everything that is not specific to kubectl: routing,
// middleware, health and readiness probes, Prometheus metrics, error
// responses, and graceful shutdown. API handlers are registered with
// WithHandler and run behind the middleware chain:
//
//	metrics → version → request ID → panic recovery → rate limit → body limit → logging → handler
//
// System endpoints bypass the chain:
//
//	GET /health   liveness
//	GET /ready    readiness, 503 until Start and during shutdown
//	GET /metrics  Prometheus exposition
//	GET /         service name, version and routes
//
// The wrapped ResponseWriter supports http.ResponseController, so handlers
// can flush server-sent events and extend write deadlines. The server sets
// no global write timeout because event streams stay open for the length of
// a rollout.
//
// Configuration defaults come from pkg/defaults and can be overridden with
// the PORT and SHUTDOWN_TIMEOUT_SECONDS environment variables.
package server
