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

package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading a request,
	// manifest bodies included.
	ServerReadTimeout = 30 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// StreamWriteTimeout bounds each write to a streaming client. The server
	// itself sets no write timeout because rollouts can run for a long time.
	StreamWriteTimeout = 30 * time.Second

	// JSONHandlerTimeout bounds non-streaming handlers such as preflight.
	JSONHandlerTimeout = 2 * time.Minute
)

// Request limits.
const (
	// MaxRequestBytes caps request bodies, manifests included.
	MaxRequestBytes = 8 << 20

	// RateLimit is the sustained requests per second accepted by the server.
	RateLimit = 50

	// RateLimitBurst is the token bucket size for the server rate limiter.
	RateLimitBurst = 100
)

// Streaming parameters.
const (
	// RelayBufferSize is the read size used when relaying kubectl output.
	// Each read becomes at most one progress event.
	RelayBufferSize = 32 << 10

	// KeepAliveInterval is how often an idle event stream sends an SSE comment.
	KeepAliveInterval = 15 * time.Second

	// OutputDrainGrace is how long output pipes stay open after kubectl exits
	// or its context ends. Descendants such as exec credential plugins can
	// hold the pipes open past that point.
	OutputDrainGrace = 2 * time.Second
)

// CLI timeouts.
const (
	// PreflightTimeout bounds a full preflight run started by the CLI.
	PreflightTimeout = 2 * time.Minute

	// RolloutTimeout is the CLI default for rollout status. Zero disables it.
	RolloutTimeout = 10 * time.Minute
)

// Binary names.
const (
	// KubectlBinary is the default kubectl executable, resolved on PATH.
	KubectlBinary = "kubectl"
)

// Kubernetes API timeouts.
const (
	// ConfigMapWriteTimeout bounds publishing a report to a ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second
)
