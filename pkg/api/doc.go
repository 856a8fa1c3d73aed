// Package api provides the HTTP API layer for the kubedrive service.
//
// This package is a thin wrapper around the reusable pkg/server package. It
// configures the server with the kubectl driver routes and exposes apply,
// rollout and preflight over HTTP so a UI can watch a deployment as it
// happens.
//
// # Usage
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/kubedrive/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /v1/apply     - apply a manifest, streamed as server-sent events
//   - POST /v1/rollout   - watch a deployment rollout, streamed as server-sent events
//   - POST /v1/preflight - run preflight checks and return the report as JSON
//   - GET  /v1/contexts  - list kubeconfig contexts
//
// System endpoints (no rate limiting):
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// # Event Streams
//
// Streaming endpoints validate the request and wait for kubectl to start
// before answering. A request that cannot start kubectl gets a regular JSON
// error (400 for an invalid target, 502 when the binary cannot be launched).
// Once kubectl is running the response is text/event-stream:
//
//	id: 1
//	event: progress
//	data: {"invocationId":"...","writtenOn":"...","writtenTo":"stdin","content":"kubectl ... apply --filename - < <manifest>"}
//
//	id: 2
//	event: progress
//	data: {"invocationId":"...","writtenOn":"...","writtenTo":"stdout","content":"deployment.apps/api configured"}
//
//	event: result
//	data: {"invocationId":"...","state":"Completed","exitCode":0,"duration":"1.2s"}
//
// Comment frames are sent while kubectl is quiet to keep proxies from
// closing the connection. A client that disconnects cancels the request,
// which kills the kubectl process.
//
// # Configuration
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget
//	LOG_LEVEL                 debug, info, warn or error
//	KUBEDRIVE_KUBECTL         kubectl binary to run (default kubectl)
//
// When started by systemd with Type=notify the server reports READY and
// STOPPING through sd_notify.
package api
