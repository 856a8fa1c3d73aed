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

// Package defaults holds the tuning constants shared by the kubedrive
// packages: server timeouts, stream relay sizes, and CLI limits.
//
// Values are grouped by the component that consumes them:
//
//   - Server: HTTP server configuration and graceful shutdown
//   - Streaming: kubectl output relay and server-sent event keepalives
//   - CLI: preflight and rollout timeouts applied by the command line
//
// Constants are used directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.PreflightTimeout)
//	defer cancel()
package defaults
