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

// Package kubectl drives the kubectl binary on behalf of a caller.
//
// A Driver turns a deployment intent into one kubectl invocation and streams
// everything the invocation does to an event.Sink:
//
//   - exactly one stdin event carrying the command line, with any manifest
//     replaced by the <manifest> placeholder
//   - one stdout or stderr event per chunk of output, trailing whitespace
//     trimmed, in arrival order per stream
//
// Events for a single invocation are delivered serially. Independent
// invocations share nothing and may run concurrently on one Driver.
//
// # Operations
//
// Apply pipes a manifest into `kubectl apply --filename -`:
//
//	d := kubectl.New()
//	code, err := d.Apply(ctx, target, manifest, sink)
//
// RolloutStatus follows `kubectl rollout status deployments/<name>` until
// kubectl exits. The driver imposes no timeout; cancel ctx to stop it, which
// kills the child process.
//
// A non-zero exit code is a result, not an error. An error is returned only
// when the target is invalid (INVALID_REQUEST), kubectl cannot be started
// (LAUNCH_FAILURE, no events emitted), the context was canceled (CANCELED),
// or output could not be read (INTERNAL).
//
// # Invocation lifecycle
//
// StartApply and StartRolloutStatus return an *Invocation immediately. Its
// State moves NotStarted → Launching → Streaming → Completed, or ends in
// LaunchFailed or Canceled. Launched is closed once the launch outcome is
// known, which lets a streaming HTTP handler decide on a status code before
// writing any output.
package kubectl
