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

// Package event defines the progress events emitted while a kubectl process
// runs and the Sink contract through which they are delivered.
//
// # Events
//
// Every invocation produces exactly one StreamStdin event first, recording the
// command line that was issued (manifest bodies replaced by a placeholder),
// followed by any number of StreamStdout and StreamStderr events, one per
// chunk of output read from the process.
//
// # Sinks
//
// A Sink is handed to each operation explicitly; there is no global bus. The
// driver never calls a single Sink concurrently for one invocation, but the
// same Sink value shared across invocations may be called concurrently, so
// the sinks in this package that hold state are safe for concurrent use.
//
//	rec := event.NewRecorder()
//	code, err := driver.Apply(ctx, target, manifest, event.Multi(rec, event.NewLogSink(slog.Default())))
//
// Provided sinks:
//   - Discard: drops everything
//   - Recorder: buffers events in memory
//   - SinkFunc: adapts a function
//   - NewChannelSink: forwards to a channel until a context is done
//   - NewLogSink: appends events to a slog.Logger
//   - Multi: fans out to several sinks in order
package event
