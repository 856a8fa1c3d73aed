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

package event

import (
	"fmt"
	"time"
)

// Stream identifies which standard stream of the process an event belongs to.
type Stream string

const (
	// StreamStdin records the command issued to the process.
	StreamStdin Stream = "stdin"
	// StreamStdout carries a chunk of the process standard output.
	StreamStdout Stream = "stdout"
	// StreamStderr carries a chunk of the process standard error.
	StreamStderr Stream = "stderr"
)

// IsValid returns true for the three known streams.
func (s Stream) IsValid() bool {
	switch s {
	case StreamStdin, StreamStdout, StreamStderr:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Stream) String() string {
	return string(s)
}

// Event is one timestamped, stream-tagged record of interaction with an
// external process. Events are values; sinks own them after emission.
type Event struct {
	WrittenOn time.Time `json:"writtenOn" yaml:"writtenOn"`
	WrittenTo Stream    `json:"writtenTo" yaml:"writtenTo"`
	Content   string    `json:"content" yaml:"content"`
}

// New creates an event stamped with the current UTC time.
func New(stream Stream, content string) Event {
	return Event{
		WrittenOn: time.Now().UTC(),
		WrittenTo: stream,
		Content:   content,
	}
}

// String returns a single-line representation, e.g. "[stdout] deployment.apps/web configured".
func (e Event) String() string {
	return fmt.Sprintf("[%s] %s", e.WrittenTo, e.Content)
}
