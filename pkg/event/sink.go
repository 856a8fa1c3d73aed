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
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Sink accepts progress events.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) {
	f(e)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Recorder is a Sink that buffers events in memory in emission order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Stream returns the recorded events written to s, in order.
func (r *Recorder) Stream(s Stream) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.WrittenTo == s {
			out = append(out, e)
		}
	}
	return out
}

// Content joins the content of every event written to s with newlines.
// Chunks arrive with trailing whitespace trimmed, so this restores the line
// break a chunk boundary usually falls on.
func (r *Recorder) Content(s Stream) string {
	events := r.Stream(s)
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.Content
	}
	return strings.Join(parts, "\n")
}

// NewChannelSink returns a Sink that sends each event on ch. Sends block
// until ch accepts the event or ctx is done; after ctx is done events are
// dropped so a departed consumer cannot stall the process relay.
func NewChannelSink(ctx context.Context, ch chan<- Event) Sink {
	return SinkFunc(func(e Event) {
		select {
		case ch <- e:
		case <-ctx.Done():
		}
	})
}

// NewLogSink returns a Sink that appends events to logger. Commands are
// logged at debug, stdout at info and stderr at warn.
func NewLogSink(logger *slog.Logger, attrs ...any) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(attrs...)
	return SinkFunc(func(e Event) {
		switch e.WrittenTo {
		case StreamStdin:
			logger.Debug("kubectl command", "command", e.Content, "writtenOn", e.WrittenOn)
		case StreamStderr:
			logger.Warn("kubectl stderr", "content", e.Content, "writtenOn", e.WrittenOn)
		default:
			logger.Info("kubectl stdout", "content", e.Content, "writtenOn", e.WrittenOn)
		}
	})
}

// Multi returns a Sink that emits to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	live := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return SinkFunc(func(e Event) {
		for _, s := range live {
			s.Emit(e)
		}
	})
}
