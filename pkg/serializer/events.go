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

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/NVIDIA/kubedrive/pkg/event"
	"gopkg.in/yaml.v3"
)

// eventTimeFormat is the timestamp layout of table-formatted events.
const eventTimeFormat = "15:04:05.000"

// EventWriter is an event.Sink that writes each event as it arrives: one
// JSON object per line, one YAML document per event, or one prefixed line per
// content line for tables.
type EventWriter struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	err    error
}

var _ event.Sink = (*EventWriter)(nil)

// NewEventWriter returns an EventWriter for w.
func NewEventWriter(format Format, w io.Writer) *EventWriter {
	return &EventWriter{w: w, format: orJSON(format)}
}

// Emit implements event.Sink. After the first write error further events
// are dropped; see Err.
func (ew *EventWriter) Emit(e event.Event) {
	ew.mu.Lock()
	defer ew.mu.Unlock()
	if ew.err != nil {
		return
	}
	ew.err = ew.write(e)
}

// Err returns the first write error.
func (ew *EventWriter) Err() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()
	return ew.err
}

func (ew *EventWriter) write(e event.Event) error {
	switch ew.format {
	case FormatYAML:
		b, err := yaml.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to serialize event to YAML: %w", err)
		}
		_, err = fmt.Fprintf(ew.w, "---\n%s", b)
		return err
	case FormatTable:
		ts := e.WrittenOn.Local().Format(eventTimeFormat)
		for _, line := range strings.Split(e.Content, "\n") {
			if _, err := fmt.Fprintf(ew.w, "%s  %-6s  %s\n", ts, e.WrittenTo, line); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := json.NewEncoder(ew.w).Encode(e); err != nil {
			return fmt.Errorf("failed to serialize event to JSON: %w", err)
		}
		return nil
	}
}
