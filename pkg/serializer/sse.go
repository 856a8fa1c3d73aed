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
)

// ContentTypeEventStream is the media type of server-sent event responses.
const ContentTypeEventStream = "text/event-stream"

// WriteSSE writes one server-sent event frame with data encoded as JSON.
// An empty id is omitted.
func WriteSSE(w io.Writer, name, id string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", name, err)
	}

	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, "id: %s\n", id)
	}
	if name != "" {
		fmt.Fprintf(&b, "event: %s\n", name)
	}
	fmt.Fprintf(&b, "data: %s\n\n", payload)

	_, err = io.WriteString(w, b.String())
	return err
}

// WriteSSEComment writes a comment frame. Clients ignore comments, which
// makes them suitable as keepalives.
func WriteSSEComment(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, ": %s\n\n", strings.ReplaceAll(text, "\n", " "))
	return err
}
