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

// Package serializer renders kubedrive results and progress events.
//
// Three output formats are supported:
//   - JSON: indented documents, or one compact object per line for events
//   - YAML: documents separated by "---"
//   - Table: aligned columns for types implementing Tabular, flattened
//     FIELD/VALUE pairs for everything else
//
// Results go through a Writer:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// A destination of the form cm://namespace/name writes the document into a
// ConfigMap with server-side apply instead of a file.
//
// Progress events are streamed with an EventWriter, which is an event.Sink,
// or framed as server-sent events with WriteSSE for HTTP clients.
//
// JSON HTTP responses use RespondJSON, which encodes before writing headers
// so a failed encoding never produces a partial body.
package serializer
