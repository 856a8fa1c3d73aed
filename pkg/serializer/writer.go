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
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Writer serializes documents to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output, or stdout when output is nil.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: orJSON(format), output: output}
}

// NewStdoutWriter returns a Writer for stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Serializer for path. An empty path means
// stdout, a cm://namespace/name path means a ConfigMap, anything else is
// created as a file. If the file cannot be created, output falls back to
// stdout. The ConfigMap options apply only to cm:// paths.
func NewFileWriterOrStdout(format Format, path string, opts ...ConfigMapOption) Serializer {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewStdoutWriter(format)
	}

	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := ParseConfigMapURI(path)
		if err != nil {
			slog.Error("invalid ConfigMap URI, falling back to stdout", "error", err, "uri", path)
			return NewStdoutWriter(format)
		}
		return NewConfigMapWriter(namespace, name, format, opts...)
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create output file, falling back to stdout", "error", err, "path", path)
		return NewStdoutWriter(format)
	}
	return &Writer{format: orJSON(format), output: f, closer: f}
}

// Serialize writes v in the writer's format. ctx is unused for local output.
func (w *Writer) Serialize(_ context.Context, v any) error {
	return encode(w.output, w.format, v)
}

// Close releases the underlying file, if any. It is safe to call on stdout
// writers and more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

func orJSON(f Format) Format {
	if f.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", f)
		return FormatJSON
	}
	return f
}
