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
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats lists the accepted format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q, expected one of: %s", s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// Marshal renders v in format f.
func Marshal(f Format, v any) ([]byte, error) {
	var sb strings.Builder
	if err := encode(&sb, f, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return encodeTable(w, v)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

func encodeTable(w io.Writer, v any) error {
	header, rows := tableOf(v)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "<empty>")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func tableOf(v any) ([]string, [][]string) {
	if t, ok := v.(Tabular); ok {
		return t.TableHeader(), t.TableRows()
	}

	flat := map[string]string{}
	flatten(flat, reflect.ValueOf(v), "")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, flat[k]})
	}
	return []string{"FIELD", "VALUE"}, rows
}

// flatten records every leaf of val under a dotted key.
func flatten(out map[string]string, val reflect.Value, key string) {
	for val.IsValid() && (val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface) {
		if val.IsNil() {
			if key != "" {
				out[key] = "<nil>"
			}
			return
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return
	}

	if s, ok := val.Interface().(fmt.Stringer); ok && !hasExportedFields(val) {
		out[leafKey(key)] = s.String()
		return
	}

	//nolint:exhaustive // scalars fall through to default
	switch val.Kind() {
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if f := val.Type().Field(i); f.IsExported() {
				flatten(out, val.Field(i), join(key, f.Name))
			}
		}
	case reflect.Map:
		for _, k := range val.MapKeys() {
			flatten(out, val.MapIndex(k), join(key, fmt.Sprint(k.Interface())))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			flatten(out, val.Index(i), fmt.Sprintf("%s[%d]", key, i))
		}
	default:
		out[leafKey(key)] = fmt.Sprint(val.Interface())
	}
}

func hasExportedFields(val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < val.NumField(); i++ {
		if val.Type().Field(i).IsExported() {
			return true
		}
	}
	return false
}

func leafKey(key string) string {
	if key == "" {
		return "value"
	}
	return key
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
