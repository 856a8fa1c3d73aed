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

package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exec: \"kubectl\": executable file not found in $PATH")
	err := Wrap(ErrCodeLaunchFailure, "failed to start kubectl", cause)

	if err.Code != ErrCodeLaunchFailure {
		t.Errorf("expected code %s, got %s", ErrCodeLaunchFailure, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("permission denied")
	ctx := map[string]any{
		"binary": "kubectl",
	}

	err := WrapWithContext(ErrCodeLaunchFailure, "failed to start", cause, ctx)
	if err.Context["binary"] != "kubectl" {
		t.Errorf("expected binary to be kubectl, got %v", err.Context["binary"])
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeInvalidRequest, "namespace is required"),
			expected: "[INVALID_REQUEST] namespace is required",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIs(t *testing.T) {
	launch := Wrap(ErrCodeLaunchFailure, "failed to start kubectl", errors.New("not found"))

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"nil", nil, ErrCodeLaunchFailure, false},
		{"plain error", errors.New("boom"), ErrCodeLaunchFailure, false},
		{"direct match", launch, ErrCodeLaunchFailure, true},
		{"different code", launch, ErrCodeCanceled, false},
		{"wrapped with fmt", fmt.Errorf("apply: %w", launch), ErrCodeLaunchFailure, true},
		{"nested structured", Wrap(ErrCodeInternal, "outer", launch), ErrCodeLaunchFailure, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("expected %s for plain error, got %s", ErrCodeInternal, got)
	}
	if got := CodeOf(fmt.Errorf("x: %w", New(ErrCodeCanceled, "stop"))); got != ErrCodeCanceled {
		t.Errorf("expected %s, got %s", ErrCodeCanceled, got)
	}
}

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := WrapWithContext(ErrCodeLaunchFailure, "failed to start kubectl",
		errors.New("permission denied"), map[string]any{"binary": "/usr/local/bin/kubectl"})
	logger.Info("apply failed", "error", err)

	out := buf.String()
	for _, want := range []string{
		"error.code=LAUNCH_FAILURE",
		"error.cause=\"permission denied\"",
		"error.binary=/usr/local/bin/kubectl",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log line %q", want, out)
		}
	}
}
