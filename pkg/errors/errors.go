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
	stderrors "errors"
	"log/slog"
	"strings"
)

// ErrorCode classifies an error for callers and for HTTP status mapping.
type ErrorCode string

// Request and lookup failures.
const (
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// Invocation and service failures.
const (
	// ErrCodeLaunchFailure means kubectl could not be started at all. It is
	// never retried.
	ErrCodeLaunchFailure ErrorCode = "LAUNCH_FAILURE"
	// ErrCodeCanceled means the caller gave up and the child was killed.
	ErrCodeCanceled    ErrorCode = "CANCELED"
	ErrCodeTimeout     ErrorCode = "TIMEOUT"
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// StructuredError carries a code, a message, an optional cause and optional
// key/value context that ends up in logs and API error details.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error renders "[CODE] message: cause".
func (e *StructuredError) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Code))
	b.WriteString("] ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// LogValue groups the error fields so slog prints them as attributes.
func (e *StructuredError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	for k, v := range e.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return slog.GroupValue(attrs...)
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *StructuredError {
	return WrapWithContext(code, message, nil, nil)
}

// NewWithContext is New with context attached.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return WrapWithContext(code, message, nil, context)
}

// Wrap classifies cause under code.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return WrapWithContext(code, message, cause, nil)
}

// WrapWithContext is Wrap with context attached.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// Is reports whether any StructuredError in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	var se *StructuredError
	for stderrors.As(err, &se) {
		if se.Code == code {
			return true
		}
		err = se.Cause
	}
	return false
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
