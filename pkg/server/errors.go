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

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
	"github.com/google/uuid"
)

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeLaunchFailure:
		return http.StatusBadGateway
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeCanceled:
		// nginx's "client closed request"
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func retryable(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeRateLimitExceeded, errors.ErrCodeUnavailable, errors.ErrCodeTimeout, errors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err using its structured code and context.
// Errors without a code are reported as INTERNAL.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	var details map[string]any
	var se *errors.StructuredError
	if stderrors.As(err, &se) && len(se.Context) > 0 {
		details = se.Context
	}
	WriteError(w, r, HTTPStatus(code), code, err.Error(), retryable(code), details)
}
