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

package api

import (
	"time"

	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/preflight"
)

// ApplyRequest is the body of POST /v1/apply.
type ApplyRequest struct {
	Target   kubectl.Target `json:"target" yaml:"target"`
	Manifest string         `json:"manifest" yaml:"manifest"`
}

// RolloutRequest is the body of POST /v1/rollout.
type RolloutRequest struct {
	Target     kubectl.Target `json:"target" yaml:"target"`
	Deployment string         `json:"deployment" yaml:"deployment"`
}

// PreflightResponse is the body returned by POST /v1/preflight.
type PreflightResponse struct {
	Report *preflight.Report `json:"report" yaml:"report"`
	Events []event.Event     `json:"events" yaml:"events"`
}

// ContextsResponse is the body returned by GET /v1/contexts.
type ContextsResponse struct {
	Kubeconfig string                 `json:"kubeconfig" yaml:"kubeconfig"`
	Contexts   kubeconfig.ContextList `json:"contexts" yaml:"contexts"`
}

// ProgressFrame is the data of a progress event on a stream.
type ProgressFrame struct {
	InvocationID string `json:"invocationId"`
	event.Event
}

// ResultFrame is the data of the final result event on a stream.
type ResultFrame struct {
	InvocationID string `json:"invocationId"`
	State        string `json:"state"`
	ExitCode     int    `json:"exitCode"`
	Duration     string `json:"duration"`
}

// ErrorFrame is sent instead of a result when the invocation ends with an
// error after streaming started.
type ErrorFrame struct {
	InvocationID string    `json:"invocationId"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}
