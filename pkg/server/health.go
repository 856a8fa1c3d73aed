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
	"net/http"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeProbe(w, r, func() (int, string, string) {
		return http.StatusOK, "healthy", ""
	})
}

// handleReady reports 503 until Run has bound the listener and again once
// shutdown begins, so load balancers drain before in-flight streams end.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.writeProbe(w, r, func() (int, string, string) {
		if s.IsReady() {
			return http.StatusOK, "ready", ""
		}
		return http.StatusServiceUnavailable, "not_ready", "service is starting or shutting down"
	})
}

func (s *Server) writeProbe(w http.ResponseWriter, r *http.Request, probe func() (int, string, string)) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	code, status, reason := probe()
	serializer.RespondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}
